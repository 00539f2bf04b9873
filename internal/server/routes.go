package server

import (
	"devmarket/internal/response"

	"github.com/labstack/echo/v4"
)

// 認証なしで通すパス。"/**" は配下すべて
var PublicPaths = []string{
	"/health",
	"/users/reissue",
	"/users/logout",
	"/token/**",
	"/oauth2/**",
	"/login/oauth2/**",
	"/items/**",
	"/mobile/auth/**",
}

func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/health", func(c echo.Context) error {
		return response.OnSuccess(c, response.OK, map[string]string{"status": "ok"})
	})

	h.Auth.RegisterRoutes(e)
	h.OAuth.RegisterRoutes(e)
	h.User.RegisterRoutes(e)
	h.Item.RegisterRoutes(e)
	h.AdminUser.RegisterRoutes(e)
}
