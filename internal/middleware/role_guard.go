package middleware

import (
	"devmarket/internal/authctx"
	"devmarket/internal/response"

	"github.com/labstack/echo/v4"
)

//contextのidentityが指定の権限を持つか確認します。

func RoleGuard(authority string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := authctx.Current(c.Request().Context())
			if !ok {
				return response.OnFailure(c, response.UserNotAuthenticated)
			}

			//権限が無ければ拒否
			if !id.HasAuthority(authority) {
				return response.OnFailure(c, response.Forbidden)
			}

			return next(c)
		}
	}
}
