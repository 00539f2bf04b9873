package handler

import (
	"devmarket/internal/authctx"
	"devmarket/internal/domain/model"
	"devmarket/internal/logger"
	"devmarket/internal/middleware"
	"devmarket/internal/response"

	"github.com/labstack/echo/v4"
)

type AdminUserHandler struct {
	uc  AuthService
	log logger.Logger
}

func NewAdminUserHandler(uc AuthService, log logger.Logger) *AdminUserHandler {
	return &AdminUserHandler{uc: uc, log: log}
}

func (h *AdminUserHandler) RegisterRoutes(e *echo.Echo) {
	// /admin 配下は全部 ADMIN限定
	admin := e.Group("/admin", middleware.RoleGuard(string(model.RoleAdmin)))

	admin.DELETE("/users/:providerId/sessions", h.ForceLogout)
}

// 対象ユーザーのrefreshを消す。accessはTTLまで有効
func (h *AdminUserHandler) ForceLogout(c echo.Context) error {
	target := c.Param("providerId")

	if err := h.uc.ForceLogout(c.Request().Context(), target); err != nil {
		return writeError(c, h.log, err)
	}

	actor, _ := authctx.Current(c.Request().Context())
	h.log.Info().
		Str("actor", logger.MaskProviderID(actor.ProviderID)).
		Str("target", logger.MaskProviderID(target)).
		Msg("force logout")
	return response.OnSuccess(c, response.UserLogoutSuccess, nil)
}
