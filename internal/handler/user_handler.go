package handler

import (
	"devmarket/internal/authctx"
	"devmarket/internal/logger"
	"devmarket/internal/middleware"
	"devmarket/internal/response"
	"devmarket/internal/usecase"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	uc  *usecase.UserUsecase
	log logger.Logger
}

func NewUserHandler(uc *usecase.UserUsecase, log logger.Logger) *UserHandler {
	return &UserHandler{uc: uc, log: log}
}

func (h *UserHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/users/me", h.Me, middleware.RequireAuth())
}

// ログイン中ユーザーの情報
func (h *UserHandler) Me(c echo.Context) error {
	id, ok := authctx.Current(c.Request().Context())
	if !ok {
		return response.OnFailure(c, response.UserNotAuthenticated)
	}

	out, err := h.uc.GetMyInfo(c.Request().Context(), id.ProviderID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return response.OnSuccess(c, response.UserInfoSuccess, out)
}
