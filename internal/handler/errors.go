package handler

import (
	"errors"

	"devmarket/internal/logger"
	"devmarket/internal/response"
	"devmarket/internal/usecase"
	auth "devmarket/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

// ドメインエラー => 共通レスポンスの対応表。上から順に見る
var errorStatuses = []struct {
	err    error
	status response.Status
}{
	{auth.ErrValidation, response.BadRequest},
	{auth.ErrRefreshTokenExpired, response.RefreshTokenExpired},
	{auth.ErrTokenExpired, response.TokenExpired},
	{auth.ErrTokenInvalid, response.TokenInvalid},
	{auth.ErrWrongRefreshToken, response.WrongRefreshToken},
	{auth.ErrUserNotFound, response.UserNotFound},
	{usecase.ErrUserNotFound, response.UserNotFound},
	{auth.ErrUpstreamAuthFailure, response.UpstreamAuthFailure},
	{auth.ErrOAuth2ProcessFailed, response.OAuth2ProcessFailed},
	{usecase.ErrItemNotFound, response.ItemNotFound},
	{usecase.ErrInvalidItemID, response.BadRequest},
}

// エラーをレスポンスに変換する。想定外は500にしてログだけ残す
func writeError(c echo.Context, log logger.Logger, err error) error {
	if err == nil {
		return nil
	}

	for _, m := range errorStatuses {
		if errors.Is(err, m.err) {
			return response.OnFailure(c, m.status)
		}
	}

	//500
	log.Error().Err(err).
		Str("path", c.Request().URL.Path).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("request failed")
	return response.OnFailure(c, response.InternalServerError)
}
