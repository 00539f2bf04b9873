package handler

import (
	"context"

	"devmarket/internal/logger"
	"devmarket/internal/middleware"
	"devmarket/internal/response"
	auth "devmarket/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

// handlerが使う認証usecaseの約束
type AuthService interface {
	Login(ctx context.Context, in auth.LoginInput) (*auth.TokenPair, error)
	LoginWithAuthorizationCode(ctx context.Context, code string) (*auth.TokenPair, error)
	Rotate(ctx context.Context, accessRaw string, refreshRaw string) (*auth.TokenPair, error)
	Revoke(ctx context.Context, accessRaw string) error
	ForceLogout(ctx context.Context, providerID string) error
}

type AuthHandler struct {
	uc  AuthService
	log logger.Logger
}

// DIコンストラクタ
func NewAuthHandler(uc AuthService, log logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// ログイン系のリクエストボディ。providerIdかkakaoAccessTokenのどちらか
type loginRequest struct {
	ProviderID       string `json:"providerId"`
	Nickname         string `json:"nickname"`
	Email            string `json:"email"`
	ProfileURL       string `json:"profileUrl"`
	KakaoAccessToken string `json:"kakaoAccessToken"`
}

// /users/reissue, /token/reissue（accessはヘッダ）
type reissueRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// /mobile/auth/refresh（両方ボディ）
type mobileRefreshRequest struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// 再発行は認証ミドルウェアを通さないパス
var ReissuePaths = []string{"/users/reissue", "/token/reissue", "/mobile/auth/refresh"}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/token/generate", h.Login)
	e.POST("/token/login", h.Login)
	e.POST("/mobile/auth/login", h.Login)

	e.POST("/users/reissue", h.Reissue)
	e.POST("/token/reissue", h.Reissue)
	e.POST("/mobile/auth/refresh", h.MobileRefresh)

	e.DELETE("/users/logout", h.Logout)
}

// Loginはトークンの組を発行する
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.OnFailure(c, response.BadRequest)
	}

	pair, err := h.uc.Login(c.Request().Context(), auth.LoginInput{
		ProviderID:       req.ProviderID,
		Nickname:         req.Nickname,
		Email:            req.Email,
		ProfileURL:       req.ProfileURL,
		KakaoAccessToken: req.KakaoAccessToken,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return response.OnSuccess(c, response.UserLoginSuccess, pair)
}

// Reissueは期限切れでもよいaccess（ヘッダ）とrefresh（ボディ）で再発行
func (h *AuthHandler) Reissue(c echo.Context) error {
	var req reissueRequest
	if err := c.Bind(&req); err != nil {
		return response.OnFailure(c, response.BadRequest)
	}

	access, _ := middleware.BearerToken(c)
	pair, err := h.uc.Rotate(c.Request().Context(), access, req.RefreshToken)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return response.OnSuccess(c, response.UserReissueSuccess, pair)
}

func (h *AuthHandler) MobileRefresh(c echo.Context) error {
	var req mobileRefreshRequest
	if err := c.Bind(&req); err != nil {
		return response.OnFailure(c, response.BadRequest)
	}

	pair, err := h.uc.Rotate(c.Request().Context(), req.AccessToken, req.RefreshToken)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return response.OnSuccess(c, response.UserReissueSuccess, pair)
}

// Logoutはrefreshを削除する。resultはnull
func (h *AuthHandler) Logout(c echo.Context) error {
	access, ok := middleware.BearerToken(c)
	if !ok {
		return response.OnFailure(c, response.UserNotAuthenticated)
	}

	if err := h.uc.Revoke(c.Request().Context(), access); err != nil {
		return writeError(c, h.log, err)
	}
	return response.OnSuccess(c, response.UserLogoutSuccess, nil)
}
