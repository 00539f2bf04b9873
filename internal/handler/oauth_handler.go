package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"devmarket/internal/logger"
	"devmarket/internal/repository"
	"devmarket/internal/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// stateを入れておくcookie
const oauthStateCookie = "oauth2_state"

// プロバイダの認可画面URLを作る
type AuthorizeURLBuilder interface {
	AuthCodeURL(state string) string
}

type OAuthConfig struct {
	AllowedOrigins []string
	DefaultOrigin  string
	CallbackPath   string
	StateTTL       time.Duration
	CookieSecure   bool
}

type OAuthHandler struct {
	uc       AuthService
	provider AuthorizeURLBuilder
	states   repository.OAuthStateRepository
	cfg      OAuthConfig
	log      logger.Logger
	newState func() string
}

// DIコンストラクタ
func NewOAuthHandler(
	uc AuthService,
	provider AuthorizeURLBuilder,
	states repository.OAuthStateRepository,
	cfg OAuthConfig,
	log logger.Logger,
) *OAuthHandler {
	return &OAuthHandler{
		uc:       uc,
		provider: provider,
		states:   states,
		cfg:      cfg,
		log:      log,
		newState: uuid.NewString,
	}
}

func (h *OAuthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/oauth2/start/:provider", h.Start)
	e.GET("/login/oauth2/code/kakao", h.Callback)
}

// Startは戻り先originを保存してKakaoへ飛ばす
func (h *OAuthHandler) Start(c echo.Context) error {
	if c.Param("provider") != "kakao" {
		return response.OnFailureWithMessage(c, response.BadRequest, "unsupported provider")
	}

	origin := PickSafeOrigin(c.QueryParam("redirect_uri"), h.cfg.AllowedOrigins, h.cfg.DefaultOrigin)
	state := h.newState()

	if err := h.states.Save(c.Request().Context(), state, origin, h.cfg.StateTTL); err != nil {
		return writeError(c, h.log, err)
	}

	c.SetCookie(&http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.cfg.StateTTL.Seconds()),
	})
	return c.Redirect(http.StatusFound, h.provider.AuthCodeURL(state))
}

// Callbackは認可コードでログインし、トークンをfragmentに載せてフロントへ戻す
func (h *OAuthHandler) Callback(c echo.Context) error {
	state := c.QueryParam("state")
	cookie, err := c.Cookie(oauthStateCookie)
	if state == "" || err != nil || cookie.Value != state {
		return response.OnFailureWithMessage(c, response.OAuth2ProcessFailed, "state mismatch")
	}
	h.clearStateCookie(c)

	// 一度使ったstateは消える
	origin, err := h.states.Consume(c.Request().Context(), state)
	if errors.Is(err, repository.ErrOAuthStateNotFound) {
		return response.OnFailureWithMessage(c, response.OAuth2ProcessFailed, "state expired")
	}
	if err != nil {
		return writeError(c, h.log, err)
	}

	callback := origin + h.cfg.CallbackPath

	if reason := c.QueryParam("error"); reason != "" {
		return c.Redirect(http.StatusFound, callback+"#"+url.Values{"error": {reason}}.Encode())
	}

	pair, err := h.uc.LoginWithAuthorizationCode(c.Request().Context(), c.QueryParam("code"))
	if err != nil {
		h.log.Warn().Err(err).Msg("oauth2 callback login failed")
		return c.Redirect(http.StatusFound, callback+"#"+url.Values{"error": {"login_failed"}}.Encode())
	}

	fragment := url.Values{
		"accessToken":  {pair.AccessToken},
		"refreshToken": {pair.RefreshToken},
	}
	return c.Redirect(http.StatusFound, callback+"#"+fragment.Encode())
}

func (h *OAuthHandler) clearStateCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     oauthStateCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// PickSafeOriginはredirect_uriのscheme://host[:port]が許可リストにあればそれを、
// なければdefaultを返す
func PickSafeOrigin(raw string, allowed []string, def string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return def
	}

	origin := strings.ToLower(u.Scheme + "://" + u.Host)
	for _, a := range allowed {
		if strings.EqualFold(strings.TrimRight(a, "/"), origin) {
			return strings.TrimRight(a, "/")
		}
	}
	return def
}
