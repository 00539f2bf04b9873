package middleware

import (
	"errors"
	"strings"

	"devmarket/internal/authctx"
	"devmarket/internal/logger"
	"devmarket/internal/response"
	"devmarket/internal/token"

	"github.com/labstack/echo/v4"
)

// AuthJWTが使う検証。期限切れを許す版はここに渡さない
type TokenDecoder interface {
	Decode(raw string) (*token.Claims, error)
}

// bearerAuth用のJWT検証ミドルウェア。
// ヘッダが無ければ匿名のまま通す（公開APIがあるため）
func AuthJWT(codec TokenDecoder, bypassPaths []string, log logger.Logger) echo.MiddlewareFunc {
	bypass := make(map[string]struct{}, len(bypassPaths))
	for _, p := range bypassPaths {
		bypass[p] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			//再発行は期限切れaccessを自分で読むので素通し
			if _, ok := bypass[req.URL.Path]; ok {
				return next(c)
			}

			//既に認証済み（匿名は除く）
			if id, ok := authctx.From(req.Context()); ok && id.Authenticated() {
				return next(c)
			}

			rawToken, ok := bearerToken(req.Header.Get(echo.HeaderAuthorization))
			if !ok {
				return next(c)
			}

			claims, err := codec.Decode(rawToken)
			switch {
			case err == nil:
			case errors.Is(err, token.ErrExpired):
				return response.OnFailure(c, response.TokenExpired)
			case errors.Is(err, token.ErrInvalidSignature),
				errors.Is(err, token.ErrMalformed),
				errors.Is(err, token.ErrUnsupported):
				return response.OnFailure(c, response.TokenInvalid)
			default:
				log.Error().Err(err).Str("path", req.URL.Path).Msg("token decode failed")
				return response.OnFailure(c, response.InternalServerError)
			}

			//refreshをaccessとして使わせない
			if claims.Kind != token.KindAccess {
				return response.OnFailure(c, response.TokenInvalid)
			}

			id := authctx.Identity{
				ProviderID:  claims.Subject,
				Authorities: claims.AuthorityList(),
			}
			c.SetRequest(req.WithContext(authctx.With(req.Context(), id)))
			return next(c)
		}
	}
}

// 匿名の印を先に置く。AuthJWTで上書きされる
func AnonymousIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if _, ok := authctx.From(req.Context()); !ok {
				c.SetRequest(req.WithContext(authctx.With(req.Context(), authctx.Anonymous())))
			}
			return next(c)
		}
	}
}

// 認証済みでなければAUTH_0001
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := authctx.Current(c.Request().Context()); !ok {
				return response.OnFailure(c, response.UserNotAuthenticated)
			}
			return next(c)
		}
	}
}

// 公開パス以外は認証必須。"/items/**" は配下すべて
func RequireAuthExcept(publicPaths []string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if isPublic(c.Request().URL.Path, publicPaths) {
				return next(c)
			}
			if _, ok := authctx.Current(c.Request().Context()); !ok {
				return response.OnFailure(c, response.UserNotAuthenticated)
			}
			return next(c)
		}
	}
}

func isPublic(path string, patterns []string) bool {
	for _, p := range patterns {
		if prefix, ok := strings.CutSuffix(p, "/**"); ok {
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				return true
			}
			continue
		}
		if path == p {
			return true
		}
	}
	return false
}

// "Bearer <jwt>" からjwtを抜く
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	raw := strings.TrimSpace(parts[1])
	if raw == "" {
		return "", false
	}
	return raw, true
}

// handlerからも使う
func BearerToken(c echo.Context) (string, bool) {
	return bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
}
