package server

import (
	"context"
	"errors"
	"net/http"

	"devmarket/internal/handler"
	"devmarket/internal/logger"
	"devmarket/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// ルート登録に必要なhandler一式
type Handlers struct {
	Auth      *handler.AuthHandler
	OAuth     *handler.OAuthHandler
	User      *handler.UserHandler
	Item      *handler.ItemHandler
	AdminUser *handler.AdminUserHandler
}

type Server struct {
	echo *echo.Echo
	log  logger.Logger
}

// Newはミドルウェアとルートを組み立てる。順番は
// Recover => RequestID => アクセスログ => 匿名 => JWT => 公開パス判定
func New(codec middleware.TokenDecoder, h Handlers, log logger.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(logger.RequestLogger(log))
	e.Use(middleware.AnonymousIdentity())
	e.Use(middleware.AuthJWT(codec, handler.ReissuePaths, log))
	e.Use(middleware.RequireAuthExcept(PublicPaths))

	RegisterRoutes(e, h)
	return &Server{echo: e, log: log}
}

// テスト用
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Startはブロックする。Shutdownによる終了はnil
func (s *Server) Start(addr string) error {
	s.log.Info().Str("addr", addr).Msg("http server started")
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
