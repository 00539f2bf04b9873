package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devmarket/internal/config"
	"devmarket/internal/handler"
	"devmarket/internal/infra/db"
	"devmarket/internal/infra/kakao"
	"devmarket/internal/infra/oauthstate"
	infraRepo "devmarket/internal/infra/repository"
	"devmarket/internal/logger"
	"devmarket/internal/repository"
	"devmarket/internal/server"
	"devmarket/internal/token"
	"devmarket/internal/transport/natsverify"
	"devmarket/internal/usecase"
	auth "devmarket/internal/usecase/auth_usecase"
	"devmarket/internal/validator"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("prod")
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := logger.New(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//マイグレーション => DB接続
	if err := db.Migrate(ctx, cfg.DSN()); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	gormDB, err := db.Connect(ctx, cfg.DSN(), logger.GormLevel(cfg.AppEnv), cfg.DBConnectMax)
	if err != nil {
		log.Fatal().Err(err).Msg("connect db")
	}
	defer func() { _ = db.Close(gormDB) }()

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)
	itemRepo := infraRepo.NewItemGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//JWT
	codec, err := token.NewCodec(cfg.JWTSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("token codec")
	}

	kakaoClient := kakao.NewClient(kakao.Config{
		ClientID:     cfg.KakaoClientID,
		ClientSecret: cfg.KakaoClientSecret,
		RedirectURL:  cfg.KakaoRedirectURL,
		AuthURL:      cfg.KakaoAuthURL,
		TokenURL:     cfg.KakaoTokenURL,
		UserInfoURL:  cfg.KakaoUserInfoURL,
		Timeout:      cfg.KakaoTimeout,
	})

	//OAuth state（REDIS_ADDRが無ければメモリ）
	var states repository.OAuthStateRepository = oauthstate.NewMemoryStore()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		defer func() { _ = rdb.Close() }()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Msg("connect redis")
		}
		states = oauthstate.NewRedisStore(rdb)
	}

	//Usecase生成
	authUC := auth.NewAuthUsecase(
		userRepo, rtRepo, txm, codec,
		auth.NewResolver(kakaoClient),
		validator.NewAuthValidator(),
		log,
		cfg.AccessTTL, cfg.RefreshTTL,
	)
	userUC := usecase.NewUserUsecase(userRepo)
	itemUC := usecase.NewItemUsecase(itemRepo)

	//Handler生成
	srv := server.New(codec, server.Handlers{
		Auth: handler.NewAuthHandler(authUC, log),
		OAuth: handler.NewOAuthHandler(authUC, kakaoClient, states, handler.OAuthConfig{
			AllowedOrigins: cfg.AllowedOrigins,
			DefaultOrigin:  cfg.DefaultOrigin,
			CallbackPath:   cfg.CallbackPath,
			StateTTL:       cfg.OAuthStateTTL,
			CookieSecure:   cfg.CookieSecure,
		}, log),
		User:      handler.NewUserHandler(userUC, log),
		Item:      handler.NewItemHandler(itemUC, log),
		AdminUser: handler.NewAdminUserHandler(authUC, log),
	}, log)

	//NATS（NATS_URLが無ければ応答しない）
	if cfg.NATSURL != "" {
		nc, err := nats.Connect(cfg.NATSURL, nats.Name(cfg.AppName))
		if err != nil {
			log.Error().Err(err).Msg("nats connect failed")
		} else {
			defer nc.Drain()
			if _, err := natsverify.NewVerifyHandler(codec, log).Subscribe(nc, cfg.NATSVerifySubject, cfg.AppName); err != nil {
				log.Error().Err(err).Msg("nats subscribe failed")
			}
		}
	}

	//Server起動
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(":" + cfg.Port) }()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("http server")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
