package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Configはアプリ全体の設定
type Config struct {
	AppName string `env:"APP_NAME" envDefault:"devmarket"`
	AppEnv  string `env:"APP_ENV" envDefault:"local"` // local/dev/prod
	Port    string `env:"PORT" envDefault:"8080"`     // サーバーポート

	DatabaseURL      string        `env:"DATABASE_URL"` // あれば最優先
	PostgresHost     string        `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     int           `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string        `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPassword string        `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	PostgresDB       string        `env:"POSTGRES_DB" envDefault:"app"`
	PostgresSSLMode  string        `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	DBConnectMax     time.Duration `env:"DB_CONNECT_MAX_ELAPSED" envDefault:"30s"` // 起動時の接続リトライ上限

	JWTSecret  string        `env:"JWT_SECRET"` // JWT署名シークレット（32byte以上）
	AccessTTL  time.Duration `env:"JWT_ACCESS_TTL" envDefault:"30m"`
	RefreshTTL time.Duration `env:"JWT_REFRESH_TTL" envDefault:"336h"`

	KakaoClientID     string        `env:"KAKAO_CLIENT_ID"`
	KakaoClientSecret string        `env:"KAKAO_CLIENT_SECRET"`
	KakaoRedirectURL  string        `env:"KAKAO_REDIRECT_URL" envDefault:"http://localhost:8080/login/oauth2/code/kakao"`
	KakaoAuthURL      string        `env:"KAKAO_AUTH_URL" envDefault:"https://kauth.kakao.com/oauth/authorize"`
	KakaoTokenURL     string        `env:"KAKAO_TOKEN_URL" envDefault:"https://kauth.kakao.com/oauth/token"`
	KakaoUserInfoURL  string        `env:"KAKAO_USERINFO_URL" envDefault:"https://kapi.kakao.com/v2/user/me"`
	KakaoTimeout      time.Duration `env:"KAKAO_TIMEOUT" envDefault:"5s"`

	// フロントのリダイレクト先
	AllowedOrigins []string      `env:"FRONT_ALLOWED_ORIGINS" envSeparator:"," envDefault:"https://coda-likelion.netlify.app,http://localhost:3000"`
	DefaultOrigin  string        `env:"FRONT_DEFAULT_ORIGIN" envDefault:"https://coda-likelion.netlify.app"`
	CallbackPath   string        `env:"FRONT_CALLBACK_PATH" envDefault:"/oauth/callback"`
	OAuthStateTTL  time.Duration `env:"OAUTH_STATE_TTL" envDefault:"10m"`
	CookieSecure   bool          `env:"COOKIE_SECURE" envDefault:"true"`

	RedisAddr     string `env:"REDIS_ADDR"` // 空ならメモリ
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	NATSURL           string `env:"NATS_URL"` // 空ならverify応答なし
	NATSVerifySubject string `env:"NATS_VERIFY_SUBJECT" envDefault:"auth.verify"`
}

// Loadは環境変数（.envがあれば先に読む）
func Load() (Config, error) {
	_ = godotenv.Load()
	return parse(env.Options{})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.AccessTTL <= 0 {
		return Config{}, fmt.Errorf("JWT_ACCESS_TTL must be positive")
	}
	if cfg.RefreshTTL <= cfg.AccessTTL {
		return Config{}, fmt.Errorf("JWT_REFRESH_TTL must be longer than JWT_ACCESS_TTL")
	}
	if strings.TrimSpace(cfg.DefaultOrigin) == "" {
		return Config{}, fmt.Errorf("FRONT_DEFAULT_ORIGIN is required")
	}
	if !strings.HasPrefix(cfg.CallbackPath, "/") {
		return Config{}, fmt.Errorf("FRONT_CALLBACK_PATH must start with /")
	}

	origins := make([]string, 0, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	cfg.AllowedOrigins = origins

	return cfg, nil
}

// DSNはgorm/goose共通の接続文字列
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

func (c Config) IsLocal() bool {
	return c.AppEnv == "local"
}
