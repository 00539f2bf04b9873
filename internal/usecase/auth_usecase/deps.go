package auth

import (
	"context"
	"time"

	"devmarket/internal/infra/kakao"
	"devmarket/internal/token"
)

// トークンの発行/検証の約束
type TokenCodec interface {
	Issue(subject string, kind token.Kind, authorities []string, ttl time.Duration) (string, time.Time, error)
	Decode(raw string) (*token.Claims, error)
	DecodeForRotationOnly(raw string) (*token.Claims, error)
}

// ソーシャルプロバイダ（Kakao）呼び出しの約束
type ProviderClient interface {
	Exchange(ctx context.Context, code string) (string, error)
	FetchUserInfo(ctx context.Context, accessToken string) (*kakao.UserInfo, error)
}

// usecaseがValidatorに依存する約束
type Validator interface {
	ValidateLogin(in LoginInput) error
	ValidateReissue(accessToken string, refreshToken string) error
	ValidateLogout(accessToken string) error
	ValidateForceLogout(providerID string) error
}
