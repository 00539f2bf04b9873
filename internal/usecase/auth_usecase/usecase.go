package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"devmarket/internal/logger"
	"devmarket/internal/repository"
)

// handlerに返すトークンの組
type TokenPair struct {
	AccessToken           string `json:"accessToken"`
	RefreshToken          string `json:"refreshToken"`
	AccessTokenExpiresIn  int64  `json:"accessTokenExpiresIn"`  // 秒
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn"` // 秒
}

type AuthUsecase struct {
	users      repository.UserRepository
	rtRepo     repository.RefreshTokenRepository
	txm        repository.TransactionManager
	codec      TokenCodec
	resolver   *Resolver
	validator  Validator
	log        logger.Logger
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// DIコンストラクタ
func NewAuthUsecase(
	users repository.UserRepository,
	rtRepo repository.RefreshTokenRepository,
	txm repository.TransactionManager,
	codec TokenCodec,
	resolver *Resolver,
	validator Validator,
	log logger.Logger,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		users:      users,
		rtRepo:     rtRepo,
		txm:        txm,
		codec:      codec,
		resolver:   resolver,
		validator:  validator,
		log:        log,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// DBにはrefreshの平文を置かない
func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
