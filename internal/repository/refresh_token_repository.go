package repository

import (
	"context"
	"errors"
	"time"

	"devmarket/internal/domain/model"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// ユーザーごとに1件のリフレッシュトークン
type RefreshTokenRepository interface {
	FindByUserID(ctx context.Context, userID int64) (*model.RefreshToken, error)
	// 行ロック付き（同一ユーザーの再発行を直列化）
	FindByUserIDForUpdate(ctx context.Context, userID int64) (*model.RefreshToken, error)
	// あれば値と期限を上書き、なければ作成
	Upsert(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error
	// なくてもエラーにしない
	DeleteByUserID(ctx context.Context, userID int64) error
}
