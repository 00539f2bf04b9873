package repository

import (
	"context"
	"errors"
	"time"
)

var ErrOAuthStateNotFound = errors.New("oauth state not found")

// OAuth開始時のstateとリダイレクト先を一度だけ使える形で保存
type OAuthStateRepository interface {
	Save(ctx context.Context, state string, redirectOrigin string, ttl time.Duration) error
	// 取り出したら消える
	Consume(ctx context.Context, state string) (string, error)
}
