package oauthstate

import (
	"context"
	"errors"
	"time"

	repo "devmarket/internal/repository"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "oauth2:state:"

type redisStore struct {
	rdb redis.UniversalClient
}

// Redis実装（複数インスタンスでもstateを共有できる）
func NewRedisStore(rdb redis.UniversalClient) repo.OAuthStateRepository {
	return &redisStore{rdb: rdb}
}

func (s *redisStore) Save(ctx context.Context, state string, redirectOrigin string, ttl time.Duration) error {
	return s.rdb.Set(ctx, keyPrefix+state, redirectOrigin, ttl).Err()
}

// GETDELで一度きり
func (s *redisStore) Consume(ctx context.Context, state string) (string, error) {
	v, err := s.rdb.GetDel(ctx, keyPrefix+state).Result()
	if errors.Is(err, redis.Nil) {
		return "", repo.ErrOAuthStateNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}
