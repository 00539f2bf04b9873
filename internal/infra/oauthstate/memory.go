package oauthstate

import (
	"context"
	"sync"
	"time"

	repo "devmarket/internal/repository"
)

type entry struct {
	origin    string
	expiresAt time.Time
}

// REDIS_ADDRが無い時用（単一プロセス）
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]entry), now: time.Now}
}

var _ repo.OAuthStateRepository = (*MemoryStore)(nil)

func (s *MemoryStore) Save(ctx context.Context, state string, redirectOrigin string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	// 期限切れを掃除
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, k)
		}
	}
	s.entries[state] = entry{origin: redirectOrigin, expiresAt: now.Add(ttl)}
	return nil
}

func (s *MemoryStore) Consume(ctx context.Context, state string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[state]
	if !ok {
		return "", repo.ErrOAuthStateNotFound
	}
	delete(s.entries, state)
	if !s.now().Before(e.expiresAt) {
		return "", repo.ErrOAuthStateNotFound
	}
	return e.origin, nil
}
