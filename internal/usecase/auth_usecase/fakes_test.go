package auth_test

import (
	"context"
	"sync"
	"time"

	"devmarket/internal/domain/model"
	"devmarket/internal/infra/kakao"
	"devmarket/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// メモリ上のDB（Txはスナップショットで巻き戻す）
// =====================

type memDB struct {
	mu     sync.Mutex
	txMu   sync.Mutex
	users  map[string]model.User
	tokens map[int64]model.RefreshToken
	nextID int64

	failUpsert error
	failFind   error
	// Createの直前に別Txが作った行
	createdElsewhere *model.User
}

func newMemDB() *memDB {
	return &memDB{users: map[string]model.User{}, tokens: map[int64]model.RefreshToken{}}
}

func (db *memDB) Users() repository.UserRepository                 { return &memUsers{db: db} }
func (db *memDB) RefreshTokens() repository.RefreshTokenRepository { return &memTokens{db: db} }

func (db *memDB) WithinTx(ctx context.Context, fn func(r repository.TxRepos) error) error {
	db.txMu.Lock()
	defer db.txMu.Unlock()

	db.mu.Lock()
	users := make(map[string]model.User, len(db.users))
	for k, v := range db.users {
		users[k] = v
	}
	tokens := make(map[int64]model.RefreshToken, len(db.tokens))
	for k, v := range db.tokens {
		tokens[k] = v
	}
	db.mu.Unlock()

	if err := fn(db); err != nil {
		db.mu.Lock()
		db.users, db.tokens = users, tokens
		db.mu.Unlock()
		return err
	}
	return nil
}

func (db *memDB) tokenFor(providerID string) (model.RefreshToken, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	u, ok := db.users[providerID]
	if !ok {
		return model.RefreshToken{}, false
	}
	t, ok := db.tokens[u.ID]
	return t, ok
}

func (db *memDB) userCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users)
}

type memUsers struct{ db *memDB }

func (r *memUsers) Create(ctx context.Context, user *model.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if other := r.db.createdElsewhere; other != nil {
		r.db.createdElsewhere = nil
		r.db.nextID++
		other.ID = r.db.nextID
		r.db.users[other.ProviderID] = *other
	}
	if _, ok := r.db.users[user.ProviderID]; ok {
		return repository.ErrUserAlreadyExists
	}
	r.db.nextID++
	user.ID = r.db.nextID
	r.db.users[user.ProviderID] = *user
	return nil
}

func (r *memUsers) FindByProviderID(ctx context.Context, providerID string) (*model.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failFind != nil {
		return nil, r.db.failFind
	}
	u, ok := r.db.users[providerID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (r *memUsers) Update(ctx context.Context, user *model.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[user.ProviderID]; !ok {
		return repository.ErrUserNotFound
	}
	r.db.users[user.ProviderID] = *user
	return nil
}

type memTokens struct{ db *memDB }

func (r *memTokens) FindByUserID(ctx context.Context, userID int64) (*model.RefreshToken, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.tokens[userID]
	if !ok {
		return nil, repository.ErrRefreshTokenNotFound
	}
	return &t, nil
}

func (r *memTokens) FindByUserIDForUpdate(ctx context.Context, userID int64) (*model.RefreshToken, error) {
	return r.FindByUserID(ctx, userID)
}

func (r *memTokens) Upsert(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failUpsert != nil {
		return r.db.failUpsert
	}
	t, ok := r.db.tokens[userID]
	if !ok {
		t = model.RefreshToken{ID: userID, UserID: userID}
	}
	t.TokenHash = tokenHash
	t.ExpiresAt = expiresAt
	r.db.tokens[userID] = t
	return nil
}

func (r *memTokens) DeleteByUserID(ctx context.Context, userID int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.tokens, userID)
	return nil
}

var (
	_ repository.UserRepository         = (*memUsers)(nil)
	_ repository.RefreshTokenRepository = (*memTokens)(nil)
	_ repository.TransactionManager     = (*memDB)(nil)
)

// =====================
// ProviderClient モック
// =====================

type MockProviderClient struct {
	mock.Mock
}

func (m *MockProviderClient) Exchange(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

func (m *MockProviderClient) FetchUserInfo(ctx context.Context, accessToken string) (*kakao.UserInfo, error) {
	args := m.Called(ctx, accessToken)
	info, _ := args.Get(0).(*kakao.UserInfo)
	return info, args.Error(1)
}
