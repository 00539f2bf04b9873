package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"devmarket/internal/domain/model"
	"devmarket/internal/logger"
	"devmarket/internal/middleware"
	"devmarket/internal/token"
	auth "devmarket/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// =====================
// Mocks
// =====================

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Login(ctx context.Context, in auth.LoginInput) (*auth.TokenPair, error) {
	args := m.Called(ctx, in)
	p, _ := args.Get(0).(*auth.TokenPair)
	return p, args.Error(1)
}

func (m *MockAuthService) LoginWithAuthorizationCode(ctx context.Context, code string) (*auth.TokenPair, error) {
	args := m.Called(ctx, code)
	p, _ := args.Get(0).(*auth.TokenPair)
	return p, args.Error(1)
}

func (m *MockAuthService) Rotate(ctx context.Context, accessRaw string, refreshRaw string) (*auth.TokenPair, error) {
	args := m.Called(ctx, accessRaw, refreshRaw)
	p, _ := args.Get(0).(*auth.TokenPair)
	return p, args.Error(1)
}

func (m *MockAuthService) Revoke(ctx context.Context, accessRaw string) error {
	return m.Called(ctx, accessRaw).Error(0)
}

func (m *MockAuthService) ForceLogout(ctx context.Context, providerID string) error {
	return m.Called(ctx, providerID).Error(0)
}

type ItemRepoMock struct{ mock.Mock }

func (m *ItemRepoMock) FindAll(ctx context.Context, isNew *bool) ([]model.Item, error) {
	args := m.Called(ctx, isNew)
	items, _ := args.Get(0).([]model.Item)
	return items, args.Error(1)
}

func (m *ItemRepoMock) FindByID(ctx context.Context, id int64) (*model.Item, error) {
	args := m.Called(ctx, id)
	it, _ := args.Get(0).(*model.Item)
	return it, args.Error(1)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	panic("not used in handler tests")
}

func (m *UserRepoMock) FindByProviderID(ctx context.Context, providerID string) (*model.User, error) {
	args := m.Called(ctx, providerID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	panic("not used in handler tests")
}

// =====================
// helper
// =====================

func nopLogger() logger.Logger {
	return logger.NewWithWriter("test", io.Discard)
}

func newCodec(t *testing.T) *token.Codec {
	t.Helper()
	c, err := token.NewCodec(testSecret)
	require.NoError(t, err)
	return c
}

// 本番と同じ順で認証ミドルウェアを積む
func newTestEcho(t *testing.T, codec *token.Codec) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.Use(middleware.AnonymousIdentity())
	e.Use(middleware.AuthJWT(codec, ReissuePaths, nopLogger()))
	return e
}

func bearer(t *testing.T, codec *token.Codec, sub string, auths ...string) string {
	t.Helper()
	raw, _, err := codec.Issue(sub, token.KindAccess, auths, time.Minute)
	require.NoError(t, err)
	return "Bearer " + raw
}

func doJSON(e *echo.Echo, method, path, body, authz string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if authz != "" {
		req.Header.Set(echo.HeaderAuthorization, authz)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// resultはjson.RawMessageで受けて必要な時だけ読む
type envelope struct {
	IsSuccess bool            `json:"isSuccess"`
	Code      string          `json:"code"`
	Message   string          `json:"message"`
	Result    json.RawMessage `json:"result"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}
