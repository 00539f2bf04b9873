package natsverify

import (
	"encoding/json"
	"io"
	"testing"
	"time"

	"devmarket/internal/logger"
	"devmarket/internal/token"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newHandler(t *testing.T, now time.Time) (*VerifyHandler, *token.Codec, *verifyResponse) {
	t.Helper()
	codec, err := token.NewCodec(testSecret, token.WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	h := NewVerifyHandler(codec, logger.NewWithWriter("test", io.Discard))
	captured := &verifyResponse{}
	h.respondFn = func(_ *nats.Msg, resp verifyResponse) { *captured = resp }
	return h, codec, captured
}

func send(h *VerifyHandler, tok string) {
	payload, _ := json.Marshal(verifyRequest{Token: tok})
	h.handle(&nats.Msg{Data: payload})
}

func TestVerifyHandler_Success(t *testing.T) {
	h, codec, got := newHandler(t, time.Now())

	raw, _, err := codec.Issue("kakao-123", token.KindAccess, []string{"ROLE_USER"}, time.Minute)
	require.NoError(t, err)

	send(h, raw)
	assert.True(t, got.OK)
	assert.Equal(t, "kakao-123", got.Subject)
	assert.Equal(t, []string{"ROLE_USER"}, got.Authorities)
	assert.Empty(t, got.Error)
}

func TestVerifyHandler_Expired(t *testing.T) {
	issuedAt := time.Now().Add(-time.Hour)
	_, old, _ := newHandler(t, issuedAt)
	raw, _, err := old.Issue("kakao-123", token.KindAccess, nil, time.Minute)
	require.NoError(t, err)

	h, _, got := newHandler(t, time.Now())
	send(h, raw)
	assert.False(t, got.OK)
	assert.Equal(t, "expired", got.Error)
}

func TestVerifyHandler_Invalid(t *testing.T) {
	h, codec, got := newHandler(t, time.Now())

	send(h, "garbage")
	assert.Equal(t, "invalid_token", got.Error)

	// refreshは検証対象外
	raw, _, err := codec.Issue("kakao-123", token.KindRefresh, nil, time.Hour)
	require.NoError(t, err)
	send(h, raw)
	assert.False(t, got.OK)
	assert.Equal(t, "invalid_token", got.Error)
}

func TestVerifyHandler_InvalidPayload(t *testing.T) {
	h, _, got := newHandler(t, time.Now())

	h.handle(&nats.Msg{Data: []byte("{not json")})
	assert.Equal(t, "invalid_payload", got.Error)

	h.handle(&nats.Msg{Data: []byte(`{}`)})
	assert.Equal(t, "invalid_payload", got.Error)
}

func TestSubscribe_NilConn(t *testing.T) {
	h, _, _ := newHandler(t, time.Now())
	_, err := h.Subscribe(nil, "auth.verify", "devmarket")
	assert.Error(t, err)
}
