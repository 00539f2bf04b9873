package token

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// HS256の鍵長
const MinSecretLength = 32

// Codecはトークンの発行と検証
type Codec struct {
	secret []byte
	now    func() time.Time
	newID  func() string
}

type Option func(*Codec)

// テスト用に時刻を差し替える
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

func NewCodec(secret string, opts ...Option) (*Codec, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrConfiguration, len(secret), MinSecretLength)
	}
	c := &Codec{
		secret: []byte(secret),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Issueは署名済みトークンと期限を返す。refreshにはauthoritiesを載せない
func (c *Codec) Issue(subject string, kind Kind, authorities []string, ttl time.Duration) (string, time.Time, error) {
	if strings.TrimSpace(subject) == "" {
		return "", time.Time{}, fmt.Errorf("%w: empty subject", ErrMalformed)
	}

	now := c.now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        c.newID(), // 同じ秒に出しても別の値になる
		},
	}
	if kind == KindAccess {
		claims.Authorities = strings.Join(authorities, ",")
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Decodeは通常の検証。期限切れは*ExpiredError
func (c *Codec) Decode(raw string) (*Claims, error) {
	claims, err := c.parse(raw, false)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// DecodeForRotationOnlyは期限切れを許す。再発行でsubjectを取り戻す時だけ使う
func (c *Codec) DecodeForRotationOnly(raw string) (*Claims, error) {
	return c.parse(raw, true)
}

func (c *Codec) parse(raw string, allowExpired bool) (*Claims, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments", ErrMalformed)
	}
	// 署名部が壊れている場合は改ざん扱い。末尾の余りビットも見る
	if _, err := base64.RawURLEncoding.Strict().DecodeString(parts[2]); err != nil {
		return nil, ErrInvalidSignature
	}

	opts := []jwt.ParserOption{jwt.WithTimeFunc(c.now), jwt.WithExpirationRequired(), jwt.WithStrictDecoding()}
	if allowExpired {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	claims := &Claims{}
	_, err := jwt.NewParser(opts...).ParseWithClaims(raw, claims, c.keyFunc)
	if err != nil {
		return nil, classify(err, claims)
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrMalformed)
	}
	return claims, nil
}

func (c *Codec) keyFunc(t *jwt.Token) (interface{}, error) {
	if t.Method != jwt.SigningMethodHS256 {
		return nil, fmt.Errorf("alg %v", t.Header["alg"])
	}
	return c.secret, nil
}

// jwtのエラーを自前の分類に寄せる
func classify(err error, claims *Claims) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		// v5は署名を先に検証するので、ここに来た時点で署名は正しい
		if strings.TrimSpace(claims.Subject) == "" {
			return fmt.Errorf("%w: missing subject", ErrMalformed)
		}
		return &ExpiredError{Claims: claims}
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrUnsupported, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
