package token

import (
	"errors"
	"fmt"
)

var (
	// シークレットが短い
	ErrConfiguration = errors.New("token: secret too short for HS256")
	// 署名不一致・改ざん
	ErrInvalidSignature = errors.New("token: invalid signature")
	// 形式不正・subjectなし
	ErrMalformed = errors.New("token: malformed")
	// HS256以外
	ErrUnsupported = errors.New("token: unsupported algorithm")
	// 期限切れ（再発行で回復できる）
	ErrExpired = errors.New("token: expired")
)

// 期限切れでも署名は正しいので、claimsは取り出せる
type ExpiredError struct {
	Claims *Claims
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("%s (sub=%s)", ErrExpired.Error(), e.Claims.Subject)
}

func (e *ExpiredError) Is(target error) bool {
	return target == ErrExpired
}
