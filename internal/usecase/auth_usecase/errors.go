package auth

import (
	"errors"

	"devmarket/internal/token"
)

var (
	//400 入力不足
	ErrValidation = errors.New("validation error")
	// 期限切れ（accessなら再発行）
	ErrTokenExpired = token.ErrExpired
	// 再発行に出したrefreshが期限切れ。再ログインが必要
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	// 署名不正・形式不正・持ち主不一致
	ErrTokenInvalid = errors.New("token invalid")
	// 保存済みのrefreshと一致しない/無い
	ErrWrongRefreshToken = errors.New("wrong refresh token")
	ErrUserNotFound      = errors.New("user not found")
	// Kakao呼び出し失敗
	ErrUpstreamAuthFailure = errors.New("upstream auth failure")
	// コールバックでKakaoの応答にidが無いなど
	ErrOAuth2ProcessFailed = errors.New("oauth2 process failed")
	//500
	ErrInternal = errors.New("internal error")
)

var domainErrors = []error{
	ErrValidation,
	ErrTokenExpired,
	ErrRefreshTokenExpired,
	ErrTokenInvalid,
	ErrWrongRefreshToken,
	ErrUserNotFound,
	ErrUpstreamAuthFailure,
	ErrOAuth2ProcessFailed,
	ErrInternal,
}

// ドメインエラーはそのまま、それ以外はErrInternalで包む
func normalize(err error) error {
	if err == nil {
		return nil
	}
	for _, d := range domainErrors {
		if errors.Is(err, d) {
			return err
		}
	}
	return errors.Join(ErrInternal, err)
}
