package validator

import (
	"fmt"
	"regexp"
	"strings"

	auth "devmarket/internal/usecase/auth_usecase"
)

var (
	// 入力が不正
	ErrInvalidInput = fmt.Errorf("%w: invalid input", auth.ErrValidation)

	// トークンが空
	ErrMissingToken = fmt.Errorf("%w: token is required", auth.ErrValidation)
)

const maxProviderIDLen = 100

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type authValidator struct{}

// Usecaseは interface を依存注入
func NewAuthValidator() auth.Validator {
	return &authValidator{}
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(in auth.LoginInput) error {
	providerID := strings.TrimSpace(in.ProviderID)
	kakaoToken := strings.TrimSpace(in.KakaoAccessToken)

	// どちらか必須
	if providerID == "" && kakaoToken == "" {
		return ErrInvalidInput
	}
	if len(providerID) > maxProviderIDLen {
		return ErrInvalidInput
	}

	// email形式
	if email := strings.TrimSpace(in.Email); email != "" && !emailRe.MatchString(email) {
		return ErrInvalidInput
	}

	return nil
}

// 再発行の入力を検証
func (v *authValidator) ValidateReissue(accessToken string, refreshToken string) error {
	if strings.TrimSpace(accessToken) == "" || strings.TrimSpace(refreshToken) == "" {
		return ErrMissingToken
	}
	return nil
}

// logout 入力を検証
func (v *authValidator) ValidateLogout(accessToken string) error {
	if strings.TrimSpace(accessToken) == "" {
		return ErrMissingToken
	}
	return nil
}

// 強制ログアウトの入力を検証
func (v *authValidator) ValidateForceLogout(providerID string) error {
	providerID = strings.TrimSpace(providerID)
	if providerID == "" || len(providerID) > maxProviderIDLen {
		return ErrInvalidInput
	}
	return nil
}
