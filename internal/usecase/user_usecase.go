package usecase

import (
	"context"
	"errors"
	"strings"

	"devmarket/internal/domain/model"
	repo "devmarket/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

type UserUsecase struct {
	users repo.UserRepository
}

func NewUserUsecase(users repo.UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

// /users/me のレスポンス
type UserInfoDTO struct {
	ProviderID string        `json:"providerId"`
	Nickname   string        `json:"nickname"`
	Email      *string       `json:"email"`
	ProfileURL *string       `json:"profileUrl"`
	Role       string        `json:"role"`
	Address    model.Address `json:"address"`
}

// ログイン中ユーザーの情報
func (u *UserUsecase) GetMyInfo(ctx context.Context, providerID string) (UserInfoDTO, error) {
	if strings.TrimSpace(providerID) == "" {
		return UserInfoDTO{}, ErrUserNotFound
	}

	user, err := u.users.FindByProviderID(ctx, providerID)
	if errors.Is(err, repo.ErrUserNotFound) {
		return UserInfoDTO{}, ErrUserNotFound
	}
	if err != nil {
		return UserInfoDTO{}, err
	}

	return UserInfoDTO{
		ProviderID: user.ProviderID,
		Nickname:   user.Nickname,
		Email:      user.Email,
		ProfileURL: user.ProfileURL,
		Role:       string(user.Role),
		Address:    user.Address,
	}, nil
}
