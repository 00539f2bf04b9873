package repository

import (
	"context"
	"errors"

	"devmarket/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// 同じprovider_idが先に作られていた
var ErrUserAlreadyExists = errors.New("user already exists")

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成。provider_idが既にあればErrUserAlreadyExists
	Create(ctx context.Context, user *model.User) error
	// provider_idからユーザーを1件取得する。
	FindByProviderID(ctx context.Context, providerID string) (*model.User, error)
	// プロフィール更新（nickname/email/profile）
	Update(ctx context.Context, user *model.User) error
}
