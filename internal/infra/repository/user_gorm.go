package repository

import (
	"context"
	"errors"

	"devmarket/internal/domain/model"
	domainrepo "devmarket/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userGormRepository struct {
	db *gorm.DB
}

// DI
// main.goでこれをnewしてusecaseに注入します。
func NewUserGormRepository(db *gorm.DB) domainrepo.UserRepository {
	return &userGormRepository{db: db}
}

// Create はユーザーを新規作成。同時ログインで先を越されたら0件になる
func (r *userGormRepository) Create(ctx context.Context, user *model.User) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "provider_id"}},
			DoNothing: true,
		}).
		Create(user)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrUserAlreadyExists
	}
	return nil
}

// provider_idでユーザーを1件取得
func (r *userGormRepository) FindByProviderID(ctx context.Context, providerID string) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainrepo.ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

// プロフィール項目だけ更新。
func (r *userGormRepository) Update(ctx context.Context, user *model.User) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"nickname":    user.Nickname,
			"email":       user.Email,
			"profile_url": user.ProfileURL,
		})
	if res.Error != nil {
		return res.Error
	}

	// 0件更新は「対象がない」
	if res.RowsAffected == 0 {
		return domainrepo.ErrUserNotFound
	}
	return nil
}
