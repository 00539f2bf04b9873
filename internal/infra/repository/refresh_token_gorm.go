package repository

import (
	"context"
	"errors"
	"time"

	"devmarket/internal/domain/model"
	repo "devmarket/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type refreshTokenGormRepository struct {
	db *gorm.DB //DB接続（GORM）
}

// GORM実装
func NewRefreshTokenRepository(db *gorm.DB) repo.RefreshTokenRepository {
	return &refreshTokenGormRepository{db: db}
}

// user_idで1件検索します。
func (r *refreshTokenGormRepository) FindByUserID(ctx context.Context, userID int64) (*model.RefreshToken, error) {
	return r.findByUserID(r.db.WithContext(ctx), userID)
}

// SELECT ... FOR UPDATE。Tx内で呼ぶこと
func (r *refreshTokenGormRepository) FindByUserIDForUpdate(ctx context.Context, userID int64) (*model.RefreshToken, error) {
	return r.findByUserID(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), userID)
}

func (r *refreshTokenGormRepository) findByUserID(tx *gorm.DB, userID int64) (*model.RefreshToken, error) {
	var token model.RefreshToken

	err := tx.Where("user_id = ?", userID).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrRefreshTokenNotFound
		}
		return nil, err
	}

	return &token, nil
}

// user_idが衝突したらtoken_hashとexpires_atを上書き（行は同じまま）
func (r *refreshTokenGormRepository) Upsert(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error {
	token := model.RefreshToken{
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"token_hash", "expires_at", "updated_at"}),
		}).
		Create(&token).Error
}

// 指定ユーザーのリフレッシュトークンを削除します。無くてもOK
func (r *refreshTokenGormRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.RefreshToken{}).Error; err != nil {
		return err
	}
	return nil
}
