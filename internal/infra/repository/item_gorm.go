package repository

import (
	"context"
	"errors"

	"devmarket/internal/domain/model"
	domainrepo "devmarket/internal/repository"

	"gorm.io/gorm"
)

type itemGormRepository struct {
	db *gorm.DB
}

func NewItemGormRepository(db *gorm.DB) domainrepo.ItemRepository {
	return &itemGormRepository{db: db}
}

// 登録順。isNewを渡すと新着/既存で絞る
func (r *itemGormRepository) FindAll(ctx context.Context, isNew *bool) ([]model.Item, error) {
	q := r.db.WithContext(ctx).Order("id")
	if isNew != nil {
		q = q.Where("is_new = ?", *isNew)
	}

	items := []model.Item{}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemGormRepository) FindByID(ctx context.Context, id int64) (*model.Item, error) {
	var it model.Item
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&it).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainrepo.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}
