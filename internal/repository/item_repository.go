package repository

import (
	"context"
	"errors"

	"devmarket/internal/domain/model"
)

var ErrItemNotFound = errors.New("item not found")

// 読み取り専用。IsNewがnilなら全件
type ItemRepository interface {
	FindAll(ctx context.Context, isNew *bool) ([]model.Item, error)
	FindByID(ctx context.Context, id int64) (*model.Item, error)
}
