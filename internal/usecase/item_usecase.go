package usecase

import (
	"context"
	"errors"

	"devmarket/internal/domain/model"
	repo "devmarket/internal/repository"
)

var (
	ErrItemNotFound  = errors.New("item not found")
	ErrInvalidItemID = errors.New("invalid item id")
)

// 商品のレスポンス
type ItemDTO struct {
	ItemID    int64   `json:"itemId"`
	ItemName  string  `json:"itemName"`
	Price     int64   `json:"price"`
	ImagePath *string `json:"imagePath"`
	Brand     string  `json:"brand"`
	IsNew     bool    `json:"isNew"`
}

func toItemDTO(it model.Item) ItemDTO {
	return ItemDTO{
		ItemID:    it.ID,
		ItemName:  it.Name,
		Price:     it.Price,
		ImagePath: it.ImagePath,
		Brand:     it.Brand,
		IsNew:     it.IsNew,
	}
}

type ItemUsecase struct {
	items repo.ItemRepository
}

func NewItemUsecase(items repo.ItemRepository) *ItemUsecase {
	return &ItemUsecase{items: items}
}

// 全商品。isNewで新着だけ/既存だけに絞れる。0件でも空スライス
func (u *ItemUsecase) GetAllItems(ctx context.Context, isNew *bool) ([]ItemDTO, error) {
	items, err := u.items.FindAll(ctx, isNew)
	if err != nil {
		return nil, err
	}

	out := make([]ItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, toItemDTO(it))
	}
	return out, nil
}

func (u *ItemUsecase) GetItemByID(ctx context.Context, id int64) (*ItemDTO, error) {
	if id <= 0 {
		return nil, ErrInvalidItemID
	}

	it, err := u.items.FindByID(ctx, id)
	if errors.Is(err, repo.ErrItemNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}

	dto := toItemDTO(*it)
	return &dto, nil
}
