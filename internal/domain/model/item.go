package model

import "time"

// 公開カタログの商品。is_newは「新着」表示用
type Item struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Price     int64     `gorm:"not null"`
	ImagePath *string   `gorm:"column:image_path;type:text"`
	Brand     string    `gorm:"type:varchar(100);not null"`
	IsNew     bool      `gorm:"column:is_new;not null;default:false"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"`
}
