package model

import "time"

type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// ソーシャルログインのユーザー。provider_idがユーザー名の代わり
type User struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProviderID string    `gorm:"column:provider_id;type:varchar(100);uniqueIndex;not null" json:"providerId"`
	Nickname   string    `gorm:"type:varchar(100);not null" json:"nickname"`
	Email      *string   `gorm:"type:varchar(255)" json:"email"`
	ProfileURL *string   `gorm:"column:profile_url;type:text" json:"profileUrl"`
	Role       Role      `gorm:"type:varchar(20);not null;default:'ROLE_USER'" json:"role"`
	Address    Address   `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// 権限一覧（今はroleひとつ）
func (u *User) Authorities() []string {
	if u.Role == "" {
		return []string{string(RoleUser)}
	}
	return []string{string(u.Role)}
}
