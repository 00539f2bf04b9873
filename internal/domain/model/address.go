package model

// 配送先住所（usersに埋め込み）
type Address struct {
	//郵便番号
	Zipcode string `gorm:"type:varchar(20);not null;default:''" json:"zipcode"`

	//住所
	Address string `gorm:"type:varchar(255);not null;default:''" json:"address"`

	//建物名など
	AddressDetail string `gorm:"column:detail;type:varchar(255);not null;default:''" json:"addressDetail"`
}

// 初回ログイン時は空
func DefaultAddress() Address {
	return Address{}
}

func (a Address) IsEmpty() bool {
	return a.Zipcode == "" && a.Address == "" && a.AddressDetail == ""
}
