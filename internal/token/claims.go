package token

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// 権限がない時のデフォルト
const DefaultAuthority = "ROLE_USER"

// Claimsはaccess/refresh共通のペイロード
type Claims struct {
	Kind        Kind   `json:"typ"`
	Authorities string `json:"authorities,omitempty"` // accessのみ。カンマ区切り
	jwt.RegisteredClaims
}

// AuthorityListは空ならROLE_USERひとつ
func (c *Claims) AuthorityList() []string {
	var out []string
	for _, a := range strings.Split(c.Authorities, ",") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		return []string{DefaultAuthority}
	}
	return out
}
