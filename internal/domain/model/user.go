package model

import (
	"strings"
	"time"
)

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// DBにはカンマ区切りで保存するが、判定は必ずこの型を通す
type RoleSet string

// JoinRoles は役割リストをDB保存用の文字列にする
func JoinRoles(roles []Role) RoleSet {
	parts := make([]string, 0, len(roles))
	for _, r := range roles {
		parts = append(parts, string(r))
	}
	return RoleSet(strings.Join(parts, ","))
}

// Has はroleを持っているかの判定
func (s RoleSet) Has(role Role) bool {
	for _, part := range strings.Split(string(s), ",") {
		if Role(strings.TrimSpace(part)) == role {
			return true
		}
	}
	return false
}

// List は保存形式から役割リストへ戻す
func (s RoleSet) List() []Role {
	roles := make([]Role, 0, 3)
	for _, part := range strings.Split(string(s), ",") {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}
		roles = append(roles, Role(p))
	}
	return roles
}

// ユーザー（買い手・売り手・管理者を1テーブルに統一）
// 出店プロフィール（shop_name/address/phone）もここに持つ
type User struct {
	ID           int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	FullName     string  `gorm:"type:varchar(255)" json:"full_name"`
	PasswordHash string  `gorm:"column:password_hash;not null" json:"-"`
	Roles        RoleSet `gorm:"type:varchar(100);not null;default:'buyer'" json:"roles"`

	//出店プロフィール（sellerのみ使う）
	ShopName string `gorm:"type:varchar(255)" json:"shop_name"`
	Address  string `gorm:"type:varchar(255)" json:"address"`
	Phone    string `gorm:"type:varchar(30)" json:"phone"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
