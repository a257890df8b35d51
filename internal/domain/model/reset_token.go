package model

import "time"

// パスワード再設定トークン（1回使い切り）。
// 使用時に削除し、期限切れはスイーパーが回収する。
type ResetToken struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(255);not null;index" json:"username"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
