package model

import "time"

type AuditAction string

const (
	//商品を承認した操作。
	AuditActionValidateProduct AuditAction = "VALIDATE_PRODUCT"
	//商品を削除した操作。
	AuditActionDeleteProduct AuditAction = "DELETE_PRODUCT"
)

// 監査ログ（管理者操作ログ）。
// 「誰が」「どの商品に」「何をしたか」を残す。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作した管理者のusername
	Actor string `gorm:"type:varchar(255);not null;index" json:"actor"`

	Action    AuditAction `gorm:"type:varchar(50);not null;index" json:"action"`
	ProductID int64       `gorm:"not null;index" json:"product_id"`

	//対象商品の名前（削除後も追えるように残す）
	ProductName string `gorm:"type:varchar(255)" json:"product_name"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
}
