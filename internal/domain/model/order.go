package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusFulfilled OrderStatus = "Fulfilled"
	OrderStatusCompleted OrderStatus = "Completed"
)

type Order struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Buyer   string `gorm:"type:varchar(255);not null;index" json:"buyer"`
	Address string `gorm:"type:varchar(255);not null" json:"address"`
	Phone   string `gorm:"type:varchar(30)" json:"phone"`

	Status OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	//合計はチェックアウト時に確定する（サービス手数料込み）
	Total float64 `gorm:"not null" json:"total"`

	//特記事項と見本画像（任意）
	Note           string `gorm:"type:text" json:"note"`
	SampleImageURL string `gorm:"type:text" json:"sample_image_url"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
