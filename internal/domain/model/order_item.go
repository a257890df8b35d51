package model

import "time"

// 注文明細。商品が後から削除されても明細は残すため、
// product_idはNULL許可にしてスナップショットを必ず持つ。
type OrderItem struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64  `gorm:"not null;index" json:"order_id"`
	ProductID *int64 `gorm:"index" json:"product_id"`

	ProductNameSnapshot string `gorm:"type:varchar(255);not null" json:"name"`
	PriceSnapshot       string `gorm:"type:varchar(50);not null" json:"price"`
	ShopNameSnapshot    string `gorm:"type:varchar(255)" json:"shop_name"`

	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
