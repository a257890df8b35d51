package model

import (
	"strconv"
	"strings"
	"time"
)

// 商品。価格は「100-150」のような範囲表記の出品があるため文字列のまま保存し、
// 金額計算はPriceValueで下限を取る。
type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Price       string `gorm:"type:varchar(50);not null" json:"price"`

	//出品者のusernameと、出品時点のショップ名
	Seller   string `gorm:"type:varchar(255);not null;index" json:"seller"`
	ShopName string `gorm:"type:varchar(255)" json:"shop_name"`

	//管理者が承認するまで買い手には見えない
	Validated bool `gorm:"not null;default:false;index" json:"validated"`

	//画像URLはカンマ区切りで保存
	ImageURL string `gorm:"type:text" json:"-"`

	DeliveryRangeKM int    `gorm:"not null;default:0" json:"delivery_range_km"`
	ExpiryDatetime  string `gorm:"type:varchar(100)" json:"expiry_datetime"`
	Likes           int64  `gorm:"not null;default:0" json:"likes"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// ImageURLs はカンマ区切りの保存値をリストへ戻す
func (p Product) ImageURLs() []string {
	if strings.TrimSpace(p.ImageURL) == "" {
		return []string{}
	}
	urls := strings.Split(p.ImageURL, ",")
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u != "" {
			out = append(out, u)
		}
	}
	return out
}

// JoinImageURLs はアップロード結果をDB保存用の文字列にする
func JoinImageURLs(urls []string) string {
	return strings.Join(urls, ",")
}

// PriceValue は価格文字列を金額に変換する。
// "75" → 75、"100-150" → 100（下限）、解釈できないものは 0。
func PriceValue(price string) float64 {
	s := strings.TrimSpace(price)
	if s == "" {
		return 0
	}
	if i := strings.Index(s, "-"); i > 0 {
		s = strings.TrimSpace(s[:i])
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// 期限のパースで受け付ける形式
var expiryLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// ParseExpiry は期限文字列をtime.Timeへ変換する。
// 解釈できない場合は ok=false（エラーにはしない）。
func ParseExpiry(s string) (time.Time, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
