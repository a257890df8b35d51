package repository

import (
	"context"

	"kinbech/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	//買い手のusernameで新しい順
	ListByBuyer(ctx context.Context, buyer string) ([]model.Order, error)
	//明細にsellerの商品を含む注文（売り手向け一覧）
	ListBySeller(ctx context.Context, seller string) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}
