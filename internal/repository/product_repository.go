package repository

import (
	"context"

	"kinbech/internal/domain/model"
)

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (model.Product, error)
	//承認済み商品のみ（買い手向け一覧）
	ListValidated(ctx context.Context) ([]model.Product, error)
	//未承認商品のみ（管理者の承認待ち一覧）
	ListPending(ctx context.Context) ([]model.Product, error)
	//出品者のusernameで絞った一覧
	ListBySeller(ctx context.Context, seller string) ([]model.Product, error)
	//全商品（スイーパーが期限を見るため）
	ListAll(ctx context.Context) ([]model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error

	SetValidated(ctx context.Context, id int64, validated bool) error
	IncrementLikes(ctx context.Context, id int64) error
}
