package repository

import (
	"context"

	repo "kinbech/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders      repo.OrderRepository
	orderItems  repo.OrderItemRepository
	products    repo.ProductRepository
	users       repo.UserRepository
	resetTokens repo.ResetTokenRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository           { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository   { return r.orderItems }
func (r *txReposGorm) Products() repo.ProductRepository       { return r.products }
func (r *txReposGorm) Users() repo.UserRepository             { return r.users }
func (r *txReposGorm) ResetTokens() repo.ResetTokenRepository { return r.resetTokens }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:      NewOrderGormRepository(tx),
			orderItems:  NewOrderItemGormRepository(tx),
			products:    NewProductGormRepository(tx),
			users:       NewUserGormRepository(tx),
			resetTokens: NewResetTokenGormRepository(tx),
		}
		return fn(r)
	})
}
