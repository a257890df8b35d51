package repository

import (
	"context"
	"errors"

	"kinbech/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// ユーザーの保存・取得を約束
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	//usernameからユーザーを1件取得する。見つからなければ (nil, nil)。
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	//shop_nameからユーザーを1件取得する。見つからなければ (nil, nil)。
	FindByShopName(ctx context.Context, shopName string) (*model.User, error)
	//phoneからユーザーを1件取得する。見つからなければ (nil, nil)。
	FindByPhone(ctx context.Context, phone string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	//seller役割を持つユーザー一覧
	ListSellers(ctx context.Context) ([]model.User, error)
}
