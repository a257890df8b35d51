package usecase

import (
	"context"
	"net/http"
	"testing"

	"kinbech/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModeration(t *testing.T) (*ModerationUsecase, *memTx, *memAudit) {
	t.Helper()
	tx := newMemTx()
	audit := &memAudit{}
	uc := NewModerationUsecase(tx.products, tx.users, audit)
	return uc, tx, audit
}

// Test: 承認待ち一覧はvalidated=falseだけ
func TestListPending(t *testing.T) {
	uc, tx, _ := newModeration(t)

	seedProduct(t, tx, model.Product{Name: "pending", Price: "10", Seller: "s1", Validated: false})
	seedProduct(t, tx, model.Product{Name: "live", Price: "10", Seller: "s1", Validated: true})

	out, err := uc.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "pending", out[0].Name)
}

// Test: validateは冪等で、監査ログが残る
func TestValidateIdempotent(t *testing.T) {
	uc, tx, audit := newModeration(t)

	p := seedProduct(t, tx, model.Product{Name: "x", Price: "10", Seller: "s1", Validated: false})

	require.NoError(t, uc.Validate(context.Background(), "boss", p.ID))
	got, _ := tx.products.FindByID(context.Background(), p.ID)
	assert.True(t, got.Validated)

	//2回目も成功のまま
	require.NoError(t, uc.Validate(context.Background(), "boss", p.ID))
	got, _ = tx.products.FindByID(context.Background(), p.ID)
	assert.True(t, got.Validated)

	require.Len(t, audit.logs, 2)
	assert.Equal(t, model.AuditActionValidateProduct, audit.logs[0].Action)
	assert.Equal(t, "boss", audit.logs[0].Actor)
}

// Test: 存在しない商品のvalidateは404
func TestValidateMissingProduct(t *testing.T) {
	uc, _, audit := newModeration(t)

	err := uc.Validate(context.Background(), "boss", 999)
	he, isHTTP := AsHTTPError(err)
	require.True(t, isHTTP)
	assert.Equal(t, http.StatusNotFound, he.Status)
	assert.Empty(t, audit.logs)
}

// Test: 管理者削除は所有者に関係なく消える
func TestAdminDelete(t *testing.T) {
	uc, tx, audit := newModeration(t)

	p := seedProduct(t, tx, model.Product{Name: "x", Price: "10", Seller: "someone", Validated: true})

	require.NoError(t, uc.Delete(context.Background(), "boss", p.ID))

	_, err := tx.products.FindByID(context.Background(), p.ID)
	assert.Error(t, err)

	require.Len(t, audit.logs, 1)
	assert.Equal(t, model.AuditActionDeleteProduct, audit.logs[0].Action)
	assert.Equal(t, "x", audit.logs[0].ProductName)
}

// Test: 出品者ディレクトリと商品付き詳細
func TestSellerDirectory(t *testing.T) {
	uc, tx, _ := newModeration(t)

	require.NoError(t, tx.users.Create(context.Background(), &model.User{
		Username: "alice",
		Roles:    model.JoinRoles([]model.Role{model.RoleBuyer, model.RoleSeller}),
		ShopName: "Alice Sweets",
		Phone:    "9800000001",
	}))
	require.NoError(t, tx.users.Create(context.Background(), &model.User{
		Username: "bob",
		Roles:    model.JoinRoles([]model.Role{model.RoleBuyer}),
	}))

	seedProduct(t, tx, model.Product{Name: "cake", Price: "10", Seller: "alice", Validated: true})

	sellers, err := uc.ListSellers(context.Background())
	require.NoError(t, err)
	require.Len(t, sellers, 1)
	assert.Equal(t, "alice", sellers[0].Username)
	assert.Equal(t, "Alice Sweets", sellers[0].ShopName)

	details, err := uc.ListSellerDetails(context.Background())
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.Len(t, details[0].Products, 1)
	assert.Equal(t, "cake", details[0].Products[0].Name)
}
