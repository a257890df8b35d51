package usecase

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"kinbech/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// アップロード内容を覚えるだけのImageStore
type memImages struct {
	saved []string
}

func (m *memImages) Save(ctx context.Context, filename string, file io.Reader) (string, error) {
	m.saved = append(m.saved, filename)
	return fmt.Sprintf("https://img.example/%s", filename), nil
}

func newProductUC(t *testing.T) (*ProductUsecase, *memTx, *memImages) {
	t.Helper()
	tx := newMemTx()
	images := &memImages{}
	return NewProductUsecase(tx.products, images), tx, images
}

// Test: 登録直後は未承認。画像はImageStore経由でURLになる。
func TestCreateProductStartsUnvalidated(t *testing.T) {
	uc, tx, images := newProductUC(t)

	out, err := uc.Create(context.Background(), "alice", CreateProductInput{
		Name:  "cake",
		Price: "100-150",
		Images: []ImageUpload{
			{Filename: "a.jpg", File: strings.NewReader("x")},
			{Filename: "b.jpg", File: strings.NewReader("y")},
		},
	})
	require.NoError(t, err)
	assert.False(t, out.Validated)
	assert.Equal(t, "alice", out.Seller)
	assert.Equal(t, []string{"https://img.example/a.jpg", "https://img.example/b.jpg"}, out.ImageURLs)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, images.saved)

	//買い手向け一覧にはまだ出ない
	list, err := uc.ListValidated(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)

	saved, err := tx.products.FindByID(context.Background(), out.ID)
	require.NoError(t, err)
	assert.False(t, saved.Validated)
}

// Test: 名前と価格は必須
func TestCreateProductValidation(t *testing.T) {
	uc, _, _ := newProductUC(t)

	_, err := uc.Create(context.Background(), "alice", CreateProductInput{Price: "10"})
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	_, err = uc.Create(context.Background(), "alice", CreateProductInput{Name: "x"})
	he, ok = AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

// Test: 他人の商品は見えない・触れない（404）
func TestOwnedProductScoping(t *testing.T) {
	uc, tx, _ := newProductUC(t)

	p := seedProduct(t, tx, model.Product{Name: "cake", Price: "10", Seller: "alice"})

	_, err := uc.GetOwned(context.Background(), "alice", p.ID)
	require.NoError(t, err)

	_, err = uc.GetOwned(context.Background(), "mallory", p.ID)
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)

	err = uc.DeleteOwned(context.Background(), "mallory", p.ID)
	he, ok = AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)

	//本人は消せる
	require.NoError(t, uc.DeleteOwned(context.Background(), "alice", p.ID))
}

// Test: 部分更新。渡したフィールドだけ変わる。
func TestUpdateOwnedPartial(t *testing.T) {
	uc, tx, _ := newProductUC(t)

	p := seedProduct(t, tx, model.Product{Name: "cake", Description: "sweet", Price: "10", Seller: "alice"})

	newPrice := "20-30"
	require.NoError(t, uc.UpdateOwned(context.Background(), "alice", p.ID, UpdateProductInput{
		Price: &newPrice,
	}))

	got, err := tx.products.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "20-30", got.Price)
	assert.Equal(t, "cake", got.Name)
	assert.Equal(t, "sweet", got.Description)
}

// Test: likeは承認済み商品だけ
func TestLikeRequiresValidated(t *testing.T) {
	uc, tx, _ := newProductUC(t)

	pending := seedProduct(t, tx, model.Product{Name: "x", Price: "10", Seller: "alice", Validated: false})
	live := seedProduct(t, tx, model.Product{Name: "y", Price: "10", Seller: "alice", Validated: true})

	err := uc.Like(context.Background(), pending.ID)
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Status)

	require.NoError(t, uc.Like(context.Background(), live.ID))
	require.NoError(t, uc.Like(context.Background(), live.ID))
	got, _ := tx.products.FindByID(context.Background(), live.ID)
	assert.Equal(t, int64(2), got.Likes)

	err = uc.Like(context.Background(), 999)
	he, ok = AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}
