package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kinbech/internal/domain/model"
	repo "kinbech/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// アップロードされた画像を預けてURLをもらう約束
type ImageStore interface {
	Save(ctx context.Context, filename string, file io.Reader) (string, error)
}

type ProductUsecase struct {
	productRepo repo.ProductRepository
	images      ImageStore
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository, images ImageStore) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		images:      images,
	}
}

// POST /products の入力。画像はmultipartから渡す。
type CreateProductInput struct {
	Name            string
	Description     string
	Price           string
	DeliveryRangeKM int
	ExpiryDatetime  string
	ShopName        string
	Images          []ImageUpload
}

type ImageUpload struct {
	Filename string
	File     io.Reader
}

type ProductOutput struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Price           string   `json:"price"`
	Seller          string   `json:"seller"`
	ShopName        string   `json:"shop_name"`
	ImageURLs       []string `json:"image_urls"`
	DeliveryRangeKM int      `json:"delivery_range_km"`
	ExpiryDatetime  string   `json:"expiry_datetime"`
	Likes           int64    `json:"likes"`
	Validated       bool     `json:"validated"`

	CreatedAt time.Time `json:"created_at"`
}

// Createは商品を未承認状態で登録する。画像は先にImageStoreへ上げる。
func (u *ProductUsecase) Create(ctx context.Context, seller string, in CreateProductInput) (ProductOutput, error) {
	if strings.TrimSpace(in.Name) == "" {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if strings.TrimSpace(in.Price) == "" {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "price is required")
	}
	if in.DeliveryRangeKM < 0 {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "invalid delivery_range_km")
	}

	urls := make([]string, 0, len(in.Images))
	for _, img := range in.Images {
		url, err := u.images.Save(ctx, img.Filename, img.File)
		if err != nil {
			return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "image upload failed")
		}
		urls = append(urls, url)
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		Name:            strings.TrimSpace(in.Name),
		Description:     in.Description,
		Price:           strings.TrimSpace(in.Price),
		Seller:          seller,
		ShopName:        strings.TrimSpace(in.ShopName),
		Validated:       false,
		ImageURL:        model.JoinImageURLs(urls),
		DeliveryRangeKM: in.DeliveryRangeKM,
		ExpiryDatetime:  strings.TrimSpace(in.ExpiryDatetime),
	})
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toProductOutput(p), nil
}

// 買い手向け一覧。承認済みのみ。
func (u *ProductUsecase) ListValidated(ctx context.Context) ([]ProductOutput, error) {
	products, err := u.productRepo.ListValidated(ctx)
	if err != nil {
		return []ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toProductOutputs(products), nil
}

// 自分の出品一覧。承認状態は問わない。
func (u *ProductUsecase) ListMine(ctx context.Context, seller string) ([]ProductOutput, error) {
	products, err := u.productRepo.ListBySeller(ctx, seller)
	if err != nil {
		return []ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toProductOutputs(products), nil
}

// 自分の出品の詳細。他人の商品は「存在しない扱い」にする。
func (u *ProductUsecase) GetOwned(ctx context.Context, seller string, id int64) (ProductOutput, error) {
	p, err := u.findOwned(ctx, seller, id)
	if err != nil {
		return ProductOutput{}, err
	}
	return toProductOutput(p), nil
}

type UpdateProductInput struct {
	Name            *string
	Description     *string
	Price           *string
	DeliveryRangeKM *int
	ExpiryDatetime  *string
}

// 指定されたフィールドだけを上書きする部分更新
func (u *ProductUsecase) UpdateOwned(ctx context.Context, seller string, id int64, in UpdateProductInput) error {
	p, err := u.findOwned(ctx, seller, id)
	if err != nil {
		return err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return NewHTTPError(http.StatusBadRequest, "name is required")
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = strings.TrimSpace(*in.Price)
	}
	if in.DeliveryRangeKM != nil {
		if *in.DeliveryRangeKM < 0 {
			return NewHTTPError(http.StatusBadRequest, "invalid delivery_range_km")
		}
		p.DeliveryRangeKM = *in.DeliveryRangeKM
	}
	if in.ExpiryDatetime != nil {
		p.ExpiryDatetime = strings.TrimSpace(*in.ExpiryDatetime)
	}

	if err := u.productRepo.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *ProductUsecase) DeleteOwned(ctx context.Context, seller string, id int64) error {
	if _, err := u.findOwned(ctx, seller, id); err != nil {
		return err
	}
	if err := u.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// Likeはいいねカウンタを+1する。承認前の商品には付けられない。
func (u *ProductUsecase) Like(ctx context.Context, id int64) error {
	p, err := u.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.Validated {
		return NewHTTPError(http.StatusForbidden, "product not validated")
	}

	if err := u.productRepo.IncrementLikes(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *ProductUsecase) findOwned(ctx context.Context, seller string, id int64) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if p.Seller != seller {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	return p, nil
}

func toProductOutput(p model.Product) ProductOutput {
	return ProductOutput{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		Seller:          p.Seller,
		ShopName:        p.ShopName,
		ImageURLs:       p.ImageURLs(),
		DeliveryRangeKM: p.DeliveryRangeKM,
		ExpiryDatetime:  p.ExpiryDatetime,
		Likes:           p.Likes,
		Validated:       p.Validated,
		CreatedAt:       p.CreatedAt,
	}
}

func toProductOutputs(products []model.Product) []ProductOutput {
	outs := make([]ProductOutput, 0, len(products))
	for _, p := range products {
		outs = append(outs, toProductOutput(p))
	}
	return outs
}
