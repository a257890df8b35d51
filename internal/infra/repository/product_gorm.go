package repository

import (
	"context"
	"errors"

	"kinbech/internal/domain/model"
	repo "kinbech/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 承認済みのみ（買い手向け）
func (r *ProductGormRepository) ListValidated(ctx context.Context) ([]model.Product, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("validated = ?", true))
}

// 未承認のみ（管理者の承認待ち）
func (r *ProductGormRepository) ListPending(ctx context.Context) ([]model.Product, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("validated = ?", false))
}

func (r *ProductGormRepository) ListBySeller(ctx context.Context, seller string) ([]model.Product, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("seller = ?", seller))
}

func (r *ProductGormRepository) ListAll(ctx context.Context) ([]model.Product, error) {
	return r.list(ctx, r.db.WithContext(ctx))
}

func (r *ProductGormRepository) list(ctx context.Context, tx *gorm.DB) ([]model.Product, error) {
	var products []model.Product
	if err := tx.Order("created_at desc").Order("id desc").Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":              p.Name,
		"description":       p.Description,
		"price":             p.Price,
		"delivery_range_km": p.DeliveryRangeKM,
		"expiry_datetime":   p.ExpiryDatetime,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 物理削除（出品者・管理者・スイーパー共通）
func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 承認フラグの更新。同じ値への更新は成功扱い（冪等）。
func (r *ProductGormRepository) SetValidated(ctx context.Context, id int64, validated bool) error {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrNotFound
	}
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Update("validated", validated).Error
}

func (r *ProductGormRepository) IncrementLikes(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
