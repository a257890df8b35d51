package repository

import (
	"context"
	"errors"
	"time"

	"kinbech/internal/domain/model"
	repo "kinbech/internal/repository"

	"gorm.io/gorm"
)

type ResetTokenGormRepository struct {
	db *gorm.DB
}

func NewResetTokenGormRepository(db *gorm.DB) *ResetTokenGormRepository {
	return &ResetTokenGormRepository{db: db}
}

func (r *ResetTokenGormRepository) Create(ctx context.Context, token *model.ResetToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *ResetTokenGormRepository) FindByID(ctx context.Context, id string) (model.ResetToken, error) {
	var t model.ResetToken
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ResetToken{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ResetToken{}, err
	}
	return t, nil
}

func (r *ResetTokenGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ResetToken{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 期限切れトークンをまとめて消す（スイーパーが呼ぶ）
func (r *ResetTokenGormRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&model.ResetToken{})
	return res.RowsAffected, res.Error
}
