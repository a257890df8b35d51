package repository

import (
	"context"
	"time"

	"kinbech/internal/domain/model"
)

// 再設定トークンの保存・消費を約束
type ResetTokenRepository interface {
	Create(ctx context.Context, token *model.ResetToken) error
	FindByID(ctx context.Context, id string) (model.ResetToken, error)
	//使用済みトークンの削除（1回使い切り）
	Delete(ctx context.Context, id string) error
	//期限切れトークンの一括削除（スイーパー用）
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
