package repository

import (
	"context"

	"kinbech/internal/domain/model"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
	List(ctx context.Context, limit int) ([]model.AuditLog, error)
}
