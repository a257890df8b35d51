package sweeper

import (
	"context"
	"log/slog"
	"time"

	"kinbech/internal/domain/model"
	"kinbech/internal/repository"
)

// 現在の時間
type Clock interface {
	Now() time.Time
}

// 期限切れの商品と再設定トークンを定期的に片付けるループ。
// ctxのキャンセルで止まる。個々の失敗はログに残すだけで、ループは死なせない。
type Sweeper struct {
	products    repository.ProductRepository
	resetTokens repository.ResetTokenRepository
	clock       Clock
	interval    time.Duration
}

func New(
	products repository.ProductRepository,
	resetTokens repository.ResetTokenRepository,
	clock Clock,
	interval time.Duration,
) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Sweeper{
		products:    products,
		resetTokens: resetTokens,
		clock:       clock,
		interval:    interval,
	}
}

// Runはキャンセルされるまで掃除を繰り返す。
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnceは1回分の掃除。期限が過去の商品を消し、期限切れトークンも回収する。
// 期限が読めない商品は黙って飛ばす。
func (s *Sweeper) SweepOnce(ctx context.Context) {
	now := s.clock.Now()

	products, err := s.products.ListAll(ctx)
	if err != nil {
		slog.Error("sweeper: list products failed", "err", err)
	} else {
		for _, p := range products {
			expiry, ok := model.ParseExpiry(p.ExpiryDatetime)
			if !ok {
				continue
			}
			if !expiry.Before(now) {
				continue
			}
			if err := s.products.Delete(ctx, p.ID); err != nil {
				//並行で消されている場合もあるので、失敗はログだけ
				slog.Warn("sweeper: delete product failed", "product_id", p.ID, "err", err)
			}
		}
	}

	if s.resetTokens != nil {
		if _, err := s.resetTokens.DeleteExpired(ctx, now); err != nil {
			slog.Warn("sweeper: delete expired reset tokens failed", "err", err)
		}
	}
}
