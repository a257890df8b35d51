package notify

import (
	"context"
	"log/slog"
)

// ゲートウェイ未設定のときの開発用。送信内容をログに出すだけ。
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) SendResetLink(ctx context.Context, phone string, link string) error {
	slog.Info("password reset link (not sent, no gateway configured)",
		"to", phone,
		"link", link,
	)
	return nil
}
