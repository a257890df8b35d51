package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WhatsAppゲートウェイへ再設定リンクを送る。
// ゲートウェイ側の仕様は {to, message} のJSON POSTだけ。
type WhatsAppSender struct {
	gatewayURL string
	client     *http.Client
}

func NewWhatsAppSender(gatewayURL string) *WhatsAppSender {
	return &WhatsAppSender{
		gatewayURL: gatewayURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type gatewayMessage struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

func (s *WhatsAppSender) SendResetLink(ctx context.Context, phone string, link string) error {
	body, err := json.Marshal(gatewayMessage{
		To:      phone,
		Message: "Reset your password: " + link,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.gatewayURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp gateway returned %d", resp.StatusCode)
	}
	return nil
}
