package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	JWTSecret string        // JWT署名シークレット
	AccessTTL time.Duration // アクセストークンの有効期限

	//注文合計に足す固定のサービス手数料
	ServiceFee float64

	//期限切れ商品の掃除間隔
	SweepInterval time.Duration

	//再設定トークンの有効期限
	ResetTokenTTL time.Duration

	CloudinaryURL      string // 画像ホスティング（未設定ならローカル保存）
	WhatsAppGatewayURL string // 再設定リンクの送信先ゲートウェイ（未設定ならログ出力）
}

// Loadは環境変数から設定を読む。
// ローカルで動かせるように、JWT_SECRET以外は省略可にしてある。
func Load() (Config, error) {
	cfg := Config{
		Port:               getenv("PORT", "8080"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AccessTTL:          60 * time.Minute,
		SweepInterval:      time.Hour,
		ResetTokenTTL:      30 * time.Minute,
		CloudinaryURL:      os.Getenv("CLOUDINARY_URL"),
		WhatsAppGatewayURL: os.Getenv("WHATSAPP_GATEWAY_URL"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	fee, err := floatEnv("SERVICE_FEE", 0)
	if err != nil {
		return Config{}, err
	}
	if fee < 0 {
		return Config{}, fmt.Errorf("SERVICE_FEE must be >= 0")
	}
	cfg.ServiceFee = fee

	if v := os.Getenv("SWEEP_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("SWEEP_INTERVAL must be a duration: %w", err)
		}
		cfg.SweepInterval = d
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func floatEnv(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return f, nil
}
