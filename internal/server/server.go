package server

import (
	"kinbech/internal/config"
	"kinbech/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// 各ハンドラを1か所に集めてルート登録する
type Handlers struct {
	Auth    *handler.AuthHandler
	Profile *handler.ProfileHandler
	Product *handler.ProductHandler
	Order   *handler.OrderHandler
	Admin   *handler.AdminHandler
}

func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	h.Auth.RegisterRoutes(e)
	h.Profile.RegisterRoutes(e, cfg)
	h.Product.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
	h.Admin.RegisterRoutes(e, cfg)

	//アップロード画像のローカル配信（Cloudinary未設定のとき用）
	e.Static("/static", "static")

	return e
}

func Start(addr string, cfg config.Config, h Handlers) error {
	return New(cfg, h).Start(addr)
}
