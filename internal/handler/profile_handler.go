package handler

import (
	"net/http"

	"kinbech/internal/config"
	"kinbech/internal/middleware"
	"kinbech/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ProfileHandler struct {
	uc *usecase.ProfileUsecase
}

// DI
func NewProfileHandler(uc *usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("", middleware.AuthJWT(cfg))

	g.GET("/profile", h.profile)
	g.GET("/shop/name", h.getShopName)
	g.POST("/shop/name", h.setShopName)
	g.GET("/seller/details", h.getSellerDetails)
	g.POST("/seller/details", h.setSellerDetails)
}

func (h *ProfileHandler) profile(c echo.Context) error {
	username, _, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Get(c.Request().Context(), username)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type shopNameResponse struct {
	ShopName string `json:"shop_name"`
}

func (h *ProfileHandler) getShopName(c echo.Context) error {
	username, _, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	name, err := h.uc.GetShopName(c.Request().Context(), username)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, shopNameResponse{ShopName: name})
}

// 屋号はform入力で受ける
func (h *ProfileHandler) setShopName(c echo.Context) error {
	username, _, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	name, err := h.uc.SetShopName(c.Request().Context(), username, c.FormValue("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, shopNameResponse{ShopName: name})
}

func (h *ProfileHandler) getSellerDetails(c echo.Context) error {
	username, _, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.GetSellerDetails(c.Request().Context(), username)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProfileHandler) setSellerDetails(c echo.Context) error {
	username, _, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.SetSellerDetails(
		c.Request().Context(),
		username,
		c.FormValue("address"),
		c.FormValue("phone_number"),
	)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
