package handler

import (
	"net/http"
	"strconv"

	"kinbech/internal/config"
	"kinbech/internal/domain/model"
	"kinbech/internal/middleware"
	"kinbech/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("", middleware.AuthJWT(cfg))

	g.POST("/checkout", h.checkout)
	g.POST("/buy/:id", h.buy, middleware.RoleGuard(model.RoleBuyer))
	g.GET("/buyer/notifications", h.notifications)
	g.POST("/orders/:id/complete", h.complete)

	//fulfillは管理者も呼べるので役割guardは付けず、usecase側で所有を確認する
	g.GET("/seller/orders", h.sellerOrders, middleware.RoleGuard(model.RoleSeller))
	g.POST("/seller/orders/:id/fulfill", h.fulfill)
}

type checkoutRequest struct {
	Items          []usecase.CheckoutItem `json:"items"`
	Address        string                 `json:"address"`
	Phone          string                 `json:"phone"`
	Note           string                 `json:"note"`
	SampleImageURL string                 `json:"sample_image_url"`
}

func (h *OrderHandler) checkout(c echo.Context) error {
	buyer, _, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Checkout(c.Request().Context(), buyer, usecase.CheckoutInput{
		Items:          req.Items,
		Address:        req.Address,
		Phone:          req.Phone,
		Note:           req.Note,
		SampleImageURL: req.SampleImageURL,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type buyRequest struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (h *OrderHandler) buy(c echo.Context) error {
	buyer, _, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req buyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Buy(c.Request().Context(), buyer, id, req.Address, req.Phone)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) notifications(c echo.Context) error {
	buyer, _, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.BuyerNotifications(c.Request().Context(), buyer)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) sellerOrders(c echo.Context) error {
	seller, _, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListForSeller(c.Request().Context(), seller)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) fulfill(c echo.Context) error {
	actor, roles, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Fulfill(c.Request().Context(), actor, roles, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Msg: "order marked as fulfilled"})
}

func (h *OrderHandler) complete(c echo.Context) error {
	actor, roles, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Complete(c.Request().Context(), actor, roles, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Msg: "order marked as completed"})
}
