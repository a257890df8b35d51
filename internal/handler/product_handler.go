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

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	//未ログインでも見られる承認済み一覧
	e.GET("/public-products", h.listValidated)

	g := e.Group("", middleware.AuthJWT(cfg))
	g.GET("/products", h.listValidated)
	g.POST("/products", h.create, middleware.RoleGuard(model.RoleSeller))
	g.GET("/products/mine", h.listMine)
	g.GET("/products/:id", h.detail)
	g.PUT("/products/:id", h.update)
	g.DELETE("/products/:id", h.remove)
	g.POST("/products/:id/like", h.like)
}

func (h *ProductHandler) listValidated(c echo.Context) error {
	out, err := h.uc.ListValidated(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// multipart: name, description, price, delivery_range_km, expiry_datetime, shop_name, images
func (h *ProductHandler) create(c echo.Context) error {
	seller, _, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	deliveryKM := 0
	if v := c.FormValue("delivery_range_km"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid delivery_range_km"})
		}
		deliveryKM = n
	}

	in := usecase.CreateProductInput{
		Name:            c.FormValue("name"),
		Description:     c.FormValue("description"),
		Price:           c.FormValue("price"),
		DeliveryRangeKM: deliveryKM,
		ExpiryDatetime:  c.FormValue("expiry_datetime"),
		ShopName:        c.FormValue("shop_name"),
	}

	form, err := c.MultipartForm()
	if err == nil && form != nil {
		for _, fh := range form.File["images"] {
			f, err := fh.Open()
			if err != nil {
				return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid image"})
			}
			defer f.Close()
			in.Images = append(in.Images, usecase.ImageUpload{
				Filename: fh.Filename,
				File:     f,
			})
		}
	}

	out, err := h.uc.Create(c.Request().Context(), seller, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ProductHandler) listMine(c echo.Context) error {
	seller, _, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMine(c.Request().Context(), seller)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	seller, _, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetOwned(c.Request().Context(), seller, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type productUpdateRequest struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	Price           *string `json:"price"`
	DeliveryRangeKM *int    `json:"delivery_range_km"`
	ExpiryDatetime  *string `json:"expiry_datetime"`
}

func (h *ProductHandler) update(c echo.Context) error {
	seller, _, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req productUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	err = h.uc.UpdateOwned(c.Request().Context(), seller, id, usecase.UpdateProductInput{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DeliveryRangeKM: req.DeliveryRangeKM,
		ExpiryDatetime:  req.ExpiryDatetime,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Msg: "product updated"})
}

func (h *ProductHandler) remove(c echo.Context) error {
	seller, _, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteOwned(c.Request().Context(), seller, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Msg: "product deleted"})
}

func (h *ProductHandler) like(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Like(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Msg: "liked"})
}
