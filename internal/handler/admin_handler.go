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

// /admin配下（承認・削除・出品者ディレクトリ・操作ログ）をまとめる
type AdminHandler struct {
	uc *usecase.ModerationUsecase
}

// DI
func NewAdminHandler(uc *usecase.ModerationUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

func (h *AdminHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")

	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.RoleGuard(model.RoleAdmin))

	admin.GET("/products/pending", h.listPending)
	admin.POST("/products/:id/validate", h.validate)
	admin.DELETE("/products/:id", h.remove)
	admin.GET("/sellers", h.listSellers)
	admin.GET("/sellers/details", h.sellerDetails)
	admin.GET("/audit-logs", h.auditLogs)
}

func (h *AdminHandler) listPending(c echo.Context) error {
	out, err := h.uc.ListPending(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) validate(c echo.Context) error {
	actor, _, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Validate(c.Request().Context(), actor, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Msg: "product validated"})
}

func (h *AdminHandler) remove(c echo.Context) error {
	actor, _, ok := callerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), actor, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Msg: "product deleted"})
}

func (h *AdminHandler) listSellers(c echo.Context) error {
	out, err := h.uc.ListSellers(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) sellerDetails(c echo.Context) error {
	out, err := h.uc.ListSellerDetails(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) auditLogs(c echo.Context) error {
	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = n
	}

	out, err := h.uc.AuditLogs(c.Request().Context(), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

//middleware.AuthJWTがcontextへ入れたusernameとRoleSetを取り出す

func callerFromContext(c echo.Context) (string, model.RoleSet, bool) {
	username, ok := c.Get(middleware.CtxUsernameKey).(string)
	if !ok || username == "" {
		return "", "", false
	}

	roles, ok := c.Get(middleware.CtxRolesKey).(model.RoleSet)
	if !ok {
		return "", "", false
	}

	return username, roles, true
}
