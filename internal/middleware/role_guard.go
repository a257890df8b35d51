package middleware

import (
	"net/http"

	"kinbech/internal/domain/model"

	"github.com/labstack/echo/v4"
)

//contextに入っているRoleSetにroleが含まれるかを確認します。

func RoleGuard(role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Get(CtxRolesKey)
			roles, ok := raw.(model.RoleSet)
			if !ok || roles == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if !roles.Has(role) {
				return c.JSON(http.StatusForbidden, errorJSON(string(role)+" only"))
			}

			return next(c)
		}
	}
}
