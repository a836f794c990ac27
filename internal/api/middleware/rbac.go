package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/trainmetrics/coaching-api/internal/core/domain"
)

// RequireRole passes callers whose role matches any of the allowed roles.
// Admins always pass.
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := Identity(c)
			if err != nil {
				return err
			}
			if identity.IsAdmin {
				return next(c)
			}
			if _, ok := allowed[identity.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// RequirePermission passes callers whose computed permission set contains p.
func RequirePermission(p domain.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := Identity(c)
			if err != nil {
				return err
			}
			if !identity.HasPermission(p) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
