package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/civil-registry/internal/authz"
	"github.com/iliyamo/civil-registry/internal/service"
)

// Authorize consults the capability table for op. It must run after
// LoadPrincipal. Tenant checks happen in the services, not here.
func Authorize(op authz.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if !ok {
				return service.ErrSessionInvalide
			}
			if err := authz.Check(op, p); err != nil {
				return err
			}
			return next(c)
		}
	}
}
