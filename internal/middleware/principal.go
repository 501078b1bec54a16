package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/civil-registry/internal/authz"
	"github.com/iliyamo/civil-registry/internal/service"
)

const ctxPrincipal = "principal"

// Authenticator resolves the account behind a verified token.
type Authenticator interface {
	Authenticate(ctx context.Context, userID uint64, jti string) (*authz.Principal, error)
}

// LoadPrincipal reloads the caller on every request so a revoked token, a
// deleted account or a disabled account stops working immediately. It runs
// after JWTAuth.
func LoadPrincipal(a Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, ok := c.Get(ctxUserID).(uint64)
			if !ok || uid == 0 {
				return service.ErrSessionInvalide
			}
			jti, _ := c.Get(ctxJTI).(string)
			p, err := a.Authenticate(c.Request().Context(), uid, jti)
			if err != nil {
				return err
			}
			c.Set(ctxPrincipal, *p)
			return next(c)
		}
	}
}

// PrincipalFrom returns the caller loaded by LoadPrincipal.
func PrincipalFrom(c echo.Context) (authz.Principal, bool) {
	p, ok := c.Get(ctxPrincipal).(authz.Principal)
	return p, ok
}

// ClientMeta copies the client IP and user agent into the request context
// where the audit recorder picks them up.
func ClientMeta() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			r := c.Request()
			ctx := service.WithRequestMeta(r.Context(), service.RequestMeta{IP: c.RealIP(), UserAgent: r.UserAgent()})
			c.SetRequest(r.WithContext(ctx))
			return next(c)
		}
	}
}
