package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/civil-registry/internal/service"
	"github.com/iliyamo/civil-registry/internal/utils"
)

// ErrTokenManquant answers requests without a bearer token.
var ErrTokenManquant = &service.AuthError{Msg: "Token d'authentification manquant"}

// Context keys set by JWTAuth.
const (
	ctxUserID   = "user_id"
	ctxRole     = "role"
	ctxMairieID = "mairie_id"
	ctxJTI      = "jti"
	ctxTokenExp = "token_exp"
)

// JWTAuth validates the Bearer access token and stores its claims in the
// Echo context. It does not consult the database; LoadPrincipal does.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return ErrTokenManquant
			}
			claims, err := utils.ParseAccessToken(secret, strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")))
			if err != nil {
				return service.ErrSessionInvalide
			}
			c.Set(ctxUserID, claims.UserID)
			c.Set(ctxRole, claims.Role)
			c.Set(ctxMairieID, claims.MairieID)
			c.Set(ctxJTI, claims.JTI)
			c.Set(ctxTokenExp, claims.Exp)
			return next(c)
		}
	}
}

// TokenFrom returns the id and expiry of the access token of the request.
func TokenFrom(c echo.Context) (jti string, exp time.Time) {
	jti, _ = c.Get(ctxJTI).(string)
	exp, _ = c.Get(ctxTokenExp).(time.Time)
	return jti, exp
}
