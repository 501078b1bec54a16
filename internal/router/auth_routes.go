package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/civil-registry/internal/handler"
	"github.com/iliyamo/civil-registry/internal/middleware"
)

// RegisterAuth registers /api/auth. Login, forgot-password and refresh are
// public and rate limited; the rest need a valid access token.
func RegisterAuth(api *echo.Group, d Deps) {
	h := handler.NewAuthHandler(d.Auth)

	limit := middleware.NewTokenBucket(d.RateLimit, d.Redis, d.Logger)
	api.POST("/auth/login", h.Login, limit)
	api.POST("/auth/forgot-password", h.ForgotPassword, limit)
	api.POST("/auth/refresh", h.Refresh, limit)

	g := api.Group("/auth", middleware.JWTAuth(d.JWTSecret), middleware.LoadPrincipal(d.Auth))
	g.POST("/logout", h.Logout)
	g.GET("/me", h.Me)
	g.POST("/change-password", h.ChangePassword)
}
