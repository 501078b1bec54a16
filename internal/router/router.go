// Package router wires handlers and middleware onto an Echo instance.
package router

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/civil-registry/internal/config"
	"github.com/iliyamo/civil-registry/internal/handler"
	"github.com/iliyamo/civil-registry/internal/middleware"
	"github.com/iliyamo/civil-registry/internal/service"
)

// Deps is everything the routes need.
type Deps struct {
	Auth      *service.AuthService
	Users     *service.UserService
	Geography *service.GeographyService
	Mariages  *service.MariageService
	Actes     *service.ActeService
	Dashboard *service.DashboardService

	JWTSecret   string
	CORSOrigins []string
	Cache       config.CacheConfig
	RateLimit   config.RateLimitConfig
	Redis       *redis.Client
	DB          handler.Pinger
	Logger      *slog.Logger
}

// New builds the Echo instance serving the whole API.
func New(d Deps) *echo.Echo {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler(d.Logger)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(requestLogger(d.Logger))
	if len(d.CORSOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins: d.CORSOrigins,
			AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		}))
	}
	e.Use(middleware.Metrics(handler.StatusOf))

	RegisterRoutes(e, d.DB)
	api := e.Group("/api", middleware.ClientMeta())
	RegisterAuth(api, d)
	RegisterRegistry(api, d)
	return e
}

// RegisterRoutes registers the unauthenticated operational endpoints.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", handler.Ready(db))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= 500 {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
				slog.String("ip", v.RemoteIP),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("err", v.Error.Error()))
			}
			logger.LogAttrs(context.Background(), level, "request", attrs...)
			return nil
		},
	})
}
