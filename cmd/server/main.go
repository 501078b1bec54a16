package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/iliyamo/civil-registry/internal/config"
	"github.com/iliyamo/civil-registry/internal/database"
	"github.com/iliyamo/civil-registry/internal/handler"
	"github.com/iliyamo/civil-registry/internal/observability/tracing"
	"github.com/iliyamo/civil-registry/internal/queue"
	"github.com/iliyamo/civil-registry/internal/repository"
	"github.com/iliyamo/civil-registry/internal/repository/memory"
	"github.com/iliyamo/civil-registry/internal/router"
	"github.com/iliyamo/civil-registry/internal/service"
)

const (
	auditLogDir       = "logs"
	tokenPurgeEvery   = time.Hour
	shutdownTimeout   = 30 * time.Second
	readHeaderTimeout = 10 * time.Second
)

type tokenPurger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// stores is one storage backend seen through the service interfaces.
type stores struct {
	villes   service.VilleStore
	arrs     service.ArrondissementStore
	mairies  service.MairieStore
	users    service.UserStore
	tokens   service.TokenStore
	mariages service.MariageStore
	actes    service.ActeStore
	audit    service.AuditStore
	stats    service.DashboardStore
	purger   tokenPurger
	db       handler.Pinger
}

func mysqlStores(db *sql.DB) stores {
	tokens := repository.NewTokenRepo(db)
	return stores{
		villes:   repository.NewVilleRepo(db),
		arrs:     repository.NewArrondissementRepo(db),
		mairies:  repository.NewMairieRepo(db),
		users:    repository.NewUserRepo(db),
		tokens:   tokens,
		mariages: repository.NewMariageRepo(db),
		actes:    repository.NewActeRepo(db),
		audit:    repository.NewAuditRepo(db),
		stats:    repository.NewDashboardRepo(db),
		purger:   tokens,
		db:       db,
	}
}

func memoryStores(s *memory.Store) stores {
	tokens := s.Tokens()
	return stores{
		villes:   s.Villes(),
		arrs:     s.Arrondissements(),
		mairies:  s.Mairies(),
		users:    s.Users(),
		tokens:   tokens,
		mariages: s.Mariages(),
		actes:    s.Actes(),
		audit:    s.Audit(),
		stats:    s.Dashboard(),
		purger:   tokens,
	}
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: .env not loaded: %v", err)
	}
	cfg := config.Load()
	logger := config.NewLogger(cfg.Env, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.Init(ctx, logger, cfg.ServiceName, cfg.Env)
	if err != nil {
		log.Fatalf("tracing: %v", err)
	}

	var st stores
	switch cfg.Storage {
	case config.StorageMemory:
		mem := memory.New()
		if err := database.SeedMemory(ctx, mem, cfg.BcryptCost); err != nil {
			log.Fatalf("seed memory store: %v", err)
		}
		logger.Warn("using in-memory storage; data is lost on restart")
		st = memoryStores(mem)
	default:
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		if cfg.DBAutoMigrate {
			if err := database.Migrate(ctx, database.DSN(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)); err != nil {
				log.Fatalf("migrate: %v", err)
			}
		}
		st = mysqlStores(db)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn("redis unavailable; rate limiting and response cache disabled")
	} else {
		defer rdb.Close()
	}

	recOpts := []service.RecorderOption{service.WithRecorderLogger(logger)}
	if cfg.AuditEventsEnabled {
		recOpts = append(recOpts, service.WithEventPublisher(service.NewAMQPPublisher(cfg.AMQPURL, service.WithPublisherLogger(logger))))
		go func() {
			if err := queue.StartAuditConsumer(ctx, cfg.AMQPURL, auditLogDir); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("audit consumer stopped", slog.Any("error", err))
			}
		}()
	}
	audit := service.NewRecorder(st.audit, recOpts...)

	e := router.New(router.Deps{
		Auth: service.NewAuthService(service.AuthConfig{
			JWTSecret:      cfg.JWTSecret,
			AccessTTLMin:   cfg.AccessTTLMin,
			RefreshTTLDays: cfg.RefreshTTLDays,
			BcryptCost:     cfg.BcryptCost,
		}, st.users, st.tokens, audit, service.WithAuthLogger(logger)),
		Users:     service.NewUserService(st.users, st.mairies, st.tokens, audit, cfg.BcryptCost),
		Geography: service.NewGeographyService(st.villes, st.arrs, st.mairies, audit),
		Mariages:  service.NewMariageService(st.mariages, st.mairies, audit),
		Actes: service.NewActeService(st.actes, audit,
			service.WithYearlyReset(cfg.ActeSequenceResetYearly), service.WithActeLogger(logger)),
		Dashboard: service.NewDashboardService(st.stats, st.mariages, st.mairies, audit),

		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSOrigins,
		Cache:       config.LoadCacheConfig(),
		RateLimit:   config.LoadRateLimitConfig(),
		Redis:       rdb,
		DB:          st.db,
		Logger:      logger,
	})

	go purgeTokens(ctx, st.purger, logger)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(e, "civil-registry"),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("listening", slog.String("addr", server.Addr), slog.String("env", cfg.Env), slog.String("storage", cfg.Storage))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-sigChan
	logger.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}
	cancel()
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing shutdown", slog.Any("error", err))
	}
	logger.Info("server stopped")
}

// purgeTokens drops expired revocations and refresh tokens until ctx ends.
func purgeTokens(ctx context.Context, tokens tokenPurger, logger *slog.Logger) {
	t := time.NewTicker(tokenPurgeEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := tokens.PurgeExpired(ctx, now.UTC())
			if err != nil {
				logger.Warn("token purge failed", slog.Any("error", err))
				continue
			}
			if n > 0 {
				logger.Info("expired tokens purged", slog.Int64("count", n))
			}
		}
	}
}
