// Command seed loads the reference geography and the demo accounts into an
// empty database.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/civil-registry/internal/config"
	"github.com/iliyamo/civil-registry/internal/database"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("warning: .env not loaded: %v", err)
	}
	cfg := config.Load()
	logger := config.NewLogger(cfg.Env, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, database.DSN(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	seeded, err := database.Seed(ctx, db, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	if !seeded {
		logger.Info("database already populated, nothing to do")
		return
	}
	for _, email := range database.SeedAccounts() {
		logger.Info("account created", "email", email, "password", database.SeedPassword)
	}
}
