package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/lewisgroup/storefront/internal/infrastructure/config"
	"github.com/lewisgroup/storefront/internal/infrastructure/logger"
	"github.com/lewisgroup/storefront/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	var (
		logLevel string
		seed     bool
	)

	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&seed, "seed", false, "Seed default accounts and catalog after migrating")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	log.Info("Applying schema migrations",
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName),
	)
	if err := db.Migrate(); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
	log.Info("Schema is up to date")

	if seed {
		users := persistence.NewGormUserRepository(db.DB)
		products := persistence.NewGormProductRepository(db.DB)
		if err := persistence.Seed(context.Background(), users, products, log); err != nil {
			log.Fatal("Seeding failed", zap.Error(err))
		}
		log.Info("Seed data applied")
	}
}
