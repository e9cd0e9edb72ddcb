package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/internal/config"
	menuRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/menu"
	tableRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/table"
	userRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ReservationService/internal/seed"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("RESERVATION_CONFIG"); p != "" {
		configPath = p
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithWriter(os.Stdout, cfg.Logs.Level, logger.WithFormat(cfg.Logs.Format))

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	wrapped := dbmetrics.Wrap(db, nil)
	seeder := seed.NewSeeder(
		tableRepo.NewRepository(wrapped),
		userRepo.NewRepository(wrapped),
		menuRepo.NewRepository(sqlx.NewDb(db, "postgres")),
		cfg.Auth.BcryptCost,
		log,
	)

	if err := seeder.Run(ctx); err != nil {
		log.Fatal("Seeding failed: %v", err)
	}
	log.Info("Seeding completed")
}
