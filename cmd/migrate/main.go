// Package main applies the embedded schema migrations to the database named
// by DATABASE_URL. Its sole responsibility is bootstrap: the schema — tables,
// constraints, functions, triggers, and routines — is the product here, and
// this binary puts it in place.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/nehanema2025/trip-booking/internal/config"
	"github.com/nehanema2025/trip-booking/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// log/slog is the stdlib structured logger; JSON output suits log
	// aggregators and keeps the two binaries' logs uniform.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// goose drives database/sql, not a pgx pool, so open through the pgx
	// stdlib driver.
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		slog.Error("failed to create migration provider", "error", err)
		os.Exit(1)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	for _, r := range results {
		slog.Info("applied migration", "version", r.Source.Version, "path", r.Source.Path)
	}
	if len(results) == 0 {
		slog.Info("schema already up to date")
	}
}
