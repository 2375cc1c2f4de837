// cmd/migrate/main.go
package main

import (
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"rewards-tracker/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	cfg := config.MustLoad()

	wd, err := os.Getwd()
	if err != nil {
		slog.Error("Failed to get working directory", "error", err)
		os.Exit(1)
	}
	dir := flag.String("dir", filepath.Join(wd, "migrations"), "migrations directory")
	command := flag.String("command", "up", "goose command: up, down, status")
	flag.Parse()

	db, err := sql.Open("pgx", cfg.DBConn)
	if err != nil {
		slog.Error("Failed to open DB", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		slog.Error("Failed to set dialect", "error", err)
		os.Exit(1)
	}

	slog.Info("Running migrations", "dir", *dir, "command", *command)

	switch *command {
	case "up":
		err = goose.Up(db, *dir)
	case "down":
		err = goose.Down(db, *dir)
	case "status":
		err = goose.Status(db, *dir)
	default:
		slog.Error("Unknown command", "command", *command)
		os.Exit(2)
	}
	if err != nil {
		slog.Error("Migration failed", "error", err)
		os.Exit(1)
	}

	slog.Info("✅ Done", "command", *command)
}
