// cmd/bot/main.go
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"rewards-tracker/internal/bot"
	"rewards-tracker/internal/config"
	"rewards-tracker/internal/rewards"
	"rewards-tracker/internal/storage/postgres"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg := config.MustLoad()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})))

	if cfg.TelegramBotToken == "" {
		slog.Error("TELEGRAM_BOT_TOKEN not set")
		os.Exit(1)
	}

	calc, err := rewards.NewTieredCalculator(
		cfg.Rewards.LowerThreshold,
		cfg.Rewards.UpperThreshold,
		cfg.Rewards.LowRate,
		cfg.Rewards.HighRate,
	)
	if err != nil {
		slog.Error("Invalid reward tiers", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBConn)
	if err != nil {
		slog.Error("Failed to connect to DB", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	store := postgres.NewStorage(pool)

	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		slog.Error("Failed to initialise Telegram bot", "error", err)
		os.Exit(1)
	}

	// long polling does not work while a webhook is registered
	if _, err := api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		slog.Warn("Failed to delete webhook", "error", err)
	}

	slog.Info("Bot started", "username", api.Self.UserName)
	bot.NewCommands(rewards.NewService(store, calc), store).Poll(ctx, api)
	slog.Info("Bot stopped")
}
