// cmd/api/main.go
package main

import (
	"context"
	"log/slog"
	"os"

	"rewards-tracker/internal/auth"
	"rewards-tracker/internal/bot"
	"rewards-tracker/internal/config"
	"rewards-tracker/internal/handler"
	"rewards-tracker/internal/rewards"
	"rewards-tracker/internal/storage/postgres"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

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

	pool, err := pgxpool.New(context.Background(), cfg.DBConn)
	if err != nil {
		slog.Error("Failed to connect to DB", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("DB ping failed", "error", err)
		os.Exit(1)
	}
	slog.Info("✅ Connected to PostgreSQL")

	store := postgres.NewStorage(pool)
	service := rewards.NewService(store, calc)

	if cfg.LogLevel > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handler.NewRouter(handler.RouterDeps{
		Rewards: service,
		Store:   store,
		Tokens:  auth.NewTokenService(cfg),
		APIKey:  cfg.APIKey,
		DB:      store,
	})
	if cfg.APIKey == "" {
		slog.Warn("API_KEY is not set, /api/v1/login accepts any key")
	}

	// Telegram webhook
	if cfg.TelegramBotToken != "" {
		api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
		if err != nil {
			slog.Error("Failed to initialise Telegram bot", "error", err)
			os.Exit(1)
		}

		secret := cfg.TelegramWebhookSecret
		if secret == "" {
			secret = uuid.NewString()
		}

		webhookURL := cfg.WebhookBaseURL + "/telegram"
		if err := bot.SetWebhook(api, webhookURL, secret); err != nil {
			slog.Error("Failed to set webhook", "url", webhookURL, "error", err)
			os.Exit(1)
		}
		slog.Info("Telegram webhook set", "url", webhookURL, "bot", api.Self.UserName)

		router.POST("/telegram", bot.NewCommands(service, store).Webhook(api, secret))
	}

	slog.Info("🚀 Server started", "addr", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}
