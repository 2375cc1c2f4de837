// internal/bot/telegram.go
package bot

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Reply answers a single update. Updates without a text message are ignored.
func (c *Commands) Reply(ctx context.Context, sender Sender, update tgbotapi.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	slog.Info("📥 Message received", "chat_id", chatID, "text", update.Message.Text)

	msg := tgbotapi.NewMessage(chatID, c.Handle(ctx, update.Message.Text))
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := sender.Send(msg); err != nil {
		slog.Error("Failed to send reply", "chat_id", chatID, "error", err)
	}
}

// Poll processes long-polling updates until ctx is cancelled.
func (c *Commands) Poll(ctx context.Context, api *tgbotapi.BotAPI) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)
	defer api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			c.Reply(ctx, api, update)
		}
	}
}

// SecretTokenHeader carries the secret_token given to setWebhook.
const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// Webhook serves Telegram updates pushed to the API server. Requests without
// the matching secret token are rejected; an empty secret rejects everything.
func (c *Commands) Webhook(sender Sender, secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := ctx.GetHeader(SecretTokenHeader)
		if secret == "" || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			slog.Warn("Rejected webhook request", "remote_addr", ctx.ClientIP())
			ctx.Status(http.StatusUnauthorized)
			return
		}

		var update tgbotapi.Update
		if err := ctx.ShouldBindJSON(&update); err != nil {
			slog.Error("Failed to parse update", "error", err)
			ctx.Status(http.StatusBadRequest)
			return
		}
		c.Reply(ctx.Request.Context(), sender, update)
		ctx.Status(http.StatusOK)
	}
}

// SetWebhook registers url with Telegram. WebhookConfig in this client version
// has no secret_token field, so the raw request is used.
func SetWebhook(api *tgbotapi.BotAPI, url, secret string) error {
	_, err := api.MakeRequest("setWebhook", tgbotapi.Params{
		"url":          url,
		"secret_token": secret,
	})
	return err
}
