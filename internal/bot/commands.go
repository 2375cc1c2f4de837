// internal/bot/commands.go
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"rewards-tracker/internal/domain"
	"rewards-tracker/internal/rewards"
	"rewards-tracker/internal/storage"
	val "rewards-tracker/internal/validator"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const helpText = "🎁 *Rewards tracker*\n\n" +
	"Commands:\n" +
	"`/rewards CUST123` — reward points per month and total\n" +
	"`/history CUST123` — customer transactions\n" +
	"`/add CUST123 120.50 2024-01-10` — record a transaction (date defaults to today)\n" +
	"`/delete <id>` — delete a transaction"

type Summarizer interface {
	Summarize(ctx context.Context, customerID string) (*domain.RewardSummary, error)
}

// Commands turns chat text into replies. Errors are rendered into the reply text.
type Commands struct {
	rewards Summarizer
	store   storage.TransactionStorage
	now     func() time.Time
}

func NewCommands(rewards Summarizer, store storage.TransactionStorage) *Commands {
	return &Commands{rewards: rewards, store: store, now: time.Now}
}

func (c *Commands) Handle(ctx context.Context, text string) string {
	text = strings.TrimSpace(FixEncoding(text))
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "Unknown command. Send /help"
	}

	// "/rewards@my_bot CUST1" in group chats
	cmd, _, _ := strings.Cut(fields[0], "@")
	args := fields[1:]

	var reply string
	var err error
	switch cmd {
	case "/start", "/help":
		reply = helpText
	case "/rewards":
		if len(args) != 1 {
			return "❌ Usage: `/rewards CustomerID`"
		}
		reply, err = c.handleRewards(ctx, args[0])
	case "/history":
		if len(args) != 1 {
			return "❌ Usage: `/history CustomerID`"
		}
		reply, err = c.handleHistory(ctx, args[0])
	case "/add":
		if len(args) < 2 || len(args) > 3 {
			return "❌ Usage: `/add CustomerID Amount [YYYY-MM-DD]`"
		}
		reply, err = c.handleAdd(ctx, args)
	case "/delete":
		if len(args) != 1 {
			return "❌ Usage: `/delete TransactionID`"
		}
		reply, err = c.handleDelete(ctx, args[0])
	default:
		reply = "Unknown command. Send /help"
	}

	if err != nil {
		slog.Error("Bot command failed", "command", cmd, "error", err)
		return "❌ Error: " + escape(err.Error())
	}
	return reply
}

func (c *Commands) handleRewards(ctx context.Context, customerID string) (string, error) {
	summary, err := c.rewards.Summarize(ctx, customerID)
	if err != nil {
		if errors.Is(err, rewards.ErrNotFound) {
			return "📭 " + escape(err.Error()), nil
		}
		return "", err
	}

	lines := []string{fmt.Sprintf("🎁 *Rewards* for %s", escape(customerID))}
	for _, month := range summary.MonthlyPoints.Months() {
		lines = append(lines, fmt.Sprintf("- %s: %d", month, summary.MonthlyPoints[month]))
	}
	lines = append(lines, fmt.Sprintf("\n*Total: %d*", summary.TotalPoints))
	return strings.Join(lines, "\n"), nil
}

func (c *Commands) handleHistory(ctx context.Context, customerID string) (string, error) {
	transactions, err := c.store.FindByCustomerID(ctx, customerID)
	if err != nil {
		return "", err
	}
	if len(transactions) == 0 {
		return fmt.Sprintf("📭 No transactions for %s", escape(customerID)), nil
	}

	lines := []string{fmt.Sprintf("🧾 *Transactions* of %s", escape(customerID))}
	for _, tx := range transactions {
		lines = append(lines, fmt.Sprintf("- %s: %s (%s)", tx.Date.Format("2006-01-02"), tx.Amount.StringFixed(2), escape(tx.ID)))
	}
	return strings.Join(lines, "\n"), nil
}

func (c *Commands) handleAdd(ctx context.Context, args []string) (string, error) {
	amount, err := decimal.NewFromString(strings.ReplaceAll(args[1], ",", "."))
	if err != nil {
		return "", fmt.Errorf("invalid amount: %q", args[1])
	}
	if !val.ValidAmount(amount) {
		return "", fmt.Errorf("amount must be positive, at most %s, with at most %d decimal places",
			val.MaxAmount.StringFixed(val.AmountScale), val.AmountScale)
	}

	date := c.now()
	if len(args) == 3 {
		if date, err = val.ParseDate(args[2]); err != nil {
			return "", fmt.Errorf("invalid date %q, use YYYY-MM-DD", args[2])
		}
	}

	tx := domain.Transaction{
		ID:         uuid.NewString(),
		CustomerID: args[0],
		Amount:     amount,
		Date:       date,
	}
	if err := c.store.SaveTransaction(ctx, tx); err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Saved `%s`", tx.ID), nil
}

func (c *Commands) handleDelete(ctx context.Context, id string) (string, error) {
	if err := c.store.DeleteTransaction(ctx, id); err != nil {
		if errors.Is(err, storage.ErrTransactionNotFound) {
			return fmt.Sprintf("📭 Transaction %s not found", escape(id)), nil
		}
		return "", err
	}
	return "✅ Transaction deleted", nil
}

// escape makes user and store supplied text safe for Markdown replies.
func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}
