// internal/storage/postgres/postgres.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"rewards-tracker/internal/domain"
	"rewards-tracker/internal/storage"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const uniqueViolation = "23505"

type Storage struct {
	db *pgxpool.Pool
}

func NewStorage(db *pgxpool.Pool) *Storage {
	return &Storage{db: db}
}

var _ storage.TransactionStorage = (*Storage)(nil)

// SanitizeID strips invisible characters (NBSP, zero-width, control) and collapses whitespace.
func SanitizeID(s string) string {
	result := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			result = append(result, ' ')
		case r >= 32 && r <= 126:
			result = append(result, r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			result = append(result, r)
		}
	}
	return strings.Join(strings.Fields(string(result)), " ")
}

// newTransaction converts a scanned row. pgx returns timestamptz in the
// process's local zone; Date is always UTC.
func newTransaction(id, customerID, amount string, createdAt time.Time) (domain.Transaction, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("parse amount %q of transaction %s: %w", amount, id, err)
	}
	return domain.Transaction{
		ID:         id,
		CustomerID: customerID,
		Amount:     d,
		Date:       createdAt.UTC(),
	}, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// === TransactionStorage ===

func (s *Storage) FindByCustomerID(ctx context.Context, customerID string) ([]domain.Transaction, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, customer_id, amount::text, created_at
		FROM transactions
		WHERE customer_id = $1
		ORDER BY created_at, id
	`, SanitizeID(customerID))
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		var id, customer, amount string
		var createdAt time.Time
		if err := rows.Scan(&id, &customer, &amount, &createdAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx, err := newTransaction(id, customer, amount, createdAt)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	slog.Debug("FindByCustomerID completed", "customer_id", customerID, "count", len(transactions))
	return transactions, nil
}

func (s *Storage) SaveTransaction(ctx context.Context, tx domain.Transaction) error {
	if strings.TrimSpace(tx.ID) == "" {
		return fmt.Errorf("transaction id cannot be empty")
	}
	customerID := SanitizeID(tx.CustomerID)
	if customerID == "" {
		return fmt.Errorf("customer id cannot be empty")
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO transactions (id, customer_id, amount, created_at)
		VALUES ($1, $2, $3::numeric, $4)
	`, tx.ID, customerID, tx.Amount.String(), tx.Date.UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("insert transaction %s: %w", tx.ID, storage.ErrDuplicateTransaction)
		}
		return fmt.Errorf("insert transaction: %w", err)
	}

	slog.Debug("SaveTransaction completed", "id", tx.ID, "customer_id", customerID)
	return nil
}

func (s *Storage) DeleteTransaction(ctx context.Context, id string) error {
	result, err := s.db.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete transaction %s: %w", id, storage.ErrTransactionNotFound)
	}
	return nil
}
