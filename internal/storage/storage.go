// internal/storage/storage.go
package storage

import (
	"context"
	"errors"

	"rewards-tracker/internal/domain"
)

//go:generate mockgen -source=storage.go -destination=mocks/storage.go -package=mocks

var (
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrDuplicateTransaction = errors.New("transaction already exists")
)

type TransactionStorage interface {
	FindByCustomerID(ctx context.Context, customerID string) ([]domain.Transaction, error)
	SaveTransaction(ctx context.Context, tx domain.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
}
