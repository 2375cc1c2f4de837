// internal/rewards/errors.go
package rewards

import "errors"

var ErrNotFound = errors.New("not found")

type NotFoundError struct {
	CustomerID string
}

func (e *NotFoundError) Error() string {
	return "No transactions found for customer: " + e.CustomerID
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
