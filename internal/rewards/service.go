// internal/rewards/service.go
package rewards

import (
	"context"
	"log/slog"

	"rewards-tracker/internal/domain"
)

type TransactionFinder interface {
	FindByCustomerID(ctx context.Context, customerID string) ([]domain.Transaction, error)
}

type Service struct {
	finder TransactionFinder
	calc   *Calculator
}

func NewService(finder TransactionFinder, calc *Calculator) *Service {
	if calc == nil {
		calc = DefaultCalculator()
	}
	return &Service{finder: finder, calc: calc}
}

// Summarize returns *NotFoundError when the customer has no transactions.
// Lookup errors are returned as is.
func (s *Service) Summarize(ctx context.Context, customerID string) (*domain.RewardSummary, error) {
	transactions, err := s.finder.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		return nil, &NotFoundError{CustomerID: customerID}
	}

	monthly := make(domain.MonthlyPoints)
	total := 0
	for _, tx := range transactions {
		points := s.calc.Points(tx.Amount)
		if points == 0 {
			continue
		}
		monthly[tx.Date.Month()] += points
		total += points
	}

	slog.Debug("Reward summary computed",
		"customer_id", customerID,
		"transactions", len(transactions),
		"months", len(monthly),
		"total_points", total,
	)

	return &domain.RewardSummary{
		CustomerID:    customerID,
		MonthlyPoints: monthly,
		TotalPoints:   total,
	}, nil
}
