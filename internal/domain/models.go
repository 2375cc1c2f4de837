// internal/domain/models.go
package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
}

// MonthlyPoints — points per month of year. JSON keys are upper-case month names ("JANUARY").
type MonthlyPoints map[time.Month]int

// Months returns the keys in calendar order.
func (m MonthlyPoints) Months() []time.Month {
	months := make([]time.Month, 0, len(m))
	for month := range m {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })
	return months
}

func (m MonthlyPoints) Sum() int {
	total := 0
	for _, p := range m {
		total += p
	}
	return total
}

func (m MonthlyPoints) MarshalJSON() ([]byte, error) {
	out := make(map[string]int, len(m))
	for month, points := range m {
		out[strings.ToUpper(month.String())] = points
	}
	return json.Marshal(out)
}

func (m *MonthlyPoints) UnmarshalJSON(data []byte) error {
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(MonthlyPoints, len(raw))
	for name, points := range raw {
		month, err := ParseMonth(name)
		if err != nil {
			return err
		}
		out[month] = points
	}
	*m = out
	return nil
}

// ParseMonth accepts an English month name in any case.
func ParseMonth(name string) (time.Month, error) {
	for month := time.January; month <= time.December; month++ {
		if strings.EqualFold(month.String(), name) {
			return month, nil
		}
	}
	return 0, fmt.Errorf("unknown month %q", name)
}

type RewardSummary struct {
	CustomerID    string        `json:"customer_id"`
	MonthlyPoints MonthlyPoints `json:"monthly_points"`
	TotalPoints   int           `json:"total_points"`
}
