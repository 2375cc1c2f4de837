// internal/rewards/calculator.go
package rewards

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Default accrual rule: nothing up to LowerThreshold, OnePoint per unit up to
// UpperThreshold, TwoPoints per unit above it.
const (
	LowerThreshold = 50
	UpperThreshold = 100
	OnePoint       = 1
	TwoPoints      = 2
)

// Tier starts strictly above Threshold and runs up to the next tier's threshold (inclusive).
type Tier struct {
	Threshold decimal.Decimal
	Rate      decimal.Decimal
}

type Calculator struct {
	tiers []Tier
}

func NewCalculator(tiers ...Tier) (*Calculator, error) {
	if len(tiers) == 0 {
		return nil, errors.New("at least one tier is required")
	}
	for i, t := range tiers {
		if t.Rate.IsNegative() {
			return nil, fmt.Errorf("tier %d: rate must not be negative", i)
		}
		if i > 0 && !t.Threshold.GreaterThan(tiers[i-1].Threshold) {
			return nil, fmt.Errorf("tier %d: threshold %s must be greater than %s", i, t.Threshold, tiers[i-1].Threshold)
		}
	}
	own := make([]Tier, len(tiers))
	copy(own, tiers)
	return &Calculator{tiers: own}, nil
}

// NewTieredCalculator builds the two-tier rule from its four constants.
func NewTieredCalculator(lower, upper, rateLow, rateHigh decimal.Decimal) (*Calculator, error) {
	if !lower.LessThan(upper) {
		return nil, fmt.Errorf("lower threshold %s must be less than upper threshold %s", lower, upper)
	}
	if !rateHigh.GreaterThan(rateLow) {
		return nil, fmt.Errorf("high rate %s must be greater than low rate %s", rateHigh, rateLow)
	}
	return NewCalculator(
		Tier{Threshold: lower, Rate: rateLow},
		Tier{Threshold: upper, Rate: rateHigh},
	)
}

func DefaultCalculator() *Calculator {
	c, err := NewTieredCalculator(
		decimal.NewFromInt(LowerThreshold),
		decimal.NewFromInt(UpperThreshold),
		decimal.NewFromInt(OnePoint),
		decimal.NewFromInt(TwoPoints),
	)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Calculator) Tiers() []Tier {
	out := make([]Tier, len(c.tiers))
	copy(out, c.tiers)
	return out
}

// Points truncates every tier's share separately, then sums them.
func (c *Calculator) Points(amount decimal.Decimal) int {
	points := 0
	for i, t := range c.tiers {
		if !amount.GreaterThan(t.Threshold) {
			break
		}
		top := amount
		if i+1 < len(c.tiers) && amount.GreaterThan(c.tiers[i+1].Threshold) {
			top = c.tiers[i+1].Threshold
		}
		points += int(top.Sub(t.Threshold).Mul(t.Rate).IntPart())
	}
	return points
}
