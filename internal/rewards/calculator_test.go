package rewards

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDefaultCalculatorPoints(t *testing.T) {
	calc := DefaultCalculator()

	cases := []struct {
		amount string
		points int
	}{
		{"-20", 0},
		{"0", 0},
		{"49.99", 0},
		{"50", 0}, // == LOWER
		{"50.99", 0},
		{"51", 1},
		{"75", 25},
		{"99.99", 49},
		{"100", 50}, // == UPPER stays in the lower tier
		{"100.01", 50},
		{"100.5", 51},
		{"120", 90},
		{"200", 250},
		{"1000.75", 1851},
	}
	for _, tc := range cases {
		if got := calc.Points(d(tc.amount)); got != tc.points {
			t.Fatalf("%s: expected %d points, got %d", tc.amount, tc.points, got)
		}
	}
}

// Each tier is truncated on its own: 0.6 + 0.6 must not round up into an extra point.
func TestPointsTruncatesPerTier(t *testing.T) {
	calc, err := NewCalculator(
		Tier{Threshold: d("0"), Rate: d("0.2")},
		Tier{Threshold: d("3"), Rate: d("0.3")},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// tier 1: 3*0.2 = 0.6 -> 0; tier 2: 2*0.3 = 0.6 -> 0
	if got := calc.Points(d("5")); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	// tier 1: 0.6 -> 0; tier 2: 4*0.3 = 1.2 -> 1
	if got := calc.Points(d("7")); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}

func TestPointsMatchesClosedForm(t *testing.T) {
	lower, upper := d("50"), d("100")
	low, high := d("1"), d("2")
	calc := DefaultCalculator()

	for cents := int64(-500); cents <= 30000; cents += 37 {
		amount := decimal.New(cents, -2)
		var want int64
		switch {
		case !amount.GreaterThan(lower):
			want = 0
		case !amount.GreaterThan(upper):
			want = amount.Sub(lower).Mul(low).IntPart()
		default:
			want = upper.Sub(lower).Mul(low).IntPart() + amount.Sub(upper).Mul(high).IntPart()
		}
		if got := calc.Points(amount); int64(got) != want {
			t.Fatalf("%s: expected %d, got %d", amount, want, got)
		}
	}
}

func TestThreeTiers(t *testing.T) {
	calc, err := NewCalculator(
		Tier{Threshold: d("50"), Rate: d("1")},
		Tier{Threshold: d("100"), Rate: d("2")},
		Tier{Threshold: d("500"), Rate: d("3")},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 50 + 800 + 300
	if got := calc.Points(d("600")); got != 1150 {
		t.Fatalf("expected 1150, got %d", got)
	}
}

func TestNewCalculatorErrors(t *testing.T) {
	if _, err := NewCalculator(); err == nil {
		t.Fatal("expected error for empty tier table")
	}
	if _, err := NewCalculator(Tier{Threshold: d("100"), Rate: d("1")}, Tier{Threshold: d("100"), Rate: d("2")}); err == nil {
		t.Fatal("expected error for equal thresholds")
	}
	if _, err := NewCalculator(Tier{Threshold: d("0"), Rate: d("-1")}); err == nil {
		t.Fatal("expected error for negative rate")
	}
	if _, err := NewTieredCalculator(d("100"), d("50"), d("1"), d("2")); err == nil {
		t.Fatal("expected error when lower >= upper")
	}
	if _, err := NewTieredCalculator(d("50"), d("100"), d("2"), d("2")); err == nil {
		t.Fatal("expected error when high rate <= low rate")
	}
}

func TestTiersReturnsCopy(t *testing.T) {
	calc := DefaultCalculator()
	tiers := calc.Tiers()
	tiers[0].Rate = d("100")
	if got := calc.Points(d("75")); got != 25 {
		t.Fatalf("calculator mutated through Tiers(): got %d", got)
	}
}
