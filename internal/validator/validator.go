// internal/validator/validator.go
package validator

import (
	"reflect"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var Validate *validator.Validate

var nonSpace = regexp.MustCompile(`\S`)

// AmountScale is the number of decimal places stored for an amount (NUMERIC(12,2)).
const AmountScale = 2

// MaxAmount is the largest amount the transactions table can hold.
var MaxAmount = decimal.New(999999999999, -AmountScale)

// DateLayouts accepted for transaction dates, in order of preference.
var DateLayouts = []string{time.RFC3339, "2006-01-02"}

func init() {
	Validate = validator.New()

	// decimal.Decimal is validated as float64, so gt/gte/lte tags work on amounts
	Validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// Transaction date: "2024-01-31" or RFC3339
	_ = Validate.RegisterValidation("txdate", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})

	// Non-empty and not only whitespace
	_ = Validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return nonSpace.MatchString(fl.Field().String())
	})
}

func ParseDate(s string) (time.Time, error) {
	var err error
	for _, layout := range DateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// IsMoney reports whether d has at most AmountScale decimal places.
func IsMoney(d decimal.Decimal) bool {
	return d.Equal(d.Round(AmountScale))
}

// ValidAmount reports whether d is a positive amount that fits the table.
func ValidAmount(d decimal.Decimal) bool {
	return d.IsPositive() && d.LessThanOrEqual(MaxAmount) && IsMoney(d)
}
