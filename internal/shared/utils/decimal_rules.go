package utils

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// ozzo rules for optional decimal fields. A nil pointer always passes,
// Required handles presence separately.

// NonNegativeDecimal rejects values below zero.
func NonNegativeDecimal(message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		d, ok, err := decimalValue(value)
		if err != nil || !ok {
			return err
		}
		if d.IsNegative() {
			return errors.New(message)
		}
		return nil
	})
}

// DecimalRange rejects values outside [min, max].
func DecimalRange(min, max decimal.Decimal, message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		d, ok, err := decimalValue(value)
		if err != nil || !ok {
			return err
		}
		if d.LessThan(min) || d.GreaterThan(max) {
			return errors.New(message)
		}
		return nil
	})
}

func decimalValue(value interface{}) (decimal.Decimal, bool, error) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, true, nil
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero, false, nil
		}
		return *v, true, nil
	case nil:
		return decimal.Zero, false, nil
	default:
		return decimal.Zero, false, fmt.Errorf("unsupported type %T for decimal rule", value)
	}
}

// DecimalOrZero dereferences an optional decimal.
func DecimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// BoolOr dereferences an optional flag with a fallback.
func BoolOr(b *bool, fallback bool) bool {
	if b == nil {
		return fallback
	}
	return *b
}
