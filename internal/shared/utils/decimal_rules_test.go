package utils

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestNonNegativeDecimal(t *testing.T) {
	rule := NonNegativeDecimal("Discount cannot be negative")

	assert.NoError(t, validation.Validate((*decimal.Decimal)(nil), rule))
	assert.NoError(t, validation.Validate(dec("0"), rule))
	assert.NoError(t, validation.Validate(dec("12.5"), rule))
	assert.EqualError(t, validation.Validate(dec("-0.01"), rule), "Discount cannot be negative")
}

func TestDecimalRange(t *testing.T) {
	rule := DecimalRange(decimal.Zero, decimal.NewFromInt(100), "Tax must be between 0 and 100")

	assert.NoError(t, validation.Validate(dec("0"), rule))
	assert.NoError(t, validation.Validate(dec("100"), rule))
	assert.Error(t, validation.Validate(dec("100.01"), rule))
	assert.Error(t, validation.Validate(dec("-1"), rule))
}

func TestOptionalHelpers(t *testing.T) {
	assert.True(t, DecimalOrZero(nil).IsZero())
	assert.Equal(t, "7", DecimalOrZero(dec("7")).String())

	yes := true
	assert.True(t, BoolOr(&yes, false))
	assert.False(t, BoolOr(nil, false))
}
