package category

import (
	"testing"

	"catalog-backend/internal/shared/apperror"
	"catalog-backend/internal/shared/identifier"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func typePtr(t TaxType) *TaxType { return &t }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestNewCategory(t *testing.T) {
	tests := []struct {
		name     string
		policy   TaxPolicy
		wantApp  bool
		wantTax  int64
		wantType TaxType
	}{
		{
			name:     "no tax fields",
			policy:   TaxPolicy{},
			wantType: TaxTypeNone,
		},
		{
			name:     "not applicable drops the supplied tax",
			policy:   TaxPolicy{Applicable: boolPtr(false), Tax: decPtr(12), Type: typePtr(TaxTypeFixed)},
			wantType: TaxTypeNone,
		},
		{
			name:     "applicable defaults to percentage",
			policy:   TaxPolicy{Applicable: boolPtr(true), Tax: decPtr(10)},
			wantApp:  true,
			wantTax:  10,
			wantType: TaxTypePercentage,
		},
		{
			name:     "applicable keeps supplied type",
			policy:   TaxPolicy{Applicable: boolPtr(true), Tax: decPtr(5), Type: typePtr(TaxTypeFixed)},
			wantApp:  true,
			wantTax:  5,
			wantType: TaxTypeFixed,
		},
		{
			name:     "applicable without tax is zero",
			policy:   TaxPolicy{Applicable: boolPtr(true)},
			wantApp:  true,
			wantType: TaxTypePercentage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCategory("  Beverages ", "img.png", "Drinks", tt.policy)

			assert.True(t, identifier.IsObjectID(c.ID))
			assert.Equal(t, "Beverages", c.Name)
			assert.Equal(t, tt.wantApp, c.TaxApplicability)
			assert.True(t, decimal.NewFromInt(tt.wantTax).Equal(c.Tax), "tax = %s", c.Tax)
			assert.Equal(t, tt.wantType, c.TaxType)
		})
	}
}

func TestCategoryApply(t *testing.T) {
	t.Run("turning tax off zeroes it", func(t *testing.T) {
		c := NewCategory("Beverages", "img", "desc", TaxPolicy{Applicable: boolPtr(true), Tax: decPtr(10)})

		c.Apply(Changes{Tax: TaxPolicy{Applicable: boolPtr(false)}})

		assert.False(t, c.TaxApplicability)
		assert.True(t, c.Tax.IsZero())
		assert.Equal(t, TaxTypeNone, c.TaxType)
	})

	t.Run("turning tax on picks percentage", func(t *testing.T) {
		c := NewCategory("Beverages", "img", "desc", TaxPolicy{})

		c.Apply(Changes{Tax: TaxPolicy{Applicable: boolPtr(true), Tax: decPtr(7)}})

		assert.True(t, c.TaxApplicability)
		assert.True(t, decimal.NewFromInt(7).Equal(c.Tax))
		assert.Equal(t, TaxTypePercentage, c.TaxType)
	})

	t.Run("unspecified fields stay", func(t *testing.T) {
		c := NewCategory("Beverages", "img", "desc", TaxPolicy{Applicable: boolPtr(true), Tax: decPtr(10)})
		before := *c

		c.Apply(Changes{Name: strPtr(" Drinks ")})

		assert.Equal(t, "Drinks", c.Name)
		assert.Equal(t, before.Image, c.Image)
		assert.Equal(t, before.Description, c.Description)
		assert.True(t, before.Tax.Equal(c.Tax))
		assert.Equal(t, before.TaxType, c.TaxType)
		assert.False(t, c.UpdatedAt.Before(before.UpdatedAt))
	})
}

func TestCreateCategoryReqValidate(t *testing.T) {
	t.Run("missing fields", func(t *testing.T) {
		req := CreateCategoryReq{Name: "Beverages"}
		err := req.Validate()

		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
		assert.Equal(t, MsgRequiredFields, apperror.MessageOf(err))
	})

	t.Run("tax out of range", func(t *testing.T) {
		req := CreateCategoryReq{Name: "Beverages", Image: "i", Description: "d", Tax: decPtr(101)}
		err := req.Validate()

		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
		assert.Equal(t, MsgInvalidCategory, apperror.MessageOf(err))
	})

	t.Run("unknown tax type", func(t *testing.T) {
		req := CreateCategoryReq{Name: "Beverages", Image: "i", Description: "d", TaxType: typePtr("vat")}

		assert.Error(t, req.Validate())
	})

	t.Run("valid", func(t *testing.T) {
		req := CreateCategoryReq{Name: "Beverages", Image: "i", Description: "d", Tax: decPtr(100), TaxType: typePtr(TaxTypeFixed)}

		assert.NoError(t, req.Validate())
	})
}

func TestUpdateCategoryReqValidate(t *testing.T) {
	assert.NoError(t, UpdateCategoryReq{}.Validate())

	err := UpdateCategoryReq{Name: strPtr("   ")}.Validate()
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}
