package item

import (
	"fmt"
	"testing"

	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/domains/subcategory"
	"catalog-backend/internal/shared/identifier"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func fixtures() (*category.Category, *subcategory.SubCategory) {
	parent := category.NewCategory("Beverages", "img", "Drinks", category.TaxPolicy{
		Applicable: boolPtr(true),
		Tax:        decPtr("10"),
	})
	sub := subcategory.NewSubCategory("Juices", "img", "Fresh", parent, subcategory.TaxOverride{})
	return parent, sub
}

func TestNewItemDerivesTotalAndIgnoresParentTax(t *testing.T) {
	parent, sub := fixtures()

	it := NewItem(NewItemParams{
		Name:        "Orange Juice",
		Image:       "img",
		Description: "Fresh",
		Category:    parent,
		SubCategory: sub,
		BaseAmount:  dec("100"),
		Discount:    decPtr("15"),
	})

	assert.True(t, identifier.IsObjectID(it.ID))
	assert.True(t, dec("85").Equal(it.TotalAmount), "total = %s", it.TotalAmount)
	assert.False(t, it.TaxApplicability)
	assert.True(t, it.Tax.IsZero())
	require.NotNil(t, it.SubCategoryID)
	assert.Equal(t, sub.ID, *it.SubCategoryID)
	assert.Equal(t, "Juices", it.SubCategory.Name)
	assert.Equal(t, "Beverages", it.Category.Name)
}

func TestNewItemTax(t *testing.T) {
	parent, _ := fixtures()

	base := NewItemParams{Name: "Water", Image: "i", Description: "d", Category: parent, BaseAmount: dec("1")}

	notTaxed := base
	notTaxed.Tax = decPtr("5")
	assert.True(t, NewItem(notTaxed).Tax.IsZero())

	taxed := base
	taxed.TaxApplicability = boolPtr(true)
	taxed.Tax = decPtr("5")
	assert.True(t, dec("5").Equal(NewItem(taxed).Tax))

	noDiscount := NewItem(base)
	assert.True(t, noDiscount.Discount.IsZero())
	assert.True(t, dec("1").Equal(noDiscount.TotalAmount))
	assert.Nil(t, noDiscount.SubCategoryID)
}

func TestApplyRecomputesTotal(t *testing.T) {
	tests := []struct {
		base, discount *decimal.Decimal
		want           string
	}{
		{nil, nil, "85"},
		{decPtr("200"), nil, "185"},
		{nil, decPtr("40"), "60"},
		{decPtr("50"), decPtr("5.5"), "44.5"},
		{decPtr("10"), decPtr("25"), "-15"},
	}

	parent, _ := fixtures()
	for i, tt := range tests {
		t.Run(fmt.Sprintf("case %d", i), func(t *testing.T) {
			it := NewItem(NewItemParams{
				Name: "Orange Juice", Image: "i", Description: "d",
				Category:   parent,
				BaseAmount: dec("100"),
				Discount:   decPtr("15"),
			})

			it.Apply(Changes{BaseAmount: tt.base, Discount: tt.discount})

			assert.True(t, dec(tt.want).Equal(it.TotalAmount), "total = %s", it.TotalAmount)
			assert.True(t, it.BaseAmount.Sub(it.Discount).Equal(it.TotalAmount))
		})
	}
}

func TestApplyReferences(t *testing.T) {
	parent, sub := fixtures()
	other := category.NewCategory("Snacks", "img", "Food", category.TaxPolicy{})

	it := NewItem(NewItemParams{Name: "Chips", Image: "i", Description: "d", Category: parent, SubCategory: sub, BaseAmount: dec("3")})

	it.Apply(Changes{Category: other, ClearSubCategory: true})

	assert.Equal(t, other.ID, it.CategoryID)
	assert.Equal(t, "Snacks", it.Category.Name)
	assert.Nil(t, it.SubCategoryID)
	assert.Nil(t, it.SubCategory)
}

func TestApplyTurningTaxOffZeroesIt(t *testing.T) {
	parent, _ := fixtures()
	it := NewItem(NewItemParams{
		Name: "Water", Image: "i", Description: "d", Category: parent, BaseAmount: dec("1"),
		TaxApplicability: boolPtr(true), Tax: decPtr("5"),
	})

	it.Apply(Changes{TaxApplicability: boolPtr(false)})

	assert.False(t, it.TaxApplicability)
	assert.True(t, it.Tax.IsZero())
}

func TestCreateItemReqValidate(t *testing.T) {
	valid := CreateItemReq{Name: "Water", Image: "i", Description: "d", CategoryID: "x", BaseAmount: decPtr("1")}
	assert.NoError(t, valid.Validate())

	missingBase := valid
	missingBase.BaseAmount = nil
	assert.Error(t, missingBase.Validate())

	negativeDiscount := valid
	negativeDiscount.Discount = decPtr("-1")
	assert.Error(t, negativeDiscount.Validate())

	// Discount above the base amount is allowed; the total goes negative.
	bigDiscount := valid
	bigDiscount.Discount = decPtr("5")
	assert.NoError(t, bigDiscount.Validate())
}

func TestCreateItemReqNormalizeDropsBlankSubCategory(t *testing.T) {
	blank := "  "
	req := CreateItemReq{Name: " Water ", SubCategoryID: &blank}

	req.Normalize()

	assert.Equal(t, "Water", req.Name)
	assert.Nil(t, req.SubCategoryID)
}
