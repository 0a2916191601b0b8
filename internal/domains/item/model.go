package item

import (
	"strings"
	"time"

	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/domains/subcategory"
	"catalog-backend/internal/shared/identifier"
	"catalog-backend/internal/shared/utils"

	"github.com/shopspring/decimal"
)

// ============================================================
// ENTITY: Item
// ============================================================
// Leaf of the catalog. Always under a category, optionally under one of
// that category's sub-categories.
//
// Tax is set on the item itself; nothing is inherited from the parents.
// TotalAmount is derived: BaseAmount - Discount. It may go negative when the
// discount exceeds the base amount.

type Item struct {
	ID               string
	Name             string
	Image            string
	Description      string
	CategoryID       string
	SubCategoryID    *string
	TaxApplicability bool
	Tax              decimal.Decimal
	BaseAmount       decimal.Decimal
	Discount         decimal.Decimal
	TotalAmount      decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Populated by read queries.
	Category    *category.Ref
	SubCategory *subcategory.Ref
}

// TotalAmount is the only way a total is produced.
func TotalAmount(base, discount decimal.Decimal) decimal.Decimal {
	return base.Sub(discount)
}

// effectiveTax zeroes the tax of items that are not taxed.
func effectiveTax(applicable bool, tax decimal.Decimal) decimal.Decimal {
	if !applicable {
		return decimal.Zero
	}
	return tax
}

type NewItemParams struct {
	Name             string
	Image            string
	Description      string
	Category         *category.Category
	SubCategory      *subcategory.SubCategory // nil when the item hangs off the category directly
	TaxApplicability *bool
	Tax              *decimal.Decimal
	BaseAmount       decimal.Decimal
	Discount         *decimal.Decimal
}

func NewItem(p NewItemParams) *Item {
	applicable := utils.BoolOr(p.TaxApplicability, false)
	tax := utils.DecimalOrZero(p.Tax)
	discount := utils.DecimalOrZero(p.Discount)

	now := time.Now()
	it := &Item{
		ID:               identifier.New(),
		Name:             strings.TrimSpace(p.Name),
		Image:            strings.TrimSpace(p.Image),
		Description:      strings.TrimSpace(p.Description),
		CategoryID:       p.Category.ID,
		TaxApplicability: applicable,
		Tax:              effectiveTax(applicable, tax),
		BaseAmount:       p.BaseAmount,
		Discount:         discount,
		TotalAmount:      TotalAmount(p.BaseAmount, discount),
		CreatedAt:        now,
		UpdatedAt:        now,
		Category:         p.Category.Ref(),
	}

	if p.SubCategory != nil {
		subID := p.SubCategory.ID
		it.SubCategoryID = &subID
		it.SubCategory = p.SubCategory.Ref()
	}

	return it
}

// Changes is a partial update. References are resolved by the service
// before Apply runs; Apply never checks them.
type Changes struct {
	Name             *string
	Image            *string
	Description      *string
	TaxApplicability *bool
	Tax              *decimal.Decimal
	BaseAmount       *decimal.Decimal
	Discount         *decimal.Decimal

	Category         *category.Category       // new parent, nil keeps the current one
	SubCategory      *subcategory.SubCategory // new sub-category, nil keeps the current one
	ClearSubCategory bool                     // detach from any sub-category
}

// Apply merges the changes and recomputes the derived fields. A missing
// amount keeps its pre-update value in the total.
func (it *Item) Apply(ch Changes) {
	if ch.Name != nil {
		it.Name = strings.TrimSpace(*ch.Name)
	}
	if ch.Image != nil {
		it.Image = strings.TrimSpace(*ch.Image)
	}
	if ch.Description != nil {
		it.Description = strings.TrimSpace(*ch.Description)
	}

	if ch.TaxApplicability != nil {
		it.TaxApplicability = *ch.TaxApplicability
	}
	if ch.Tax != nil {
		it.Tax = *ch.Tax
	}
	it.Tax = effectiveTax(it.TaxApplicability, it.Tax)

	if ch.BaseAmount != nil {
		it.BaseAmount = *ch.BaseAmount
	}
	if ch.Discount != nil {
		it.Discount = *ch.Discount
	}
	it.TotalAmount = TotalAmount(it.BaseAmount, it.Discount)

	if ch.Category != nil {
		it.CategoryID = ch.Category.ID
		it.Category = ch.Category.Ref()
	}
	switch {
	case ch.ClearSubCategory:
		it.SubCategoryID = nil
		it.SubCategory = nil
	case ch.SubCategory != nil:
		subID := ch.SubCategory.ID
		it.SubCategoryID = &subID
		it.SubCategory = ch.SubCategory.Ref()
	}

	it.UpdatedAt = time.Now()
}
