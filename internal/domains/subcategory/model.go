package subcategory

import (
	"strings"
	"time"

	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/shared/identifier"

	"github.com/shopspring/decimal"
)

// ============================================================
// ENTITY: SubCategory
// ============================================================
// Middle level of the tree. Belongs to exactly one category, name unique
// within that category. Tax settings are copied from the parent when the
// sub-category is created and never follow later parent changes.

type SubCategory struct {
	ID               string
	Name             string
	Image            string
	Description      string
	CategoryID       string
	TaxApplicability bool
	Tax              decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Populated by read queries (join on categories).
	Category *category.Ref
}

// Ref is the compact form embedded in item views.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (s *SubCategory) Ref() *Ref {
	return &Ref{ID: s.ID, Name: s.Name}
}

// TaxOverride holds the optional tax fields a caller sent.
type TaxOverride struct {
	Applicable *bool
	Tax        *decimal.Decimal
}

// ResolveTax computes the effective (applicability, tax) pair from a base
// (the parent category on create, the current row on update) and the
// caller's overrides. Each field falls back to the base independently,
// except that an explicit "not applicable" without a tax yields 0 rather
// than the base tax.
func ResolveTax(baseApplicable bool, baseTax decimal.Decimal, override TaxOverride) (bool, decimal.Decimal) {
	applicable := baseApplicable
	if override.Applicable != nil {
		applicable = *override.Applicable
	}

	switch {
	case override.Tax != nil:
		return applicable, *override.Tax
	case override.Applicable != nil && !*override.Applicable:
		return applicable, decimal.Zero
	default:
		return applicable, baseTax
	}
}

// NewSubCategory snapshots the parent's tax policy into a new sub-category.
func NewSubCategory(name, image, description string, parent *category.Category, override TaxOverride) *SubCategory {
	applicable, tax := ResolveTax(parent.TaxApplicability, parent.Tax, override)

	now := time.Now()
	return &SubCategory{
		ID:               identifier.New(),
		Name:             strings.TrimSpace(name),
		Image:            strings.TrimSpace(image),
		Description:      strings.TrimSpace(description),
		CategoryID:       parent.ID,
		TaxApplicability: applicable,
		Tax:              tax,
		CreatedAt:        now,
		UpdatedAt:        now,
		Category:         parent.Ref(),
	}
}

// Changes is a partial update; nil fields stay untouched.
type Changes struct {
	Name        *string
	Image       *string
	Description *string
	Parent      *category.Category // set when the sub-category moves
	Tax         TaxOverride
}

func (s *SubCategory) Apply(ch Changes) {
	if ch.Name != nil {
		s.Name = strings.TrimSpace(*ch.Name)
	}
	if ch.Image != nil {
		s.Image = strings.TrimSpace(*ch.Image)
	}
	if ch.Description != nil {
		s.Description = strings.TrimSpace(*ch.Description)
	}
	if ch.Parent != nil {
		s.CategoryID = ch.Parent.ID
		s.Category = ch.Parent.Ref()
	}

	s.TaxApplicability, s.Tax = ResolveTax(s.TaxApplicability, s.Tax, ch.Tax)
	s.UpdatedAt = time.Now()
}
