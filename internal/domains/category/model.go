package category

import (
	"strings"
	"time"

	"catalog-backend/internal/shared/identifier"

	"github.com/shopspring/decimal"
)

// ============================================================
// ENTITY: Category
// ============================================================
// Root of the catalog tree. Owns sub-categories and items directly.
//
// DATABASE MAPPING:
// ┌──────────────────────────────────┐
// │         categories table          │
// ├──────────────────────────────────┤
// │ id (TEXT, 24 hex) - PRIMARY KEY  │
// │ name (TEXT) - UNIQUE             │
// │ image, description (TEXT)        │
// │ tax_applicability (BOOL)         │
// │ tax (NUMERIC 0..100)             │
// │ tax_type (percentage|fixed|none) │
// │ created_at, updated_at           │
// └──────────────────────────────────┘

type TaxType string

const (
	TaxTypePercentage TaxType = "percentage"
	TaxTypeFixed      TaxType = "fixed"
	TaxTypeNone       TaxType = "none"
)

func (t TaxType) Valid() bool {
	switch t {
	case TaxTypePercentage, TaxTypeFixed, TaxTypeNone:
		return true
	}
	return false
}

var MaxTax = decimal.NewFromInt(100)

type Category struct {
	ID               string
	Name             string
	Image            string
	Description      string
	TaxApplicability bool
	Tax              decimal.Decimal
	TaxType          TaxType
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TaxPolicy carries the optional tax fields of a request. Nil means the
// caller did not send the field.
type TaxPolicy struct {
	Applicable *bool
	Tax        *decimal.Decimal
	Type       *TaxType
}

// NewCategory builds a category with a normalized tax policy:
//   - not applicable: tax 0, type none
//   - applicable: supplied tax or 0, supplied type or percentage
func NewCategory(name, image, description string, policy TaxPolicy) *Category {
	now := time.Now()
	c := &Category{
		ID:          identifier.New(),
		Name:        strings.TrimSpace(name),
		Image:       strings.TrimSpace(image),
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	c.TaxApplicability = policy.Applicable != nil && *policy.Applicable
	if !c.TaxApplicability {
		c.Tax = decimal.Zero
		c.TaxType = TaxTypeNone
		return c
	}

	c.Tax = decimal.Zero
	if policy.Tax != nil {
		c.Tax = *policy.Tax
	}
	c.TaxType = TaxTypePercentage
	if policy.Type != nil {
		c.TaxType = *policy.Type
	}
	return c
}

// Changes is a partial update. Nil fields stay untouched.
type Changes struct {
	Name        *string
	Image       *string
	Description *string
	Tax         TaxPolicy
}

// Apply merges the changes and re-normalizes the tax policy. Turning tax
// off zeroes it; turning it on while the type is still "none" picks
// percentage unless a type was sent with the same request.
func (c *Category) Apply(ch Changes) {
	if ch.Name != nil {
		c.Name = strings.TrimSpace(*ch.Name)
	}
	if ch.Image != nil {
		c.Image = strings.TrimSpace(*ch.Image)
	}
	if ch.Description != nil {
		c.Description = strings.TrimSpace(*ch.Description)
	}

	if ch.Tax.Applicable != nil {
		c.TaxApplicability = *ch.Tax.Applicable
	}
	if ch.Tax.Tax != nil {
		c.Tax = *ch.Tax.Tax
	}
	if ch.Tax.Type != nil {
		c.TaxType = *ch.Tax.Type
	}

	if !c.TaxApplicability {
		c.Tax = decimal.Zero
		c.TaxType = TaxTypeNone
	} else if c.TaxType == TaxTypeNone && ch.Tax.Type == nil {
		c.TaxType = TaxTypePercentage
	}

	c.UpdatedAt = time.Now()
}

// Ref is the compact form embedded in sub-category and item views.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c *Category) Ref() *Ref {
	return &Ref{ID: c.ID, Name: c.Name}
}
