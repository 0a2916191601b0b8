package category

import (
	"strings"
	"time"

	"catalog-backend/internal/shared/apperror"
	"catalog-backend/internal/shared/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// ============================================================
// REQUEST DTOs
// ============================================================

type CreateCategoryReq struct {
	Name             string           `json:"name"`
	Image            string           `json:"image"`
	Description      string           `json:"description"`
	TaxApplicability *bool            `json:"taxApplicability"`
	Tax              *decimal.Decimal `json:"tax"`
	TaxType          *TaxType         `json:"taxType"`
}

func (r *CreateCategoryReq) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Image = strings.TrimSpace(r.Image)
	r.Description = strings.TrimSpace(r.Description)
}

func (r CreateCategoryReq) Validate() error {
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Image, validation.Required),
		validation.Field(&r.Description, validation.Required),
	); err != nil {
		return apperror.Wrap(apperror.KindValidation, MsgRequiredFields, err)
	}

	if err := validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, 255).Error("Category name must not exceed 255 characters")),
		validation.Field(&r.Tax, utils.DecimalRange(decimal.Zero, MaxTax, "Tax must be between 0 and 100")),
		validation.Field(&r.TaxType, validation.In(TaxTypePercentage, TaxTypeFixed, TaxTypeNone).
			Error("Tax type must be one of percentage, fixed, none")),
	); err != nil {
		return apperror.Wrap(apperror.KindValidation, MsgInvalidCategory, err)
	}

	return nil
}

func (r *CreateCategoryReq) TaxPolicy() TaxPolicy {
	return TaxPolicy{Applicable: r.TaxApplicability, Tax: r.Tax, Type: r.TaxType}
}

// UpdateCategoryReq: every field optional, nil means "keep".
type UpdateCategoryReq struct {
	Name             *string          `json:"name"`
	Image            *string          `json:"image"`
	Description      *string          `json:"description"`
	TaxApplicability *bool            `json:"taxApplicability"`
	Tax              *decimal.Decimal `json:"tax"`
	TaxType          *TaxType         `json:"taxType"`
}

func (r UpdateCategoryReq) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.When(r.Name != nil, validation.By(notBlank("Category name cannot be empty"))),
			validation.Length(0, 255).Error("Category name must not exceed 255 characters"),
		),
		validation.Field(&r.Image, validation.When(r.Image != nil, validation.By(notBlank("Category image cannot be empty")))),
		validation.Field(&r.Description, validation.When(r.Description != nil, validation.By(notBlank("Category description cannot be empty")))),
		validation.Field(&r.Tax, utils.DecimalRange(decimal.Zero, MaxTax, "Tax must be between 0 and 100")),
		validation.Field(&r.TaxType, validation.In(TaxTypePercentage, TaxTypeFixed, TaxTypeNone).
			Error("Tax type must be one of percentage, fixed, none")),
	)
	if err != nil {
		return apperror.Wrap(apperror.KindValidation, MsgInvalidCategory, err)
	}
	return nil
}

func (r *UpdateCategoryReq) Changes() Changes {
	return Changes{
		Name:        r.Name,
		Image:       r.Image,
		Description: r.Description,
		Tax:         TaxPolicy{Applicable: r.TaxApplicability, Tax: r.Tax, Type: r.TaxType},
	}
}

func notBlank(message string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(*string)
		if s != nil && strings.TrimSpace(*s) == "" {
			return validation.NewError("validation_blank", message)
		}
		return nil
	}
}

// ============================================================
// RESPONSE DTOs
// ============================================================

type CategoryResp struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Image            string          `json:"image"`
	Description      string          `json:"description"`
	TaxApplicability bool            `json:"taxApplicability"`
	Tax              decimal.Decimal `json:"tax"`
	TaxType          TaxType         `json:"taxType"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

func CategoryToResp(c *Category) *CategoryResp {
	if c == nil {
		return nil
	}
	return &CategoryResp{
		ID:               c.ID,
		Name:             c.Name,
		Image:            c.Image,
		Description:      c.Description,
		TaxApplicability: c.TaxApplicability,
		Tax:              c.Tax,
		TaxType:          c.TaxType,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func CategoriesToResp(list []Category) []CategoryResp {
	out := make([]CategoryResp, 0, len(list))
	for i := range list {
		out = append(out, *CategoryToResp(&list[i]))
	}
	return out
}
