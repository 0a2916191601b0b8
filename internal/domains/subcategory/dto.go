package subcategory

import (
	"strings"
	"time"

	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/shared/apperror"
	"catalog-backend/internal/shared/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

type CreateSubCategoryReq struct {
	Name             string           `json:"name"`
	Image            string           `json:"image"`
	Description      string           `json:"description"`
	CategoryID       string           `json:"categoryId"`
	TaxApplicability *bool            `json:"taxApplicability"`
	Tax              *decimal.Decimal `json:"tax"`
}

func (r *CreateSubCategoryReq) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Image = strings.TrimSpace(r.Image)
	r.Description = strings.TrimSpace(r.Description)
	r.CategoryID = strings.TrimSpace(r.CategoryID)
}

func (r CreateSubCategoryReq) Validate() error {
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Image, validation.Required),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.CategoryID, validation.Required),
	); err != nil {
		return apperror.Wrap(apperror.KindValidation, MsgRequiredFields, err)
	}

	if err := validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, 255).Error("Sub-category name must not exceed 255 characters")),
		validation.Field(&r.Tax, utils.DecimalRange(decimal.Zero, category.MaxTax, "Tax must be between 0 and 100")),
	); err != nil {
		return apperror.Wrap(apperror.KindValidation, MsgInvalidSubCategory, err)
	}

	return nil
}

func (r *CreateSubCategoryReq) TaxOverride() TaxOverride {
	return TaxOverride{Applicable: r.TaxApplicability, Tax: r.Tax}
}

type UpdateSubCategoryReq struct {
	Name             *string          `json:"name"`
	Image            *string          `json:"image"`
	Description      *string          `json:"description"`
	CategoryID       *string          `json:"categoryId"`
	TaxApplicability *bool            `json:"taxApplicability"`
	Tax              *decimal.Decimal `json:"tax"`
}

func (r UpdateSubCategoryReq) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.When(r.Name != nil, validation.By(notBlank("Sub-category name cannot be empty"))),
			validation.Length(0, 255).Error("Sub-category name must not exceed 255 characters"),
		),
		validation.Field(&r.Image, validation.When(r.Image != nil, validation.By(notBlank("Sub-category image cannot be empty")))),
		validation.Field(&r.Description, validation.When(r.Description != nil, validation.By(notBlank("Sub-category description cannot be empty")))),
		validation.Field(&r.CategoryID, validation.When(r.CategoryID != nil, validation.By(notBlank("categoryId cannot be empty")))),
		validation.Field(&r.Tax, utils.DecimalRange(decimal.Zero, category.MaxTax, "Tax must be between 0 and 100")),
	)
	if err != nil {
		return apperror.Wrap(apperror.KindValidation, MsgInvalidSubCategory, err)
	}
	return nil
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

type SubCategoryResp struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Image            string          `json:"image"`
	Description      string          `json:"description"`
	CategoryID       string          `json:"categoryId"`
	Category         *category.Ref   `json:"category,omitempty"`
	TaxApplicability bool            `json:"taxApplicability"`
	Tax              decimal.Decimal `json:"tax"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

func SubCategoryToResp(s *SubCategory) *SubCategoryResp {
	if s == nil {
		return nil
	}
	return &SubCategoryResp{
		ID:               s.ID,
		Name:             s.Name,
		Image:            s.Image,
		Description:      s.Description,
		CategoryID:       s.CategoryID,
		Category:         s.Category,
		TaxApplicability: s.TaxApplicability,
		Tax:              s.Tax,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func SubCategoriesToResp(list []SubCategory) []SubCategoryResp {
	out := make([]SubCategoryResp, 0, len(list))
	for i := range list {
		out = append(out, *SubCategoryToResp(&list[i]))
	}
	return out
}
