package item

import (
	"strings"
	"time"

	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/domains/subcategory"
	"catalog-backend/internal/shared/apperror"
	"catalog-backend/internal/shared/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// CreateItemReq - POST /items. totalAmount is never accepted; it is derived.
type CreateItemReq struct {
	Name             string           `json:"name"`
	Image            string           `json:"image"`
	Description      string           `json:"description"`
	CategoryID       string           `json:"categoryId"`
	SubCategoryID    *string          `json:"subCategoryId"`
	TaxApplicability *bool            `json:"taxApplicability"`
	Tax              *decimal.Decimal `json:"tax"`
	BaseAmount       *decimal.Decimal `json:"baseAmount"`
	Discount         *decimal.Decimal `json:"discount"`
}

func (r *CreateItemReq) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Image = strings.TrimSpace(r.Image)
	r.Description = strings.TrimSpace(r.Description)
	r.CategoryID = strings.TrimSpace(r.CategoryID)
	if r.SubCategoryID != nil {
		trimmed := strings.TrimSpace(*r.SubCategoryID)
		if trimmed == "" {
			r.SubCategoryID = nil
		} else {
			r.SubCategoryID = &trimmed
		}
	}
}

func (r CreateItemReq) Validate() error {
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Image, validation.Required),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.CategoryID, validation.Required),
		validation.Field(&r.BaseAmount, validation.NotNil),
	); err != nil {
		return apperror.Wrap(apperror.KindValidation, MsgRequiredFields, err)
	}

	if err := validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, 255).Error("Item name must not exceed 255 characters")),
		validation.Field(&r.BaseAmount, utils.NonNegativeDecimal("Base amount must not be negative")),
		validation.Field(&r.Discount, utils.NonNegativeDecimal("Discount must not be negative")),
		validation.Field(&r.Tax, utils.NonNegativeDecimal("Tax must not be negative")),
	); err != nil {
		return apperror.Wrap(apperror.KindValidation, MsgInvalidItem, err)
	}

	return nil
}

// UpdateItemReq - PUT /items/:id. An empty subCategoryId detaches the item
// from its sub-category.
type UpdateItemReq struct {
	Name             *string          `json:"name"`
	Image            *string          `json:"image"`
	Description      *string          `json:"description"`
	CategoryID       *string          `json:"categoryId"`
	SubCategoryID    *string          `json:"subCategoryId"`
	TaxApplicability *bool            `json:"taxApplicability"`
	Tax              *decimal.Decimal `json:"tax"`
	BaseAmount       *decimal.Decimal `json:"baseAmount"`
	Discount         *decimal.Decimal `json:"discount"`
}

func (r UpdateItemReq) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.When(r.Name != nil, validation.By(notBlank("Item name cannot be empty"))),
			validation.Length(0, 255).Error("Item name must not exceed 255 characters"),
		),
		validation.Field(&r.Image, validation.When(r.Image != nil, validation.By(notBlank("Item image cannot be empty")))),
		validation.Field(&r.Description, validation.When(r.Description != nil, validation.By(notBlank("Item description cannot be empty")))),
		validation.Field(&r.CategoryID, validation.When(r.CategoryID != nil, validation.By(notBlank("categoryId cannot be empty")))),
		validation.Field(&r.BaseAmount, utils.NonNegativeDecimal("Base amount must not be negative")),
		validation.Field(&r.Discount, utils.NonNegativeDecimal("Discount must not be negative")),
		validation.Field(&r.Tax, utils.NonNegativeDecimal("Tax must not be negative")),
	)
	if err != nil {
		return apperror.Wrap(apperror.KindValidation, MsgInvalidItem, err)
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

type ItemResp struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Image            string           `json:"image"`
	Description      string           `json:"description"`
	CategoryID       string           `json:"categoryId"`
	Category         *category.Ref    `json:"category,omitempty"`
	SubCategoryID    *string          `json:"subCategoryId"`
	SubCategory      *subcategory.Ref `json:"subCategory,omitempty"`
	TaxApplicability bool             `json:"taxApplicability"`
	Tax              decimal.Decimal  `json:"tax"`
	BaseAmount       decimal.Decimal  `json:"baseAmount"`
	Discount         decimal.Decimal  `json:"discount"`
	TotalAmount      decimal.Decimal  `json:"totalAmount"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

func ItemToResp(it *Item) *ItemResp {
	if it == nil {
		return nil
	}
	return &ItemResp{
		ID:               it.ID,
		Name:             it.Name,
		Image:            it.Image,
		Description:      it.Description,
		CategoryID:       it.CategoryID,
		Category:         it.Category,
		SubCategoryID:    it.SubCategoryID,
		SubCategory:      it.SubCategory,
		TaxApplicability: it.TaxApplicability,
		Tax:              it.Tax,
		BaseAmount:       it.BaseAmount,
		Discount:         it.Discount,
		TotalAmount:      it.TotalAmount,
		CreatedAt:        it.CreatedAt,
		UpdatedAt:        it.UpdatedAt,
	}
}

func ItemsToResp(list []Item) []ItemResp {
	out := make([]ItemResp, 0, len(list))
	for i := range list {
		out = append(out, *ItemToResp(&list[i]))
	}
	return out
}
