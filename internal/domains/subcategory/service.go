package subcategory

import (
	"context"

	"catalog-backend/internal/domains/category"
)

type SubCategoryService interface {
	// Create resolves the tax settings against the parent category.
	Create(ctx context.Context, req *CreateSubCategoryReq) (*SubCategoryResp, error)

	List(ctx context.Context) ([]SubCategoryResp, error)

	// ListByCategory also returns the parent so callers can name it.
	ListByCategory(ctx context.Context, categoryID string) (*category.Ref, []SubCategoryResp, error)

	Get(ctx context.Context, identifier string) (*SubCategoryResp, error)

	Update(ctx context.Context, id string, req *UpdateSubCategoryReq) (*SubCategoryResp, error)

	Delete(ctx context.Context, id string) error
}
