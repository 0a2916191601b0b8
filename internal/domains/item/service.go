package item

import (
	"context"

	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/domains/subcategory"
)

type ItemService interface {
	// Create checks both references before anything is written.
	Create(ctx context.Context, req *CreateItemReq) (*ItemResp, error)

	List(ctx context.Context) ([]ItemResp, error)

	ListByCategory(ctx context.Context, categoryID string) (*category.Ref, []ItemResp, error)

	// ListBySubCategory returns the sub-category and its parent for labelling.
	ListBySubCategory(ctx context.Context, subCategoryID string) (*category.Ref, *subcategory.Ref, []ItemResp, error)

	Search(ctx context.Context, name string) ([]ItemResp, error)

	Get(ctx context.Context, identifier string) (*ItemResp, error)

	Update(ctx context.Context, id string, req *UpdateItemReq) (*ItemResp, error)

	Delete(ctx context.Context, id string) error
}
