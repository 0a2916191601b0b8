package category

import "context"

type CategoryService interface {
	Create(ctx context.Context, req *CreateCategoryReq) (*CategoryResp, error)

	List(ctx context.Context) ([]CategoryResp, error)

	// Get accepts either an id or a name.
	Get(ctx context.Context, identifier string) (*CategoryResp, error)

	Update(ctx context.Context, id string, req *UpdateCategoryReq) (*CategoryResp, error)

	// Delete refuses while sub-categories or items still reference the category.
	Delete(ctx context.Context, id string) error
}
