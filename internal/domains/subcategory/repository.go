package subcategory

import (
	"context"

	"catalog-backend/internal/domains/category"
)

// SubCategoryRepository persists sub-categories. Reads populate the
// Category reference.
type SubCategoryRepository interface {
	Create(ctx context.Context, sub *SubCategory) (*SubCategory, error)

	GetByID(ctx context.Context, id string) (*SubCategory, error)

	// GetByName matches case-insensitively; the oldest match wins when
	// several categories hold the same name.
	GetByName(ctx context.Context, name string) (*SubCategory, error)

	List(ctx context.Context) ([]SubCategory, error)

	ListByCategory(ctx context.Context, categoryID string) ([]SubCategory, error)

	Update(ctx context.Context, sub *SubCategory) (*SubCategory, error)

	Delete(ctx context.Context, id string) error

	// ExistsByNameInCategory is an exact match on (name, category).
	ExistsByNameInCategory(ctx context.Context, name, categoryID, excludeID string) (bool, error)

	CountByCategory(ctx context.Context, categoryID string) (int64, error)
}

// CategoryReader is the slice of the category repository this domain needs.
type CategoryReader interface {
	GetByID(ctx context.Context, id string) (*category.Category, error)
}

// ItemCounter counts items attached to a sub-category.
type ItemCounter interface {
	CountBySubCategory(ctx context.Context, subCategoryID string) (int64, error)
}
