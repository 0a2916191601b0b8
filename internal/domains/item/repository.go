package item

import (
	"context"

	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/domains/subcategory"
)

// ItemRepository persists items. Reads populate the Category and
// SubCategory references.
type ItemRepository interface {
	Create(ctx context.Context, item *Item) (*Item, error)

	GetByID(ctx context.Context, id string) (*Item, error)

	// GetByName matches case-insensitively, oldest first.
	GetByName(ctx context.Context, name string) (*Item, error)

	List(ctx context.Context) ([]Item, error)

	ListByCategory(ctx context.Context, categoryID string) ([]Item, error)

	ListBySubCategory(ctx context.Context, subCategoryID string) ([]Item, error)

	// Search is a case-insensitive substring match on the name.
	Search(ctx context.Context, name string) ([]Item, error)

	Update(ctx context.Context, item *Item) (*Item, error)

	Delete(ctx context.Context, id string) error

	CountByCategory(ctx context.Context, categoryID string) (int64, error)

	CountBySubCategory(ctx context.Context, subCategoryID string) (int64, error)
}

type CategoryReader interface {
	GetByID(ctx context.Context, id string) (*category.Category, error)
}

type SubCategoryReader interface {
	GetByID(ctx context.Context, id string) (*subcategory.SubCategory, error)
}
