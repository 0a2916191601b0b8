package category

import "context"

// CategoryRepository is the persistence contract for categories.
// Lookups return ErrCategoryNotFound when no row matches.
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) (*Category, error)

	GetByID(ctx context.Context, id string) (*Category, error)

	// GetByName matches case-insensitively on the full name.
	GetByName(ctx context.Context, name string) (*Category, error)

	// List returns every category, newest first.
	List(ctx context.Context) ([]Category, error)

	Update(ctx context.Context, category *Category) (*Category, error)

	Delete(ctx context.Context, id string) error

	ExistsByID(ctx context.Context, id string) (bool, error)

	// ExistsByName is an exact match. excludeID skips the row being updated.
	ExistsByName(ctx context.Context, name string, excludeID string) (bool, error)
}

// DependentCounter is implemented by the repositories whose rows point at a
// category. The delete guard sums their counts.
type DependentCounter interface {
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
}
