package repository

import (
	"context"
	"errors"
	"fmt"

	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/domains/subcategory"
	"catalog-backend/internal/infrastructure/database"
	"catalog-backend/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	constraintNameCategory = "sub_categories_name_category_key"
	constraintCategoryFK   = "sub_categories_category_id_fkey"
)

// selectJoined reads from a relation aliased "s" joined with its category.
const selectJoined = `
	SELECT s.id, s.name, s.image, s.description, s.category_id,
	       s.tax_applicability, s.tax, s.created_at, s.updated_at,
	       c.name
`

// PostgresRepository also serves as the category delete guard's sub-category counter.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		pool: pool,
	}
}

var _ subcategory.SubCategoryRepository = (*PostgresRepository)(nil)
var _ category.DependentCounter = (*PostgresRepository)(nil)

func scanSubCategory(row pgx.Row) (*subcategory.SubCategory, error) {
	s := &subcategory.SubCategory{}
	var categoryName string
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Image,
		&s.Description,
		&s.CategoryID,
		&s.TaxApplicability,
		&s.Tax,
		&s.CreatedAt,
		&s.UpdatedAt,
		&categoryName,
	)
	if err != nil {
		return nil, err
	}
	s.Category = &category.Ref{ID: s.CategoryID, Name: categoryName}
	return s, nil
}

func collect(rows pgx.Rows) ([]subcategory.SubCategory, error) {
	defer rows.Close()

	list := make([]subcategory.SubCategory, 0)
	for rows.Next() {
		s, err := scanSubCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sub-category: %w", err)
		}
		list = append(list, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sub-categories: %w", err)
	}
	return list, nil
}

func (r *PostgresRepository) mapWriteError(op string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return subcategory.ErrSubCategoryNotFound
	case database.IsUniqueViolation(err, constraintNameCategory):
		return subcategory.ErrDuplicateName
	case database.IsForeignKeyViolation(err, constraintCategoryFK):
		return subcategory.ErrParentNotFound
	}
	logger.Error("sub-category "+op+": database error", err)
	return fmt.Errorf("failed to %s sub-category: %w", op, err)
}

func (r *PostgresRepository) Create(ctx context.Context, entity *subcategory.SubCategory) (*subcategory.SubCategory, error) {
	query := `
		WITH s AS (
			INSERT INTO sub_categories (
				id, name, image, description, category_id,
				tax_applicability, tax, created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING *
		)` + selectJoined + `
		FROM s
		JOIN categories c ON c.id = s.category_id`

	created, err := scanSubCategory(r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.Name,
		entity.Image,
		entity.Description,
		entity.CategoryID,
		entity.TaxApplicability,
		entity.Tax,
		entity.CreatedAt,
		entity.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, subcategory.ErrParentNotFound
		}
		return nil, r.mapWriteError("create", err)
	}
	return created, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*subcategory.SubCategory, error) {
	query := selectJoined + `
		FROM sub_categories s
		JOIN categories c ON c.id = s.category_id
		WHERE s.id = $1`

	s, err := scanSubCategory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, subcategory.ErrSubCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get sub-category %s: %w", id, err)
	}
	return s, nil
}

func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*subcategory.SubCategory, error) {
	query := selectJoined + `
		FROM sub_categories s
		JOIN categories c ON c.id = s.category_id
		WHERE LOWER(s.name) = LOWER($1)
		ORDER BY s.created_at ASC
		LIMIT 1`

	s, err := scanSubCategory(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, subcategory.ErrSubCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get sub-category by name: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]subcategory.SubCategory, error) {
	query := selectJoined + `
		FROM sub_categories s
		JOIN categories c ON c.id = s.category_id
		ORDER BY s.created_at DESC, s.id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sub-categories: %w", err)
	}
	return collect(rows)
}

func (r *PostgresRepository) ListByCategory(ctx context.Context, categoryID string) ([]subcategory.SubCategory, error) {
	query := selectJoined + `
		FROM sub_categories s
		JOIN categories c ON c.id = s.category_id
		WHERE s.category_id = $1
		ORDER BY s.created_at DESC, s.id DESC`

	rows, err := r.pool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sub-categories of %s: %w", categoryID, err)
	}
	return collect(rows)
}

func (r *PostgresRepository) Update(ctx context.Context, entity *subcategory.SubCategory) (*subcategory.SubCategory, error) {
	query := `
		WITH s AS (
			UPDATE sub_categories
			SET name = $2,
				image = $3,
				description = $4,
				category_id = $5,
				tax_applicability = $6,
				tax = $7,
				updated_at = $8
			WHERE id = $1
			RETURNING *
		)` + selectJoined + `
		FROM s
		JOIN categories c ON c.id = s.category_id`

	updated, err := scanSubCategory(r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.Name,
		entity.Image,
		entity.Description,
		entity.CategoryID,
		entity.TaxApplicability,
		entity.Tax,
		entity.UpdatedAt,
	))
	if err != nil {
		if database.IsForeignKeyViolation(err, constraintCategoryFK) {
			return nil, subcategory.ErrNewParentNotFound
		}
		return nil, r.mapWriteError("update", err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sub_categories WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return subcategory.ErrHasItems
		}
		return fmt.Errorf("failed to delete sub-category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return subcategory.ErrSubCategoryNotFound
	}
	return nil
}

func (r *PostgresRepository) ExistsByNameInCategory(ctx context.Context, name, categoryID, excludeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM sub_categories WHERE name = $1 AND category_id = $2 AND id <> $3)`,
		name, categoryID, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check sub-category name: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM sub_categories WHERE category_id = $1`, categoryID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count sub-categories: %w", err)
	}
	return n, nil
}
