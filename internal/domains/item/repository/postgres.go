package repository

import (
	"context"
	"errors"
	"fmt"

	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/domains/item"
	"catalog-backend/internal/domains/subcategory"
	"catalog-backend/internal/infrastructure/database"
	"catalog-backend/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	constraintCategoryFK    = "items_category_id_fkey"
	constraintSubCategoryFK = "items_sub_category_id_fkey"
)

// selectJoined reads from a relation aliased "i" with both parents joined.
const selectJoined = `
	SELECT i.id, i.name, i.image, i.description,
	       i.category_id, i.sub_category_id,
	       i.tax_applicability, i.tax,
	       i.base_amount, i.discount, i.total_amount,
	       i.created_at, i.updated_at,
	       c.name, s.name
`

const fromJoined = `
	JOIN categories c ON c.id = i.category_id
	LEFT JOIN sub_categories s ON s.id = i.sub_category_id
`

// PostgresRepository also counts items for the category and sub-category
// delete guards.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		pool: pool,
	}
}

var (
	_ item.ItemRepository       = (*PostgresRepository)(nil)
	_ category.DependentCounter = (*PostgresRepository)(nil)
	_ subcategory.ItemCounter   = (*PostgresRepository)(nil)
)

func scanItem(row pgx.Row) (*item.Item, error) {
	it := &item.Item{}
	var (
		categoryName    string
		subCategoryName *string
	)
	err := row.Scan(
		&it.ID,
		&it.Name,
		&it.Image,
		&it.Description,
		&it.CategoryID,
		&it.SubCategoryID,
		&it.TaxApplicability,
		&it.Tax,
		&it.BaseAmount,
		&it.Discount,
		&it.TotalAmount,
		&it.CreatedAt,
		&it.UpdatedAt,
		&categoryName,
		&subCategoryName,
	)
	if err != nil {
		return nil, err
	}

	it.Category = &category.Ref{ID: it.CategoryID, Name: categoryName}
	if it.SubCategoryID != nil && subCategoryName != nil {
		it.SubCategory = &subcategory.Ref{ID: *it.SubCategoryID, Name: *subCategoryName}
	}
	return it, nil
}

func collect(rows pgx.Rows) ([]item.Item, error) {
	defer rows.Close()

	list := make([]item.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		list = append(list, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return list, nil
}

func (r *PostgresRepository) mapWriteError(op string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return item.ErrItemNotFound
	case database.IsForeignKeyViolation(err, constraintCategoryFK):
		return category.ErrCategoryNotFound
	case database.IsForeignKeyViolation(err, constraintSubCategoryFK):
		return item.ErrSubCategoryMismatch
	}
	logger.Error("item "+op+": database error", err)
	return fmt.Errorf("failed to %s item: %w", op, err)
}

func (r *PostgresRepository) Create(ctx context.Context, entity *item.Item) (*item.Item, error) {
	query := `
		WITH i AS (
			INSERT INTO items (
				id, name, image, description,
				category_id, sub_category_id,
				tax_applicability, tax,
				base_amount, discount, total_amount,
				created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING *
		)` + selectJoined + `
		FROM i` + fromJoined

	created, err := scanItem(r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.Name,
		entity.Image,
		entity.Description,
		entity.CategoryID,
		entity.SubCategoryID,
		entity.TaxApplicability,
		entity.Tax,
		entity.BaseAmount,
		entity.Discount,
		entity.TotalAmount,
		entity.CreatedAt,
		entity.UpdatedAt,
	))
	if err != nil {
		return nil, r.mapWriteError("create", err)
	}
	return created, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*item.Item, error) {
	query := selectJoined + `FROM items i` + fromJoined + `WHERE i.id = $1`

	it, err := scanItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, item.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item %s: %w", id, err)
	}
	return it, nil
}

func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*item.Item, error) {
	query := selectJoined + `FROM items i` + fromJoined + `
		WHERE LOWER(i.name) = LOWER($1)
		ORDER BY i.created_at ASC
		LIMIT 1`

	it, err := scanItem(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, item.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item by name: %w", err)
	}
	return it, nil
}

func (r *PostgresRepository) list(ctx context.Context, what, where string, args ...interface{}) ([]item.Item, error) {
	query := selectJoined + `FROM items i` + fromJoined + where + `
		ORDER BY i.created_at DESC, i.id DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items%s: %w", what, err)
	}
	return collect(rows)
}

func (r *PostgresRepository) List(ctx context.Context) ([]item.Item, error) {
	return r.list(ctx, "", "")
}

func (r *PostgresRepository) ListByCategory(ctx context.Context, categoryID string) ([]item.Item, error) {
	return r.list(ctx, " of category "+categoryID, `WHERE i.category_id = $1`, categoryID)
}

func (r *PostgresRepository) ListBySubCategory(ctx context.Context, subCategoryID string) ([]item.Item, error) {
	return r.list(ctx, " of sub-category "+subCategoryID, `WHERE i.sub_category_id = $1`, subCategoryID)
}

func (r *PostgresRepository) Search(ctx context.Context, name string) ([]item.Item, error) {
	pattern := "%" + database.EscapeLike(name) + "%"
	return r.list(ctx, " by name", `WHERE i.name ILIKE $1 ESCAPE '\'`, pattern)
}

func (r *PostgresRepository) Update(ctx context.Context, entity *item.Item) (*item.Item, error) {
	query := `
		WITH i AS (
			UPDATE items
			SET name = $2,
				image = $3,
				description = $4,
				category_id = $5,
				sub_category_id = $6,
				tax_applicability = $7,
				tax = $8,
				base_amount = $9,
				discount = $10,
				total_amount = $11,
				updated_at = $12
			WHERE id = $1
			RETURNING *
		)` + selectJoined + `
		FROM i` + fromJoined

	updated, err := scanItem(r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.Name,
		entity.Image,
		entity.Description,
		entity.CategoryID,
		entity.SubCategoryID,
		entity.TaxApplicability,
		entity.Tax,
		entity.BaseAmount,
		entity.Discount,
		entity.TotalAmount,
		entity.UpdatedAt,
	))
	if err != nil {
		return nil, r.mapWriteError("update", err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return item.ErrItemNotFound
	}
	return nil
}

func (r *PostgresRepository) count(ctx context.Context, column, id string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM items WHERE `+column+` = $1`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count items by %s: %w", column, err)
	}
	return n, nil
}

func (r *PostgresRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	return r.count(ctx, "category_id", categoryID)
}

func (r *PostgresRepository) CountBySubCategory(ctx context.Context, subCategoryID string) (int64, error) {
	return r.count(ctx, "sub_category_id", subCategoryID)
}
