package repository

import (
	"context"
	"errors"
	"fmt"

	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/infrastructure/database"
	"catalog-backend/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	constraintUniqueName = "categories_name_key"
	columns              = `id, name, image, description, tax_applicability, tax, tax_type, created_at, updated_at`
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) category.CategoryRepository {
	return &postgresRepository{
		pool: pool,
	}
}

func scanCategory(row pgx.Row) (*category.Category, error) {
	c := &category.Category{}
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Image,
		&c.Description,
		&c.TaxApplicability,
		&c.Tax,
		&c.TaxType,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepository) Create(ctx context.Context, entity *category.Category) (*category.Category, error) {
	const query = `
		INSERT INTO categories (
			id, name, image, description,
			tax_applicability, tax, tax_type,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + columns

	created, err := scanCategory(r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.Name,
		entity.Image,
		entity.Description,
		entity.TaxApplicability,
		entity.Tax,
		entity.TaxType,
		entity.CreatedAt,
		entity.UpdatedAt,
	))
	if err != nil {
		if database.IsUniqueViolation(err, constraintUniqueName) {
			return nil, category.ErrDuplicateName
		}
		logger.Error("category Create: database error", err)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*category.Category, error) {
	query := `SELECT ` + columns + ` FROM categories WHERE id = $1`

	c, err := scanCategory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category %s: %w", id, err)
	}
	return c, nil
}

func (r *postgresRepository) GetByName(ctx context.Context, name string) (*category.Category, error) {
	query := `
		SELECT ` + columns + `
		FROM categories
		WHERE LOWER(name) = LOWER($1)
		ORDER BY created_at ASC
		LIMIT 1`

	c, err := scanCategory(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by name: %w", err)
	}
	return c, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]category.Category, error) {
	query := `SELECT ` + columns + ` FROM categories ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]category.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}

func (r *postgresRepository) Update(ctx context.Context, entity *category.Category) (*category.Category, error) {
	const query = `
		UPDATE categories
		SET name = $2,
			image = $3,
			description = $4,
			tax_applicability = $5,
			tax = $6,
			tax_type = $7,
			updated_at = $8
		WHERE id = $1
		RETURNING ` + columns

	updated, err := scanCategory(r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.Name,
		entity.Image,
		entity.Description,
		entity.TaxApplicability,
		entity.Tax,
		entity.TaxType,
		entity.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		if database.IsUniqueViolation(err, constraintUniqueName) {
			return nil, category.ErrDuplicateName
		}
		logger.Error("category Update: database error", err)
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		// A child inserted after the guard ran still blocks the delete here.
		if database.IsForeignKeyViolation(err) {
			return category.ErrHasDependents
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) ExistsByName(ctx context.Context, name string, excludeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1 AND id <> $2)`,
		name, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}
	return exists, nil
}
