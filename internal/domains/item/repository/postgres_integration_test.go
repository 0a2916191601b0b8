//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"catalog-backend/internal/domains/category"
	categoryRepo "catalog-backend/internal/domains/category/repository"
	"catalog-backend/internal/domains/item"
	itemRepo "catalog-backend/internal/domains/item/repository"
	"catalog-backend/internal/domains/subcategory"
	subCategoryRepo "catalog-backend/internal/domains/subcategory/repository"
	"catalog-backend/internal/infrastructure/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Relative to this package directory; go test runs with it as cwd.
const migrationsSource = "file://../../../../migrations"

func setupPostgres(t *testing.T, ctx context.Context) *pgxpool.Pool {
	t.Helper()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("catalog_test"),
		tcpostgres.WithUsername("catalog"),
		tcpostgres.WithPassword("catalog"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, database.RunMigrations(connStr, migrationsSource))

	cfg, err := pgxpool.ParseConfig(connStr)
	require.NoError(t, err)
	cfg.AfterConnect = database.RegisterTypes

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

func TestPostgresRepositories(t *testing.T) {
	ctx := context.Background()
	pool := setupPostgres(t, ctx)

	categories := categoryRepo.NewPostgresRepository(pool)
	subCategories := subCategoryRepo.NewPostgresRepository(pool)
	items := itemRepo.NewPostgresRepository(pool)

	applicable := true
	tax := decimal.NewFromInt(10)
	beverages, err := categories.Create(ctx, category.NewCategory("Beverages", "b.png", "Drinks", category.TaxPolicy{
		Applicable: &applicable,
		Tax:        &tax,
	}))
	require.NoError(t, err)
	assert.True(t, tax.Equal(beverages.Tax))

	_, err = categories.Create(ctx, category.NewCategory("Beverages", "b.png", "Drinks", category.TaxPolicy{}))
	assert.ErrorIs(t, err, category.ErrDuplicateName)

	juices, err := subCategories.Create(ctx,
		subcategory.NewSubCategory("Juices", "j.png", "Fresh", beverages, subcategory.TaxOverride{}))
	require.NoError(t, err)
	assert.Equal(t, "Beverages", juices.Category.Name)
	assert.True(t, tax.Equal(juices.Tax))

	discount := decimal.RequireFromString("15.25")
	oj, err := items.Create(ctx, item.NewItem(item.NewItemParams{
		Name:        "Orange Juice",
		Image:       "oj.png",
		Description: "Fresh",
		Category:    beverages,
		SubCategory: juices,
		BaseAmount:  decimal.RequireFromString("100.50"),
		Discount:    &discount,
	}))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("85.25").Equal(oj.TotalAmount), "total = %s", oj.TotalAmount)
	require.NotNil(t, oj.SubCategory)
	assert.Equal(t, "Juices", oj.SubCategory.Name)

	t.Run("lookups", func(t *testing.T) {
		byName, err := items.GetByName(ctx, "ORANGE JUICE")
		require.NoError(t, err)
		assert.Equal(t, oj.ID, byName.ID)

		found, err := items.Search(ctx, "range")
		require.NoError(t, err)
		assert.Len(t, found, 1)

		// LIKE wildcards in the query are literals.
		found, err = items.Search(ctx, "%")
		require.NoError(t, err)
		assert.Empty(t, found)

		bySub, err := items.ListBySubCategory(ctx, juices.ID)
		require.NoError(t, err)
		assert.Len(t, bySub, 1)

		_, err = subCategories.GetByName(ctx, "juices")
		assert.NoError(t, err)
	})

	t.Run("counts feed the delete guards", func(t *testing.T) {
		n, err := items.CountByCategory(ctx, beverages.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		n, err = subCategories.CountByCategory(ctx, beverages.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		n, err = items.CountBySubCategory(ctx, juices.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	})

	t.Run("foreign keys back up the guards", func(t *testing.T) {
		assert.ErrorIs(t, subCategories.Delete(ctx, juices.ID), subcategory.ErrHasItems)
		assert.ErrorIs(t, categories.Delete(ctx, beverages.ID), category.ErrHasDependents)
	})

	t.Run("update keeps the total consistent", func(t *testing.T) {
		base := decimal.NewFromInt(10)
		oj.Apply(item.Changes{BaseAmount: &base, ClearSubCategory: true})

		updated, err := items.Update(ctx, oj)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("-5.25").Equal(updated.TotalAmount))
		assert.Nil(t, updated.SubCategoryID)
		assert.Nil(t, updated.SubCategory)
	})

	t.Run("deletes once dependents are gone", func(t *testing.T) {
		require.NoError(t, items.Delete(ctx, oj.ID))
		require.NoError(t, subCategories.Delete(ctx, juices.ID))
		require.NoError(t, categories.Delete(ctx, beverages.ID))

		_, err := categories.GetByID(ctx, beverages.ID)
		assert.ErrorIs(t, err, category.ErrCategoryNotFound)
		assert.ErrorIs(t, items.Delete(ctx, oj.ID), item.ErrItemNotFound)
	})
}
