package container

import (
	"context"
	"fmt"
	"time"

	"catalog-backend/internal/config"
	"catalog-backend/internal/infrastructure/database"
	"catalog-backend/internal/shared/middleware"
	"catalog-backend/pkg/logger"

	"catalog-backend/internal/domains/category"
	categoryHandler "catalog-backend/internal/domains/category/handler"
	categoryRepo "catalog-backend/internal/domains/category/repository"
	categoryService "catalog-backend/internal/domains/category/service"

	"catalog-backend/internal/domains/subcategory"
	subCategoryHandler "catalog-backend/internal/domains/subcategory/handler"
	subCategoryRepo "catalog-backend/internal/domains/subcategory/repository"
	subCategoryService "catalog-backend/internal/domains/subcategory/service"

	"catalog-backend/internal/domains/item"
	itemHandler "catalog-backend/internal/domains/item/handler"
	itemRepo "catalog-backend/internal/domains/item/repository"
	itemService "catalog-backend/internal/domains/item/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every long-lived dependency of the API process.
type Container struct {
	// ========== INFRASTRUCTURE ==========
	Config  *config.Config
	DB      *database.PostgresDB
	Metrics *middleware.HTTPMetrics

	// ========== REPOSITORIES ==========
	CategoryRepo    category.CategoryRepository
	SubCategoryRepo *subCategoryRepo.PostgresRepository
	ItemRepo        *itemRepo.PostgresRepository

	// ========== SERVICES ==========
	CategoryService    category.CategoryService
	SubCategoryService subcategory.SubCategoryService
	ItemService        item.ItemService

	// ========== HANDLERS ==========
	CategoryHandler    *categoryHandler.CategoryHandler
	SubCategoryHandler *subCategoryHandler.SubCategoryHandler
	ItemHandler        *itemHandler.ItemHandler
}

// ========================================
// CONSTRUCTOR
// ========================================

func NewContainer(cfg *config.Config) (*Container, error) {
	logger.Info("initializing container", nil)

	c := &Container{Config: cfg}

	// ========== STEP 1: DATABASE ==========
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	if cfg.Migrations.OnStart {
		if err := database.RunMigrations(dbConfig.URL(), cfg.Migrations.Path); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Pool.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	// ========== STEP 2: METRICS ==========
	c.Metrics = middleware.NewHTTPMetrics(cfg.App.Name)
	if err := database.RegisterPoolMetrics(c.Metrics.Registry(), db); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to register pool metrics: %w", err)
	}

	// ========== STEP 3: DOMAINS ==========
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.CategoryRepo = categoryRepo.NewPostgresRepository(pool)
	c.SubCategoryRepo = subCategoryRepo.NewPostgresRepository(pool)
	c.ItemRepo = itemRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	// Delete guard: sub-categories and items both pin a category.
	c.CategoryService = categoryService.NewCategoryService(
		c.CategoryRepo,
		c.SubCategoryRepo,
		c.ItemRepo,
	)

	c.SubCategoryService = subCategoryService.NewSubCategoryService(
		c.SubCategoryRepo,
		c.CategoryRepo,
		c.ItemRepo,
	)

	c.ItemService = itemService.NewItemService(
		c.ItemRepo,
		c.CategoryRepo,
		c.SubCategoryRepo,
	)
}

func (c *Container) initHandlers() {
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.SubCategoryHandler = subCategoryHandler.NewSubCategoryHandler(c.SubCategoryService)
	c.ItemHandler = itemHandler.NewItemHandler(c.ItemService)
}

// Cleanup releases the connection pool.
func (c *Container) Cleanup() {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Error("failed to close database", err)
		}
	}
}
