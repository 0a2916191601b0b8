package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog-backend/internal/config"
	categoryHandler "catalog-backend/internal/domains/category/handler"
	categoryService "catalog-backend/internal/domains/category/service"
	itemHandler "catalog-backend/internal/domains/item/handler"
	itemService "catalog-backend/internal/domains/item/service"
	subCategoryHandler "catalog-backend/internal/domains/subcategory/handler"
	subCategoryService "catalog-backend/internal/domains/subcategory/service"
	"catalog-backend/internal/shared/middleware"
	"catalog-backend/internal/testutil/memstore"
	"catalog-backend/pkg/container"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testContainer wires the handlers over the in-memory store, without a database.
func testContainer() *container.Container {
	store := memstore.New()

	return &container.Container{
		Config: &config.Config{
			App:     config.AppConfig{Name: "Catalog API", Version: "test"},
			Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
		},
		Metrics: middleware.NewHTTPMetrics("catalog-test"),
		CategoryHandler: categoryHandler.NewCategoryHandler(
			categoryService.NewCategoryService(store.Categories(), store.SubCategories(), store.Items())),
		SubCategoryHandler: subCategoryHandler.NewSubCategoryHandler(
			subCategoryService.NewSubCategoryService(store.SubCategories(), store.Categories(), store.Items())),
		ItemHandler: itemHandler.NewItemHandler(
			itemService.NewItemService(store.Items(), store.Categories(), store.SubCategories())),
	}
}

func get(router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]interface{}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestWelcome(t *testing.T) {
	router := SetupRouter(testContainer())

	rec, body := get(router, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Welcome to the Catalog API", body["message"])
}

func TestUnknownRoute(t *testing.T) {
	router := SetupRouter(testContainer())

	rec, body := get(router, "/api/v1/nothing-here")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Route not found", body["message"])
}

func TestHealthWithoutDatabase(t *testing.T) {
	router := SetupRouter(testContainer())

	rec, body := get(router, "/api/v1/health")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "degraded", body["status"])
}

func TestDomainRoutesAndMetrics(t *testing.T) {
	router := SetupRouter(testContainer())

	for _, path := range []string{"/api/v1/categories", "/api/v1/subcategories", "/api/v1/items"} {
		rec, body := get(router, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, float64(0), body["count"], path)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `path="/api/v1/items"`))
}
