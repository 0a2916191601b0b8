package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"catalog-backend/internal/shared/middleware"
	"catalog-backend/internal/shared/response"
	"catalog-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	metricsEnabled := c.Config.Metrics.Enabled && c.Metrics != nil
	if metricsEnabled {
		router.Use(c.Metrics.Middleware())
		router.GET(c.Config.Metrics.Path, gin.WrapH(c.Metrics.Handler()))
	}

	router.GET("/", welcomeHandler(c))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		c.CategoryHandler.RegisterRoutes(v1)
		c.SubCategoryHandler.RegisterRoutes(v1)
		c.ItemHandler.RegisterRoutes(v1)
	}

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "Route not found")
	})

	return router
}

// ========================================
// WELCOME
// ========================================
func welcomeHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		response.Success(ctx, http.StatusOK, fmt.Sprintf("Welcome to the %s", c.Config.App.Name), gin.H{
			"version": c.Config.App.Version,
			"endpoints": gin.H{
				"categories":    "/api/v1/categories",
				"subCategories": "/api/v1/subcategories",
				"items":         "/api/v1/items",
				"health":        "/api/v1/health",
			},
		})
	}
}

// ========================================
// HEALTH
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   c.Config.App.Version,
		}

		dbStatus := "ok"
		if c.DB == nil || c.DB.Pool == nil {
			dbStatus = "disconnected"
		} else {
			pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
			defer cancel()

			if err := c.DB.HealthCheck(pingCtx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
			} else if stats, err := c.DB.Stats(); err == nil {
				health["pool"] = stats
			}
		}
		health["services"] = gin.H{"database": dbStatus}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			health["status"] = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		ctx.JSON(statusCode, health)
	}
}
