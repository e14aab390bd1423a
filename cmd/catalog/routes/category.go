package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/craftline/catalog-admin/cmd/catalog/container"
	"github.com/craftline/catalog-admin/cmd/catalog/handlers"
)

// RegisterCategoryRoutes registers all category routes
func RegisterCategoryRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewCategoryHandler(c.Components, c.CategoryService)

	categories := e.Group("/api/v1/categories")
	{
		categories.POST("", h.CreateCategory)            // POST /api/v1/categories
		categories.GET("", h.ListCategories)             // GET /api/v1/categories?profile_id=...
		categories.POST("/reorder", h.ReorderCategories) // POST /api/v1/categories/reorder?profile_id=...
		categories.GET("/:id", h.GetCategory)            // GET /api/v1/categories/:id
		categories.PUT("/:id", h.UpdateCategory)         // PUT /api/v1/categories/:id
		categories.DELETE("/:id", h.DeleteCategory)      // DELETE /api/v1/categories/:id
	}
}
