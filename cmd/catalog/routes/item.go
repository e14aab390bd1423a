package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/craftline/catalog-admin/cmd/catalog/container"
	"github.com/craftline/catalog-admin/cmd/catalog/handlers"
)

// RegisterItemRoutes registers all item routes
func RegisterItemRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewItemHandler(c.Components, c.ItemService)

	items := e.Group("/api/v1/items")
	{
		items.POST("", h.CreateItem)            // POST /api/v1/items
		items.GET("", h.ListItems)              // GET /api/v1/items?category_id=...&profile_id=...
		items.POST("/reorder", h.ReorderItems)  // POST /api/v1/items/reorder?category_id=...&profile_id=...
		items.GET("/:id", h.GetItem)            // GET /api/v1/items/:id
		items.PUT("/:id", h.UpdateItem)         // PUT /api/v1/items/:id
		items.DELETE("/:id", h.DeleteItem)      // DELETE /api/v1/items/:id
	}
}
