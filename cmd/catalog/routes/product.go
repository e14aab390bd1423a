package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/craftline/catalog-admin/cmd/catalog/container"
	"github.com/craftline/catalog-admin/cmd/catalog/handlers"
)

// RegisterProductRoutes registers all product routes
func RegisterProductRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewProductHandler(c.Components, c.ProductService)

	products := e.Group("/api/v1/products")
	{
		products.POST("", h.CreateProduct)            // POST /api/v1/products
		products.GET("", h.ListProducts)              // GET /api/v1/products
		products.POST("/reorder", h.ReorderProducts)  // POST /api/v1/products/reorder
		products.GET("/:id", h.GetProduct)            // GET /api/v1/products/:id
		products.PUT("/:id", h.UpdateProduct)         // PUT /api/v1/products/:id
		products.PATCH("/:id", h.PatchProduct)        // PATCH /api/v1/products/:id (RFC 6902)
		products.DELETE("/:id", h.DeleteProduct)      // DELETE /api/v1/products/:id
	}
}
