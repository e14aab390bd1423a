package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/craftline/catalog-admin/cmd/catalog/container"
	"github.com/craftline/catalog-admin/cmd/catalog/handlers"
)

// RegisterBadgeRoutes registers all badge routes. Collection-level routes
// nest under the owning product; single-badge routes address the badge
// directly.
func RegisterBadgeRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewBadgeHandler(c.Components, c.BadgeService)

	productBadges := e.Group("/api/v1/products/:id/badges")
	{
		productBadges.POST("", h.CreateBadge)           // POST /api/v1/products/:id/badges
		productBadges.GET("", h.ListBadges)             // GET /api/v1/products/:id/badges
		productBadges.POST("/reorder", h.ReorderBadges) // POST /api/v1/products/:id/badges/reorder
	}

	badges := e.Group("/api/v1/badges")
	{
		badges.GET("/:id", h.GetBadge)       // GET /api/v1/badges/:id
		badges.PUT("/:id", h.UpdateBadge)    // PUT /api/v1/badges/:id
		badges.DELETE("/:id", h.DeleteBadge) // DELETE /api/v1/badges/:id
	}
}
