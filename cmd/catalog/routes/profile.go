package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/craftline/catalog-admin/cmd/catalog/container"
	"github.com/craftline/catalog-admin/cmd/catalog/handlers"
)

// RegisterProfileRoutes registers all profile routes
func RegisterProfileRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewProfileHandler(c.Components, c.ProfileService)

	profiles := e.Group("/api/v1/profiles")
	{
		profiles.POST("", h.CreateProfile)            // POST /api/v1/profiles
		profiles.GET("", h.ListProfiles)              // GET /api/v1/profiles
		profiles.POST("/reorder", h.ReorderProfiles)  // POST /api/v1/profiles/reorder
		profiles.GET("/:id", h.GetProfile)            // GET /api/v1/profiles/:id
		profiles.PUT("/:id", h.UpdateProfile)         // PUT /api/v1/profiles/:id
		profiles.DELETE("/:id", h.DeleteProfile)      // DELETE /api/v1/profiles/:id
	}
}
