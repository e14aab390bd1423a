package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/craftline/catalog-admin/cmd/catalog/container"
	"github.com/craftline/catalog-admin/cmd/catalog/handlers"
)

// RegisterAssetRoutes registers all asset routes
func RegisterAssetRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewAssetHandler(c.Components, c.AssetService)

	assets := e.Group("/api/v1/assets")
	{
		assets.POST("", h.UploadAsset)            // POST /api/v1/assets (multipart)
		assets.GET("", h.ListAssets)              // GET /api/v1/assets?kind=image
		assets.GET("/:hash", h.DownloadAsset)     // GET /api/v1/assets/:hash
		assets.DELETE("/:hash", h.DeleteAsset)    // DELETE /api/v1/assets/:hash
	}
}
