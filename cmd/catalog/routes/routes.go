package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/craftline/catalog-admin/cmd/catalog/container"
)

// Register registers all catalog routes
func Register(e *echo.Echo, c *container.Container) {
	RegisterProfileRoutes(e, c)
	RegisterCategoryRoutes(e, c)
	RegisterProductRoutes(e, c)
	RegisterItemRoutes(e, c)
	RegisterCertificateRoutes(e, c)
	RegisterBadgeRoutes(e, c)
	RegisterAssetRoutes(e, c)
}
