package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/craftline/catalog-admin/cmd/catalog/container"
	"github.com/craftline/catalog-admin/cmd/catalog/handlers"
)

// RegisterCertificateRoutes registers all certificate routes
func RegisterCertificateRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewCertificateHandler(c.Components, c.CertificateService)

	certificates := e.Group("/api/v1/certificates")
	{
		certificates.POST("", h.CreateCertificate)            // POST /api/v1/certificates
		certificates.GET("", h.ListCertificates)              // GET /api/v1/certificates?filter=...
		certificates.POST("/reorder", h.ReorderCertificates)  // POST /api/v1/certificates/reorder
		certificates.GET("/:id", h.GetCertificate)            // GET /api/v1/certificates/:id
		certificates.PUT("/:id", h.UpdateCertificate)         // PUT /api/v1/certificates/:id
		certificates.DELETE("/:id", h.DeleteCertificate)      // DELETE /api/v1/certificates/:id
	}
}
