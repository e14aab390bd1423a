package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/craftline/catalog-admin/cmd/catalog/models"
	"github.com/craftline/catalog-admin/cmd/catalog/service"
	"github.com/craftline/catalog-admin/common/bootstrap"
	"github.com/craftline/catalog-admin/common/middleware"
)

// CertificateHandler handles certificate requests. Lists accept a CEL
// filter expression; reorders performed under a filter splice against the
// full collection.
type CertificateHandler struct {
	components *bootstrap.Components
	svc        *service.CertificateService
}

// NewCertificateHandler creates a new certificate handler
func NewCertificateHandler(components *bootstrap.Components, svc *service.CertificateService) *CertificateHandler {
	return &CertificateHandler{
		components: components,
		svc:        svc,
	}
}

type certificateRequest struct {
	Name         string     `json:"name"`
	Issuer       string     `json:"issuer"`
	IssuedOn     *time.Time `json:"issued_on"`
	DocumentHash *string    `json:"document_hash"`
}

// filteredReorderRequest extends the reorder body with the filter the
// admin had active while dragging
type filteredReorderRequest struct {
	reorderRequest
	Filter string `json:"filter"`
}

// CreateCertificate creates a new certificate
// POST /api/v1/certificates
func (h *CertificateHandler) CreateCertificate(c echo.Context) error {
	var req certificateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	cert := &models.Certificate{
		Name:         req.Name,
		Issuer:       req.Issuer,
		IssuedOn:     req.IssuedOn,
		DocumentHash: req.DocumentHash,
	}
	if err := h.svc.Create(c.Request().Context(), cert, middleware.GetUsername(c)); err != nil {
		return mapError(h.components.Logger, err, "certificate")
	}

	return c.JSON(http.StatusCreated, cert)
}

// GetCertificate retrieves a certificate
// GET /api/v1/certificates/:id
func (h *CertificateHandler) GetCertificate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	cert, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return mapError(h.components.Logger, err, "certificate")
	}

	return c.JSON(http.StatusOK, cert)
}

// ListCertificates lists certificates, optionally filtered by a CEL
// expression such as record.name.contains("ISO")
// GET /api/v1/certificates?filter=...
func (h *CertificateHandler) ListCertificates(c echo.Context) error {
	certs, err := h.svc.ListFiltered(c.Request().Context(), c.QueryParam("filter"))
	if err != nil {
		return mapError(h.components.Logger, err, "certificate")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"certificates": certs,
		"count":        len(certs),
	})
}

// UpdateCertificate replaces a certificate's editable fields
// PUT /api/v1/certificates/:id
func (h *CertificateHandler) UpdateCertificate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req certificateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	cert := &models.Certificate{
		ID:           id,
		Name:         req.Name,
		Issuer:       req.Issuer,
		IssuedOn:     req.IssuedOn,
		DocumentHash: req.DocumentHash,
	}
	if err := h.svc.Update(c.Request().Context(), cert, middleware.GetUsername(c)); err != nil {
		return mapError(h.components.Logger, err, "certificate")
	}

	return c.JSON(http.StatusOK, cert)
}

// DeleteCertificate removes a certificate
// DELETE /api/v1/certificates/:id
func (h *CertificateHandler) DeleteCertificate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return mapError(h.components.Logger, err, "certificate")
	}

	return c.NoContent(http.StatusNoContent)
}

// ReorderCertificates moves a certificate by indices into the current
// view. With a filter the indices address the filtered view; the response
// carries the full collection either way.
// POST /api/v1/certificates/reorder
func (h *CertificateHandler) ReorderCertificates(c echo.Context) error {
	var req filteredReorderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	certs, err := h.svc.Reorder(c.Request().Context(), req.Filter, req.SourceIndex, req.destination())
	if err != nil {
		return mapError(h.components.Logger, err, "certificate")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"certificates": certs,
		"count":        len(certs),
	})
}
