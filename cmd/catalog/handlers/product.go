package handlers

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftline/catalog-admin/cmd/catalog/models"
	"github.com/craftline/catalog-admin/cmd/catalog/service"
	"github.com/craftline/catalog-admin/common/bootstrap"
	"github.com/craftline/catalog-admin/common/middleware"
)

// ProductHandler handles product requests
type ProductHandler struct {
	components *bootstrap.Components
	svc        *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(components *bootstrap.Components, svc *service.ProductService) *ProductHandler {
	return &ProductHandler{
		components: components,
		svc:        svc,
	}
}

type productRequest struct {
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	SKU            string              `json:"sku"`
	IsActive       *bool               `json:"is_active"`
	Premium        *models.PremiumInfo `json:"premium"`
	CoverImageHash *string             `json:"cover_image_hash"`
}

func (r *productRequest) toModel() *models.Product {
	product := &models.Product{
		Name:           r.Name,
		Description:    r.Description,
		SKU:            r.SKU,
		IsActive:       true,
		Premium:        r.Premium,
		CoverImageHash: r.CoverImageHash,
	}
	if r.IsActive != nil {
		product.IsActive = *r.IsActive
	}
	return product
}

// CreateProduct creates a new product
// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	product := req.toModel()
	if err := h.svc.Create(c.Request().Context(), product, middleware.GetUsername(c)); err != nil {
		return mapError(h.components.Logger, err, "product")
	}

	return c.JSON(http.StatusCreated, product)
}

// GetProduct retrieves a product
// GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	product, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return mapError(h.components.Logger, err, "product")
	}

	return c.JSON(http.StatusOK, product)
}

// ListProducts lists all products in display order
// GET /api/v1/products
func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.svc.List(c.Request().Context())
	if err != nil {
		return mapError(h.components.Logger, err, "product")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
	})
}

// UpdateProduct replaces a product's editable fields
// PUT /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	product := req.toModel()
	product.ID = id
	if err := h.svc.Update(c.Request().Context(), product, middleware.GetUsername(c)); err != nil {
		return mapError(h.components.Logger, err, "product")
	}

	return c.JSON(http.StatusOK, product)
}

// PatchProduct applies an RFC 6902 JSON Patch document to a product
// PATCH /api/v1/products/:id
func (h *ProductHandler) PatchProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	patchJSON, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable request body")
	}

	product, err := h.svc.ApplyPatch(c.Request().Context(), id, patchJSON, middleware.GetUsername(c))
	if err != nil {
		return mapError(h.components.Logger, err, "product")
	}

	return c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product and its badges
// DELETE /api/v1/products/:id
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return mapError(h.components.Logger, err, "product")
	}

	return c.NoContent(http.StatusNoContent)
}

// ReorderProducts moves a product to a new position
// POST /api/v1/products/reorder
func (h *ProductHandler) ReorderProducts(c echo.Context) error {
	var req reorderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	products, err := h.svc.Reorder(c.Request().Context(), req.SourceIndex, req.destination())
	if err != nil {
		return mapError(h.components.Logger, err, "product")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
	})
}
