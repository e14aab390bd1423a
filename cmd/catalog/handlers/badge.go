package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftline/catalog-admin/cmd/catalog/models"
	"github.com/craftline/catalog-admin/cmd/catalog/service"
	"github.com/craftline/catalog-admin/common/bootstrap"
	"github.com/craftline/catalog-admin/common/middleware"
)

// BadgeHandler handles badge requests. Badge collections hang off their
// product: list and reorder are nested under /products/:id.
type BadgeHandler struct {
	components *bootstrap.Components
	svc        *service.BadgeService
}

// NewBadgeHandler creates a new badge handler
func NewBadgeHandler(components *bootstrap.Components, svc *service.BadgeService) *BadgeHandler {
	return &BadgeHandler{
		components: components,
		svc:        svc,
	}
}

type badgeRequest struct {
	Label    string  `json:"label"`
	IconHash *string `json:"icon_hash"`
}

// CreateBadge creates a new badge under a product
// POST /api/v1/products/:id/badges
func (h *BadgeHandler) CreateBadge(c echo.Context) error {
	productID, err := pathID(c)
	if err != nil {
		return err
	}

	var req badgeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	badge := &models.Badge{
		ProductID: productID,
		Label:     req.Label,
		IconHash:  req.IconHash,
	}
	if err := h.svc.Create(c.Request().Context(), badge, middleware.GetUsername(c)); err != nil {
		return mapError(h.components.Logger, err, "badge")
	}

	return c.JSON(http.StatusCreated, badge)
}

// ListBadges lists one product's badges in display order
// GET /api/v1/products/:id/badges
func (h *BadgeHandler) ListBadges(c echo.Context) error {
	productID, err := pathID(c)
	if err != nil {
		return err
	}

	badges, err := h.svc.List(c.Request().Context(), productID)
	if err != nil {
		return mapError(h.components.Logger, err, "badge")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"badges": badges,
		"count":  len(badges),
	})
}

// GetBadge retrieves a badge
// GET /api/v1/badges/:id
func (h *BadgeHandler) GetBadge(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	badge, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return mapError(h.components.Logger, err, "badge")
	}

	return c.JSON(http.StatusOK, badge)
}

// UpdateBadge replaces a badge's editable fields
// PUT /api/v1/badges/:id
func (h *BadgeHandler) UpdateBadge(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	existing, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return mapError(h.components.Logger, err, "badge")
	}

	var req badgeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	existing.Label = req.Label
	existing.IconHash = req.IconHash
	if err := h.svc.Update(c.Request().Context(), existing, middleware.GetUsername(c)); err != nil {
		return mapError(h.components.Logger, err, "badge")
	}

	return c.JSON(http.StatusOK, existing)
}

// DeleteBadge removes a badge
// DELETE /api/v1/badges/:id
func (h *BadgeHandler) DeleteBadge(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return mapError(h.components.Logger, err, "badge")
	}

	return c.NoContent(http.StatusNoContent)
}

// ReorderBadges moves a badge within its product
// POST /api/v1/products/:id/badges/reorder
func (h *BadgeHandler) ReorderBadges(c echo.Context) error {
	productID, err := pathID(c)
	if err != nil {
		return err
	}

	var req reorderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	badges, err := h.svc.Reorder(c.Request().Context(), productID, req.SourceIndex, req.destination())
	if err != nil {
		return mapError(h.components.Logger, err, "badge")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"badges": badges,
		"count":  len(badges),
	})
}
