package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/craftline/catalog-admin/cmd/catalog/models"
	"github.com/craftline/catalog-admin/cmd/catalog/service"
	"github.com/craftline/catalog-admin/common/bootstrap"
	"github.com/craftline/catalog-admin/common/middleware"
)

// CategoryHandler handles category requests. The profile_id query
// parameter selects the scope; omitting it addresses global categories.
type CategoryHandler struct {
	components *bootstrap.Components
	svc        *service.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(components *bootstrap.Components, svc *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		components: components,
		svc:        svc,
	}
}

type categoryRequest struct {
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	ProfileID      *uuid.UUID `json:"profile_id"`
	CoverImageHash *string    `json:"cover_image_hash"`
}

// CreateCategory creates a new category
// POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	category := &models.Category{
		Name:           req.Name,
		Description:    req.Description,
		ProfileID:      req.ProfileID,
		CoverImageHash: req.CoverImageHash,
	}
	if err := h.svc.Create(c.Request().Context(), category, middleware.GetUsername(c)); err != nil {
		return mapError(h.components.Logger, err, "category")
	}

	return c.JSON(http.StatusCreated, category)
}

// GetCategory retrieves a category
// GET /api/v1/categories/:id
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	category, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return mapError(h.components.Logger, err, "category")
	}

	return c.JSON(http.StatusOK, category)
}

// ListCategories lists one scope's categories in display order
// GET /api/v1/categories?profile_id=...
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	profileID, err := optionalUUIDQuery(c, "profile_id")
	if err != nil {
		return err
	}

	categories, err := h.svc.List(c.Request().Context(), profileID)
	if err != nil {
		return mapError(h.components.Logger, err, "category")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"categories": categories,
		"count":      len(categories),
	})
}

// UpdateCategory replaces a category's editable fields
// PUT /api/v1/categories/:id
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	existing, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return mapError(h.components.Logger, err, "category")
	}

	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.CoverImageHash = req.CoverImageHash
	if err := h.svc.Update(c.Request().Context(), existing, middleware.GetUsername(c)); err != nil {
		return mapError(h.components.Logger, err, "category")
	}

	return c.JSON(http.StatusOK, existing)
}

// DeleteCategory removes a category
// DELETE /api/v1/categories/:id
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return mapError(h.components.Logger, err, "category")
	}

	return c.NoContent(http.StatusNoContent)
}

// ReorderCategories moves a category within its scope
// POST /api/v1/categories/reorder?profile_id=...
func (h *CategoryHandler) ReorderCategories(c echo.Context) error {
	profileID, err := optionalUUIDQuery(c, "profile_id")
	if err != nil {
		return err
	}

	var req reorderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	categories, err := h.svc.Reorder(c.Request().Context(), profileID, req.SourceIndex, req.destination())
	if err != nil {
		return mapError(h.components.Logger, err, "category")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"categories": categories,
		"count":      len(categories),
	})
}
