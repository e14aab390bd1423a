package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/craftline/catalog-admin/cmd/catalog/models"
	"github.com/craftline/catalog-admin/cmd/catalog/service"
	"github.com/craftline/catalog-admin/common/bootstrap"
	"github.com/craftline/catalog-admin/common/middleware"
)

// ItemHandler handles item requests. The category_id and profile_id query
// parameters select the scope for list and reorder operations.
type ItemHandler struct {
	components *bootstrap.Components
	svc        *service.ItemService
}

// NewItemHandler creates a new item handler
func NewItemHandler(components *bootstrap.Components, svc *service.ItemService) *ItemHandler {
	return &ItemHandler{
		components: components,
		svc:        svc,
	}
}

type itemRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CategoryID  *uuid.UUID      `json:"category_id"`
	ProfileID   *uuid.UUID      `json:"profile_id"`
	Suitables   json.RawMessage `json:"suitables"`
	Size        json.RawMessage `json:"size"`
	SpecInfo    json.RawMessage `json:"spec_info"`
}

// itemResponse augments the stored item with its derived flow and, when the
// list view asks for one, a single field lifted out of spec_info
type itemResponse struct {
	*models.Item
	Flow      models.Flow `json:"flow"`
	SpecValue string      `json:"spec_value,omitempty"`
}

func itemView(item *models.Item) itemResponse {
	return itemResponse{Item: item, Flow: item.Flow()}
}

func itemViews(items []*models.Item, specField string) []itemResponse {
	views := make([]itemResponse, len(items))
	for i, item := range items {
		views[i] = itemView(item)
		if specField != "" {
			views[i].SpecValue = item.SpecField(specField)
		}
	}
	return views
}

// CreateItem creates a new item
// POST /api/v1/items
func (h *ItemHandler) CreateItem(c echo.Context) error {
	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	item := &models.Item{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		ProfileID:   req.ProfileID,
		Suitables:   req.Suitables,
		Size:        req.Size,
		SpecInfo:    req.SpecInfo,
	}
	if err := h.svc.Create(c.Request().Context(), item, middleware.GetUsername(c)); err != nil {
		return mapError(h.components.Logger, err, "item")
	}

	return c.JSON(http.StatusCreated, itemView(item))
}

// GetItem retrieves an item
// GET /api/v1/items/:id
func (h *ItemHandler) GetItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	item, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return mapError(h.components.Logger, err, "item")
	}

	return c.JSON(http.StatusOK, itemView(item))
}

// ListItems lists one scope's items in display order. An optional spec_field
// gjson path pulls one spec_info value into each row for column summaries.
// GET /api/v1/items?category_id=...&profile_id=...&spec_field=...
func (h *ItemHandler) ListItems(c echo.Context) error {
	categoryID, err := optionalUUIDQuery(c, "category_id")
	if err != nil {
		return err
	}
	profileID, err := optionalUUIDQuery(c, "profile_id")
	if err != nil {
		return err
	}

	items, err := h.svc.List(c.Request().Context(), categoryID, profileID)
	if err != nil {
		return mapError(h.components.Logger, err, "item")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items": itemViews(items, c.QueryParam("spec_field")),
		"count": len(items),
	})
}

// UpdateItem replaces an item's editable fields
// PUT /api/v1/items/:id
func (h *ItemHandler) UpdateItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	existing, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return mapError(h.components.Logger, err, "item")
	}

	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Suitables = req.Suitables
	existing.Size = req.Size
	existing.SpecInfo = req.SpecInfo
	existing.Normalize()

	if err := h.svc.Update(c.Request().Context(), existing, middleware.GetUsername(c)); err != nil {
		return mapError(h.components.Logger, err, "item")
	}

	return c.JSON(http.StatusOK, itemView(existing))
}

// DeleteItem removes an item
// DELETE /api/v1/items/:id
func (h *ItemHandler) DeleteItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return mapError(h.components.Logger, err, "item")
	}

	return c.NoContent(http.StatusNoContent)
}

// ReorderItems moves an item within its scope
// POST /api/v1/items/reorder?category_id=...&profile_id=...
func (h *ItemHandler) ReorderItems(c echo.Context) error {
	categoryID, err := optionalUUIDQuery(c, "category_id")
	if err != nil {
		return err
	}
	profileID, err := optionalUUIDQuery(c, "profile_id")
	if err != nil {
		return err
	}

	var req reorderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	items, err := h.svc.Reorder(c.Request().Context(), categoryID, profileID, req.SourceIndex, req.destination())
	if err != nil {
		return mapError(h.components.Logger, err, "item")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items": itemViews(items, ""),
		"count": len(items),
	})
}
