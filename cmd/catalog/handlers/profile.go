package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftline/catalog-admin/cmd/catalog/models"
	"github.com/craftline/catalog-admin/cmd/catalog/service"
	"github.com/craftline/catalog-admin/common/bootstrap"
	"github.com/craftline/catalog-admin/common/middleware"
)

// ProfileHandler handles profile requests
type ProfileHandler struct {
	components *bootstrap.Components
	svc        *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(components *bootstrap.Components, svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		components: components,
		svc:        svc,
	}
}

type profileRequest struct {
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	Website          string  `json:"website"`
	ContactEmail     string  `json:"contact_email"`
	ProfilePDFHash   *string `json:"profile_pdf_hash"`
	CataloguePDFHash *string `json:"catalogue_pdf_hash"`
	IsActive         *bool   `json:"is_active"`
}

func (r *profileRequest) toModel() *models.Profile {
	profile := &models.Profile{
		Name:             r.Name,
		Description:      r.Description,
		Website:          r.Website,
		ContactEmail:     r.ContactEmail,
		ProfilePDFHash:   r.ProfilePDFHash,
		CataloguePDFHash: r.CataloguePDFHash,
		IsActive:         true,
	}
	if r.IsActive != nil {
		profile.IsActive = *r.IsActive
	}
	return profile
}

// CreateProfile creates a new profile
// POST /api/v1/profiles
func (h *ProfileHandler) CreateProfile(c echo.Context) error {
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	profile := req.toModel()
	if err := h.svc.Create(c.Request().Context(), profile, middleware.GetUsername(c)); err != nil {
		return mapError(h.components.Logger, err, "profile")
	}

	return c.JSON(http.StatusCreated, profile)
}

// GetProfile retrieves a profile
// GET /api/v1/profiles/:id
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	profile, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return mapError(h.components.Logger, err, "profile")
	}

	return c.JSON(http.StatusOK, profile)
}

// ListProfiles lists all profiles in display order
// GET /api/v1/profiles
func (h *ProfileHandler) ListProfiles(c echo.Context) error {
	profiles, err := h.svc.List(c.Request().Context())
	if err != nil {
		return mapError(h.components.Logger, err, "profile")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"profiles": profiles,
		"count":    len(profiles),
	})
}

// UpdateProfile replaces a profile's editable fields
// PUT /api/v1/profiles/:id
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	profile := req.toModel()
	profile.ID = id
	if err := h.svc.Update(c.Request().Context(), profile, middleware.GetUsername(c)); err != nil {
		return mapError(h.components.Logger, err, "profile")
	}

	return c.JSON(http.StatusOK, profile)
}

// DeleteProfile removes a profile
// DELETE /api/v1/profiles/:id
func (h *ProfileHandler) DeleteProfile(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return mapError(h.components.Logger, err, "profile")
	}

	return c.NoContent(http.StatusNoContent)
}

// ReorderProfiles moves a profile to a new position and responds with the
// optimistic arrangement before persistence completes
// POST /api/v1/profiles/reorder
func (h *ProfileHandler) ReorderProfiles(c echo.Context) error {
	var req reorderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	profiles, err := h.svc.Reorder(c.Request().Context(), req.SourceIndex, req.destination())
	if err != nil {
		return mapError(h.components.Logger, err, "profile")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"profiles": profiles,
		"count":    len(profiles),
	})
}
