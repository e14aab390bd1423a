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

// AssetHandler handles file uploads and downloads. Assets are
// content-addressed: the response hash is what catalog entities reference.
type AssetHandler struct {
	components *bootstrap.Components
	svc        *service.AssetService
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(components *bootstrap.Components, svc *service.AssetService) *AssetHandler {
	return &AssetHandler{
		components: components,
		svc:        svc,
	}
}

// UploadAsset stores an uploaded file
// POST /api/v1/assets (multipart: file, kind)
func (h *AssetHandler) UploadAsset(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "multipart 'file' field required")
	}

	kind := models.AssetKind(c.FormValue("kind"))
	if !kind.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid or missing asset kind")
	}

	maxSize := h.components.Config.Uploads.MaxSizeBytes
	if fileHeader.Size > maxSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}
	if int64(len(content)) > maxSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}

	mediaType := fileHeader.Header.Get("Content-Type")
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}

	asset, err := h.svc.Upload(c.Request().Context(), fileHeader.Filename, mediaType, kind, content, middleware.GetUsername(c))
	if err != nil {
		return mapError(h.components.Logger, err, "asset")
	}

	return c.JSON(http.StatusCreated, asset)
}

// DownloadAsset streams an asset's content
// GET /api/v1/assets/:hash
func (h *AssetHandler) DownloadAsset(c echo.Context) error {
	asset, err := h.svc.Get(c.Request().Context(), c.Param("hash"))
	if err != nil {
		return mapError(h.components.Logger, err, "asset")
	}

	c.Response().Header().Set("Content-Disposition", `inline; filename="`+asset.FileName+`"`)
	return c.Blob(http.StatusOK, asset.MediaType, asset.Content)
}

// ListAssets lists asset metadata of one kind
// GET /api/v1/assets?kind=image
func (h *AssetHandler) ListAssets(c echo.Context) error {
	assets, err := h.svc.ListByKind(c.Request().Context(), models.AssetKind(c.QueryParam("kind")))
	if err != nil {
		return mapError(h.components.Logger, err, "asset")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"assets": assets,
		"count":  len(assets),
	})
}

// DeleteAsset removes an unreferenced asset
// DELETE /api/v1/assets/:hash
func (h *AssetHandler) DeleteAsset(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("hash")); err != nil {
		return mapError(h.components.Logger, err, "asset")
	}

	return c.NoContent(http.StatusNoContent)
}
