package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/craftline/catalog-admin/cmd/catalog/models"
	"github.com/craftline/catalog-admin/common/logger"
	"github.com/craftline/catalog-admin/common/reorder"
)

// reorderRequest is the body of every reorder endpoint. A missing or
// negative destination marks a cancelled drag and leaves the order
// untouched.
type reorderRequest struct {
	SourceIndex      int  `json:"source_index"`
	DestinationIndex *int `json:"destination_index"`
}

// destination normalizes the optional destination into the coordinator's
// convention: -1 means cancelled.
func (r *reorderRequest) destination() int {
	if r.DestinationIndex == nil {
		return -1
	}
	return *r.DestinationIndex
}

// mapError translates service errors into HTTP responses. Unexpected
// errors are logged here and surface as opaque 500s.
func mapError(log *logger.Logger, err error, entity string) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, entity+" not found")
	case errors.Is(err, models.ErrInvalid), errors.Is(err, reorder.ErrIndexOutOfRange):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		log.Error("request failed", "entity", entity, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

// pathID parses the :id path parameter
func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id format")
	}
	return id, nil
}

// optionalUUIDQuery parses an optional UUID query parameter, nil when absent
func optionalUUIDQuery(c echo.Context, name string) (*uuid.UUID, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name+" format")
	}
	return &id, nil
}
