package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/weatherplaces/places-api/internal/api/metrics"
	"github.com/weatherplaces/places-api/internal/core/domain"
	"github.com/weatherplaces/places-api/internal/core/ports"
)

// SavedPlacesHandler serves the bookmark routes. Both routes sit behind the
// Auth middleware.
type SavedPlacesHandler struct {
	service ports.SavedPlacesService
}

func NewSavedPlacesHandler(service ports.SavedPlacesService) *SavedPlacesHandler {
	return &SavedPlacesHandler{service: service}
}

// SavePlace bookmarks a place for the authenticated user. Saving the same
// place twice succeeds without creating a second entry.
//
// @Summary      Save a place
// @Tags         saved-places
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      savePlaceRequest  true  "Place identifier"
// @Success      200   {object}  savePlaceResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /save_place [post]
func (h *SavedPlacesHandler) SavePlace(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req savePlaceRequest
	if err := bindJSON(c, &req); err != nil {
		metrics.SavedPlaceWritesTotal.WithLabelValues("invalid").Inc()
		return respondError(c, err)
	}

	if err := h.service.SavePlace(c.Request().Context(), user, req.PlaceID); err != nil {
		result := "error"
		if errors.Is(err, domain.ErrInvalidInput) {
			result = "invalid"
		}
		metrics.SavedPlaceWritesTotal.WithLabelValues(result).Inc()
		return respondError(c, err)
	}

	metrics.SavedPlaceWritesTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, savePlaceResponse{Success: true})
}

// ListSavedPlaces returns the place identifiers saved by the authenticated user.
//
// @Summary      List saved places
// @Tags         saved-places
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  savedPlacesResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /saved_places [get]
func (h *SavedPlacesHandler) ListSavedPlaces(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	places, err := h.service.ListSavedPlaces(c.Request().Context(), user)
	if err != nil {
		return respondError(c, err)
	}
	if places == nil {
		places = []string{}
	}
	return c.JSON(http.StatusOK, savedPlacesResponse{Places: places})
}
