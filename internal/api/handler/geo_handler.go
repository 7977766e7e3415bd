package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/weatherplaces/places-api/internal/api/metrics"
	"github.com/weatherplaces/places-api/internal/core/domain"
	"github.com/weatherplaces/places-api/internal/core/ports"
)

const (
	providerWeather = "weather"
	providerPlaces  = "places"
)

// GeoHandler proxies weather and places lookups. Neither route needs a token.
type GeoHandler struct {
	service ports.GeoService
}

func NewGeoHandler(service ports.GeoService) *GeoHandler {
	return &GeoHandler{service: service}
}

// Weather relays the current and hourly forecast for a point.
//
// @Summary      Weather forecast
// @Tags         geo
// @Produce      json
// @Param        lat  query     number  true  "Latitude"
// @Param        lon  query     number  true  "Longitude"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /weather [get]
func (h *GeoHandler) Weather(c echo.Context) error {
	var at domain.Coordinates
	err := echo.QueryParamsBinder(c).
		MustFloat64("lat", &at.Lat).
		MustFloat64("lon", &at.Lon).
		BindError()
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(providerWeather, "invalid").Inc()
		return respondError(c, queryError(err))
	}

	start := time.Now()
	body, err := h.service.Weather(c.Request().Context(), at)
	observe(providerWeather, start, err)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSONBlob(http.StatusOK, body)
}

// Places searches points of interest around a point. Only supermarkets,
// restaurants and cinemas can be searched; other categories are ignored.
//
// @Summary      Nearby places
// @Tags         geo
// @Produce      json
// @Param        lat         query     number   true   "Latitude"
// @Param        lon         query     number   true   "Longitude"
// @Param        radius      query     integer  false  "Search radius in metres"  default(5000)
// @Param        categories  query     string   true   "Comma separated categories"
// @Success      200         {object}  placesResponse
// @Failure      400         {object}  errorResponse
// @Failure      502         {object}  errorResponse
// @Router       /places [get]
func (h *GeoHandler) Places(c echo.Context) error {
	var (
		q      ports.PlacesQuery
		radius int
	)
	hasRadius := c.QueryParams().Has("radius")
	b := echo.QueryParamsBinder(c).
		MustFloat64("lat", &q.Lat).
		MustFloat64("lon", &q.Lon).
		String("categories", &q.Categories)
	if hasRadius {
		b = b.MustInt("radius", &radius)
	}
	if err := b.BindError(); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(providerPlaces, "invalid").Inc()
		return respondError(c, queryError(err))
	}
	if hasRadius {
		q.Radius = &radius
	}

	start := time.Now()
	places, err := h.service.Places(c.Request().Context(), q)
	observe(providerPlaces, start, err)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toPlacesResponse(places))
}

// observe records the outcome of a lookup. Requests rejected before the
// provider was called are not timed.
func observe(provider string, start time.Time, err error) {
	switch {
	case err == nil:
		metrics.UpstreamRequestsTotal.WithLabelValues(provider, "ok").Inc()
	case errors.Is(err, domain.ErrInvalidInput):
		metrics.UpstreamRequestsTotal.WithLabelValues(provider, "invalid").Inc()
		return
	default:
		metrics.UpstreamRequestsTotal.WithLabelValues(provider, "error").Inc()
	}
	metrics.UpstreamRequestDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}
