package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/weatherplaces/places-api/internal/core/domain"
	"github.com/weatherplaces/places-api/internal/core/ports"
)

const (
	ProviderWeather = "weather"

	currentVariables = "temperature_2m,wind_speed_10m,precipitation"
	hourlyVariables  = "temperature_2m"
)

// OpenMeteoClient fetches forecasts from the Open-Meteo API.
type OpenMeteoClient struct {
	client
}

var _ ports.WeatherProvider = (*OpenMeteoClient)(nil)

func NewOpenMeteoClient(cfg Config, log zerolog.Logger) *OpenMeteoClient {
	return &OpenMeteoClient{client: newClient(ProviderWeather, cfg, log)}
}

// Forecast returns current and hourly conditions at the given point. The body
// is returned as sent by the provider once it is known to be valid JSON.
func (c *OpenMeteoClient) Forecast(ctx context.Context, at domain.Coordinates) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(at.Lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(at.Lon, 'f', -1, 64))
	q.Set("current", currentVariables)
	q.Set("hourly", hourlyVariables)
	q.Set("timezone", "auto")

	body, err := c.get(ctx, q)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, c.fail(fmt.Errorf("response is not valid JSON"))
	}
	return json.RawMessage(body), nil
}
