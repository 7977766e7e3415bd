package ports

import (
	"context"
	"encoding/json"

	"github.com/weatherplaces/places-api/internal/core/domain"
)

// PlacesQuery carries the raw query of a places search.
// Categories is the comma separated list exactly as the client sent it.
type PlacesQuery struct {
	Lat        float64
	Lon        float64
	Radius     *int // metres; nil means the default radius
	Categories string
}

// GeoService validates geo queries and relays them to the providers.
type GeoService interface {
	Weather(ctx context.Context, at domain.Coordinates) (json.RawMessage, error)
	Places(ctx context.Context, q PlacesQuery) ([]domain.Place, error)
}

// PlacesRequest is a validated search handed to the places provider.
type PlacesRequest struct {
	Center     domain.Coordinates
	Radius     int
	Categories []string
	Limit      int
}

// PlaceFeature is one GeoJSON feature as decoded from the places provider.
type PlaceFeature struct {
	Type       string               `json:"type"`
	Properties PlaceFeatureProperty `json:"properties"`
	Geometry   struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
}

// PlaceFeatureProperty lists the provider properties relayed to clients.
type PlaceFeatureProperty struct {
	PlaceID      string   `json:"place_id"`
	Name         string   `json:"name"`
	Formatted    string   `json:"formatted"`
	AddressLine1 string   `json:"address_line1"`
	AddressLine2 string   `json:"address_line2"`
	Street       string   `json:"street"`
	HouseNumber  string   `json:"housenumber"`
	City         string   `json:"city"`
	Postcode     string   `json:"postcode"`
	Country      string   `json:"country"`
	CountryCode  string   `json:"country_code"`
	Categories   []string `json:"categories"`
	OpeningHours string   `json:"opening_hours"`
	Distance     float64  `json:"distance"`
}

// WeatherProvider returns the provider's forecast document unchanged.
type WeatherProvider interface {
	Forecast(ctx context.Context, at domain.Coordinates) (json.RawMessage, error)
}

// PlacesProvider returns the provider's feature list.
type PlacesProvider interface {
	Places(ctx context.Context, req PlacesRequest) ([]PlaceFeature, error)
}
