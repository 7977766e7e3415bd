package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/weatherplaces/places-api/internal/core/domain"
	"github.com/weatherplaces/places-api/internal/core/ports"
)

const (
	DefaultPlacesRadius = 5000
	PlacesLimit         = 100
)

type geoService struct {
	weather ports.WeatherProvider
	places  ports.PlacesProvider
	log     zerolog.Logger
}

// NewGeoService returns a GeoService relaying to the given providers.
func NewGeoService(weather ports.WeatherProvider, places ports.PlacesProvider, log zerolog.Logger) ports.GeoService {
	return &geoService{weather: weather, places: places, log: log}
}

func (s *geoService) Weather(ctx context.Context, at domain.Coordinates) (json.RawMessage, error) {
	if !at.Valid() {
		return nil, domain.InvalidInput("lat/lon out of range")
	}

	body, err := s.weather.Forecast(ctx, at)
	if err != nil {
		s.log.Warn().Err(err).Float64("lat", at.Lat).Float64("lon", at.Lon).Msg("weather lookup failed")
		return nil, err
	}
	return body, nil
}

// Places filters the requested categories to the allow-list, queries the
// provider and annotates every feature with its coordinates.
func (s *geoService) Places(ctx context.Context, q ports.PlacesQuery) ([]domain.Place, error) {
	if strings.TrimSpace(q.Categories) == "" {
		return nil, domain.InvalidInput("categories parameter required")
	}
	categories := FilterCategories(q.Categories)
	if len(categories) == 0 {
		return nil, domain.InvalidInput("no valid categories provided")
	}

	center := domain.Coordinates{Lat: q.Lat, Lon: q.Lon}
	if !center.Valid() {
		return nil, domain.InvalidInput("lat/lon out of range")
	}
	radius := DefaultPlacesRadius
	if q.Radius != nil {
		if *q.Radius <= 0 {
			return nil, domain.InvalidInput("radius must be positive")
		}
		radius = *q.Radius
	}

	features, err := s.places.Places(ctx, ports.PlacesRequest{
		Center:     center,
		Radius:     radius,
		Categories: categories,
		Limit:      PlacesLimit,
	})
	if err != nil {
		s.log.Warn().Err(err).Strs("categories", categories).Msg("places lookup failed")
		return nil, err
	}

	places := make([]domain.Place, 0, len(features))
	for i, f := range features {
		p, err := toPlace(f)
		if err != nil {
			return nil, &domain.UpstreamError{Provider: "places", Err: fmt.Errorf("feature %d: %w", i, err)}
		}
		places = append(places, p)
	}
	return places, nil
}

// FilterCategories keeps the supported entries of a comma separated list,
// preserving request order and dropping duplicates.
func FilterCategories(raw string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, c := range strings.Split(raw, ",") {
		c = strings.TrimSpace(c)
		if !domain.IsSupportedCategory(c) {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func toPlace(f ports.PlaceFeature) (domain.Place, error) {
	if len(f.Geometry.Coordinates) < 2 {
		return domain.Place{}, fmt.Errorf("geometry has %d coordinates", len(f.Geometry.Coordinates))
	}

	p := f.Properties
	categories := p.Categories
	if categories == nil {
		categories = []string{}
	}
	return domain.Place{
		PlaceID:      p.PlaceID,
		Name:         p.Name,
		Formatted:    p.Formatted,
		AddressLine1: p.AddressLine1,
		AddressLine2: p.AddressLine2,
		Street:       p.Street,
		HouseNumber:  p.HouseNumber,
		City:         p.City,
		Postcode:     p.Postcode,
		Country:      p.Country,
		CountryCode:  p.CountryCode,
		Categories:   categories,
		OpeningHours: p.OpeningHours,
		Distance:     p.Distance,
		Lon:          f.Geometry.Coordinates[0],
		Lat:          f.Geometry.Coordinates[1],
	}, nil
}
