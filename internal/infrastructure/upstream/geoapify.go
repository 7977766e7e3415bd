package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/weatherplaces/places-api/internal/core/ports"
)

const ProviderPlaces = "places"

// GeoapifyClient searches points of interest with the Geoapify Places API.
type GeoapifyClient struct {
	client
	apiKey string
}

var _ ports.PlacesProvider = (*GeoapifyClient)(nil)

func NewGeoapifyClient(cfg Config, log zerolog.Logger) *GeoapifyClient {
	return &GeoapifyClient{client: newClient(ProviderPlaces, cfg, log), apiKey: cfg.APIKey}
}

type featureCollection struct {
	Features []ports.PlaceFeature `json:"features"`
}

// Places returns the features inside the circle described by req.
func (c *GeoapifyClient) Places(ctx context.Context, req ports.PlacesRequest) ([]ports.PlaceFeature, error) {
	q := url.Values{}
	q.Set("categories", strings.Join(req.Categories, ","))
	q.Set("filter", fmt.Sprintf("circle:%s,%s,%d",
		strconv.FormatFloat(req.Center.Lon, 'f', -1, 64),
		strconv.FormatFloat(req.Center.Lat, 'f', -1, 64),
		req.Radius,
	))
	if req.Limit > 0 {
		q.Set("limit", strconv.Itoa(req.Limit))
	}
	q.Set("apiKey", c.apiKey)

	body, err := c.get(ctx, q)
	if err != nil {
		return nil, err
	}

	var fc featureCollection
	if err := json.Unmarshal(body, &fc); err != nil {
		return nil, c.fail(fmt.Errorf("decode features: %w", err))
	}
	if fc.Features == nil {
		fc.Features = []ports.PlaceFeature{}
	}
	return fc.Features, nil
}
