package handler

import "github.com/weatherplaces/places-api/internal/core/domain"

// --- Request types ---

type credentialsRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type savePlaceRequest struct {
	PlaceID string `json:"place_id" validate:"required"`
}

// --- Response types ---

type registerResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

type savePlaceResponse struct {
	Success bool `json:"success"`
}

type savedPlacesResponse struct {
	Places []string `json:"places"`
}

type pointGeometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

type placeFeature struct {
	Type       string        `json:"type"`
	Properties domain.Place  `json:"properties"`
	Geometry   pointGeometry `json:"geometry"`
}

type placesResponse struct {
	Type     string         `json:"type"`
	Features []placeFeature `json:"features"`
}

func toPlacesResponse(places []domain.Place) placesResponse {
	features := make([]placeFeature, 0, len(places))
	for _, p := range places {
		features = append(features, placeFeature{
			Type:       "Feature",
			Properties: p,
			Geometry: pointGeometry{
				Type:        "Point",
				Coordinates: [2]float64{p.Lon, p.Lat},
			},
		})
	}
	return placesResponse{Type: "FeatureCollection", Features: features}
}
