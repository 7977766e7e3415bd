package ports

import (
	"context"

	"github.com/weatherplaces/places-api/internal/core/domain"
)

// SavedPlacesService scopes every read and write to an already verified user.
type SavedPlacesService interface {
	SavePlace(ctx context.Context, user *domain.User, placeID string) error
	ListSavedPlaces(ctx context.Context, user *domain.User) ([]string, error)
}
