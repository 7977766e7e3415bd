package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/weatherplaces/places-api/internal/core/domain"
	"github.com/weatherplaces/places-api/internal/core/ports"
)

type savedPlacesService struct {
	store ports.CredentialStore
	log   zerolog.Logger
}

// NewSavedPlacesService returns a SavedPlacesService backed by store.
func NewSavedPlacesService(store ports.CredentialStore, log zerolog.Logger) ports.SavedPlacesService {
	return &savedPlacesService{store: store, log: log}
}

// SavePlace records placeID for user. Saving the same place twice is a no-op.
func (s *savedPlacesService) SavePlace(ctx context.Context, user *domain.User, placeID string) error {
	if user == nil {
		return domain.ErrUnknownUser
	}
	if strings.TrimSpace(placeID) == "" {
		return domain.InvalidInput("missing place_id")
	}

	if err := s.store.SavePlace(ctx, user.ID, placeID); err != nil {
		return fmt.Errorf("save place: %w", err)
	}

	s.log.Debug().Int64("user_id", user.ID).Str("place_id", placeID).Msg("place saved")
	return nil
}

func (s *savedPlacesService) ListSavedPlaces(ctx context.Context, user *domain.User) ([]string, error) {
	if user == nil {
		return nil, domain.ErrUnknownUser
	}

	places, err := s.store.ListSavedPlaces(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list saved places: %w", err)
	}
	if places == nil {
		places = []string{}
	}
	return places, nil
}
