package ports

import (
	"context"

	"github.com/weatherplaces/places-api/internal/core/domain"
)

// CredentialStore persists users and their saved places. Uniqueness of emails
// and of (user, place) pairs is enforced by storage constraints.
type CredentialStore interface {
	// CreateUser returns domain.ErrDuplicateEmail when the email is taken.
	CreateUser(ctx context.Context, email, passwordHash string) (int64, error)
	// FindUserByEmail and FindUserByID return domain.ErrUserNotFound when absent.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByID(ctx context.Context, id int64) (*domain.User, error)
	// SavePlace is idempotent: an existing pair is left untouched.
	SavePlace(ctx context.Context, userID int64, placeID string) error
	ListSavedPlaces(ctx context.Context, userID int64) ([]string, error)

	Ping(ctx context.Context) error
	Close() error
}
