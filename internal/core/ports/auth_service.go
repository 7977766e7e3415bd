package ports

import (
	"context"

	"github.com/weatherplaces/places-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	IssueToken(userID int64) (string, error)
	TokenVerifier
}

// TokenVerifier resolves the value of an Authorization header to a user.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, authorization string) (*domain.User, error)
}
