package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/weatherplaces/places-api/internal/core/domain"
	"github.com/weatherplaces/places-api/internal/core/ports"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 24 * time.Hour

// tokenClaims is the payload of every bearer token.
type tokenClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// AuthService implements registration, login and the bearer token lifecycle.
type AuthService struct {
	store     ports.CredentialStore
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
	log       zerolog.Logger

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(store ports.CredentialStore, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &AuthService{
		store:     store,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		now:       time.Now,
		log:       log,
	}
}

// WithClock replaces the time source used to issue and verify tokens.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.InvalidInput("email and password required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, domain.InvalidInput("password is too long")
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.store.CreateUser(ctx, email, string(hash))
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", id).Msg("user registered")
	return &domain.User{
		ID:           id,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}, nil
}

// Login verifies the credentials and issues a token. Unknown emails and wrong
// passwords both yield domain.ErrInvalidCredentials after one bcrypt comparison.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.InvalidInput("email and password required")
	}

	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, err
		}
		_ = bcrypt.CompareHashAndPassword(s.fallbackHash(), []byte(password))
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Int64("user_id", user.ID).Msg("user logged in")
	return token, user, nil
}

// IssueToken signs a token for userID that expires tokenTTL from now.
// Claims carry whole seconds, so exp is rounded up and a token is never
// rejected before the full TTL has elapsed.
func (s *AuthService) IssueToken(userID int64) (string, error) {
	now := s.now().UTC()
	claims := tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Truncate(time.Second)),
			ExpiresAt: jwt.NewNumericDate(ceilSecond(now.Add(s.tokenTTL))),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks a "Bearer <token>" header value and resolves its user.
func (s *AuthService) VerifyToken(ctx context.Context, authorization string) (*domain.User, error) {
	raw, err := bearerToken(authorization)
	if err != nil {
		return nil, err
	}

	var claims tokenClaims
	_, err = jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedToken, err)
	}
	if claims.UserID <= 0 {
		return nil, fmt.Errorf("%w: missing user_id claim", domain.ErrMalformedToken)
	}

	user, err := s.store.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnknownUser
		}
		return nil, fmt.Errorf("resolve token user: %w", err)
	}
	return user, nil
}

func ceilSecond(t time.Time) time.Time {
	if r := t.Truncate(time.Second); r.Before(t) {
		return r.Add(time.Second)
	}
	return t
}

func bearerToken(authorization string) (string, error) {
	fields := strings.Fields(authorization)
	switch {
	case len(fields) == 0:
		return "", domain.ErrMissingToken
	case !strings.EqualFold(fields[0], "bearer"):
		return "", fmt.Errorf("%w: expected bearer scheme", domain.ErrMalformedToken)
	case len(fields) == 1:
		return "", domain.ErrMissingToken
	case len(fields) > 2:
		return "", fmt.Errorf("%w: unexpected authorization format", domain.ErrMalformedToken)
	}
	return fields[1], nil
}

// fallbackHash is compared against when the email is unknown.
func (s *AuthService) fallbackHash() []byte {
	s.dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("places-api-unknown-user"), bcrypt.DefaultCost)
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}
