package service

import (
	"context"
	"time"

	"github.com/weatherplaces/places-api/internal/core/domain"
)

// stubStore is an in-memory CredentialStore that mirrors the storage
// constraints of the real backends.
type stubStore struct {
	users      map[int64]*domain.User
	places     map[int64][]string
	nextID     int64
	savedCalls int
	err        error // if set, every call returns it
}

func newStubStore() *stubStore {
	return &stubStore{
		users:  make(map[int64]*domain.User),
		places: make(map[int64][]string),
	}
}

func (s *stubStore) CreateUser(_ context.Context, email, passwordHash string) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	for _, u := range s.users {
		if u.Email == email {
			return 0, domain.ErrDuplicateEmail
		}
	}
	s.nextID++
	s.users[s.nextID] = &domain.User{ID: s.nextID, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now().UTC()}
	return s.nextID, nil
}

func (s *stubStore) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubStore) FindUserByID(_ context.Context, id int64) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *stubStore) SavePlace(_ context.Context, userID int64, placeID string) error {
	s.savedCalls++
	if s.err != nil {
		return s.err
	}
	if _, ok := s.users[userID]; !ok {
		return domain.ErrUnknownUser
	}
	for _, p := range s.places[userID] {
		if p == placeID {
			return nil
		}
	}
	s.places[userID] = append(s.places[userID], placeID)
	return nil
}

func (s *stubStore) ListSavedPlaces(_ context.Context, userID int64) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append([]string(nil), s.places[userID]...), nil
}

func (s *stubStore) Ping(context.Context) error { return s.err }

func (s *stubStore) Close() error { return nil }
