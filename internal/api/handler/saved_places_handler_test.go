package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/weatherplaces/places-api/internal/core/domain"
)

type stubSavedPlacesService struct {
	saveFn func(ctx context.Context, user *domain.User, placeID string) error
	listFn func(ctx context.Context, user *domain.User) ([]string, error)
}

func (s *stubSavedPlacesService) SavePlace(ctx context.Context, user *domain.User, placeID string) error {
	return s.saveFn(ctx, user, placeID)
}

func (s *stubSavedPlacesService) ListSavedPlaces(ctx context.Context, user *domain.User) ([]string, error) {
	return s.listFn(ctx, user)
}

// authenticated mimics the Auth middleware having resolved user.
func authenticated(c echo.Context, user *domain.User) echo.Context {
	c.Set("user", user)
	return c
}

func TestSavedPlacesHandler_SavePlace_Success(t *testing.T) {
	e := newTestEcho()
	alice := &domain.User{ID: 7, Email: "alice@example.com"}
	stub := &stubSavedPlacesService{
		saveFn: func(ctx context.Context, user *domain.User, placeID string) error {
			if user.ID != 7 || placeID != "geo:123" {
				t.Fatalf("unexpected args: %d %s", user.ID, placeID)
			}
			return nil
		},
	}
	handler := NewSavedPlacesHandler(stub)

	rec := httptest.NewRecorder()
	c := authenticated(e.NewContext(jsonRequest(http.MethodPost, "/save_place", `{"place_id":"geo:123"}`), rec), alice)

	if err := handler.SavePlace(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if decodeBody(t, rec)["success"] != true {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestSavedPlacesHandler_SavePlace_MissingPlaceID(t *testing.T) {
	e := newTestEcho()
	stub := &stubSavedPlacesService{
		saveFn: func(ctx context.Context, user *domain.User, placeID string) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	handler := NewSavedPlacesHandler(stub)

	rec := httptest.NewRecorder()
	c := authenticated(e.NewContext(jsonRequest(http.MethodPost, "/save_place", `{}`), rec), &domain.User{ID: 1})

	_ = handler.SavePlace(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := decodeBody(t, rec)["error"]; msg != "invalid input: place_id is required" {
		t.Fatalf("unexpected error: %v", msg)
	}
}

func TestSavedPlacesHandler_SavePlace_WithoutUser(t *testing.T) {
	e := newTestEcho()
	stub := &stubSavedPlacesService{
		saveFn: func(ctx context.Context, user *domain.User, placeID string) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	handler := NewSavedPlacesHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/save_place", `{"place_id":"geo:1"}`), rec)

	err := handler.SavePlace(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestSavedPlacesHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubSavedPlacesService{
		listFn: func(ctx context.Context, user *domain.User) ([]string, error) {
			return []string{"geo:123", "geo:456"}, nil
		},
	}
	handler := NewSavedPlacesHandler(stub)

	rec := httptest.NewRecorder()
	c := authenticated(e.NewContext(httptest.NewRequest(http.MethodGet, "/saved_places", nil), rec), &domain.User{ID: 1})

	if err := handler.ListSavedPlaces(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	places, ok := decodeBody(t, rec)["places"].([]any)
	if !ok || len(places) != 2 || places[0] != "geo:123" || places[1] != "geo:456" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestSavedPlacesHandler_List_EmptyIsArray(t *testing.T) {
	e := newTestEcho()
	stub := &stubSavedPlacesService{
		listFn: func(ctx context.Context, user *domain.User) ([]string, error) {
			return nil, nil
		},
	}
	handler := NewSavedPlacesHandler(stub)

	rec := httptest.NewRecorder()
	c := authenticated(e.NewContext(httptest.NewRequest(http.MethodGet, "/saved_places", nil), rec), &domain.User{ID: 1})

	if err := handler.ListSavedPlaces(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Body.String(); got != "{\"places\":[]}\n" {
		t.Fatalf("unexpected body: %q", got)
	}
}
