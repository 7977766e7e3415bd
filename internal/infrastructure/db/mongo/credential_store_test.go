package mongo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/weatherplaces/places-api/internal/core/domain"
)

// openTestStore connects to the server named by MONGO_TEST_URI and gives each
// test its own database, dropped on cleanup.
func openTestStore(t *testing.T) *CredentialStore {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db := fmt.Sprintf("places_test_%s_%d", name, time.Now().UnixNano())
	if len(db) > 63 {
		db = db[len(db)-63:]
	}

	store, err := Open(context.Background(), Config{URI: uri, Database: db, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.client.Database(db).Drop(context.Background())
		_ = store.Close()
	})
	return store
}

func TestCredentialStore_CreateAndFindUser(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.CreateUser(ctx, "alice@example.com", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	second, err := store.CreateUser(ctx, "bob@example.com", "hash")
	if err != nil {
		t.Fatalf("create second user: %v", err)
	}
	if id <= 0 || second != id+1 {
		t.Fatalf("expected sequential positive ids, got %d and %d", id, second)
	}

	byEmail, err := store.FindUserByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	byID, err := store.FindUserByID(ctx, id)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if byEmail.ID != id || byID.Email != "alice@example.com" || byID.PasswordHash != "hash" {
		t.Fatalf("unexpected users: %+v %+v", byEmail, byID)
	}
	if byID.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be set")
	}
}

func TestCredentialStore_DuplicateEmail(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.CreateUser(ctx, "bob@example.com", "h1"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := store.CreateUser(ctx, "bob@example.com", "h2"); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	n, err := store.users.CountDocuments(ctx, bson.M{"email": "bob@example.com"})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected one user document, got %d", n)
	}
}

func TestCredentialStore_UserNotFound(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.FindUserByEmail(ctx, "ghost@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := store.FindUserByID(ctx, 999); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCredentialStore_SavePlaceIsIdempotent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	id, err := store.CreateUser(ctx, "carol@example.com", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := store.SavePlace(ctx, id, "geo:123"); err != nil {
			t.Fatalf("save #%d: %v", i+1, err)
		}
	}
	if err := store.SavePlace(ctx, id, "geo:456"); err != nil {
		t.Fatalf("save second place: %v", err)
	}

	places, err := store.ListSavedPlaces(ctx, id)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !reflect.DeepEqual(places, []string{"geo:123", "geo:456"}) {
		t.Fatalf("unexpected places: %v", places)
	}

	n, err := store.places.CountDocuments(ctx, bson.M{"user_id": id, "place_id": "geo:123"})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected exactly one document, got %d", n)
	}
}

func TestCredentialStore_SavedPlacesArePerUser(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	alice, _ := store.CreateUser(ctx, "alice@example.com", "hash")
	bob, _ := store.CreateUser(ctx, "bob@example.com", "hash")

	if err := store.SavePlace(ctx, alice, "geo:1"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.SavePlace(ctx, bob, "geo:1"); err != nil {
		t.Fatalf("same place for another user: %v", err)
	}

	places, err := store.ListSavedPlaces(ctx, bob)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !reflect.DeepEqual(places, []string{"geo:1"}) {
		t.Fatalf("unexpected places: %v", places)
	}
}

func TestCredentialStore_SavePlaceUnknownUser(t *testing.T) {
	store := openTestStore(t)

	if err := store.SavePlace(context.Background(), 404, "geo:1"); !errors.Is(err, domain.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
}

func TestCredentialStore_ListSavedPlacesEmpty(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	id, _ := store.CreateUser(ctx, "dave@example.com", "hash")

	places, err := store.ListSavedPlaces(ctx, id)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if places == nil || len(places) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", places)
	}
}

func TestCredentialStore_Ping(t *testing.T) {
	store := openTestStore(t)

	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
