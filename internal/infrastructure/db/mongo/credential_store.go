package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/weatherplaces/places-api/internal/core/domain"
	"github.com/weatherplaces/places-api/internal/core/ports"
)

const (
	usersCollection       = "users"
	savedPlacesCollection = "saved_places"
	countersCollection    = "counters"
)

// CredentialStore keeps users and saved places in MongoDB. Uniqueness is
// enforced by the indexes created in EnsureIndexes.
type CredentialStore struct {
	client   *mongo.Client
	users    *mongo.Collection
	places   *mongo.Collection
	counters *mongo.Collection
}

var _ ports.CredentialStore = (*CredentialStore)(nil)

func NewCredentialStore(client *mongo.Client, db *mongo.Database) *CredentialStore {
	return &CredentialStore{
		client:   client,
		users:    db.Collection(usersCollection),
		places:   db.Collection(savedPlacesCollection),
		counters: db.Collection(countersCollection),
	}
}

type userDoc struct {
	ID           int64  `bson:"_id"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash"`
	CreatedAt    int64  `bson:"created_at"`
}

type savedPlaceDoc struct {
	ID      int64  `bson:"_id"`
	UserID  int64  `bson:"user_id"`
	PlaceID string `bson:"place_id"`
	SavedAt int64  `bson:"saved_at"`
}

// EnsureIndexes creates the unique indexes the store relies on.
func (s *CredentialStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("users index: %w", err)
	}

	if _, err := s.places.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "place_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("saved_places index: %w", err)
	}
	return nil
}

func (s *CredentialStore) CreateUser(ctx context.Context, email, passwordHash string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := s.nextID(ctx, usersCollection)
	if err != nil {
		return 0, err
	}

	_, err = s.users.InsertOne(ctx, userDoc{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC().UnixMilli(),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return 0, domain.ErrDuplicateEmail
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

func (s *CredentialStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findUser(ctx, bson.M{"email": email})
}

func (s *CredentialStore) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

func (s *CredentialStore) findUser(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := s.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &domain.User{
		ID:           doc.ID,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    time.UnixMilli(doc.CreatedAt).UTC(),
	}, nil
}

// SavePlace inserts the pair; a duplicate key on (user_id, place_id) is a no-op.
// MongoDB has no foreign keys, so the owning user is checked first. Users are
// never deleted, which keeps the check stable.
func (s *CredentialStore) SavePlace(ctx context.Context, userID int64, placeID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := s.users.FindOne(ctx, bson.M{"_id": userID}).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrUnknownUser
		}
		return fmt.Errorf("check user: %w", err)
	}

	id, err := s.nextID(ctx, savedPlacesCollection)
	if err != nil {
		return err
	}

	_, err = s.places.InsertOne(ctx, savedPlaceDoc{
		ID:      id,
		UserID:  userID,
		PlaceID: placeID,
		SavedAt: time.Now().UTC().UnixMilli(),
	})
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("insert saved place: %w", err)
	}
	return nil
}

func (s *CredentialStore) ListSavedPlaces(ctx context.Context, userID int64) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := s.places.Find(ctx, bson.M{"user_id": userID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list saved places: %w", err)
	}
	defer cur.Close(ctx)

	places := []string{}
	for cur.Next(ctx) {
		var doc savedPlaceDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode saved place: %w", err)
		}
		places = append(places, doc.PlaceID)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list saved places: %w", err)
	}
	return places, nil
}

func (s *CredentialStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *CredentialStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// nextID allocates the next integer id for collection from the counters collection.
func (s *CredentialStore) nextID(ctx context.Context, collection string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": collection},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("allocate %s id: %w", collection, err)
	}
	return counter.Seq, nil
}
