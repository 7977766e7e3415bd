package domain

import "time"

// SavedPlace links a user to a provider place identifier.
// The (UserID, PlaceID) pair is unique.
type SavedPlace struct {
	ID      int64     `json:"id"`
	UserID  int64     `json:"user_id"`
	PlaceID string    `json:"place_id"`
	SavedAt time.Time `json:"saved_at"`
}
