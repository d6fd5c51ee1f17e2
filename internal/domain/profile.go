package domain

import (
	"context"
	"time"
)

// Tee shirt sizes accepted on a profile.
const TeeShirtNotSpecified = "NOT_SPECIFIED"

// TeeShirtSizes lists the accepted tee_shirt_size values.
var TeeShirtSizes = []string{
	TeeShirtNotSpecified, "XS", "S", "M", "L", "XL", "XXL", "XXXL",
}

// ValidTeeShirtSize reports whether s is an accepted tee shirt size.
func ValidTeeShirtSize(s string) bool {
	for _, v := range TeeShirtSizes {
		if v == s {
			return true
		}
	}
	return false
}

// Profile represents an attendee profile. It is created on first access by a
// given identity and never deleted. ConferenceKeysAttending and
// SessionKeysWishlist are ordered and contain no duplicate keys.
// swagger:model Profile
type Profile struct {
	ID                      string    `json:"id"`
	Email                   string    `json:"email"`
	DisplayName             string    `json:"display_name"`
	TeeShirtSize            string    `json:"tee_shirt_size"`
	PasswordHash            string    `json:"-"`
	PasswordSalt            string    `json:"-"`
	ConferenceKeysAttending []string  `json:"conference_keys_attending"`
	SessionKeysWishlist     []string  `json:"session_keys_wishlist"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// NewProfile returns a new Profile for the given identity with defaults
// applied (tee shirt size NOT_SPECIFIED, empty key lists).
func NewProfile(id, email, displayName string, createdAt time.Time) *Profile {
	return &Profile{
		ID:                      id,
		Email:                   email,
		DisplayName:             displayName,
		TeeShirtSize:            TeeShirtNotSpecified,
		ConferenceKeysAttending: []string{},
		SessionKeysWishlist:     []string{},
		CreatedAt:               createdAt,
		UpdatedAt:               createdAt,
	}
}

// Attending reports whether the conference key is in the attending list.
func (p *Profile) Attending(conferenceKey string) bool {
	for _, k := range p.ConferenceKeysAttending {
		if k == conferenceKey {
			return true
		}
	}
	return false
}

// Wishlisted reports whether the session key is in the wishlist.
func (p *Profile) Wishlisted(sessionKey string) bool {
	for _, k := range p.SessionKeysWishlist {
		if k == sessionKey {
			return true
		}
	}
	return false
}

// ProfileRepository defines the interface for profile storage. The key-list
// mutations are single-statement updates scoped to their own column, so a
// registration and a wishlist change on the same profile never overwrite
// each other.
type ProfileRepository interface {
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	// Update persists the user-modifiable fields (display name, tee shirt
	// size). It never touches the key lists.
	Update(ctx context.Context, p *Profile) error
	// AppendAttending adds the conference key to the attending list. The
	// membership check runs inside the update; a duplicate key returns
	// ErrAlreadyRegistered.
	AppendAttending(ctx context.Context, id, conferenceKey string) error
	// RemoveAttending removes the conference key from the attending list.
	// Returns false without error when the key was absent.
	RemoveAttending(ctx context.Context, id, conferenceKey string) (bool, error)
	// AppendWishlist adds the session key to the wishlist. A duplicate key
	// returns ErrAlreadyInWishlist.
	AppendWishlist(ctx context.Context, id, sessionKey string) error
	// RemoveWishlist removes the session key from the wishlist. Returns
	// false without error when the key was absent.
	RemoveWishlist(ctx context.Context, id, sessionKey string) (bool, error)
	// ListWishlists returns every profile's wishlist in stable scan order.
	ListWishlists(ctx context.Context) ([][]string, error)
}

// ProfileService defines profile retrieval and mutation for the API surface.
type ProfileService interface {
	// GetOrCreate returns the profile for the identity, creating it on first
	// access from the identity-provided email and display name.
	GetOrCreate(ctx context.Context, identity Identity) (*Profile, error)
	// Save updates the user-modifiable fields and returns the profile.
	// Empty values leave the corresponding field unchanged.
	Save(ctx context.Context, identity Identity, displayName, teeShirtSize string) (*Profile, error)
}
