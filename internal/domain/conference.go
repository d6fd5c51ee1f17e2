package domain

import (
	"context"
	"time"

	"confcentral/internal/query"
)

// Conference represents a conference owned by its organizer's profile.
// Immutable after creation except for SeatsAvailable, which holds
// 0 <= SeatsAvailable <= MaxAttendees at all times.
// swagger:model Conference
type Conference struct {
	ID             string     `json:"id"`
	OrganizerID    string     `json:"organizer_id"`
	Name           string     `json:"name"`
	City           string     `json:"city"`
	Topics         []string   `json:"topics"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	Month          int        `json:"month"`
	MaxAttendees   int        `json:"max_attendees"`
	SeatsAvailable int        `json:"seats_available"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ConferenceRepository defines the interface for conference storage.
type ConferenceRepository interface {
	Create(ctx context.Context, c *Conference) error
	GetByID(ctx context.Context, id string) (*Conference, error)
	ListByOrganizer(ctx context.Context, organizerID string) ([]*Conference, error)
	ListByIDs(ctx context.Context, ids []string) ([]*Conference, error)
	// Query executes a compiled filter spec. Ordering follows spec.OrderBy.
	Query(ctx context.Context, spec *query.Spec) ([]*Conference, error)
	// ListNearlySoldOut returns conferences with 0 < seats_available <= limit
	// in natural scan order.
	ListNearlySoldOut(ctx context.Context, limit int) ([]*Conference, error)
	// TakeSeat decrements the seat count by one. The check and the write
	// happen in a single statement; when no seat is free it returns
	// ErrNoSeatsAvailable, even if a caller read a free seat moments before.
	TakeSeat(ctx context.Context, id string) error
	// ReturnSeat increments the seat count by one, never past MaxAttendees.
	ReturnSeat(ctx context.Context, id string) error
}

// CreateConferenceInput carries the user-supplied conference fields.
// Dates use the YYYY-MM-DD format (only the first 10 characters are read).
type CreateConferenceInput struct {
	Name         string
	City         string
	Topics       []string
	StartDate    string
	EndDate      string
	MaxAttendees int
}

// ConferenceService defines conference creation, querying and registration.
type ConferenceService interface {
	Create(ctx context.Context, identity Identity, in CreateConferenceInput) (*Conference, error)
	Query(ctx context.Context, filters []query.Filter) ([]*Conference, error)
	ListCreated(ctx context.Context, identity Identity) ([]*Conference, error)
	ListAttending(ctx context.Context, identity Identity) ([]*Conference, error)
	// Register registers the caller and takes one seat; both mutations are
	// applied as a single atomic unit.
	Register(ctx context.Context, identity Identity, conferenceKey string) (bool, error)
	// Unregister removes the registration and returns the seat. Returns
	// false without error when the caller was not registered.
	Unregister(ctx context.Context, identity Identity, conferenceKey string) (bool, error)
}
