package domain

import (
	"context"
	"time"
)

// Speaker represents a speaker keyed by email address (natural key).
// swagger:model Speaker
type Speaker struct {
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
	Workplace      string    `json:"workplace"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SpeakerRepository defines the interface for speaker storage.
type SpeakerRepository interface {
	// Upsert creates or replaces the speaker identified by its email.
	Upsert(ctx context.Context, s *Speaker) error
	GetByEmail(ctx context.Context, email string) (*Speaker, error)
}

// SpeakerService defines speaker registration and lookup.
type SpeakerService interface {
	Add(ctx context.Context, identity Identity, s *Speaker) (*Speaker, error)
	Get(ctx context.Context, email string) (*Speaker, error)
}
