package domain

import (
	"context"
	"time"
)

// Session represents a session inside a conference. Sessions are immutable
// once created; no update path exists.
// swagger:model Session
type Session struct {
	ID            string     `json:"id"`
	ConferenceID  string     `json:"conference_id"`
	Name          string     `json:"name"`
	TypeOfSession string     `json:"type_of_session"`
	Highlights    string     `json:"highlights"`
	Duration      string     `json:"duration"`
	Date          *time.Time `json:"date"`
	StartTime     string     `json:"start_time"`
	SpeakerEmail  string     `json:"speaker_email"`
	CreatedAt     time.Time  `json:"created_at"`
}

// SessionRepository defines the interface for session storage.
type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	ListByConference(ctx context.Context, conferenceID string) ([]*Session, error)
	ListByConferenceAndType(ctx context.Context, conferenceID, typeOfSession string) ([]*Session, error)
	ListBySpeaker(ctx context.Context, speakerEmail string) ([]*Session, error)
	ListByConferenceAndDate(ctx context.Context, conferenceID string, date time.Time) ([]*Session, error)
	ListByIDs(ctx context.Context, ids []string) ([]*Session, error)
}

// CreateSessionInput carries the user-supplied session fields. Date uses the
// YYYY-MM-DD format (first 10 characters), StartTime uses HH:MM.
type CreateSessionInput struct {
	Name          string
	TypeOfSession string
	Highlights    string
	Duration      string
	Date          string
	StartTime     string
	SpeakerEmail  string
}

// SessionService defines session creation and the list queries.
type SessionService interface {
	// Create creates a session under the conference. Only the conference's
	// organizer may create sessions. On success a featured-speaker job is
	// submitted fire-and-forget.
	Create(ctx context.Context, identity Identity, conferenceKey string, in CreateSessionInput) (*Session, error)
	ListByConference(ctx context.Context, conferenceKey string) ([]*Session, error)
	ListByType(ctx context.Context, conferenceKey, typeOfSession string) ([]*Session, error)
	ListBySpeaker(ctx context.Context, speakerEmail string) ([]*Session, error)
	// ListSameDay returns the other sessions of the same conference held on
	// the same date as the given session.
	ListSameDay(ctx context.Context, sessionKey string) ([]*Session, error)
}

// WishlistService defines wishlist membership operations on the caller's
// profile.
type WishlistService interface {
	Add(ctx context.Context, identity Identity, sessionKey string) (bool, error)
	// Remove is idempotent: it returns false without error when the session
	// is not in the wishlist.
	Remove(ctx context.Context, identity Identity, sessionKey string) (bool, error)
	// List returns the caller's wishlisted sessions that belong to the given
	// conference.
	List(ctx context.Context, identity Identity, conferenceKey string) ([]*Session, error)
}
