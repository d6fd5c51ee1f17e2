package domain

import "context"

// Background job names handled by the dispatcher.
const (
	JobSendConfirmationEmail = "send_confirmation_email"
	JobSetFeaturedSpeaker    = "set_featured_speaker"
	JobCacheAnnouncement     = "cache_announcement"
)

// JobDispatcher submits background jobs fire-and-forget. Submission never
// returns an error to the caller; job failures must not affect the
// triggering request.
type JobDispatcher interface {
	Submit(ctx context.Context, job string, payload map[string]string)
}

// TxManager runs a unit of work as a single atomic unit: all entity
// mutations inside fn succeed or none persist. Repositories called with the
// context passed to fn take part in the same transaction.
type TxManager interface {
	Atomic(ctx context.Context, fn func(ctx context.Context) error) error
}

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// ConferenceConfirmationEmailData holds data for the conference creation
// confirmation email.
type ConferenceConfirmationEmailData struct {
	Email          string
	ConferenceName string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendConferenceConfirmation(ctx context.Context, data *ConferenceConfirmationEmailData) error
}
