package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"confcentral/internal/domain"
)

// Defaults applied to unset session fields on creation.
const (
	defaultTypeOfSession = "lecture"
	defaultHighlights    = ""
	defaultDuration      = "1h"

	startTimeLayout = "15:04"
)

type sessionService struct {
	sessionRepo    domain.SessionRepository
	conferenceRepo domain.ConferenceRepository
	speakerRepo    domain.SpeakerRepository
	dispatcher     domain.JobDispatcher
}

// NewSessionService creates a SessionService with the given repositories and
// the background job dispatcher.
func NewSessionService(
	sessionRepo domain.SessionRepository,
	conferenceRepo domain.ConferenceRepository,
	speakerRepo domain.SpeakerRepository,
	dispatcher domain.JobDispatcher,
) domain.SessionService {
	return &sessionService{
		sessionRepo:    sessionRepo,
		conferenceRepo: conferenceRepo,
		speakerRepo:    speakerRepo,
		dispatcher:     dispatcher,
	}
}

func (s *sessionService) Create(ctx context.Context, identity domain.Identity, conferenceKey string, in domain.CreateSessionInput) (*domain.Session, error) {
	if identity.ID == "" {
		return nil, domain.ErrUnauthenticated
	}
	conf, err := s.conferenceRepo.GetByID(ctx, conferenceKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get conference: %w", err)
	}
	if conf.OrganizerID != identity.ID {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: session 'name' field required", domain.ErrInvalidInput)
	}

	sess := &domain.Session{
		ID:            uuid.NewString(),
		ConferenceID:  conf.ID,
		Name:          strings.TrimSpace(in.Name),
		TypeOfSession: in.TypeOfSession,
		Highlights:    in.Highlights,
		Duration:      in.Duration,
		SpeakerEmail:  in.SpeakerEmail,
		CreatedAt:     time.Now(),
	}
	if sess.TypeOfSession == "" {
		sess.TypeOfSession = defaultTypeOfSession
	}
	if sess.Highlights == "" {
		sess.Highlights = defaultHighlights
	}
	if sess.Duration == "" {
		sess.Duration = defaultDuration
	}

	if in.Date != "" {
		date, err := parseDate(in.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid session date %q", domain.ErrInvalidInput, in.Date)
		}
		if !withinConferenceDates(conf, date) {
			return nil, fmt.Errorf("%w: session date is outside the conference date range", domain.ErrInvalidInput)
		}
		sess.Date = &date
	}

	if in.StartTime != "" {
		if _, err := time.Parse(startTimeLayout, in.StartTime); err != nil {
			return nil, fmt.Errorf("%w: invalid start time %q", domain.ErrInvalidInput, in.StartTime)
		}
		sess.StartTime = in.StartTime
	}

	if _, err := s.speakerRepo.GetByEmail(ctx, in.SpeakerEmail); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: speaker email is incorrect", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("get speaker: %w", err)
	}

	if err := s.sessionRepo.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	// Fire-and-forget; failure never rolls back the session.
	s.dispatcher.Submit(ctx, domain.JobSetFeaturedSpeaker, map[string]string{
		"speaker_email": sess.SpeakerEmail,
	})
	return sess, nil
}

// withinConferenceDates reports whether date lies inside the conference's
// [start, end] range, inclusive. An unset bound does not constrain.
func withinConferenceDates(conf *domain.Conference, date time.Time) bool {
	if conf.StartDate != nil && date.Before(*conf.StartDate) {
		return false
	}
	if conf.EndDate != nil && date.After(*conf.EndDate) {
		return false
	}
	return true
}

func (s *sessionService) ListByConference(ctx context.Context, conferenceKey string) ([]*domain.Session, error) {
	sessions, err := s.sessionRepo.ListByConference(ctx, conferenceKey)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func (s *sessionService) ListByType(ctx context.Context, conferenceKey, typeOfSession string) ([]*domain.Session, error) {
	sessions, err := s.sessionRepo.ListByConferenceAndType(ctx, conferenceKey, typeOfSession)
	if err != nil {
		return nil, fmt.Errorf("list sessions by type: %w", err)
	}
	return sessions, nil
}

func (s *sessionService) ListBySpeaker(ctx context.Context, speakerEmail string) ([]*domain.Session, error) {
	sessions, err := s.sessionRepo.ListBySpeaker(ctx, speakerEmail)
	if err != nil {
		return nil, fmt.Errorf("list sessions by speaker: %w", err)
	}
	return sessions, nil
}

func (s *sessionService) ListSameDay(ctx context.Context, sessionKey string) ([]*domain.Session, error) {
	sess, err := s.sessionRepo.GetByID(ctx, sessionKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	if sess.Date == nil {
		return []*domain.Session{}, nil
	}
	sessions, err := s.sessionRepo.ListByConferenceAndDate(ctx, sess.ConferenceID, *sess.Date)
	if err != nil {
		return nil, fmt.Errorf("list sessions by date: %w", err)
	}
	sameDay := make([]*domain.Session, 0, len(sessions))
	for _, other := range sessions {
		if other.ID != sess.ID {
			sameDay = append(sameDay, other)
		}
	}
	return sameDay, nil
}
