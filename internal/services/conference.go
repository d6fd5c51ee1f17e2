package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"confcentral/internal/domain"
	"confcentral/internal/query"
)

// Defaults applied to unset conference fields on creation.
const defaultCity = "Default City"

var defaultTopics = []string{"Default", "Topic"}

const dateLayout = "2006-01-02"

// parseDate reads a YYYY-MM-DD date from the first 10 characters of s.
func parseDate(s string) (time.Time, error) {
	if len(s) > 10 {
		s = s[:10]
	}
	return time.Parse(dateLayout, s)
}

type conferenceService struct {
	conferenceRepo domain.ConferenceRepository
	profileRepo    domain.ProfileRepository
	profiles       domain.ProfileService
	tx             domain.TxManager
	dispatcher     domain.JobDispatcher
}

// NewConferenceService creates a ConferenceService with the given
// repositories, the atomic-unit manager, and the background job dispatcher.
func NewConferenceService(
	conferenceRepo domain.ConferenceRepository,
	profileRepo domain.ProfileRepository,
	profiles domain.ProfileService,
	tx domain.TxManager,
	dispatcher domain.JobDispatcher,
) domain.ConferenceService {
	return &conferenceService{
		conferenceRepo: conferenceRepo,
		profileRepo:    profileRepo,
		profiles:       profiles,
		tx:             tx,
		dispatcher:     dispatcher,
	}
}

func (s *conferenceService) Create(ctx context.Context, identity domain.Identity, in domain.CreateConferenceInput) (*domain.Conference, error) {
	profile, err := s.profiles.GetOrCreate(ctx, identity)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: conference 'name' field required", domain.ErrInvalidInput)
	}
	if in.MaxAttendees < 0 {
		return nil, fmt.Errorf("%w: max_attendees must not be negative", domain.ErrInvalidInput)
	}

	now := time.Now()
	conf := &domain.Conference{
		ID:           uuid.NewString(),
		OrganizerID:  profile.ID,
		Name:         strings.TrimSpace(in.Name),
		City:         in.City,
		Topics:       in.Topics,
		MaxAttendees: in.MaxAttendees,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if conf.City == "" {
		conf.City = defaultCity
	}
	if len(conf.Topics) == 0 {
		conf.Topics = defaultTopics
	}

	if in.StartDate != "" {
		start, err := parseDate(in.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid start date %q", domain.ErrInvalidInput, in.StartDate)
		}
		conf.StartDate = &start
		conf.Month = int(start.Month())
	}
	if in.EndDate != "" {
		end, err := parseDate(in.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid end date %q", domain.ErrInvalidInput, in.EndDate)
		}
		conf.EndDate = &end
	}
	if conf.StartDate != nil && conf.EndDate != nil && conf.EndDate.Before(*conf.StartDate) {
		return nil, fmt.Errorf("%w: end date before start date", domain.ErrInvalidInput)
	}

	// Seats open at full capacity.
	if conf.MaxAttendees > 0 {
		conf.SeatsAvailable = conf.MaxAttendees
	}

	if err := s.conferenceRepo.Create(ctx, conf); err != nil {
		return nil, fmt.Errorf("create conference: %w", err)
	}

	// Fire-and-forget; a failed email never fails the creation.
	s.dispatcher.Submit(ctx, domain.JobSendConfirmationEmail, map[string]string{
		"email":           profile.Email,
		"conference_name": conf.Name,
	})
	return conf, nil
}

func (s *conferenceService) Query(ctx context.Context, filters []query.Filter) ([]*domain.Conference, error) {
	spec, err := query.Compile(filters)
	if err != nil {
		return nil, err
	}
	conferences, err := s.conferenceRepo.Query(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("query conferences: %w", err)
	}
	return conferences, nil
}

func (s *conferenceService) ListCreated(ctx context.Context, identity domain.Identity) ([]*domain.Conference, error) {
	profile, err := s.profiles.GetOrCreate(ctx, identity)
	if err != nil {
		return nil, err
	}
	conferences, err := s.conferenceRepo.ListByOrganizer(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("list conferences by organizer: %w", err)
	}
	return conferences, nil
}

func (s *conferenceService) ListAttending(ctx context.Context, identity domain.Identity) ([]*domain.Conference, error) {
	profile, err := s.profiles.GetOrCreate(ctx, identity)
	if err != nil {
		return nil, err
	}
	conferences, err := s.conferenceRepo.ListByIDs(ctx, profile.ConferenceKeysAttending)
	if err != nil {
		return nil, fmt.Errorf("list attended conferences: %w", err)
	}
	return conferences, nil
}

func (s *conferenceService) Register(ctx context.Context, identity domain.Identity, conferenceKey string) (bool, error) {
	profile, err := s.profiles.GetOrCreate(ctx, identity)
	if err != nil {
		return false, err
	}

	// Seat decrement and attendance append persist together or not at all.
	// The checks below fast-fail on the values read in this transaction;
	// the guarded updates re-check membership and seat count at write time,
	// so a concurrent registration cannot slip past a stale read.
	err = s.tx.Atomic(ctx, func(ctx context.Context) error {
		conf, err := s.conferenceRepo.GetByID(ctx, conferenceKey)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("get conference: %w", err)
		}
		prof, err := s.profileRepo.GetByID(ctx, profile.ID)
		if err != nil {
			return fmt.Errorf("get profile: %w", err)
		}
		if prof.Attending(conferenceKey) {
			return domain.ErrAlreadyRegistered
		}
		if conf.SeatsAvailable <= 0 {
			return domain.ErrNoSeatsAvailable
		}

		if err := s.profileRepo.AppendAttending(ctx, prof.ID, conferenceKey); err != nil {
			if errors.Is(err, domain.ErrAlreadyRegistered) {
				return err
			}
			return fmt.Errorf("append attending: %w", err)
		}
		if err := s.conferenceRepo.TakeSeat(ctx, conf.ID); err != nil {
			if errors.Is(err, domain.ErrNoSeatsAvailable) {
				return err
			}
			return fmt.Errorf("take seat: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	s.dispatcher.Submit(ctx, domain.JobCacheAnnouncement, nil)
	return true, nil
}

func (s *conferenceService) Unregister(ctx context.Context, identity domain.Identity, conferenceKey string) (bool, error) {
	profile, err := s.profiles.GetOrCreate(ctx, identity)
	if err != nil {
		return false, err
	}

	removed := false
	err = s.tx.Atomic(ctx, func(ctx context.Context) error {
		conf, err := s.conferenceRepo.GetByID(ctx, conferenceKey)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("get conference: %w", err)
		}
		prof, err := s.profileRepo.GetByID(ctx, profile.ID)
		if err != nil {
			return fmt.Errorf("get profile: %w", err)
		}
		if !prof.Attending(conferenceKey) {
			// Idempotent no-op.
			return nil
		}

		// The seat returns only when this writer actually removed the key;
		// a concurrent unregistration that got there first leaves removed
		// false and the seat count untouched.
		ok, err := s.profileRepo.RemoveAttending(ctx, prof.ID, conferenceKey)
		if err != nil {
			return fmt.Errorf("remove attending: %w", err)
		}
		if !ok {
			return nil
		}
		if err := s.conferenceRepo.ReturnSeat(ctx, conf.ID); err != nil {
			return fmt.Errorf("return seat: %w", err)
		}
		removed = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if removed {
		s.dispatcher.Submit(ctx, domain.JobCacheAnnouncement, nil)
	}
	return removed, nil
}
