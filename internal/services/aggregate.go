package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"confcentral/internal/domain"
)

// A conference is nearly sold out when 0 < seats_available <= nearlySoldOutSeats.
const nearlySoldOutSeats = 5

// A speaker is featured when they hold more than one session. Unlike the
// sold-out announcement, a stale featured-speaker entry is not cleared when
// the condition stops holding.
const featuredSpeakerMinSessions = 2

type aggregateService struct {
	conferenceRepo domain.ConferenceRepository
	sessionRepo    domain.SessionRepository
	speakerRepo    domain.SpeakerRepository
	profileRepo    domain.ProfileRepository
	cache          domain.AnnouncementCache
}

// NewAggregateService creates an AggregateService reading through the
// repositories and publishing derived text to the announcement cache.
func NewAggregateService(
	conferenceRepo domain.ConferenceRepository,
	sessionRepo domain.SessionRepository,
	speakerRepo domain.SpeakerRepository,
	profileRepo domain.ProfileRepository,
	cache domain.AnnouncementCache,
) domain.AggregateService {
	return &aggregateService{
		conferenceRepo: conferenceRepo,
		sessionRepo:    sessionRepo,
		speakerRepo:    speakerRepo,
		profileRepo:    profileRepo,
		cache:          cache,
	}
}

func (s *aggregateService) CacheAnnouncement(ctx context.Context) (string, error) {
	conferences, err := s.conferenceRepo.ListNearlySoldOut(ctx, nearlySoldOutSeats)
	if err != nil {
		return "", fmt.Errorf("list nearly sold out conferences: %w", err)
	}
	if len(conferences) == 0 {
		if err := s.cache.Delete(ctx, domain.AnnouncementCacheKey); err != nil {
			return "", fmt.Errorf("delete announcement: %w", err)
		}
		return "", nil
	}

	names := make([]string, len(conferences))
	for i, c := range conferences {
		names[i] = c.Name
	}
	announcement := "Last chance to attend! The following conferences are nearly sold out: " +
		strings.Join(names, ", ")
	if err := s.cache.Set(ctx, domain.AnnouncementCacheKey, announcement); err != nil {
		return "", fmt.Errorf("set announcement: %w", err)
	}
	return announcement, nil
}

func (s *aggregateService) Announcement(ctx context.Context) (string, error) {
	announcement, err := s.cache.Get(ctx, domain.AnnouncementCacheKey)
	if err != nil {
		return "", fmt.Errorf("get announcement: %w", err)
	}
	return announcement, nil
}

func (s *aggregateService) MostPopularSession(ctx context.Context, conferenceKey string) (*domain.Session, error) {
	sessions, err := s.sessionRepo.ListByConference(ctx, conferenceKey)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	if len(sessions) == 0 {
		return nil, domain.ErrNotFound
	}
	inConference := make(map[string]bool, len(sessions))
	for _, sess := range sessions {
		inConference[sess.ID] = true
	}

	wishlists, err := s.profileRepo.ListWishlists(ctx)
	if err != nil {
		return nil, fmt.Errorf("list wishlists: %w", err)
	}

	// Count wishlist occurrences per key; encounter order is kept so ties
	// resolve to the key seen first during the scan.
	counts := make(map[string]int)
	var order []string
	for _, wishlist := range wishlists {
		for _, key := range wishlist {
			if !inConference[key] {
				continue
			}
			if counts[key] == 0 {
				order = append(order, key)
			}
			counts[key]++
		}
	}
	if len(order) == 0 {
		return nil, domain.ErrNotFound
	}

	best := order[0]
	for _, key := range order[1:] {
		if counts[key] > counts[best] {
			best = key
		}
	}

	sess, err := s.sessionRepo.GetByID(ctx, best)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

func (s *aggregateService) FeaturedSpeaker(ctx context.Context, speakerEmail string) (string, error) {
	speaker, err := s.speakerRepo.GetByEmail(ctx, speakerEmail)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get speaker: %w", err)
	}
	sessions, err := s.sessionRepo.ListBySpeaker(ctx, speakerEmail)
	if err != nil {
		return "", fmt.Errorf("list sessions by speaker: %w", err)
	}
	if len(sessions) < featuredSpeakerMinSessions {
		// Below the threshold nothing is published and any previously cached
		// value stays untouched.
		return "", nil
	}

	names := make([]string, len(sessions))
	for i, sess := range sessions {
		names[i] = sess.Name
	}
	featured := fmt.Sprintf("Featured speaker %s with sessions: %s",
		speaker.Name, strings.Join(names, ", "))
	if err := s.cache.Set(ctx, domain.FeaturedSpeakerCacheKey, featured); err != nil {
		return "", fmt.Errorf("set featured speaker: %w", err)
	}
	return featured, nil
}

func (s *aggregateService) GetFeaturedSpeaker(ctx context.Context) (string, error) {
	featured, err := s.cache.Get(ctx, domain.FeaturedSpeakerCacheKey)
	if err != nil {
		return "", fmt.Errorf("get featured speaker: %w", err)
	}
	return featured, nil
}
