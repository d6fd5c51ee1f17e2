package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"confcentral/internal/domain"
)

type speakerService struct {
	speakerRepo domain.SpeakerRepository
}

// NewSpeakerService creates a SpeakerService with the given repository.
func NewSpeakerService(speakerRepo domain.SpeakerRepository) domain.SpeakerService {
	return &speakerService{
		speakerRepo: speakerRepo,
	}
}

// Add creates or replaces the speaker identified by its email (idempotent
// upsert on the natural key).
func (s *speakerService) Add(ctx context.Context, identity domain.Identity, speaker *domain.Speaker) (*domain.Speaker, error) {
	if identity.ID == "" {
		return nil, domain.ErrUnauthenticated
	}
	speaker.Email = strings.TrimSpace(strings.ToLower(speaker.Email))
	if !emailRegexp.MatchString(speaker.Email) {
		return nil, fmt.Errorf("%w: invalid speaker email", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(speaker.Name) == "" {
		return nil, fmt.Errorf("%w: speaker 'name' field required", domain.ErrInvalidInput)
	}

	now := time.Now()
	speaker.CreatedAt = now
	speaker.UpdatedAt = now
	if err := s.speakerRepo.Upsert(ctx, speaker); err != nil {
		return nil, fmt.Errorf("upsert speaker: %w", err)
	}
	return speaker, nil
}

func (s *speakerService) Get(ctx context.Context, email string) (*domain.Speaker, error) {
	speaker, err := s.speakerRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get speaker: %w", err)
	}
	return speaker, nil
}
