package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"confcentral/internal/domain"
)

type profileService struct {
	profileRepo domain.ProfileRepository
}

// NewProfileService creates a ProfileService with the given repository.
func NewProfileService(profileRepo domain.ProfileRepository) domain.ProfileService {
	return &profileService{
		profileRepo: profileRepo,
	}
}

// GetOrCreate returns the caller's profile, creating it on first access
// from the identity-provided email and display name.
func (s *profileService) GetOrCreate(ctx context.Context, identity domain.Identity) (*domain.Profile, error) {
	if identity.ID == "" {
		return nil, domain.ErrUnauthenticated
	}
	profile, err := s.profileRepo.GetByID(ctx, identity.ID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	profile = domain.NewProfile(identity.ID, identity.Email, identity.DisplayName, time.Now())
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) Save(ctx context.Context, identity domain.Identity, displayName, teeShirtSize string) (*domain.Profile, error) {
	profile, err := s.GetOrCreate(ctx, identity)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(displayName); name != "" {
		profile.DisplayName = name
	}
	if teeShirtSize != "" {
		if !domain.ValidTeeShirtSize(teeShirtSize) {
			return nil, fmt.Errorf("%w: unknown tee shirt size %q", domain.ErrInvalidInput, teeShirtSize)
		}
		profile.TeeShirtSize = teeShirtSize
	}
	profile.UpdatedAt = time.Now()

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return profile, nil
}
