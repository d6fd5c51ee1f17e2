package services

import (
	"context"
	"errors"
	"fmt"

	"confcentral/internal/domain"
)

type wishlistService struct {
	profileRepo domain.ProfileRepository
	sessionRepo domain.SessionRepository
	profiles    domain.ProfileService
}

// NewWishlistService creates a WishlistService with the given repositories.
func NewWishlistService(profileRepo domain.ProfileRepository, sessionRepo domain.SessionRepository, profiles domain.ProfileService) domain.WishlistService {
	return &wishlistService{
		profileRepo: profileRepo,
		sessionRepo: sessionRepo,
		profiles:    profiles,
	}
}

func (s *wishlistService) Add(ctx context.Context, identity domain.Identity, sessionKey string) (bool, error) {
	profile, err := s.profiles.GetOrCreate(ctx, identity)
	if err != nil {
		return false, err
	}
	if _, err := s.sessionRepo.GetByID(ctx, sessionKey); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("get session: %w", err)
	}
	if profile.Wishlisted(sessionKey) {
		return false, domain.ErrAlreadyInWishlist
	}

	// The membership guard runs again inside the update; a concurrent add
	// of the same key surfaces as ErrAlreadyInWishlist here.
	if err := s.profileRepo.AppendWishlist(ctx, profile.ID, sessionKey); err != nil {
		if errors.Is(err, domain.ErrAlreadyInWishlist) {
			return false, err
		}
		return false, fmt.Errorf("append wishlist: %w", err)
	}
	return true, nil
}

func (s *wishlistService) Remove(ctx context.Context, identity domain.Identity, sessionKey string) (bool, error) {
	profile, err := s.profiles.GetOrCreate(ctx, identity)
	if err != nil {
		return false, err
	}
	if !profile.Wishlisted(sessionKey) {
		// Idempotent no-op.
		return false, nil
	}

	removed, err := s.profileRepo.RemoveWishlist(ctx, profile.ID, sessionKey)
	if err != nil {
		return false, fmt.Errorf("remove wishlist: %w", err)
	}
	return removed, nil
}

func (s *wishlistService) List(ctx context.Context, identity domain.Identity, conferenceKey string) ([]*domain.Session, error) {
	profile, err := s.profiles.GetOrCreate(ctx, identity)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.ListByIDs(ctx, profile.SessionKeysWishlist)
	if err != nil {
		return nil, fmt.Errorf("list wishlisted sessions: %w", err)
	}
	inConference := make([]*domain.Session, 0, len(sessions))
	for _, sess := range sessions {
		if sess.ConferenceID == conferenceKey {
			inConference = append(inConference, sess)
		}
	}
	return inConference, nil
}
