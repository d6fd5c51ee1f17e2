package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"confcentral/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type authService struct {
	profileRepo domain.ProfileRepository
	hasher      domain.PasswordHasher
	tokenIssuer domain.TokenIssuer
	tokenExpiry time.Duration
}

// NewAuthService creates an AuthService backed by the profile repository and
// the auth ports.
func NewAuthService(profileRepo domain.ProfileRepository, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, tokenExpiry time.Duration) domain.AuthService {
	return &authService{
		profileRepo: profileRepo,
		hasher:      hasher,
		tokenIssuer: tokenIssuer,
		tokenExpiry: tokenExpiry,
	}
}

func (s *authService) SignUp(ctx context.Context, email, password, displayName string) (*domain.Profile, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return nil, "", fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if len(password) < 8 {
		return nil, "", fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}

	if _, err := s.profileRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", fmt.Errorf("get profile by email: %w", err)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, "", fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	profile := domain.NewProfile(uuid.NewString(), email, strings.TrimSpace(displayName), time.Now())
	profile.PasswordHash = hash
	profile.PasswordSalt = salt
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, "", fmt.Errorf("create profile: %w", err)
	}

	token, err := s.issue(profile)
	if err != nil {
		return nil, "", err
	}
	return profile, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.Profile, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	profile, err := s.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrUnauthenticated
		}
		return nil, "", fmt.Errorf("get profile by email: %w", err)
	}
	if err := s.hasher.Compare(profile.PasswordHash, profile.PasswordSalt, password); err != nil {
		return nil, "", domain.ErrUnauthenticated
	}

	token, err := s.issue(profile)
	if err != nil {
		return nil, "", err
	}
	return profile, token, nil
}

func (s *authService) issue(p *domain.Profile) (string, error) {
	identity := domain.Identity{ID: p.ID, Email: p.Email, DisplayName: p.DisplayName}
	token, err := s.tokenIssuer.Issue(identity, s.tokenExpiry)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
