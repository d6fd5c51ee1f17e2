package domain

import (
	"context"
	"time"
)

// Identity is the resolved caller identity carried by an access token.
type Identity struct {
	ID          string
	Email       string
	DisplayName string
}

// TokenIssuer issues access tokens (e.g. JWT) for an authenticated profile.
type TokenIssuer interface {
	Issue(identity Identity, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the caller identity.
type TokenVerifier interface {
	Verify(token string) (Identity, error)
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// AuthService defines signup and login for the API surface.
type AuthService interface {
	SignUp(ctx context.Context, email, password, displayName string) (*Profile, string, error)
	Login(ctx context.Context, email, password string) (*Profile, string, error)
}
