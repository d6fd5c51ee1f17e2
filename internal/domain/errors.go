package domain

import "errors"

// Sentinel errors shared across services and repositories.
var (
	// ErrUnauthenticated is returned when an operation requires a caller
	// identity and none could be resolved.
	ErrUnauthenticated = errors.New("authorization required")

	// ErrForbidden is returned when the caller is authenticated but lacks
	// permission (e.g. a non-organizer creating a session).
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned when a referenced key does not resolve to an
	// existing entity.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned for malformed or missing required input,
	// or a domain rule violation detected at input time.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateEmail is returned when signing up with an email that
	// already has a profile.
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrAlreadyRegistered is returned when registering for a conference the
	// caller already attends.
	ErrAlreadyRegistered = errors.New("you have already registered for this conference")

	// ErrNoSeatsAvailable is returned when registering for a conference with
	// no seats left.
	ErrNoSeatsAvailable = errors.New("there are no seats available")

	// ErrAlreadyInWishlist is returned when adding a session that is already
	// in the caller's wishlist.
	ErrAlreadyInWishlist = errors.New("you have already added this session to your wishlist")
)
