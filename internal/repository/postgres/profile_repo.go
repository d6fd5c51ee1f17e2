package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"confcentral/internal/domain"
)

type profileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) domain.ProfileRepository {
	return &profileRepository{
		DB: db,
	}
}

func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	query := `
		INSERT INTO profiles (id, email, display_name, tee_shirt_size, password_hash, password_salt,
			conference_keys_attending, session_keys_wishlist, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := querier(ctx, r.DB).ExecContext(ctx, query,
		p.ID, p.Email, p.DisplayName, p.TeeShirtSize, p.PasswordHash, p.PasswordSalt,
		pq.Array(p.ConferenceKeysAttending), pq.Array(p.SessionKeysWishlist),
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `
		SELECT id, email, display_name, tee_shirt_size, password_hash, password_salt,
			conference_keys_attending, session_keys_wishlist, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`
	return r.scanOne(querier(ctx, r.DB).QueryRowContext(ctx, query, id))
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	query := `
		SELECT id, email, display_name, tee_shirt_size, password_hash, password_salt,
			conference_keys_attending, session_keys_wishlist, created_at, updated_at
		FROM profiles
		WHERE email = $1
	`
	return r.scanOne(querier(ctx, r.DB).QueryRowContext(ctx, query, email))
}

func (r *profileRepository) scanOne(row *sql.Row) (*domain.Profile, error) {
	p := &domain.Profile{}
	err := row.Scan(
		&p.ID, &p.Email, &p.DisplayName, &p.TeeShirtSize, &p.PasswordHash, &p.PasswordSalt,
		pq.Array(&p.ConferenceKeysAttending), pq.Array(&p.SessionKeysWishlist),
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if p.ConferenceKeysAttending == nil {
		p.ConferenceKeysAttending = []string{}
	}
	if p.SessionKeysWishlist == nil {
		p.SessionKeysWishlist = []string{}
	}
	return p, nil
}

// Update persists the user-modifiable fields only. The key lists have their
// own column-scoped mutations below, so a profile save never clobbers a
// concurrent registration or wishlist change.
func (r *profileRepository) Update(ctx context.Context, p *domain.Profile) error {
	query := `
		UPDATE profiles
		SET display_name = $2, tee_shirt_size = $3, updated_at = $4
		WHERE id = $1
	`
	result, err := querier(ctx, r.DB).ExecContext(ctx, query,
		p.ID, p.DisplayName, p.TeeShirtSize, p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AppendAttending adds the key with the membership guard inside the update,
// so two concurrent registrations cannot both append it.
func (r *profileRepository) AppendAttending(ctx context.Context, id, conferenceKey string) error {
	query := `
		UPDATE profiles
		SET conference_keys_attending = array_append(conference_keys_attending, $2), updated_at = NOW()
		WHERE id = $1 AND NOT ($2 = ANY(conference_keys_attending))
	`
	result, err := querier(ctx, r.DB).ExecContext(ctx, query, id, conferenceKey)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrAlreadyRegistered
	}
	return nil
}

func (r *profileRepository) RemoveAttending(ctx context.Context, id, conferenceKey string) (bool, error) {
	query := `
		UPDATE profiles
		SET conference_keys_attending = array_remove(conference_keys_attending, $2), updated_at = NOW()
		WHERE id = $1 AND $2 = ANY(conference_keys_attending)
	`
	result, err := querier(ctx, r.DB).ExecContext(ctx, query, id, conferenceKey)
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (r *profileRepository) AppendWishlist(ctx context.Context, id, sessionKey string) error {
	query := `
		UPDATE profiles
		SET session_keys_wishlist = array_append(session_keys_wishlist, $2), updated_at = NOW()
		WHERE id = $1 AND NOT ($2 = ANY(session_keys_wishlist))
	`
	result, err := querier(ctx, r.DB).ExecContext(ctx, query, id, sessionKey)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrAlreadyInWishlist
	}
	return nil
}

func (r *profileRepository) RemoveWishlist(ctx context.Context, id, sessionKey string) (bool, error) {
	query := `
		UPDATE profiles
		SET session_keys_wishlist = array_remove(session_keys_wishlist, $2), updated_at = NOW()
		WHERE id = $1 AND $2 = ANY(session_keys_wishlist)
	`
	result, err := querier(ctx, r.DB).ExecContext(ctx, query, id, sessionKey)
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (r *profileRepository) ListWishlists(ctx context.Context) ([][]string, error) {
	query := `
		SELECT session_keys_wishlist
		FROM profiles
		ORDER BY created_at
	`
	rows, err := querier(ctx, r.DB).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wishlists := make([][]string, 0)
	for rows.Next() {
		var keys []string
		if err := rows.Scan(pq.Array(&keys)); err != nil {
			return nil, err
		}
		wishlists = append(wishlists, keys)
	}
	return wishlists, rows.Err()
}
