package postgres

import (
	"context"
	"database/sql"
	"errors"

	"confcentral/internal/domain"
)

type speakerRepository struct {
	DB *sql.DB
}

func NewSpeakerRepository(db *sql.DB) domain.SpeakerRepository {
	return &speakerRepository{
		DB: db,
	}
}

func (r *speakerRepository) Upsert(ctx context.Context, s *domain.Speaker) error {
	q := `
		INSERT INTO speakers (email, name, specialization, workplace, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name, specialization = EXCLUDED.specialization,
			workplace = EXCLUDED.workplace, updated_at = EXCLUDED.updated_at
	`
	_, err := querier(ctx, r.DB).ExecContext(ctx, q,
		s.Email, s.Name, s.Specialization, s.Workplace, s.CreatedAt, s.UpdatedAt,
	)
	return err
}

func (r *speakerRepository) GetByEmail(ctx context.Context, email string) (*domain.Speaker, error) {
	q := `
		SELECT email, name, specialization, workplace, created_at, updated_at
		FROM speakers
		WHERE email = $1
	`
	s := &domain.Speaker{}
	err := querier(ctx, r.DB).QueryRowContext(ctx, q, email).Scan(
		&s.Email, &s.Name, &s.Specialization, &s.Workplace, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}
