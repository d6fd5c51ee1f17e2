package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"confcentral/internal/domain"
)

type sessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &sessionRepository{
		DB: db,
	}
}

const sessionColumns = `id, conference_id, name, type_of_session, highlights, duration, date, start_time, speaker_email, created_at`

func (r *sessionRepository) Create(ctx context.Context, s *domain.Session) error {
	q := `
		INSERT INTO sessions (id, conference_id, name, type_of_session, highlights, duration, date, start_time, speaker_email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := querier(ctx, r.DB).ExecContext(ctx, q,
		s.ID, s.ConferenceID, s.Name, s.TypeOfSession, s.Highlights, s.Duration,
		s.Date, nullString(s.StartTime), s.SpeakerEmail, s.CreatedAt,
	)
	return err
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	q := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE id = $1
	`
	s, err := scanSession(querier(ctx, r.DB).QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *sessionRepository) ListByConference(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	q := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE conference_id = $1
		ORDER BY created_at
	`
	return r.list(ctx, q, conferenceID)
}

func (r *sessionRepository) ListByConferenceAndType(ctx context.Context, conferenceID, typeOfSession string) ([]*domain.Session, error) {
	q := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE conference_id = $1 AND type_of_session = $2
		ORDER BY created_at
	`
	return r.list(ctx, q, conferenceID, typeOfSession)
}

func (r *sessionRepository) ListBySpeaker(ctx context.Context, speakerEmail string) ([]*domain.Session, error) {
	q := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE speaker_email = $1
		ORDER BY created_at
	`
	return r.list(ctx, q, speakerEmail)
}

func (r *sessionRepository) ListByConferenceAndDate(ctx context.Context, conferenceID string, date time.Time) ([]*domain.Session, error) {
	q := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE conference_id = $1 AND date = $2
		ORDER BY created_at
	`
	return r.list(ctx, q, conferenceID, date)
}

func (r *sessionRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Session, error) {
	if len(ids) == 0 {
		return []*domain.Session{}, nil
	}
	q := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE id = ANY($1)
		ORDER BY created_at
	`
	return r.list(ctx, q, pq.Array(ids))
}

func (r *sessionRepository) list(ctx context.Context, q string, args ...any) ([]*domain.Session, error) {
	rows, err := querier(ctx, r.DB).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]*domain.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func scanSession(row rowScanner) (*domain.Session, error) {
	s := &domain.Session{}
	var dateNull sql.NullTime
	var startTimeNull sql.NullString
	err := row.Scan(
		&s.ID, &s.ConferenceID, &s.Name, &s.TypeOfSession, &s.Highlights, &s.Duration,
		&dateNull, &startTimeNull, &s.SpeakerEmail, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if dateNull.Valid {
		s.Date = &dateNull.Time
	}
	if startTimeNull.Valid {
		s.StartTime = startTimeNull.String
	}
	return s, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
