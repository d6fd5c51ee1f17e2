package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"confcentral/internal/domain"
	"confcentral/internal/query"
)

type conferenceRepository struct {
	DB *sql.DB
}

func NewConferenceRepository(db *sql.DB) domain.ConferenceRepository {
	return &conferenceRepository{
		DB: db,
	}
}

const conferenceColumns = `id, organizer_id, name, city, topics, start_date, end_date, month, max_attendees, seats_available, created_at, updated_at`

func (r *conferenceRepository) Create(ctx context.Context, c *domain.Conference) error {
	q := `
		INSERT INTO conferences (id, organizer_id, name, city, topics, start_date, end_date, month, max_attendees, seats_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := querier(ctx, r.DB).ExecContext(ctx, q,
		c.ID, c.OrganizerID, c.Name, c.City, pq.Array(c.Topics),
		c.StartDate, c.EndDate, c.Month, c.MaxAttendees, c.SeatsAvailable,
		c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *conferenceRepository) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	q := `
		SELECT ` + conferenceColumns + `
		FROM conferences
		WHERE id = $1
	`
	c, err := scanConference(querier(ctx, r.DB).QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *conferenceRepository) ListByOrganizer(ctx context.Context, organizerID string) ([]*domain.Conference, error) {
	q := `
		SELECT ` + conferenceColumns + `
		FROM conferences
		WHERE organizer_id = $1
		ORDER BY created_at DESC
	`
	return r.list(ctx, q, organizerID)
}

func (r *conferenceRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Conference, error) {
	if len(ids) == 0 {
		return []*domain.Conference{}, nil
	}
	q := `
		SELECT ` + conferenceColumns + `
		FROM conferences
		WHERE id = ANY($1)
		ORDER BY created_at
	`
	return r.list(ctx, q, pq.Array(ids))
}

// Query renders the compiled spec into SQL. Property names come from the
// compiler's whitelist; only values travel as bind arguments. An equality
// condition on topics is array membership.
func (r *conferenceRepository) Query(ctx context.Context, spec *query.Spec) ([]*domain.Conference, error) {
	var (
		where []string
		args  []any
	)
	for _, cond := range spec.Conditions {
		args = append(args, cond.Value)
		n := len(args)
		if cond.Property == "topics" {
			if cond.Comparator == "<>" {
				where = append(where, fmt.Sprintf("NOT ($%d = ANY(topics))", n))
			} else {
				where = append(where, fmt.Sprintf("$%d = ANY(topics)", n))
			}
			continue
		}
		where = append(where, fmt.Sprintf("%s %s $%d", cond.Property, cond.Comparator, n))
	}

	q := `SELECT ` + conferenceColumns + ` FROM conferences`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY ` + strings.Join(spec.OrderBy, ", ")

	return r.list(ctx, q, args...)
}

func (r *conferenceRepository) ListNearlySoldOut(ctx context.Context, limit int) ([]*domain.Conference, error) {
	q := `
		SELECT ` + conferenceColumns + `
		FROM conferences
		WHERE seats_available > 0 AND seats_available <= $1
		ORDER BY created_at
	`
	return r.list(ctx, q, limit)
}

// TakeSeat decrements seats_available in place. The guard in the WHERE
// clause serializes concurrent registrations for the last seat: the loser
// matches no row and gets ErrNoSeatsAvailable instead of writing a stale
// absolute count.
func (r *conferenceRepository) TakeSeat(ctx context.Context, id string) error {
	q := `
		UPDATE conferences
		SET seats_available = seats_available - 1, updated_at = NOW()
		WHERE id = $1 AND seats_available > 0
	`
	result, err := querier(ctx, r.DB).ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNoSeatsAvailable
	}
	return nil
}

func (r *conferenceRepository) ReturnSeat(ctx context.Context, id string) error {
	q := `
		UPDATE conferences
		SET seats_available = seats_available + 1, updated_at = NOW()
		WHERE id = $1 AND seats_available < max_attendees
	`
	result, err := querier(ctx, r.DB).ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *conferenceRepository) list(ctx context.Context, q string, args ...any) ([]*domain.Conference, error) {
	rows, err := querier(ctx, r.DB).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conferences := make([]*domain.Conference, 0)
	for rows.Next() {
		c, err := scanConference(rows)
		if err != nil {
			return nil, err
		}
		conferences = append(conferences, c)
	}
	return conferences, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConference(row rowScanner) (*domain.Conference, error) {
	c := &domain.Conference{}
	var startNull, endNull sql.NullTime
	err := row.Scan(
		&c.ID, &c.OrganizerID, &c.Name, &c.City, pq.Array(&c.Topics),
		&startNull, &endNull, &c.Month, &c.MaxAttendees, &c.SeatsAvailable,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if startNull.Valid {
		c.StartDate = &startNull.Time
	}
	if endNull.Valid {
		c.EndDate = &endNull.Time
	}
	if c.Topics == nil {
		c.Topics = []string{}
	}
	return c, nil
}
