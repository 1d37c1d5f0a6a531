package booking

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// PostgresRepository reads the catalog from the hall_bookings table.
// Rows with statuses outside approved/pending/rejected (e.g. cancelled) are skipped.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a Postgres-backed catalog
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const listBookingsQuery = `
	SELECT id::text AS id,
	       event_name AS title,
	       to_char(date, 'YYYY-MM-DD') AS date,
	       to_char(start_time, 'HH24:MI') AS start_time,
	       to_char(end_time, 'HH24:MI') AS end_time,
	       COALESCE(organization_name, booker_name, '') AS organizer,
	       lower(status) AS status
	FROM hall_bookings
	ORDER BY date, start_time`

// List returns every row with a known status
func (r *PostgresRepository) List(ctx context.Context) ([]Event, error) {
	var rows []Event
	if err := r.db.SelectContext(ctx, &rows, listBookingsQuery); err != nil {
		return nil, err
	}

	return knownStatuses(rows), nil
}

// knownStatuses normalizes each status and drops rows that are not approved, pending or rejected
func knownStatuses(rows []Event) []Event {
	events := make([]Event, 0, len(rows))
	for _, e := range rows {
		e.Status = Status(strings.ToLower(strings.TrimSpace(string(e.Status))))
		if !e.Status.IsValid() {
			log.Debug().Str("booking_id", e.ID).Str("status", string(e.Status)).Msg("Skipping booking with unknown status")
			continue
		}
		events = append(events, e)
	}
	return events
}

// OpenRepository picks the catalog source: Postgres when db is set, then the YAML file, then the built-in list.
func OpenRepository(db *sqlx.DB, file string) (Repository, error) {
	switch {
	case db != nil:
		log.Info().Msg("Booking catalog: PostgreSQL")
		return NewPostgresRepository(db), nil
	case file != "":
		repo, err := LoadStaticRepository(file)
		if err != nil {
			return nil, err
		}
		log.Info().Str("file", file).Msg("Booking catalog: file")
		return repo, nil
	default:
		log.Info().Msg("Booking catalog: built-in")
		return NewStaticRepository(DefaultEvents()), nil
	}
}
