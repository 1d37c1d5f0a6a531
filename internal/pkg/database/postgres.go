package database

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// dialTimeout bounds the startup ping of every backing store
const dialTimeout = 5 * time.Second

// NewPostgres opens the booking catalog database.
// An empty databaseURL returns a nil pool; the catalog then comes from a file or the built-in list.
func NewPostgres(ctx context.Context, databaseURL string) (*sqlx.DB, error) {
	if databaseURL == "" {
		log.Info().Msg("DATABASE_URL not configured, using the static booking catalog")
		return nil, nil
	}

	db, err := sqlx.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	// catalog reads only
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	log.Info().Msg("Connected to PostgreSQL")
	return db, nil
}

// ClosePostgres closes db; nil is allowed
func ClosePostgres(db *sqlx.DB) {
	if db != nil {
		closeLogged("PostgreSQL", db)
	}
}

func closeLogged(name string, c io.Closer) {
	if err := c.Close(); err != nil {
		log.Error().Err(err).Str("store", name).Msg("Error closing connection")
		return
	}
	log.Info().Str("store", name).Msg("Connection closed")
}
