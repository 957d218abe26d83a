// Package postgres implements the journal repositories on PostgreSQL via lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/bourbonvault/backend/internal/domain"
)

// uniqueViolation is the SQLSTATE for a unique constraint failure
const uniqueViolation = "23505"

// Options configures the connection pool
type Options struct {
	DSN            string
	MaxConnections int
	MaxIdle        int
}

// Open creates a pooled connection and verifies it
func Open(ctx context.Context, opts Options) (*sql.DB, error) {
	db, err := sql.Open("postgres", opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(opts.MaxConnections)
	db.SetMaxIdleConns(opts.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return db, nil
}

// schema is applied at startup; every statement is idempotent
var schema = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		user_id              TEXT PRIMARY KEY,
		display_name         TEXT NOT NULL DEFAULT '',
		bio                  TEXT NOT NULL DEFAULT '',
		location             TEXT NOT NULL DEFAULT '',
		favorite_style       TEXT NOT NULL DEFAULT '',
		website              TEXT NOT NULL DEFAULT '',
		twitter_handle       TEXT NOT NULL DEFAULT '',
		flavor_preferences   TEXT[] NOT NULL DEFAULT '{}',
		avatar_url           TEXT NOT NULL DEFAULT '',
		onboarding_completed BOOLEAN NOT NULL DEFAULT FALSE,
		subscription_tier    TEXT NOT NULL DEFAULT 'free',
		created_at           TIMESTAMPTZ NOT NULL,
		updated_at           TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tasting_notes (
		id                  UUID PRIMARY KEY,
		user_id             TEXT NOT NULL,
		bourbon_id          TEXT NOT NULL,
		bourbon_name        TEXT NOT NULL,
		visible_color       TEXT NOT NULL DEFAULT '',
		bouquet             TEXT NOT NULL DEFAULT '',
		taste               TEXT NOT NULL DEFAULT '',
		finish              TEXT NOT NULL DEFAULT '',
		overall_thoughts    TEXT NOT NULL DEFAULT '',
		discernible_flavors TEXT[] NOT NULL DEFAULT '{}',
		rating              NUMERIC(2,1),
		location            TEXT NOT NULL DEFAULT '',
		glassware           TEXT NOT NULL DEFAULT '',
		water_added         BOOLEAN NOT NULL DEFAULT FALSE,
		ice_added           BOOLEAN NOT NULL DEFAULT FALSE,
		photo_url           TEXT NOT NULL DEFAULT '',
		tasted_at           TIMESTAMPTZ NOT NULL,
		created_at          TIMESTAMPTZ NOT NULL,
		updated_at          TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS tasting_notes_user_tasted_idx ON tasting_notes (user_id, tasted_at DESC)`,
	`CREATE TABLE IF NOT EXISTS favorites (
		id         UUID PRIMARY KEY,
		user_id    TEXT NOT NULL,
		bourbon_id TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		UNIQUE (user_id, bourbon_id)
	)`,
	`CREATE TABLE IF NOT EXISTS collection_items (
		id             UUID PRIMARY KEY,
		user_id        TEXT NOT NULL,
		bourbon_id     TEXT NOT NULL,
		status         TEXT NOT NULL CHECK (status IN ('own', 'tried', 'want')),
		purchase_price NUMERIC(10,2),
		acquired_date  DATE,
		notes          TEXT NOT NULL DEFAULT '',
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL,
		UNIQUE (user_id, bourbon_id)
	)`,
}

// InitSchema creates missing tables and indexes
func InitSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// Repositories bundles every repository on one pool
type Repositories struct {
	Profiles     *ProfileRepository
	TastingNotes *TastingNoteRepository
	Favorites    *FavoriteRepository
	Collection   *CollectionRepository
}

// NewRepositories builds every repository on db
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Profiles:     &ProfileRepository{db: db},
		TastingNotes: &TastingNoteRepository{db: db},
		Favorites:    &FavoriteRepository{db: db},
		Collection:   &CollectionRepository{db: db},
	}
}

// translate maps driver errors onto domain sentinels
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, what)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyExists, what)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// expectOne turns a zero-row write into ErrNotFound
func expectOne(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, what)
	}
	return nil
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	v := n.Time
	return &v
}

func stringsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
