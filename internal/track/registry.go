// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package track persists report subscriptions in a local SQLite database
// and answers which subscriptions are due for a new run.
package track

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/meshintel/compscout/pkg/types"
)

const dbFile = "subscriptions.db"

// DefaultCadence is the recurring-run interval used when none is configured.
const DefaultCadence = 7 * 24 * time.Hour

// Registry manages the subscription SQLite database. Operations are atomic
// at single-record granularity; no cross-record coordination is needed.
type Registry struct {
	db      *sql.DB
	cadence time.Duration
}

// Open opens or creates the registry database at cfg.StoreDir/subscriptions.db
// and creates the schema if it does not exist.
func Open(cfg types.TrackingConfig) (*Registry, error) {
	storeDir := cfg.StoreDir
	if storeDir == "" {
		storeDir = "track"
	}
	if err := os.MkdirAll(storeDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	dbPath := filepath.Join(storeDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	cadence := cfg.Cadence
	if cadence <= 0 {
		cadence = DefaultCadence
	}

	r := &Registry{db: db, cadence: cadence}
	if err := r.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return r, nil
}

// Close releases the database connection.
func (r *Registry) Close() error {
	return r.db.Close()
}

func (r *Registry) createSchema() error {
	_, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS subscriptions (
		user_email TEXT NOT NULL,
		product TEXT NOT NULL,
		created_at TEXT NOT NULL,
		last_run_at TEXT,
		PRIMARY KEY (user_email, product)
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Subscribe inserts the (email, product) pair if absent. Calling it again
// with the same pair is a no-op; the original created_at is kept.
func (r *Registry) Subscribe(ctx context.Context, email, product string) error {
	email = strings.TrimSpace(email)
	product = strings.TrimSpace(product)
	if email == "" || product == "" {
		return fmt.Errorf("subscribe: email and product are required: %w", types.ErrValidation)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO subscriptions (user_email, product, created_at) VALUES (?, ?, ?)`,
		email, product, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting subscription: %w", err)
	}
	return nil
}

// Unsubscribe deletes the (email, product) pair. A missing pair is a no-op.
func (r *Registry) Unsubscribe(ctx context.Context, email, product string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM subscriptions WHERE user_email = ? AND product = ?`,
		email, product,
	)
	if err != nil {
		return fmt.Errorf("deleting subscription: %w", err)
	}
	return nil
}

// ListDue returns all subscriptions eligible for a new run at the given
// time: never run, or last run at least one cadence interval ago. Each call
// re-reads durable state, so an interrupted caller can simply start over.
func (r *Registry) ListDue(ctx context.Context, now time.Time) ([]types.Subscription, error) {
	cutoff := now.UTC().Add(-r.cadence).Format(time.RFC3339)
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_email, product, created_at, last_run_at FROM subscriptions
		 WHERE last_run_at IS NULL OR last_run_at <= ?
		 ORDER BY created_at, user_email, product`,
		cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("querying due subscriptions: %w", err)
	}
	defer rows.Close()
	return scanSubscriptions(rows)
}

// ListAll returns every subscription in creation order.
func (r *Registry) ListAll(ctx context.Context) ([]types.Subscription, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_email, product, created_at, last_run_at FROM subscriptions
		 ORDER BY created_at, user_email, product`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying subscriptions: %w", err)
	}
	defer rows.Close()
	return scanSubscriptions(rows)
}

// MarkRun records that a run completed for the pair at ranAt. A run that
// failed before delivery must not be marked, so the subscription stays due.
func (r *Registry) MarkRun(ctx context.Context, email, product string, ranAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE subscriptions SET last_run_at = ? WHERE user_email = ? AND product = ?`,
		ranAt.UTC().Format(time.RFC3339), email, product,
	)
	if err != nil {
		return fmt.Errorf("marking run: %w", err)
	}
	return nil
}

func scanSubscriptions(rows *sql.Rows) ([]types.Subscription, error) {
	var subs []types.Subscription
	for rows.Next() {
		var sub types.Subscription
		var createdAt string
		var lastRunAt sql.NullString
		if err := rows.Scan(&sub.UserEmail, &sub.Product, &createdAt, &lastRunAt); err != nil {
			return nil, fmt.Errorf("scanning subscription: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			sub.CreatedAt = t
		}
		if lastRunAt.Valid {
			if t, err := time.Parse(time.RFC3339, lastRunAt.String); err == nil {
				sub.LastRunAt = t
			}
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
