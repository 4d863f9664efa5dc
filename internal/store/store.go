// Package store persists cycle results to Postgres for offline analysis.
// Persistence is optional; the engine runs fully without it.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/eulerlabs/euler/internal/composite"
)

const schema = `
CREATE TABLE IF NOT EXISTS risk_results (
	id            TEXT PRIMARY KEY,
	ts            TIMESTAMPTZ NOT NULL,
	score         DOUBLE PRECISION NOT NULL,
	regime        TEXT NOT NULL,
	strategy      TEXT NOT NULL,
	contributions JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS risk_results_ts_idx ON risk_results (ts);
`

// Store appends one row per compute cycle.
type Store struct {
	db *sqlx.DB
}

// Open connects to Postgres and ensures the results table exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect result store: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure result schema: %w", err)
	}
	log.Info().Msg("result store ready")
	return &Store{db: db}, nil
}

// Record inserts a cycle result. Storage failures are reported but callers
// treat them as non-fatal.
func (s *Store) Record(ctx context.Context, result *composite.Result) error {
	contributions, err := json.Marshal(result.Contributions)
	if err != nil {
		return fmt.Errorf("marshal contributions: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO risk_results (id, ts, score, regime, strategy, contributions)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		result.ID, result.Timestamp, result.Score, result.Regime.Label, result.Strategy, contributions)
	if err != nil {
		return fmt.Errorf("record result %s: %w", result.ID, err)
	}
	return nil
}

// Recent returns the latest n results, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]StoredResult, error) {
	var rows []StoredResult
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, ts, score, regime, strategy FROM risk_results ORDER BY ts DESC LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("load recent results: %w", err)
	}
	return rows, nil
}

// StoredResult is the persisted summary row.
type StoredResult struct {
	ID       string    `db:"id" json:"id"`
	TS       time.Time `db:"ts" json:"ts"`
	Score    float64   `db:"score" json:"score"`
	Regime   string    `db:"regime" json:"regime"`
	Strategy string    `db:"strategy" json:"strategy"`
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
