package sink

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"viewsim/internal/simulation"
)

// RunMeta identifies one simulation run in the database.
type RunMeta struct {
	ID           string
	Seed         int64
	ConfigDigest string
	CreatedAt    time.Time
}

// SQLiteStore persists simulation runs for seeding downstream systems.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and initializes the
// schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// RecordRun stores the run metadata and all of its rows in one transaction,
// so a failed run never leaves a partial table behind.
func (s *SQLiteStore) RecordRun(ctx context.Context, meta RunMeta, rows []simulation.Row) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, seed, config_digest, row_count, created_at) VALUES (?, ?, ?, ?, ?)`,
		meta.ID, meta.Seed, meta.ConfigDigest, len(rows), meta.CreatedAt.UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("inserting run %s: %w", meta.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO simulation_rows (run_id, seq_no, post_id, views_inc, cum_views, datetime) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing row insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx,
			meta.ID, r.SequenceNo, r.PostID, r.Increment, r.CumulativeViews,
			r.Timestamp.Format(TimestampLayout),
		); err != nil {
			return fmt.Errorf("inserting row %d: %w", r.SequenceNo, err)
		}
	}

	return tx.Commit()
}

// RowCount returns the number of stored rows for a run.
func (s *SQLiteStore) RowCount(ctx context.Context, runID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM simulation_rows WHERE run_id = ?`, runID).Scan(&n)
	return n, err
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
