package sink

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the current SQLite schema version.
const SchemaVersion = 1

const schemaV1 = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    seed INTEGER NOT NULL,
    config_digest TEXT NOT NULL,
    row_count INTEGER NOT NULL,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS simulation_rows (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    seq_no INTEGER NOT NULL,
    post_id TEXT NOT NULL,
    views_inc INTEGER NOT NULL,
    cum_views INTEGER NOT NULL,
    datetime TEXT NOT NULL,
    PRIMARY KEY (run_id, seq_no)
);
CREATE INDEX IF NOT EXISTS idx_simulation_rows_post ON simulation_rows(run_id, post_id);

CREATE TABLE IF NOT EXISTS schema_info (
    version INTEGER PRIMARY KEY
);
`

// InitSchema creates the schema if needed and records the version.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaV1); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	if _, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO schema_info (version) VALUES (?)`, SchemaVersion); err != nil {
		return fmt.Errorf("recording schema version: %w", err)
	}
	return nil
}
