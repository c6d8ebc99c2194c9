package migration

import (
	"context"

	"chartlab/internal/errors"

	"github.com/jmoiron/sqlx"
)

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
	steps   []step
}

type step struct {
	name string
	sql  string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
		steps: []step{
			{name: "create datasets table", sql: createDatasetsTable},
			{name: "add datasets source column", sql: addDatasetsSourceColumn},
			{name: "create datasets indexes", sql: createDatasetsIndexes},
		},
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Steps lists the migration step names in execution order
func (r *MigrationRunner) Steps() []string {
	names := make([]string, len(r.steps))
	for i, s := range r.steps {
		names[i] = s.name
	}
	return names
}

// Run executes all database migrations in the correct order. Every statement
// is idempotent, so Run is safe on an already migrated database.
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	for _, s := range r.steps {
		if _, err := db.ExecContext(ctx, s.sql); err != nil {
			return errors.WithCode(errors.CodeDatabaseError, errors.Wrapf(err, "failed to %s", s.name))
		}
	}
	return nil
}

const createDatasetsTable = `
	CREATE TABLE IF NOT EXISTS datasets (
		id TEXT PRIMARY KEY,
		filename TEXT NOT NULL,
		mime_type TEXT NOT NULL DEFAULT '',
		file_size BIGINT NOT NULL DEFAULT 0,
		headers TEXT[] NOT NULL DEFAULT '{}',
		rows JSONB NOT NULL DEFAULT '[]',
		row_count INTEGER NOT NULL DEFAULT 0,
		column_count INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)
`

const addDatasetsSourceColumn = `
	DO $$
	BEGIN
		IF NOT EXISTS (
			SELECT 1 FROM information_schema.columns
			WHERE table_name = 'datasets' AND column_name = 'source'
		) THEN
			ALTER TABLE datasets ADD COLUMN source VARCHAR(20) NOT NULL DEFAULT 'upload';
		END IF;
	END $$;
`

const createDatasetsIndexes = `
	CREATE INDEX IF NOT EXISTS idx_datasets_created_at ON datasets(created_at DESC);
`
