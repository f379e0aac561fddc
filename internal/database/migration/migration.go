// Package migration creates the netlist schema on first start.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelQuery reports whether the schema is already in place.
const sentinelQuery = "SELECT to_regclass('public.netlists') IS NOT NULL"

var steps = []migrationStep{
	{
		Name: "create_table_netlists",
		SQL: `CREATE TABLE IF NOT EXISTS netlists (
  id              UUID        PRIMARY KEY,
  name            TEXT        NOT NULL CHECK (name <> ''),
  description     TEXT        NOT NULL DEFAULT '',
  components      JSONB       NOT NULL CHECK (jsonb_typeof(components) = 'array'),
  nets            JSONB       NOT NULL CHECK (jsonb_typeof(nets) = 'array'),
  component_count INTEGER     NOT NULL CHECK (component_count >= 0),
  net_count       INTEGER     NOT NULL CHECK (net_count >= 0),
  storage_path    TEXT        NOT NULL UNIQUE,
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_netlists_name",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_netlists_name ON netlists (name);`,
	},
	{
		Name: "create_index_netlists_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_netlists_created_at ON netlists (created_at DESC);`,
	},
}

// EnsureMigrated creates the netlists table and its indexes unless the table
// already exists.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger *zap.Logger, dbHost string) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.With(zap.String("component", "database"), zap.String("db_host", dbHost))
	start := time.Now()

	log.Info("db_migration_check")

	var exists bool
	if err := db.QueryRowContext(ctx, sentinelQuery).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("reason", "schema already exists"),
			zap.Duration("duration", time.Since(start)),
		)
		return nil
	}

	log.Info("db_migration_start", zap.Int("steps", len(steps)))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Duration("duration", time.Since(start)),
				zap.Duration("step_duration", time.Since(stepStart)),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.Debug("db_migration_step",
			zap.String("migration_step", step.Name),
			zap.Duration("step_duration", time.Since(stepStart)),
		)
	}

	log.Info("db_migration_success", zap.Duration("duration", time.Since(start)))
	return nil
}
