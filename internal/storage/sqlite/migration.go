package sqlite

import (
	"fmt"
)

// migrations are applied in order; the index+1 is the schema version
// recorded in PRAGMA user_version.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS preferences (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
}

// SchemaVersion is the version reached after all migrations run.
func SchemaVersion() int {
	return len(migrations)
}

func (s *Store) migrate() error {
	var current int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("sqlite storage: read schema version: %w", err)
	}
	if current > len(migrations) {
		return fmt.Errorf("sqlite storage: schema version %d is newer than supported %d", current, len(migrations))
	}

	for version := current; version < len(migrations); version++ {
		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("sqlite storage: begin migration %d: %w", version+1, err)
		}
		if _, err := tx.Exec(migrations[version]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("sqlite storage: apply migration %d: %w", version+1, err)
		}
		// PRAGMA does not accept bound parameters.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", version+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("sqlite storage: record migration %d: %w", version+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("sqlite storage: commit migration %d: %w", version+1, err)
		}
	}
	return nil
}
