package cache

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// GetMigrations returns all available migrations in order
func GetMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_annotations_table",
			SQL: `
				CREATE TABLE IF NOT EXISTS annotations (
					kind TEXT NOT NULL,
					name TEXT NOT NULL,
					amenity TEXT NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (kind, name)
				);

				CREATE INDEX IF NOT EXISTS idx_annotations_kind ON annotations (kind);
			`,
		},
		{
			Version: 2,
			Name:    "create_runs_table",
			SQL: `
				CREATE TABLE IF NOT EXISTS runs (
					id TEXT PRIMARY KEY,
					command TEXT NOT NULL,
					city TEXT NOT NULL,
					started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					finished_at DATETIME,
					resolved_count INTEGER DEFAULT 0
				);

				CREATE INDEX IF NOT EXISTS idx_runs_city ON runs (city);
				CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs (started_at);
			`,
		},
	}
}

// RunMigrations executes all pending migrations
func RunMigrations(db *sql.DB) error {
	if err := ensureMigrationsTable(db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, err := getCurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}

	for _, migration := range GetMigrations() {
		if migration.Version <= currentVersion {
			continue // Already applied
		}
		if err := runMigration(db, migration); err != nil {
			return fmt.Errorf("failed to run migration %d (%s): %w", migration.Version, migration.Name, err)
		}
	}
	return nil
}

func ensureMigrationsTable(db *sql.DB) error {
	sql := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
	_, err := db.Exec(sql)
	return err
}

func getCurrentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}

func runMigration(db *sql.DB, migration Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(migration.SQL); err != nil {
		return err
	}
	if _, err := tx.Exec(
		"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
		migration.Version, migration.Name,
	); err != nil {
		return err
	}
	return tx.Commit()
}

// configureDatabase applies SQLite settings and runs migrations.
// SQLite serializes writes; the single-user workflow never needs more
// than a couple of connections.
func configureDatabase(db *sql.DB) error {
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=FULL", // every put must be durable before the next prompt
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to apply pragma '%s': %w", pragma, err)
		}
	}

	if err := RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
