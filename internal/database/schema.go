package database

import (
	"database/sql"
	"fmt"
)

// Schema statements are idempotent; they run on every startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS incidents (
		id TEXT PRIMARY KEY,
		case_number TEXT,
		occurred_at TIMESTAMP,
		category TEXT,
		description TEXT,
		location_description TEXT,
		arrest BOOLEAN DEFAULT 0,
		domestic BOOLEAN DEFAULT 0,
		latitude REAL,
		longitude REAL,
		updated_on TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_incidents_occurred_at ON incidents(occurred_at DESC)`,
	`CREATE TABLE IF NOT EXISTS alerts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		lat_bin REAL NOT NULL,
		lon_bin REAL NOT NULL,
		count INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_alerts_created_at ON alerts(created_at DESC)`,
}

func createSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
