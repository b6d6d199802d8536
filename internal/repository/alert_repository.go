package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/citywatch/alerts-backend-go/internal/database"
	"github.com/citywatch/alerts-backend-go/internal/models"
)

// AlertRepository handles database operations for hotspot alerts.
// The alerts table is append-only; no update or delete is exposed.
type AlertRepository struct {
	db *sql.DB
}

// NewAlertRepository creates a new alert repository
func NewAlertRepository(db *sql.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// Append stamps every hotspot with created_at = now and inserts them
// in a single transaction: either the whole batch is persisted or
// none of it is.
func (r *AlertRepository) Append(hotspots []models.Hotspot, now time.Time) error {
	if len(hotspots) == 0 {
		return nil
	}

	return database.Transaction(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT INTO alerts (lat_bin, lon_bin, count, created_at) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare alert insert: %w", err)
		}
		defer stmt.Close()

		for i := range hotspots {
			if _, err := stmt.Exec(hotspots[i].LatBin, hotspots[i].LonBin, hotspots[i].Count, now); err != nil {
				return fmt.Errorf("failed to insert alert: %w", err)
			}
		}
		return nil
	})
}

// ListRecent returns up to limit alerts ordered by created_at
// descending. A non-positive limit yields an empty slice, not an error.
func (r *AlertRepository) ListRecent(limit int) ([]models.Hotspot, error) {
	if limit <= 0 {
		return []models.Hotspot{}, nil
	}

	rows, err := r.db.Query(
		`SELECT id, lat_bin, lon_bin, count, created_at FROM alerts ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]models.Hotspot, 0, limit)
	for rows.Next() {
		var a models.Hotspot
		if err := rows.Scan(&a.ID, &a.LatBin, &a.LonBin, &a.Count, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read alerts: %w", err)
	}

	return alerts, nil
}
