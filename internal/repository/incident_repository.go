package repository

import (
	"database/sql"
	"fmt"

	"github.com/citywatch/alerts-backend-go/internal/database"
	"github.com/citywatch/alerts-backend-go/internal/models"
)

// IncidentRepository handles database operations for raw incidents.
// It is the thin surface the upstream feed writes through; the
// detection pass only ever reads snapshots from it.
type IncidentRepository struct {
	db *sql.DB
}

// NewIncidentRepository creates a new incident repository
func NewIncidentRepository(db *sql.DB) *IncidentRepository {
	return &IncidentRepository{db: db}
}

// UpsertBatch inserts or replaces a batch of incidents keyed by id,
// in a single transaction.
func (r *IncidentRepository) UpsertBatch(incidents []models.Incident) error {
	if len(incidents) == 0 {
		return nil
	}

	return database.Transaction(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO incidents (
				id, case_number, occurred_at, category, description,
				location_description, arrest, domestic, latitude, longitude, updated_on
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				case_number = excluded.case_number,
				occurred_at = excluded.occurred_at,
				category = excluded.category,
				description = excluded.description,
				location_description = excluded.location_description,
				arrest = excluded.arrest,
				domestic = excluded.domestic,
				latitude = excluded.latitude,
				longitude = excluded.longitude,
				updated_on = excluded.updated_on`)
		if err != nil {
			return fmt.Errorf("failed to prepare incident upsert: %w", err)
		}
		defer stmt.Close()

		for i := range incidents {
			inc := &incidents[i]
			if _, err := stmt.Exec(
				inc.ID, inc.CaseNumber, inc.OccurredAt, inc.Category, inc.Description,
				inc.LocationDescription, inc.Arrest, inc.Domestic,
				inc.Latitude, inc.Longitude, inc.UpdatedOn,
			); err != nil {
				return fmt.Errorf("failed to upsert incident %s: %w", inc.ID, err)
			}
		}
		return nil
	})
}

// ListLatest returns up to limit incidents ordered by occurred_at
// descending: the snapshot a detection pass runs over.
func (r *IncidentRepository) ListLatest(limit int) ([]models.Incident, error) {
	if limit <= 0 {
		return []models.Incident{}, nil
	}

	rows, err := r.db.Query(`
		SELECT id, case_number, occurred_at, category, description,
			location_description, arrest, domestic, latitude, longitude, updated_on
		FROM incidents ORDER BY occurred_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents: %w", err)
	}
	defer rows.Close()

	incidents := make([]models.Incident, 0, limit)
	for rows.Next() {
		var inc models.Incident
		var caseNumber, description, locationDescription sql.NullString
		if err := rows.Scan(
			&inc.ID, &caseNumber, &inc.OccurredAt, &inc.Category, &description,
			&locationDescription, &inc.Arrest, &inc.Domestic,
			&inc.Latitude, &inc.Longitude, &inc.UpdatedOn,
		); err != nil {
			return nil, fmt.Errorf("failed to scan incident: %w", err)
		}
		inc.CaseNumber = caseNumber.String
		inc.Description = description.String
		inc.LocationDescription = locationDescription.String
		incidents = append(incidents, inc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read incidents: %w", err)
	}

	return incidents, nil
}
