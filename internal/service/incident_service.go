package service

import (
	"github.com/citywatch/alerts-backend-go/internal/models"
	"github.com/citywatch/alerts-backend-go/internal/repository"
)

// IncidentService handles business logic for raw incidents.
type IncidentService struct {
	repo *repository.IncidentRepository
}

// NewIncidentService creates a new incident service
func NewIncidentService(repo *repository.IncidentRepository) *IncidentService {
	return &IncidentService{repo: repo}
}

// Ingest upserts a batch of incidents from the upstream feed.
func (s *IncidentService) Ingest(incidents []models.Incident) error {
	return s.repo.UpsertBatch(incidents)
}

// ListLatest returns the most recent incidents.
func (s *IncidentService) ListLatest(limit int) ([]models.Incident, error) {
	return s.repo.ListLatest(limit)
}
