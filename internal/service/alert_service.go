package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/citywatch/alerts-backend-go/internal/models"
	"github.com/citywatch/alerts-backend-go/internal/spatial"
)

// nearbyScanLimit caps how many recent alerts a nearby query scans.
const nearbyScanLimit = 10000

// AlertStore is the slice of the alert repository the service needs.
type AlertStore interface {
	Append(hotspots []models.Hotspot, now time.Time) error
	ListRecent(limit int) ([]models.Hotspot, error)
}

// AlertService answers alert queries: most-recent listings and
// point-radius nearby lookups.
type AlertService struct {
	store AlertStore
}

// NewAlertService creates a new alert service
func NewAlertService(store AlertStore) *AlertService {
	return &AlertService{store: store}
}

// ListRecent returns the most recent alerts, newest first.
func (s *AlertService) ListRecent(limit int) ([]models.Hotspot, error) {
	return s.store.ListRecent(limit)
}

// Nearby returns alerts within radiusKm of the query point, ordered by
// ascending great-circle distance to the alert's bin center and
// truncated to limit. A non-positive radius or limit yields an empty
// result rather than an error; malformed client input should degrade,
// not fail the request. Invalid coordinates are an error.
func (s *AlertService) Nearby(lat, lon, radiusKm float64, limit int) ([]models.NearbyAlert, error) {
	if err := spatial.ValidateCoordinate(lat, lon); err != nil {
		return nil, err
	}
	if radiusKm <= 0 || limit <= 0 {
		return []models.NearbyAlert{}, nil
	}

	alerts, err := s.store.ListRecent(nearbyScanLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load alert set: %w", err)
	}

	nearby := make([]models.NearbyAlert, 0, limit)
	for i := range alerts {
		d := spatial.HaversineDistanceKm(lat, lon, alerts[i].LatBin, alerts[i].LonBin)
		if d <= radiusKm {
			nearby = append(nearby, models.NearbyAlert{Hotspot: alerts[i], DistanceKm: d})
		}
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})

	if len(nearby) > limit {
		nearby = nearby[:limit]
	}
	return nearby, nil
}
