package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/citywatch/alerts-backend-go/internal/hotspot"
	"github.com/citywatch/alerts-backend-go/internal/models"
	"github.com/citywatch/alerts-backend-go/internal/notify"
)

// IncidentSource provides the incident snapshot a detection pass runs
// over. The upstream feed owns the data; the pass only reads it.
type IncidentSource interface {
	ListLatest(limit int) ([]models.Incident, error)
}

// Broadcaster pushes freshly persisted alerts to live client sessions.
type Broadcaster interface {
	Broadcast(hotspots []models.Hotspot)
}

// DetectService orchestrates a detection pass: snapshot, bin and
// threshold, persist, then notify and broadcast. Persistence comes
// first: if the append fails the pass stops, so no channel ever
// announces alerts that were not durably recorded.
type DetectService struct {
	incidents   IncidentSource
	alerts      AlertStore
	dispatcher  *notify.Dispatcher
	broadcaster Broadcaster

	granularity   int
	minCount      int
	snapshotLimit int
}

// NewDetectService creates a new detection service
func NewDetectService(
	incidents IncidentSource,
	alerts AlertStore,
	dispatcher *notify.Dispatcher,
	broadcaster Broadcaster,
	granularity, minCount, snapshotLimit int,
) *DetectService {
	return &DetectService{
		incidents:     incidents,
		alerts:        alerts,
		dispatcher:    dispatcher,
		broadcaster:   broadcaster,
		granularity:   granularity,
		minCount:      minCount,
		snapshotLimit: snapshotLimit,
	}
}

// RunPass executes one detection pass and returns the hotspots it
// persisted. Notification and broadcast failures are contained (logged
// and reported per channel); a storage failure aborts the pass and is
// returned to the caller.
func (s *DetectService) RunPass(ctx context.Context) ([]models.Hotspot, error) {
	started := time.Now()

	snapshot, err := s.incidents.ListLatest(s.snapshotLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load incident snapshot: %w", err)
	}

	hotspots, err := hotspot.Detect(snapshot, s.granularity, s.minCount)
	if err != nil {
		return nil, err
	}
	if len(hotspots) == 0 {
		log.Debug().Int("incidents", len(snapshot)).Msg("Detection pass found no hotspots")
		return hotspots, nil
	}

	now := time.Now().UTC()
	if err := s.alerts.Append(hotspots, now); err != nil {
		// Not durably recorded: suppress downstream delivery entirely.
		return nil, fmt.Errorf("failed to persist alerts: %w", err)
	}
	for i := range hotspots {
		hotspots[i].CreatedAt = now
	}

	if s.dispatcher != nil {
		s.dispatcher.Dispatch(ctx, hotspots)
	}
	if s.broadcaster != nil {
		s.broadcaster.Broadcast(hotspots)
	}

	log.Info().
		Int("incidents", len(snapshot)).
		Int("hotspots", len(hotspots)).
		Dur("elapsed", time.Since(started)).
		Msg("Detection pass complete")

	return hotspots, nil
}

// RunLoop triggers a pass every interval until the context is
// cancelled. Pass failures are logged and the loop keeps going.
func (s *DetectService) RunLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.RunPass(ctx); err != nil {
				log.Error().Err(err).Msg("Detection pass failed")
			}
		}
	}
}
