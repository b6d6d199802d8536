package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citywatch/alerts-backend-go/internal/models"
	"github.com/citywatch/alerts-backend-go/internal/spatial"
)

type fakeAlertStore struct {
	alerts  []models.Hotspot
	listErr error
}

func (f *fakeAlertStore) Append(hotspots []models.Hotspot, now time.Time) error {
	for _, h := range hotspots {
		h.CreatedAt = now
		f.alerts = append(f.alerts, h)
	}
	return nil
}

func (f *fakeAlertStore) ListRecent(limit int) ([]models.Hotspot, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if limit <= 0 {
		return []models.Hotspot{}, nil
	}
	if limit > len(f.alerts) {
		limit = len(f.alerts)
	}
	return f.alerts[:limit], nil
}

func TestNearbyDistanceFilter(t *testing.T) {
	store := &fakeAlertStore{alerts: []models.Hotspot{
		{LatBin: 0, LonBin: 0.009, Count: 7}, // ~1 km from origin
	}}
	svc := NewAlertService(store)

	// Inside a 2 km radius, distance ≈ 1.0 km.
	got, err := svc.Nearby(0, 0, 2, 50)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InEpsilon(t, 1.0, got[0].DistanceKm, 0.01)

	// Outside a 0.5 km radius.
	got, err = svc.Nearby(0, 0, 0.5, 50)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNearbySortsByDistanceAndTruncates(t *testing.T) {
	store := &fakeAlertStore{alerts: []models.Hotspot{
		{ID: 1, LatBin: 0, LonBin: 0.030, Count: 9},
		{ID: 2, LatBin: 0, LonBin: 0.010, Count: 5},
		{ID: 3, LatBin: 0, LonBin: 0.020, Count: 6},
		{ID: 4, LatBin: 0, LonBin: 0.900, Count: 8}, // ~100 km, out of range
	}}
	svc := NewAlertService(store)

	got, err := svc.Nearby(0, 0, 5, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
	assert.Less(t, got[0].DistanceKm, got[1].DistanceKm)
}

func TestNearbyDegradesOnMalformedBounds(t *testing.T) {
	store := &fakeAlertStore{alerts: []models.Hotspot{{LatBin: 0, LonBin: 0.009, Count: 7}}}
	svc := NewAlertService(store)

	for _, tc := range []struct {
		name   string
		radius float64
		limit  int
	}{
		{"zero radius", 0, 50},
		{"negative radius", -1, 50},
		{"zero limit", 2, 0},
		{"negative limit", 2, -5},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.Nearby(0, 0, tc.radius, tc.limit)
			require.NoError(t, err, "malformed bounds must not fail the request")
			assert.Empty(t, got)
		})
	}
}

func TestNearbyInvalidCoordinates(t *testing.T) {
	svc := NewAlertService(&fakeAlertStore{})

	_, err := svc.Nearby(91, 0, 2, 50)
	assert.ErrorIs(t, err, spatial.ErrInvalidCoordinate)

	_, err = svc.Nearby(0, -181, 2, 50)
	assert.ErrorIs(t, err, spatial.ErrInvalidCoordinate)
}

func TestNearbyStoreFailure(t *testing.T) {
	svc := NewAlertService(&fakeAlertStore{listErr: errors.New("disk gone")})

	_, err := svc.Nearby(0, 0, 2, 50)
	require.Error(t, err)
}
