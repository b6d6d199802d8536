package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citywatch/alerts-backend-go/internal/models"
	"github.com/citywatch/alerts-backend-go/internal/service"
)

type stubAlertStore struct {
	alerts []models.Hotspot
}

func (s *stubAlertStore) Append(hotspots []models.Hotspot, now time.Time) error { return nil }

func (s *stubAlertStore) ListRecent(limit int) ([]models.Hotspot, error) {
	if limit <= 0 {
		return []models.Hotspot{}, nil
	}
	return s.alerts, nil
}

func nearbyRouter(store *stubAlertStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAlertHandler(service.NewAlertService(store), nil)
	r := gin.New()
	r.POST("/api/alerts/nearby", h.Nearby)
	r.GET("/api/alerts/recent", h.Recent)
	return r
}

func TestNearbyEndpoint(t *testing.T) {
	store := &stubAlertStore{alerts: []models.Hotspot{
		{ID: 1, LatBin: 0, LonBin: 0.009, Count: 7, CreatedAt: time.Now()},
		{ID: 2, LatBin: 50, LonBin: 50, Count: 9, CreatedAt: time.Now()},
	}}
	r := nearbyRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/alerts/nearby",
		strings.NewReader(`{"latitude":0,"longitude":0,"radius_km":2,"limit":50}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count  int                  `json:"count"`
		Alerts []models.NearbyAlert `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, int64(1), body.Alerts[0].ID)
	assert.InEpsilon(t, 1.0, body.Alerts[0].DistanceKm, 0.01)
}

func TestNearbyEndpointNoMatchesIsEmptyNotError(t *testing.T) {
	r := nearbyRouter(&stubAlertStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/alerts/nearby",
		strings.NewReader(`{"latitude":0,"longitude":0,"radius_km":2,"limit":50}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Count  int                  `json:"count"`
		Alerts []models.NearbyAlert `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 0, body.Count)
	assert.NotNil(t, body.Alerts)
}

func TestNearbyEndpointMalformedInput(t *testing.T) {
	r := nearbyRouter(&stubAlertStore{})

	tests := []struct {
		name string
		body string
	}{
		{"not json", `{{{`},
		{"missing coordinates", `{"radius_km":2}`},
		{"out of range latitude", `{"latitude":91,"longitude":0,"radius_km":2,"limit":10}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/alerts/nearby", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRecentEndpoint(t *testing.T) {
	store := &stubAlertStore{alerts: []models.Hotspot{
		{ID: 2, LatBin: 1, LonBin: 2, Count: 6},
		{ID: 1, LatBin: 3, LonBin: 4, Count: 5},
	}}
	r := nearbyRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/alerts/recent?limit=10", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":2`)
}
