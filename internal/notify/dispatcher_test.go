package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citywatch/alerts-backend-go/internal/models"
)

var sampleHotspots = []models.Hotspot{
	{LatBin: 10.123, LonBin: 20.456, Count: 7},
	{LatBin: -16.424, LonBin: -71.557, Count: 5},
}

func TestDispatchBothChannelsDisabled(t *testing.T) {
	d := NewDispatcher(&Config{})

	res := d.Dispatch(context.Background(), sampleHotspots)

	assert.False(t, res.Email.Attempted)
	assert.False(t, res.Webhook.Attempted)
	assert.False(t, res.Failed())
}

func TestDispatchChannelIsolation(t *testing.T) {
	var received struct {
		Type   string           `json:"type"`
		Count  int              `json:"count"`
		Alerts []models.Hotspot `json:"alerts"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	// Email section present but missing required fields; webhook valid.
	d := NewDispatcher(&Config{
		Email:   &EmailConfig{SMTPHost: "smtp.example.com"}, // no username/password
		Webhook: &WebhookConfig{URL: srv.URL},
	})

	res := d.Dispatch(context.Background(), sampleHotspots)

	assert.True(t, res.Email.Attempted)
	assert.ErrorIs(t, res.Email.Err, ErrNotConfigured)

	// The webhook outcome is unaffected by the email failure.
	assert.True(t, res.Webhook.Attempted)
	assert.NoError(t, res.Webhook.Err)
	assert.Equal(t, "hotspot_alert", received.Type)
	assert.Equal(t, 2, received.Count)
	assert.Len(t, received.Alerts, 2)
}

func TestDispatchWebhookNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	d := NewDispatcher(&Config{Webhook: &WebhookConfig{URL: srv.URL}})

	res := d.Dispatch(context.Background(), sampleHotspots)

	require.Error(t, res.Webhook.Err)
	var delivery *DeliveryError
	require.ErrorAs(t, res.Webhook.Err, &delivery)
	assert.Equal(t, "webhook", delivery.Channel)
}

func TestDispatchWebhookURLMissing(t *testing.T) {
	d := NewDispatcher(&Config{Webhook: &WebhookConfig{}})

	res := d.Dispatch(context.Background(), sampleHotspots)

	assert.True(t, res.Webhook.Attempted)
	assert.ErrorIs(t, res.Webhook.Err, ErrNotConfigured)
}

func TestDispatchEmptyBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no delivery expected for an empty batch")
	}))
	defer srv.Close()

	d := NewDispatcher(&Config{Webhook: &WebhookConfig{URL: srv.URL}})

	res := d.Dispatch(context.Background(), nil)
	assert.False(t, res.Webhook.Attempted)
}
