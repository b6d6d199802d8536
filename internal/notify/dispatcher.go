package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/citywatch/alerts-backend-go/internal/models"
)

// ChannelResult reports the outcome of one channel for one dispatch.
// Attempted is false when the channel is disabled (no config section).
type ChannelResult struct {
	Attempted bool
	Err       error
}

// Result holds the per-channel outcomes of a dispatch. One channel
// failing never prevents the other from being attempted.
type Result struct {
	Email   ChannelResult
	Webhook ChannelResult
}

// Failed reports whether any attempted channel ended in error.
func (r Result) Failed() bool {
	return r.Email.Err != nil || r.Webhook.Err != nil
}

// Dispatcher fans a batch of hotspot alerts out to the configured
// notification channels.
type Dispatcher struct {
	cfg *Config
}

// NewDispatcher creates a dispatcher over the given channel config.
func NewDispatcher(cfg *Config) *Dispatcher {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Dispatcher{cfg: cfg}
}

// Dispatch attempts delivery of the hotspot batch on every configured
// channel. Channels run concurrently and independently; errors are
// collected in the Result, not returned, so the caller sees every
// outcome. Disabled channels are skipped silently.
func (d *Dispatcher) Dispatch(ctx context.Context, hotspots []models.Hotspot) Result {
	var res Result
	if len(hotspots) == 0 {
		return res
	}

	var wg sync.WaitGroup

	if d.cfg.Email != nil {
		res.Email.Attempted = true
		wg.Add(1)
		go func() {
			defer wg.Done()
			subject := fmt.Sprintf("Hotspot alert: %d zone(s) over threshold", len(hotspots))
			res.Email.Err = sendEmail(d.cfg.Email, subject, formatEmailBody(hotspots))
		}()
	}

	if d.cfg.Webhook != nil {
		res.Webhook.Attempted = true
		wg.Add(1)
		go func() {
			defer wg.Done()
			res.Webhook.Err = sendWebhook(ctx, d.cfg.Webhook, map[string]interface{}{
				"type":   "hotspot_alert",
				"count":  len(hotspots),
				"alerts": hotspots,
			})
		}()
	}

	wg.Wait()

	if res.Email.Err != nil {
		log.Warn().Err(res.Email.Err).Msg("Email notification failed")
	}
	if res.Webhook.Err != nil {
		log.Warn().Err(res.Webhook.Err).Msg("Webhook notification failed")
	}

	return res
}

func formatEmailBody(hotspots []models.Hotspot) string {
	var b strings.Builder
	b.WriteString("The following zones crossed the incident density threshold:\n\n")
	for i := range hotspots {
		h := &hotspots[i]
		fmt.Fprintf(&b, "- bin (%v, %v): %d incidents\n", h.LatBin, h.LonBin, h.Count)
	}
	return b.String()
}
