package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const webhookTimeout = 15 * time.Second

// sendWebhook POSTs the payload as JSON to the configured URL. Any
// network error or non-2xx status is a delivery failure.
func sendWebhook(ctx context.Context, cfg *WebhookConfig, payload interface{}) error {
	if cfg == nil || cfg.URL == "" {
		return fmt.Errorf("%w: webhook requires url", ErrNotConfigured)
	}

	client := resty.New().SetTimeout(webhookTimeout)
	resp, err := client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(cfg.URL)
	if err != nil {
		return &DeliveryError{Channel: "webhook", Cause: err}
	}
	if resp.IsError() {
		return &DeliveryError{
			Channel: "webhook",
			Cause:   fmt.Errorf("unexpected status %s", resp.Status()),
		}
	}
	return nil
}
