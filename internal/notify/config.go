// Package notify delivers hotspot alerts to external sinks: SMTP email
// and an HTTP webhook. Channels are independently configured and
// independently fallible; a missing config section simply disables
// that channel.
package notify

import (
	"encoding/json"
	"fmt"
	"os"
)

// EmailConfig configures the SMTP channel. SMTPHost, Username and
// Password are required; SMTPPort defaults to 587 and FromAddr
// defaults to Username.
type EmailConfig struct {
	SMTPHost   string   `json:"smtp_host"`
	SMTPPort   int      `json:"smtp_port"`
	Username   string   `json:"username"`
	Password   string   `json:"password"`
	FromAddr   string   `json:"from_addr"`
	Recipients []string `json:"recipients"`
}

// WebhookConfig configures the HTTP POST channel.
type WebhookConfig struct {
	URL string `json:"url"`
}

// Config is the per-channel notification configuration. A nil channel
// means that channel is disabled and is skipped without error.
type Config struct {
	Email   *EmailConfig   `json:"email,omitempty"`
	Webhook *WebhookConfig `json:"webhook,omitempty"`
}

// LoadConfig reads the notification configuration from a JSON file.
// A missing file is not an error: it yields an empty config with both
// channels disabled.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read notify config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse notify config: %w", err)
	}

	if cfg.Email != nil {
		if cfg.Email.SMTPPort == 0 {
			cfg.Email.SMTPPort = 587
		}
		if cfg.Email.FromAddr == "" {
			cfg.Email.FromAddr = cfg.Email.Username
		}
	}

	return &cfg, nil
}
