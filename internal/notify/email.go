package notify

import (
	"fmt"
	"net/smtp"
	"strings"
)

// sendEmail delivers a plain-text message over SMTP with STARTTLS and
// plain auth, matching the reference deployment (port 587 submission).
func sendEmail(cfg *EmailConfig, subject, body string) error {
	if cfg == nil || cfg.SMTPHost == "" || cfg.Username == "" || cfg.Password == "" {
		return fmt.Errorf("%w: email requires smtp_host, username and password", ErrNotConfigured)
	}

	from := cfg.FromAddr
	if from == "" {
		from = cfg.Username
	}

	msg := strings.Join([]string{
		"From: " + from,
		"To: " + strings.Join(cfg.Recipients, ","),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort)
	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.SMTPHost)

	// smtp.SendMail negotiates STARTTLS when the server offers it.
	if err := smtp.SendMail(addr, auth, from, cfg.Recipients, []byte(msg)); err != nil {
		return &DeliveryError{Channel: "email", Cause: err}
	}
	return nil
}
