package notify

import (
	"errors"
	"fmt"
)

// ErrNotConfigured marks a channel whose config section is present but
// missing required fields. It is reported to the caller, never
// silently treated as a successful (or skipped) delivery.
var ErrNotConfigured = errors.New("channel not configured")

// DeliveryError wraps a transport-level failure of a configured
// channel. Deliveries are not retried automatically; retrying is the
// caller's decision.
type DeliveryError struct {
	Channel string
	Cause   error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s delivery failed: %v", e.Channel, e.Cause)
}

func (e *DeliveryError) Unwrap() error {
	return e.Cause
}
