// Package realtime implements the per-client WebSocket protocol:
// clients stream location updates and keepalive pings upward, the
// server pushes newly detected hotspot alerts downward to every open
// session.
package realtime

import (
	"encoding/json"

	"github.com/citywatch/alerts-backend-go/internal/models"
)

// Inbound and outbound message types. Every frame is a JSON object
// with a mandatory "type" field.
const (
	// client → server
	TypeLocationUpdate = "location_update"
	TypePing           = "ping"

	// server → client
	TypeConnection        = "connection"
	TypeLocationConfirmed = "location_confirmed"
	TypePong              = "pong"
	TypeNewAlert          = "new_alert"
	TypeError             = "error"
)

// InboundMessage is the envelope of a client frame. Coordinates are
// pointers so a missing field is distinguishable from zero.
type InboundMessage struct {
	Type      string   `json:"type"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Timestamp string   `json:"timestamp,omitempty"`
}

type textMessage struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

type alertMessage struct {
	Type  string         `json:"type"`
	Alert models.Hotspot `json:"alert"`
}

func encodeText(msgType, text string) []byte {
	b, _ := json.Marshal(textMessage{Type: msgType, Message: text})
	return b
}

func encodeAlert(alert models.Hotspot) []byte {
	b, _ := json.Marshal(alertMessage{Type: TypeNewAlert, Alert: alert})
	return b
}
