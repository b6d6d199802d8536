package realtime

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/citywatch/alerts-backend-go/internal/models"
)

// Hub is the registry of live sessions and the broadcast fan-out.
// Insert happens on connect, removal on close; lookups never see a
// dead session once Unregister has run.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	writeTimeout time.Duration
	idleTimeout  time.Duration
}

// NewHub creates an empty session registry.
func NewHub(writeTimeout, idleTimeout time.Duration) *Hub {
	return &Hub{
		sessions:     make(map[string]*Session),
		writeTimeout: writeTimeout,
		idleTimeout:  idleTimeout,
	}
}

// Register wraps an accepted connection in a new session, adds it to
// the registry and sends the connection acknowledgement. The returned
// session is Open; the caller runs it.
func (h *Hub) Register(userID string, conn Conn) (*Session, error) {
	s := NewSession(uuid.NewString(), userID, conn, h.writeTimeout, h.idleTimeout)

	if err := s.Push(encodeText(TypeConnection, "connected to alert stream")); err != nil {
		// Handshake failed; the session was never visible to broadcasts.
		return nil, err
	}

	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()

	log.Info().Str("session", s.ID).Str("user", userID).
		Int("total", h.Count()).Msg("WebSocket client connected")
	return s, nil
}

// Unregister removes a session from the registry and closes it.
func (h *Hub) Unregister(s *Session) {
	h.mu.Lock()
	delete(h.sessions, s.ID)
	h.mu.Unlock()
	s.Close()

	log.Info().Str("session", s.ID).Str("user", s.UserID).
		Int("total", h.Count()).Msg("WebSocket client disconnected")
}

// Count returns the number of registered sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Broadcast pushes one new_alert frame per hotspot to every open
// session. Delivery is best effort with per-session isolation: a
// failed or timed-out send drops that session from the registry and
// the fan-out moves on to the next one.
func (h *Hub) Broadcast(hotspots []models.Hotspot) {
	if len(hotspots) == 0 {
		return
	}

	h.mu.RLock()
	targets := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		targets = append(targets, s)
	}
	h.mu.RUnlock()

	frames := make([][]byte, len(hotspots))
	for i := range hotspots {
		frames[i] = encodeAlert(hotspots[i])
	}

	for _, s := range targets {
		if !s.Alive() {
			continue
		}
		for _, frame := range frames {
			if err := s.Push(frame); err != nil {
				log.Warn().Err(err).Str("session", s.ID).Msg("Broadcast send failed, dropping session")
				h.Unregister(s)
				break
			}
		}
	}
}

// CloseAll tears down every session, for process shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	sessions := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.sessions = make(map[string]*Session)
	h.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
