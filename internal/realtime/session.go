package realtime

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/citywatch/alerts-backend-go/internal/spatial"
)

// Conn is the subset of *websocket.Conn a session needs. Tests swap in
// a fake; production always passes a gorilla connection.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Location is a client's last reported position.
type Location struct {
	Latitude  float64
	Longitude float64
	UpdatedAt time.Time
}

// Session is one live client connection. A user may hold several
// sessions (one per device); sessions are keyed by their own ID, not
// by user ID. All writes to the connection go through send, which
// serializes them and applies the per-send deadline.
type Session struct {
	ID     string
	UserID string

	conn         Conn
	writeTimeout time.Duration
	idleTimeout  time.Duration

	mu           sync.Mutex
	lastLocation *Location
	lastSeen     time.Time
	alive        bool

	closeOnce sync.Once
	done      chan struct{}
}

// NewSession wraps an accepted connection. The session is alive from
// creation; Run must be called to start processing.
func NewSession(id, userID string, conn Conn, writeTimeout, idleTimeout time.Duration) *Session {
	return &Session{
		ID:           id,
		UserID:       userID,
		conn:         conn,
		writeTimeout: writeTimeout,
		idleTimeout:  idleTimeout,
		lastSeen:     time.Now(),
		alive:        true,
		done:         make(chan struct{}),
	}
}

// Alive reports whether the session still accepts pushes.
func (s *Session) Alive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alive
}

// LastLocation returns the most recent location update, or nil if the
// client never reported one.
func (s *Session) LastLocation() *Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastLocation == nil {
		return nil
	}
	loc := *s.lastLocation
	return &loc
}

// Close tears the session down. Safe to call from any goroutine and on
// every exit path; the connection is closed exactly once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.alive = false
		s.mu.Unlock()
		close(s.done)
		if err := s.conn.Close(); err != nil {
			log.Debug().Err(err).Str("session", s.ID).Msg("Connection close")
		}
	})
}

// Done is closed when the session has been torn down.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// send writes one frame under the per-send deadline. A failed or timed
// out write kills this session only.
func (s *Session) send(payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.alive {
		return fmt.Errorf("session %s is closed", s.ID)
	}
	s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	return s.conn.WriteMessage(websocket.TextMessage, payload)
}

// Push delivers an already-encoded frame to the client. On failure the
// session is closed and the error returned so the hub can drop it.
func (s *Session) Push(payload []byte) error {
	if err := s.send(payload); err != nil {
		s.Close()
		return err
	}
	return nil
}

// Run drives the session: a read loop for inbound frames and a
// keepalive loop that closes the session once the client has been
// silent for the idle timeout. Run blocks until the session ends and
// always leaves the connection closed.
func (s *Session) Run() {
	go s.keepalive()
	s.readLoop()
	s.Close()
}

func (s *Session) keepalive() {
	ticker := time.NewTicker(s.idleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			silent := time.Since(s.lastSeen)
			s.mu.Unlock()
			if silent > s.idleTimeout {
				log.Info().Str("session", s.ID).Str("user", s.UserID).
					Dur("silent", silent).Msg("Closing idle session")
				// Closing the conn unblocks the read loop as well.
				s.Close()
				return
			}
		}
	}
}

func (s *Session) readLoop() {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Str("session", s.ID).Msg("Client disconnected")
			} else {
				log.Debug().Err(err).Str("session", s.ID).Msg("Read failed, closing session")
			}
			return
		}

		s.mu.Lock()
		s.lastSeen = time.Now()
		s.mu.Unlock()

		s.handleMessage(data)
	}
}

// handleMessage processes one inbound frame. A malformed or invalid
// message is answered with an error frame; it never terminates the
// session.
func (s *Session) handleMessage(data []byte) {
	var msg InboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.Push(encodeText(TypeError, "malformed message"))
		return
	}

	switch msg.Type {
	case TypePing:
		s.Push(encodeText(TypePong, ""))

	case TypeLocationUpdate:
		if msg.Latitude == nil || msg.Longitude == nil {
			s.Push(encodeText(TypeError, "location_update requires latitude and longitude"))
			return
		}
		if err := spatial.ValidateCoordinate(*msg.Latitude, *msg.Longitude); err != nil {
			s.Push(encodeText(TypeError, err.Error()))
			return
		}
		s.mu.Lock()
		s.lastLocation = &Location{
			Latitude:  *msg.Latitude,
			Longitude: *msg.Longitude,
			UpdatedAt: time.Now(),
		}
		s.mu.Unlock()
		s.Push(encodeText(TypeLocationConfirmed, "location updated"))

	default:
		s.Push(encodeText(TypeError, fmt.Sprintf("unknown message type %q", msg.Type)))
	}
}
