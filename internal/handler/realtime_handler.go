package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/citywatch/alerts-backend-go/internal/realtime"
)

// RealtimeHandler upgrades /ws/:user_id requests into alert-stream
// sessions.
type RealtimeHandler struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
}

// NewRealtimeHandler creates a new realtime handler
func NewRealtimeHandler(hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve handles GET /ws/:user_id. It blocks for the whole lifetime of
// the session and guarantees the session is unregistered (and the
// connection closed) on every exit path.
func (h *RealtimeHandler) Serve(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("user", userID).Msg("WebSocket upgrade failed")
		return
	}

	session, err := h.hub.Register(userID, conn)
	if err != nil {
		log.Warn().Err(err).Str("user", userID).Msg("WebSocket handshake failed")
		conn.Close()
		return
	}
	defer h.hub.Unregister(session)

	session.Run()
}
