package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/citywatch/alerts-backend-go/internal/config"
	"github.com/citywatch/alerts-backend-go/internal/handler"
	"github.com/citywatch/alerts-backend-go/internal/middleware"
)

// Handlers bundles everything the router wires up.
type Handlers struct {
	Alerts    *handler.AlertHandler
	Incidents *handler.IncidentHandler
	Realtime  *handler.RealtimeHandler
}

// SetupRouter builds the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Alerts backend is running",
		})
	})

	// Realtime alert stream, one session per connection. The mobile
	// client connects before it has a token, so this path is open.
	r.GET("/ws/:user_id", h.Realtime.Serve)

	// Authenticated API
	api := r.Group("/api")
	api.Use(middleware.RateLimit(120, time.Minute))
	api.Use(middleware.Auth(cfg.JWTSecret))
	{
		alerts := api.Group("/alerts")
		{
			alerts.POST("/nearby", h.Alerts.Nearby)
			alerts.GET("/recent", h.Alerts.Recent)
			alerts.POST("/detect", h.Alerts.Detect)
		}

		incidents := api.Group("/incidents")
		{
			incidents.POST("", h.Incidents.Ingest)
			incidents.GET("", h.Incidents.List)
		}
	}

	return r
}
