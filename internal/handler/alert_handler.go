package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/citywatch/alerts-backend-go/internal/models"
	"github.com/citywatch/alerts-backend-go/internal/service"
	"github.com/citywatch/alerts-backend-go/internal/spatial"
	"github.com/citywatch/alerts-backend-go/pkg/response"
)

// AlertHandler handles HTTP requests for hotspot alerts.
type AlertHandler struct {
	alerts *service.AlertService
	detect *service.DetectService
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(alerts *service.AlertService, detect *service.DetectService) *AlertHandler {
	return &AlertHandler{alerts: alerts, detect: detect}
}

// Nearby handles POST /api/alerts/nearby. Matching is best effort: no
// alerts in range yields an empty list, not an error.
func (h *AlertHandler) Nearby(c *gin.Context) {
	var req models.NearbyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}
	if req.RadiusKm == 0 {
		req.RadiusKm = 2.0
	}
	if req.Limit == 0 {
		req.Limit = 50
	}

	alerts, err := h.alerts.Nearby(*req.Latitude, *req.Longitude, req.RadiusKm, req.Limit)
	if err != nil {
		if errors.Is(err, spatial.ErrInvalidCoordinate) {
			response.BadRequest(c, "Invalid coordinates", err)
			return
		}
		response.InternalError(c, "Failed to query nearby alerts", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(alerts),
		"alerts": alerts,
	})
}

// Recent handles GET /api/alerts/recent?limit=N (admin/debug surface).
func (h *AlertHandler) Recent(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil {
		response.BadRequest(c, "Invalid limit", err)
		return
	}

	alerts, err := h.alerts.ListRecent(limit)
	if err != nil {
		response.InternalError(c, "Failed to list alerts", err)
		return
	}

	response.Success(c, gin.H{
		"count":  len(alerts),
		"alerts": alerts,
	})
}

// Detect handles POST /api/alerts/detect: runs a detection pass now
// instead of waiting for the background ticker.
func (h *AlertHandler) Detect(c *gin.Context) {
	hotspots, err := h.detect.RunPass(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Detection pass failed", err)
		return
	}

	response.Success(c, gin.H{
		"count":    len(hotspots),
		"hotspots": hotspots,
	})
}
