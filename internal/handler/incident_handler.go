package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/citywatch/alerts-backend-go/internal/models"
	"github.com/citywatch/alerts-backend-go/internal/service"
	"github.com/citywatch/alerts-backend-go/pkg/response"
)

// IncidentHandler is the thin ingest/read surface for raw incidents.
type IncidentHandler struct {
	service *service.IncidentService
}

// NewIncidentHandler creates a new incident handler
func NewIncidentHandler(service *service.IncidentService) *IncidentHandler {
	return &IncidentHandler{service: service}
}

// Ingest handles POST /api/incidents. Accepts either a bare array or
// a {"records": [...]} wrapper.
func (h *IncidentHandler) Ingest(c *gin.Context) {
	var batch []models.Incident

	var wrapper struct {
		Records []models.Incident `json:"records"`
	}
	if err := c.ShouldBindBodyWith(&wrapper, binding.JSON); err == nil && len(wrapper.Records) > 0 {
		batch = wrapper.Records
	} else if err := c.ShouldBindBodyWith(&batch, binding.JSON); err != nil {
		response.BadRequest(c, "Invalid JSON payload", err)
		return
	}

	if err := h.service.Ingest(batch); err != nil {
		response.InternalError(c, "Failed to ingest incidents", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"inserted": len(batch),
	})
}

// List handles GET /api/incidents?limit=N, newest first.
func (h *IncidentHandler) List(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "1000"))
	if err != nil {
		response.BadRequest(c, "Invalid limit", err)
		return
	}

	incidents, err := h.service.ListLatest(limit)
	if err != nil {
		response.InternalError(c, "Failed to list incidents", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(incidents),
		"records": incidents,
	})
}
