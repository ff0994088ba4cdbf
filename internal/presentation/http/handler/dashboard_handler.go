package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tablewise/tablewise-api/internal/application/service"
	"github.com/tablewise/tablewise-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles back-office dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats handles the aggregate overview endpoint
func (h *DashboardHandler) Stats(c *gin.Context) {
	var from, to *time.Time
	if fromStr := c.Query("from"); fromStr != "" {
		if t, err := time.Parse("2006-01-02", fromStr); err == nil {
			from = &t
		}
	}
	if toStr := c.Query("to"); toStr != "" {
		if t, err := time.Parse("2006-01-02", toStr); err == nil {
			end := t.Add(24*time.Hour - time.Nanosecond)
			to = &end
		}
	}

	stats, err := h.dashboardService.GetStats(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved", stats)
}
