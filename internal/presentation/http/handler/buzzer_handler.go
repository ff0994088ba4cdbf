package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/application/service"
	"github.com/tablewise/tablewise-api/internal/presentation/http/dto/response"
)

// BuzzerHandler handles guest call button HTTP requests
type BuzzerHandler struct {
	buzzerService *service.BuzzerService
}

// NewBuzzerHandler creates a new buzzer handler
func NewBuzzerHandler(buzzerService *service.BuzzerService) *BuzzerHandler {
	return &BuzzerHandler{buzzerService: buzzerService}
}

// Raise handles a guest pressing a call button. This endpoint is public: the
// buttons on the tables carry no credentials.
func (h *BuzzerHandler) Raise(c *gin.Context) {
	var req struct {
		TableID uuid.UUID `json:"table_id" binding:"required"`
		Kind    string    `json:"kind" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	call, err := h.buzzerService.RaiseCall(c.Request.Context(), req.TableID, req.Kind)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Call raised", call)
}

// ListActive handles listing open calls for the floor display
func (h *BuzzerHandler) ListActive(c *gin.Context) {
	calls, err := h.buzzerService.ListActiveCalls(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Active calls retrieved", calls)
}

// Acknowledge handles a staff member acknowledging a call
func (h *BuzzerHandler) Acknowledge(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid call ID")
		return
	}

	call, err := h.buzzerService.AcknowledgeCall(c.Request.Context(), id, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Call acknowledged", call)
}
