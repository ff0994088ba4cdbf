package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tablewise/tablewise-api/internal/application/service"
	"github.com/tablewise/tablewise-api/internal/presentation/http/dto/response"
)

// WebhookHandler receives payment notifications from the card gateway
type WebhookHandler struct {
	paymentService *service.PaymentService
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(paymentService *service.PaymentService) *WebhookHandler {
	return &WebhookHandler{paymentService: paymentService}
}

// PaymentEvent handles an inbound gateway notification. Signature verification
// happens in middleware before the body reaches this handler.
func (h *WebhookHandler) PaymentEvent(c *gin.Context) {
	var event service.GatewayEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		response.BadRequest(c, "Invalid webhook payload")
		return
	}

	payment, err := h.paymentService.ProcessGatewayEvent(c.Request.Context(), &event)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Event processed", payment)
}
