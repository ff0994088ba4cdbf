package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/application/service"
	"github.com/tablewise/tablewise-api/internal/domain/enum"
	"github.com/tablewise/tablewise-api/internal/presentation/http/dto/response"
)

// PaymentHandler handles payment HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Record handles recording a cash or terminal payment against an order
func (h *PaymentHandler) Record(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req struct {
		Amount float64 `json:"amount" binding:"required"`
		Method string  `json:"method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	method, ok := enum.ParsePaymentMethod(req.Method)
	if !ok {
		response.BadRequest(c, "Unknown payment method: "+req.Method)
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), &service.RecordPaymentInput{
		OrderID: orderID,
		Amount:  req.Amount,
		Method:  method,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded", payment)
}

// List handles listing an order's payments
func (h *PaymentHandler) List(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved", payments)
}

// Refund handles refunding a payment
func (h *PaymentHandler) Refund(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("paymentId"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	if err := h.paymentService.RefundPayment(c.Request.Context(), paymentID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment refunded", nil)
}
