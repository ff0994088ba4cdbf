package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/application/service"
	"github.com/tablewise/tablewise-api/internal/domain/enum"
	"github.com/tablewise/tablewise-api/internal/domain/repository"
	"github.com/tablewise/tablewise-api/internal/presentation/http/dto/response"
	"github.com/tablewise/tablewise-api/pkg/pagination"
)

// PurchaseHandler handles supplier purchase HTTP requests
type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// Create handles recording a supplier purchase
func (h *PurchaseHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		SupplierName string  `json:"supplier_name" binding:"required"`
		InvoiceRef   string  `json:"invoice_ref"`
		Date         string  `json:"date" binding:"required"`
		NetAmount    float64 `json:"net_amount" binding:"required"`
		VATAmount    float64 `json:"vat_amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), &service.CreatePurchaseInput{
		SupplierName: req.SupplierName,
		InvoiceRef:   req.InvoiceRef,
		Date:         date,
		NetAmount:    req.NetAmount,
		VATAmount:    req.VATAmount,
		RecordedByID: userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase recorded", purchase)
}

// List handles listing purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.PurchaseFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
		Search:     c.Query("search"),
	}
	params.Pagination.Validate()

	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.PurchaseStatus(statusInt)
			params.Status = &status
		}
	}
	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}
	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.purchaseService.ListPurchases(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Purchases retrieved", result)
}

// Get handles getting a single purchase
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase ID")
		return
	}

	purchase, err := h.purchaseService.GetPurchase(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase retrieved", purchase)
}

// Approve handles approving a pending purchase
func (h *PurchaseHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase ID")
		return
	}

	purchase, err := h.purchaseService.ApprovePurchase(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase approved", purchase)
}

// Cancel handles cancelling a pending purchase
func (h *PurchaseHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase ID")
		return
	}

	purchase, err := h.purchaseService.CancelPurchase(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase cancelled", purchase)
}

// Delete handles deleting a purchase
func (h *PurchaseHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase ID")
		return
	}

	if err := h.purchaseService.DeletePurchase(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
