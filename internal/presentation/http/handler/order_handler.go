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

// OrderHandler handles order HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create handles creating an order
func (h *OrderHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		TableID *uuid.UUID `json:"table_id"`
		Items   []struct {
			MenuItemID uuid.UUID `json:"menu_item_id" binding:"required"`
			Quantity   int       `json:"quantity" binding:"required"`
		} `json:"items" binding:"required"`
		ServiceCharge float64 `json:"service_charge"`
		Discount      float64 `json:"discount"`
		Notes         string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.OrderLineInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.OrderLineInput{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
		}
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &service.CreateOrderInput{
		TableID:       req.TableID,
		WaiterID:      userID,
		Items:         items,
		ServiceCharge: req.ServiceCharge,
		Discount:      req.Discount,
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created", order)
}

// List handles listing orders
func (h *OrderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
		Search:     c.Query("search"),
	}
	params.Pagination.Validate()

	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.OrderStatus(statusInt)
			params.Status = &status
		}
	}
	if tableIDStr := c.Query("table_id"); tableIDStr != "" {
		if tableID, err := uuid.Parse(tableIDStr); err == nil {
			params.TableID = &tableID
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

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved", result)
}

// Get handles getting a single order
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved", order)
}

// UpdateItemStatus handles the kitchen updating a line item's status
func (h *OrderHandler) UpdateItemStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		response.BadRequest(c, "Invalid order item ID")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	status, ok := enum.ParseOrderItemStatus(req.Status)
	if !ok {
		response.BadRequest(c, "Unknown item status: "+req.Status)
		return
	}

	order, err := h.orderService.UpdateItemStatus(c.Request.Context(), orderID, itemID, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item status updated", order)
}

// Cancel handles cancelling an order
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.CancelOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order cancelled", nil)
}
