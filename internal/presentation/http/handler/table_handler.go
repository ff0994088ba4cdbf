package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/application/service"
	"github.com/tablewise/tablewise-api/internal/domain/enum"
	"github.com/tablewise/tablewise-api/internal/presentation/http/dto/response"
)

// TableHandler handles dining table HTTP requests
type TableHandler struct {
	tableService *service.TableService
}

// NewTableHandler creates a new table handler
func NewTableHandler(tableService *service.TableService) *TableHandler {
	return &TableHandler{tableService: tableService}
}

// Create handles adding a table
func (h *TableHandler) Create(c *gin.Context) {
	var req struct {
		Number   int `json:"number" binding:"required"`
		Capacity int `json:"capacity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	table, err := h.tableService.CreateTable(c.Request.Context(), req.Number, req.Capacity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Table created", table)
}

// List handles listing tables
func (h *TableHandler) List(c *gin.Context) {
	var status *enum.TableStatus
	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			s := enum.TableStatus(statusInt)
			status = &s
		}
	}

	tables, err := h.tableService.ListTables(c.Request.Context(), status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tables retrieved", tables)
}

// Get handles getting a single table
func (h *TableHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid table ID")
		return
	}

	table, err := h.tableService.GetTable(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Table retrieved", table)
}

// UpdateStatus handles setting a table's floor status
func (h *TableHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid table ID")
		return
	}

	var req struct {
		Status int `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	table, err := h.tableService.UpdateTableStatus(c.Request.Context(), id, enum.TableStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Table status updated", table)
}

// AssignWaiter handles assigning a waiter to a table
func (h *TableHandler) AssignWaiter(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid table ID")
		return
	}

	var req struct {
		WaiterID uuid.UUID `json:"waiter_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	table, err := h.tableService.AssignWaiter(c.Request.Context(), id, req.WaiterID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Waiter assigned", table)
}

// Delete handles removing a table
func (h *TableHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid table ID")
		return
	}

	if err := h.tableService.DeleteTable(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
