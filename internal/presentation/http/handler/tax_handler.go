package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/application/service"
	"github.com/tablewise/tablewise-api/internal/presentation/http/dto/response"
)

// TaxHandler handles tax period and VAT return HTTP requests
type TaxHandler struct {
	taxService *service.TaxService
}

// NewTaxHandler creates a new tax handler
func NewTaxHandler(taxService *service.TaxService) *TaxHandler {
	return &TaxHandler{taxService: taxService}
}

// CreatePeriod handles opening a tax period
func (h *TaxHandler) CreatePeriod(c *gin.Context) {
	var req struct {
		Year    int `json:"year" binding:"required"`
		Quarter int `json:"quarter" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	period, err := h.taxService.CreatePeriod(c.Request.Context(), req.Year, req.Quarter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Tax period created", period)
}

// ListPeriods handles listing tax periods
func (h *TaxHandler) ListPeriods(c *gin.Context) {
	var year *int
	if yearStr := c.Query("year"); yearStr != "" {
		if y, err := strconv.Atoi(yearStr); err == nil {
			year = &y
		}
	}

	periods, err := h.taxService.ListPeriods(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax periods retrieved", periods)
}

// GetPeriod handles getting a single tax period
func (h *TaxHandler) GetPeriod(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tax period ID")
		return
	}

	period, err := h.taxService.GetPeriod(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax period retrieved", period)
}

// GenerateReturn handles computing a period's VAT return
func (h *TaxHandler) GenerateReturn(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tax period ID")
		return
	}

	ret, err := h.taxService.GenerateReturn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "VAT return generated", ret)
}

// GetReturn handles retrieving a period's VAT return
func (h *TaxHandler) GetReturn(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tax period ID")
		return
	}

	ret, err := h.taxService.GetReturn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "VAT return retrieved", ret)
}

// SubmitReturn handles marking a period's return as filed
func (h *TaxHandler) SubmitReturn(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tax period ID")
		return
	}

	ret, err := h.taxService.SubmitReturn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "VAT return submitted", ret)
}

// ExportReturn handles exporting a period's return as JSON or CSV
func (h *TaxHandler) ExportReturn(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tax period ID")
		return
	}

	if c.DefaultQuery("format", "json") == "csv" {
		data, filename, err := h.taxService.ExportReturnCSV(c.Request.Context(), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.CSV(c, filename, data)
		return
	}

	export, err := h.taxService.ExportReturn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "VAT return exported", export)
}
