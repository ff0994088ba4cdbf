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

// ReservationHandler handles reservation HTTP requests
type ReservationHandler struct {
	reservationService *service.ReservationService
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(reservationService *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

// Create handles booking a reservation
func (h *ReservationHandler) Create(c *gin.Context) {
	var req struct {
		GuestName       string    `json:"guest_name" binding:"required"`
		GuestEmail      string    `json:"guest_email"`
		GuestPhone      string    `json:"guest_phone"`
		PartySize       int       `json:"party_size" binding:"required"`
		ReservationTime time.Time `json:"reservation_time" binding:"required"`
		Notes           string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	reservation, err := h.reservationService.CreateReservation(c.Request.Context(), &service.CreateReservationInput{
		GuestName:       req.GuestName,
		GuestEmail:      req.GuestEmail,
		GuestPhone:      req.GuestPhone,
		PartySize:       req.PartySize,
		ReservationTime: req.ReservationTime,
		Notes:           req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Reservation created", reservation)
}

// List handles listing reservations
func (h *ReservationHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.ReservationFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
	}
	params.Pagination.Validate()

	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.ReservationStatus(statusInt)
			params.Status = &status
		}
	}
	if tableIDStr := c.Query("table_id"); tableIDStr != "" {
		if tableID, err := uuid.Parse(tableIDStr); err == nil {
			params.TableID = &tableID
		}
	}
	if dateStr := c.Query("date"); dateStr != "" {
		if date, err := time.Parse("2006-01-02", dateStr); err == nil {
			params.Date = &date
		}
	}

	result, err := h.reservationService.ListReservations(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Reservations retrieved", result)
}

// Get handles getting a single reservation
func (h *ReservationHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid reservation ID")
		return
	}

	reservation, err := h.reservationService.GetReservation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reservation retrieved", reservation)
}

// Seat handles marking a reservation's guests as arrived
func (h *ReservationHandler) Seat(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid reservation ID")
		return
	}

	reservation, err := h.reservationService.SeatReservation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reservation seated", reservation)
}

// Complete handles closing out a seated reservation
func (h *ReservationHandler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid reservation ID")
		return
	}

	reservation, err := h.reservationService.CompleteReservation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reservation completed", reservation)
}

// Cancel handles cancelling a reservation
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid reservation ID")
		return
	}

	reservation, err := h.reservationService.CancelReservation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reservation cancelled", reservation)
}
