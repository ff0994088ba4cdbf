package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
	"github.com/tablewise/tablewise-api/internal/domain/enum"
	"github.com/tablewise/tablewise-api/internal/domain/repository"
	"github.com/tablewise/tablewise-api/pkg/apperror"
	"github.com/tablewise/tablewise-api/pkg/email"
	"github.com/tablewise/tablewise-api/pkg/pagination"
)

// ReservationService handles reservations and table assignment
type ReservationService struct {
	reservationRepo repository.ReservationRepository
	tableRepo       repository.TableRepository
	tx              repository.TxManager
	emailService    *email.EmailService
	restaurantName  string
	conflictBefore  time.Duration
	conflictAfter   time.Duration
}

// NewReservationService creates a new reservation service
func NewReservationService(
	reservationRepo repository.ReservationRepository,
	tableRepo repository.TableRepository,
	tx repository.TxManager,
	emailService *email.EmailService,
	restaurantName string,
	conflictBefore, conflictAfter time.Duration,
) *ReservationService {
	return &ReservationService{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
		tx:              tx,
		emailService:    emailService,
		restaurantName:  restaurantName,
		conflictBefore:  conflictBefore,
		conflictAfter:   conflictAfter,
	}
}

// CreateReservationInput represents the create reservation input
type CreateReservationInput struct {
	GuestName       string
	GuestEmail      string
	GuestPhone      string
	PartySize       int
	ReservationTime time.Time
	Notes           string
}

// CreateReservation books a table for the requested party. The smallest table
// that seats the party and has no reservation inside the conflict window wins.
// Candidate rows are locked so two concurrent bookings for the same slot
// cannot land on one table. When assignment fails the error says which
// constraint could not be met: the restaurant has no table that large, or
// every large-enough table is taken at that time.
func (s *ReservationService) CreateReservation(ctx context.Context, input *CreateReservationInput) (*entity.Reservation, error) {
	if input.PartySize <= 0 {
		return nil, apperror.NewBadRequestError("Party size must be positive")
	}
	if input.ReservationTime.Before(time.Now()) {
		return nil, apperror.NewBadRequestError("Reservation time must be in the future")
	}

	reservation := &entity.Reservation{
		GuestName:       input.GuestName,
		GuestEmail:      input.GuestEmail,
		GuestPhone:      input.GuestPhone,
		PartySize:       input.PartySize,
		ReservationTime: input.ReservationTime,
		Status:          enum.ReservationStatusConfirmed,
		Notes:           input.Notes,
	}

	var assigned *entity.Table
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		candidates, err := s.tableRepo.FindCandidates(ctx, input.PartySize)
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			// Distinguish "no table that big exists" from "they're all busy"
			count, err := s.tableRepo.CountWithCapacity(ctx, input.PartySize)
			if err != nil {
				return err
			}
			if count == 0 {
				return apperror.NewConflictError("No table is large enough for this party")
			}
			return apperror.NewConflictError("No table is free at the requested time")
		}

		from := input.ReservationTime.Add(-s.conflictBefore)
		to := input.ReservationTime.Add(s.conflictAfter)
		conflicting, err := s.reservationRepo.ConflictingTableIDs(ctx, from, to)
		if err != nil {
			return err
		}
		taken := make(map[uuid.UUID]struct{}, len(conflicting))
		for _, id := range conflicting {
			taken[id] = struct{}{}
		}

		for i := range candidates {
			if _, busy := taken[candidates[i].ID]; !busy {
				assigned = &candidates[i]
				break
			}
		}
		if assigned == nil {
			return apperror.NewConflictError("No table is free at the requested time")
		}

		reservation.TableID = &assigned.ID
		if err := s.reservationRepo.Create(ctx, reservation); err != nil {
			return err
		}
		return s.tableRepo.UpdateStatus(ctx, assigned.ID, enum.TableStatusReserved)
	})
	if err != nil {
		return nil, err
	}

	s.sendConfirmation(reservation, assigned)

	reservation.Table = assigned
	return reservation, nil
}

// sendConfirmation emails the guest, best effort. A mail failure never fails
// the booking.
func (s *ReservationService) sendConfirmation(reservation *entity.Reservation, table *entity.Table) {
	if reservation.GuestEmail == "" || !s.emailService.IsConfigured() {
		return
	}

	err := s.emailService.SendReservationConfirmation(reservation.GuestEmail, email.ReservationDetails{
		GuestName:       reservation.GuestName,
		RestaurantName:  s.restaurantName,
		TableNumber:     table.Number,
		PartySize:       reservation.PartySize,
		ReservationTime: reservation.ReservationTime,
	})
	if err != nil {
		log.Printf("reservation %s: confirmation email failed: %v", reservation.ID, err)
	}
}

// GetReservation retrieves a reservation by ID
func (s *ReservationService) GetReservation(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, apperror.NewNotFoundError("Reservation")
	}
	return reservation, nil
}

// ListReservations lists reservations with filtering
func (s *ReservationService) ListReservations(ctx context.Context, params *repository.ReservationFilterParams) (*pagination.PaginatedResult[entity.Reservation], error) {
	reservations, total, err := s.reservationRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(reservations, pag), nil
}

// SeatReservation marks the guests as arrived and occupies their table
func (s *ReservationService) SeatReservation(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	var reservation *entity.Reservation
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		reservation, err = s.reservationRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if reservation == nil {
			return apperror.NewNotFoundError("Reservation")
		}
		if reservation.Status != enum.ReservationStatusPending && reservation.Status != enum.ReservationStatusConfirmed {
			return apperror.NewBadRequestError("Reservation cannot be seated in its current state")
		}

		reservation.Status = enum.ReservationStatusSeated
		if err := s.reservationRepo.Update(ctx, reservation); err != nil {
			return err
		}
		if reservation.TableID != nil {
			return s.tableRepo.UpdateStatus(ctx, *reservation.TableID, enum.TableStatusOccupied)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

// CompleteReservation closes out a seated reservation and frees the table
func (s *ReservationService) CompleteReservation(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	return s.finishReservation(ctx, id, enum.ReservationStatusCompleted)
}

// CancelReservation cancels a reservation and frees the table
func (s *ReservationService) CancelReservation(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	return s.finishReservation(ctx, id, enum.ReservationStatusCancelled)
}

func (s *ReservationService) finishReservation(ctx context.Context, id uuid.UUID, status enum.ReservationStatus) (*entity.Reservation, error) {
	var reservation *entity.Reservation
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		reservation, err = s.reservationRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if reservation == nil {
			return apperror.NewNotFoundError("Reservation")
		}
		if reservation.Status == enum.ReservationStatusCompleted || reservation.Status == enum.ReservationStatusCancelled {
			return apperror.NewBadRequestError("Reservation is already closed")
		}

		wasSeated := reservation.Status == enum.ReservationStatusSeated
		reservation.Status = status
		if err := s.reservationRepo.Update(ctx, reservation); err != nil {
			return err
		}
		if reservation.TableID == nil {
			return nil
		}
		if wasSeated {
			return s.tableRepo.UpdateStatus(ctx, *reservation.TableID, enum.TableStatusAvailable)
		}
		// A confirmed booking holds the table as reserved; give it back. A
		// table occupied by a walk-in is left alone.
		table, err := s.tableRepo.GetByID(ctx, *reservation.TableID)
		if err != nil {
			return err
		}
		if table != nil && table.Status == enum.TableStatusReserved {
			return s.tableRepo.UpdateStatus(ctx, *reservation.TableID, enum.TableStatusAvailable)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}
