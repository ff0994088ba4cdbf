package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
	"github.com/tablewise/tablewise-api/internal/domain/repository"
	"github.com/tablewise/tablewise-api/pkg/apperror"
)

// BuzzerService handles guest call buttons on the tables
type BuzzerService struct {
	buzzerRepo repository.BuzzerRepository
	tableRepo  repository.TableRepository
}

// NewBuzzerService creates a new buzzer service
func NewBuzzerService(buzzerRepo repository.BuzzerRepository, tableRepo repository.TableRepository) *BuzzerService {
	return &BuzzerService{
		buzzerRepo: buzzerRepo,
		tableRepo:  tableRepo,
	}
}

// RaiseCall records a guest pressing a call button. Repeated presses while a
// call of the same kind is still unacknowledged collapse into the existing
// call rather than flooding the floor display.
func (s *BuzzerService) RaiseCall(ctx context.Context, tableID uuid.UUID, kind string) (*entity.BuzzerCall, error) {
	if kind != entity.BuzzerKindWaiter && kind != entity.BuzzerKindBill {
		return nil, apperror.NewBadRequestError("Unknown call kind: " + kind)
	}

	table, err := s.tableRepo.GetByID(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Table")
	}

	active, err := s.buzzerRepo.HasActiveCall(ctx, tableID, kind)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, apperror.NewConflictError("This table already has an open call")
	}

	call := &entity.BuzzerCall{
		TableID: tableID,
		Kind:    kind,
	}
	if err := s.buzzerRepo.Create(ctx, call); err != nil {
		return nil, err
	}
	return call, nil
}

// ListActiveCalls lists unacknowledged calls, oldest first
func (s *BuzzerService) ListActiveCalls(ctx context.Context) ([]entity.BuzzerCall, error) {
	return s.buzzerRepo.ListActive(ctx)
}

// AcknowledgeCall marks a call as handled by a staff member
func (s *BuzzerService) AcknowledgeCall(ctx context.Context, callID, staffID uuid.UUID) (*entity.BuzzerCall, error) {
	call, err := s.buzzerRepo.GetByID(ctx, callID)
	if err != nil {
		return nil, err
	}
	if call == nil {
		return nil, apperror.NewNotFoundError("Call")
	}
	if call.Acknowledged {
		return nil, apperror.NewConflictError("Call is already acknowledged")
	}

	call.Acknowledged = true
	call.AcknowledgedBy = &staffID
	if err := s.buzzerRepo.Update(ctx, call); err != nil {
		return nil, err
	}
	return call, nil
}
