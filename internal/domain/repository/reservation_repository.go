package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
	"github.com/tablewise/tablewise-api/internal/domain/enum"
	"github.com/tablewise/tablewise-api/pkg/pagination"
)

// ReservationRepository defines the interface for reservation data operations
type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	Update(ctx context.Context, reservation *entity.Reservation) error
	List(ctx context.Context, params *ReservationFilterParams) ([]entity.Reservation, int64, error)
	// ConflictingTableIDs returns the IDs of tables holding a pending or
	// confirmed reservation whose time falls inside [from, to].
	ConflictingTableIDs(ctx context.Context, from, to time.Time) ([]uuid.UUID, error)
}

// ReservationFilterParams contains filtering parameters for reservation queries
type ReservationFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.ReservationStatus
	TableID    *uuid.UUID
	Date       *time.Time
}
