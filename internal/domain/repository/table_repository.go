package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
	"github.com/tablewise/tablewise-api/internal/domain/enum"
)

// TableRepository defines the interface for dining table data operations
type TableRepository interface {
	Create(ctx context.Context, table *entity.Table) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Table, error)
	GetByNumber(ctx context.Context, number int) (*entity.Table, error)
	Update(ctx context.Context, table *entity.Table) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.TableStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, status *enum.TableStatus) ([]entity.Table, error)
	// FindCandidates returns bookable tables (available or reserved, not
	// occupied) with at least minCapacity seats, smallest capacity first,
	// rows locked FOR UPDATE. Whether a reserved table is actually free at
	// a given time is decided against the reservation conflict window. Must
	// be called inside a transaction so two concurrent assignments cannot
	// pick the same table.
	FindCandidates(ctx context.Context, minCapacity int) ([]entity.Table, error)
	// CountWithCapacity counts tables of any status seating at least minCapacity.
	CountWithCapacity(ctx context.Context, minCapacity int) (int64, error)
}
