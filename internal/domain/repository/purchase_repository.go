package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
	"github.com/tablewise/tablewise-api/internal/domain/enum"
	"github.com/tablewise/tablewise-api/pkg/pagination"
)

// PurchaseRepository defines the interface for supplier purchase operations
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Purchase, error)
	Update(ctx context.Context, purchase *entity.Purchase) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *PurchaseFilterParams) ([]entity.Purchase, int64, error)
	// SumVATBetween returns the raw (unrounded) sum of VAT amounts over
	// approved purchases dated in the closed interval [start, end].
	SumVATBetween(ctx context.Context, start, end time.Time) (float64, error)
}

// PurchaseFilterParams contains filtering parameters for purchase queries
type PurchaseFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.PurchaseStatus
	StartDate  *time.Time
	EndDate    *time.Time
	Search     string
}
