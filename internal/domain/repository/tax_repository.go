package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
)

// TaxPeriodRepository defines the interface for tax period data operations
type TaxPeriodRepository interface {
	Create(ctx context.Context, period *entity.TaxPeriod) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TaxPeriod, error)
	GetByYearQuarter(ctx context.Context, year, quarter int) (*entity.TaxPeriod, error)
	Update(ctx context.Context, period *entity.TaxPeriod) error
	List(ctx context.Context, year *int) ([]entity.TaxPeriod, error)
}

// VATReturnRepository defines the interface for VAT return data operations
type VATReturnRepository interface {
	Create(ctx context.Context, ret *entity.VATReturn) error
	GetByPeriodID(ctx context.Context, periodID uuid.UUID) (*entity.VATReturn, error)
	Update(ctx context.Context, ret *entity.VATReturn) error
}
