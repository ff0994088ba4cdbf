package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
	"github.com/tablewise/tablewise-api/internal/domain/enum"
	"github.com/tablewise/tablewise-api/pkg/pagination"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// GetByIDForUpdate loads the order row under a FOR UPDATE lock. Must be
	// called inside a transaction.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	// SumTaxBetween returns the raw (unrounded) sum of tax amounts over
	// non-cancelled orders created in the closed interval [start, end].
	SumTaxBetween(ctx context.Context, start, end time.Time) (float64, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.OrderStatus
	TableID    *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Search     string
}

// OrderItemRepository defines the interface for order line item operations
type OrderItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.OrderItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.OrderItem, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderItemStatus) error
}
