package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
)

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
	// Delete physically removes a payment row. Only cash payments go through
	// here; card refunds keep the row and flip the status.
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error)
}
