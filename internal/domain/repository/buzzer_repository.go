package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
)

// BuzzerRepository defines the interface for buzzer call data operations
type BuzzerRepository interface {
	Create(ctx context.Context, call *entity.BuzzerCall) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.BuzzerCall, error)
	Update(ctx context.Context, call *entity.BuzzerCall) error
	ListActive(ctx context.Context) ([]entity.BuzzerCall, error)
	// HasActiveCall reports whether the table already has an unacknowledged
	// call of the given kind.
	HasActiveCall(ctx context.Context, tableID uuid.UUID, kind string) (bool, error)
}
