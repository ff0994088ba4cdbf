package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
	"github.com/tablewise/tablewise-api/pkg/pagination"
)

// UserRepository defines the interface for staff data operations
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *UserFilterParams) ([]entity.User, int64, error)
}

// UserFilterParams contains filtering parameters for staff queries
type UserFilterParams struct {
	Pagination *pagination.PaginationParams
	Role       string
	Search     string
}
