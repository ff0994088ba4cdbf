package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
)

// MenuCategoryRepository defines the interface for menu category operations
type MenuCategoryRepository interface {
	Create(ctx context.Context, category *entity.MenuCategory) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.MenuCategory, error)
	GetByName(ctx context.Context, name string) (*entity.MenuCategory, error)
	Update(ctx context.Context, category *entity.MenuCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.MenuCategory, error)
}

// MenuItemRepository defines the interface for menu item operations
type MenuItemRepository interface {
	Create(ctx context.Context, item *entity.MenuItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.MenuItem, error)
	GetBySlug(ctx context.Context, slug string) (*entity.MenuItem, error)
	Update(ctx context.Context, item *entity.MenuItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, categoryID *uuid.UUID, availableOnly bool) ([]entity.MenuItem, error)
}
