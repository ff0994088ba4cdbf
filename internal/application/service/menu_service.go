package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
	"github.com/tablewise/tablewise-api/internal/domain/repository"
	"github.com/tablewise/tablewise-api/pkg/apperror"
	"github.com/tablewise/tablewise-api/pkg/utils"
)

// MenuService handles menu categories and items
type MenuService struct {
	categoryRepo repository.MenuCategoryRepository
	itemRepo     repository.MenuItemRepository
}

// NewMenuService creates a new menu service
func NewMenuService(categoryRepo repository.MenuCategoryRepository, itemRepo repository.MenuItemRepository) *MenuService {
	return &MenuService{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
	}
}

// CreateCategory creates a new menu category
func (s *MenuService) CreateCategory(ctx context.Context, name string, sortOrder int) (*entity.MenuCategory, error) {
	existing, err := s.categoryRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A category with this name already exists")
	}

	category := &entity.MenuCategory{
		Name:      name,
		SortOrder: sortOrder,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories lists all menu categories
func (s *MenuService) ListCategories(ctx context.Context) ([]entity.MenuCategory, error) {
	return s.categoryRepo.List(ctx)
}

// UpdateCategory updates a menu category
func (s *MenuService) UpdateCategory(ctx context.Context, id uuid.UUID, name string, sortOrder int) (*entity.MenuCategory, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	category.Name = name
	category.SortOrder = sortOrder
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory deletes a menu category
func (s *MenuService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}
	return s.categoryRepo.Delete(ctx, id)
}

// CreateMenuItemInput represents the create menu item input
type CreateMenuItemInput struct {
	CategoryID  uuid.UUID
	Name        string
	Description string
	Price       float64
	Available   bool
}

// CreateMenuItem creates a new menu item
func (s *MenuService) CreateMenuItem(ctx context.Context, input *CreateMenuItemInput) (*entity.MenuItem, error) {
	if input.Price < 0 {
		return nil, apperror.NewBadRequestError("Price must not be negative")
	}

	category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	slug := utils.Slugify(input.Name)
	existing, err := s.itemRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A menu item with this name already exists")
	}

	item := &entity.MenuItem{
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
		Price:       input.Price,
		Available:   input.Available,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetMenuItem retrieves a menu item by ID
func (s *MenuService) GetMenuItem(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}
	return item, nil
}

// ListMenuItems lists menu items, optionally filtered
func (s *MenuService) ListMenuItems(ctx context.Context, categoryID *uuid.UUID, availableOnly bool) ([]entity.MenuItem, error) {
	return s.itemRepo.List(ctx, categoryID, availableOnly)
}

// UpdateMenuItemInput represents the update menu item input. Nil fields are
// left untouched.
type UpdateMenuItemInput struct {
	Name        *string
	Description *string
	Price       *float64
	Available   *bool
}

// UpdateMenuItem updates a menu item. Renames refresh the slug.
func (s *MenuService) UpdateMenuItem(ctx context.Context, id uuid.UUID, input *UpdateMenuItemInput) (*entity.MenuItem, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}

	if input.Name != nil && *input.Name != item.Name {
		slug := utils.Slugify(*input.Name)
		existing, err := s.itemRepo.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != item.ID {
			return nil, apperror.NewConflictError("A menu item with this name already exists")
		}
		item.Name = *input.Name
		item.Slug = slug
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperror.NewBadRequestError("Price must not be negative")
		}
		item.Price = *input.Price
	}
	if input.Available != nil {
		item.Available = *input.Available
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteMenuItem soft deletes a menu item. Existing order lines keep their
// snapshot of the name and price.
func (s *MenuService) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Menu item")
	}
	return s.itemRepo.Delete(ctx, id)
}
