package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
	domainRepo "github.com/tablewise/tablewise-api/internal/domain/repository"
	"gorm.io/gorm"
)

type menuCategoryRepository struct {
	db *gorm.DB
}

// NewMenuCategoryRepository creates a new menu category repository
func NewMenuCategoryRepository(db *gorm.DB) domainRepo.MenuCategoryRepository {
	return &menuCategoryRepository{db: db}
}

func (r *menuCategoryRepository) Create(ctx context.Context, category *entity.MenuCategory) error {
	return conn(ctx, r.db).WithContext(ctx).Create(category).Error
}

func (r *menuCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.MenuCategory, error) {
	var category entity.MenuCategory
	err := conn(ctx, r.db).WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *menuCategoryRepository) GetByName(ctx context.Context, name string) (*entity.MenuCategory, error) {
	var category entity.MenuCategory
	err := conn(ctx, r.db).WithContext(ctx).First(&category, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *menuCategoryRepository) Update(ctx context.Context, category *entity.MenuCategory) error {
	return conn(ctx, r.db).WithContext(ctx).Save(category).Error
}

func (r *menuCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).WithContext(ctx).Delete(&entity.MenuCategory{}, "id = ?", id).Error
}

func (r *menuCategoryRepository) List(ctx context.Context) ([]entity.MenuCategory, error) {
	var categories []entity.MenuCategory
	err := conn(ctx, r.db).WithContext(ctx).
		Preload("Items").
		Order("sort_order ASC, name ASC").
		Find(&categories).Error
	return categories, err
}

type menuItemRepository struct {
	db *gorm.DB
}

// NewMenuItemRepository creates a new menu item repository
func NewMenuItemRepository(db *gorm.DB) domainRepo.MenuItemRepository {
	return &menuItemRepository{db: db}
}

func (r *menuItemRepository) Create(ctx context.Context, item *entity.MenuItem) error {
	return conn(ctx, r.db).WithContext(ctx).Create(item).Error
}

func (r *menuItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	var item entity.MenuItem
	err := conn(ctx, r.db).WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *menuItemRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := conn(ctx, r.db).WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *menuItemRepository) GetBySlug(ctx context.Context, slug string) (*entity.MenuItem, error) {
	var item entity.MenuItem
	err := conn(ctx, r.db).WithContext(ctx).First(&item, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *menuItemRepository) Update(ctx context.Context, item *entity.MenuItem) error {
	return conn(ctx, r.db).WithContext(ctx).Save(item).Error
}

func (r *menuItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).WithContext(ctx).Delete(&entity.MenuItem{}, "id = ?", id).Error
}

func (r *menuItemRepository) List(ctx context.Context, categoryID *uuid.UUID, availableOnly bool) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	query := conn(ctx, r.db).WithContext(ctx).Order("name ASC")
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	if availableOnly {
		query = query.Where("available = true")
	}
	err := query.Find(&items).Error
	return items, err
}
