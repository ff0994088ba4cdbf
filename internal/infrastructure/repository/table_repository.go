package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
	"github.com/tablewise/tablewise-api/internal/domain/enum"
	domainRepo "github.com/tablewise/tablewise-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type tableRepository struct {
	db *gorm.DB
}

// NewTableRepository creates a new table repository
func NewTableRepository(db *gorm.DB) domainRepo.TableRepository {
	return &tableRepository{db: db}
}

func (r *tableRepository) Create(ctx context.Context, table *entity.Table) error {
	return conn(ctx, r.db).WithContext(ctx).Create(table).Error
}

func (r *tableRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Table, error) {
	var table entity.Table
	err := conn(ctx, r.db).WithContext(ctx).
		Preload("Waiter").
		First(&table, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &table, err
}

func (r *tableRepository) GetByNumber(ctx context.Context, number int) (*entity.Table, error) {
	var table entity.Table
	err := conn(ctx, r.db).WithContext(ctx).First(&table, "number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &table, err
}

func (r *tableRepository) Update(ctx context.Context, table *entity.Table) error {
	return conn(ctx, r.db).WithContext(ctx).Save(table).Error
}

func (r *tableRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.TableStatus) error {
	return conn(ctx, r.db).WithContext(ctx).Model(&entity.Table{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *tableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).WithContext(ctx).Delete(&entity.Table{}, "id = ?", id).Error
}

func (r *tableRepository) List(ctx context.Context, status *enum.TableStatus) ([]entity.Table, error) {
	var tables []entity.Table
	query := conn(ctx, r.db).WithContext(ctx).Preload("Waiter").Order("number ASC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	err := query.Find(&tables).Error
	return tables, err
}

func (r *tableRepository) FindCandidates(ctx context.Context, minCapacity int) ([]entity.Table, error) {
	var tables []entity.Table
	err := conn(ctx, r.db).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("status IN ? AND capacity >= ?",
			[]enum.TableStatus{enum.TableStatusAvailable, enum.TableStatusReserved}, minCapacity).
		Order("capacity ASC, number ASC").
		Find(&tables).Error
	return tables, err
}

func (r *tableRepository) CountWithCapacity(ctx context.Context, minCapacity int) (int64, error) {
	var count int64
	err := conn(ctx, r.db).WithContext(ctx).Model(&entity.Table{}).
		Where("capacity >= ?", minCapacity).
		Count(&count).Error
	return count, err
}
