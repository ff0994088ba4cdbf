package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
	domainRepo "github.com/tablewise/tablewise-api/internal/domain/repository"
	"gorm.io/gorm"
)

type buzzerRepository struct {
	db *gorm.DB
}

// NewBuzzerRepository creates a new buzzer call repository
func NewBuzzerRepository(db *gorm.DB) domainRepo.BuzzerRepository {
	return &buzzerRepository{db: db}
}

func (r *buzzerRepository) Create(ctx context.Context, call *entity.BuzzerCall) error {
	return conn(ctx, r.db).WithContext(ctx).Create(call).Error
}

func (r *buzzerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.BuzzerCall, error) {
	var call entity.BuzzerCall
	err := conn(ctx, r.db).WithContext(ctx).First(&call, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &call, err
}

func (r *buzzerRepository) Update(ctx context.Context, call *entity.BuzzerCall) error {
	return conn(ctx, r.db).WithContext(ctx).Save(call).Error
}

func (r *buzzerRepository) ListActive(ctx context.Context) ([]entity.BuzzerCall, error) {
	var calls []entity.BuzzerCall
	err := conn(ctx, r.db).WithContext(ctx).
		Preload("Table").
		Where("acknowledged = false").
		Order("created_at ASC").
		Find(&calls).Error
	return calls, err
}

func (r *buzzerRepository) HasActiveCall(ctx context.Context, tableID uuid.UUID, kind string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).WithContext(ctx).Model(&entity.BuzzerCall{}).
		Where("table_id = ? AND kind = ? AND acknowledged = false", tableID, kind).
		Count(&count).Error
	return count > 0, err
}
