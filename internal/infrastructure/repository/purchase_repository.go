package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
	"github.com/tablewise/tablewise-api/internal/domain/enum"
	domainRepo "github.com/tablewise/tablewise-api/internal/domain/repository"
	"gorm.io/gorm"
)

type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *gorm.DB) domainRepo.PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	return conn(ctx, r.db).WithContext(ctx).Create(purchase).Error
}

func (r *purchaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	var purchase entity.Purchase
	err := conn(ctx, r.db).WithContext(ctx).First(&purchase, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &purchase, err
}

func (r *purchaseRepository) Update(ctx context.Context, purchase *entity.Purchase) error {
	return conn(ctx, r.db).WithContext(ctx).Save(purchase).Error
}

func (r *purchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).WithContext(ctx).Delete(&entity.Purchase{}, "id = ?", id).Error
}

func (r *purchaseRepository) List(ctx context.Context, params *domainRepo.PurchaseFilterParams) ([]entity.Purchase, int64, error) {
	var purchases []entity.Purchase
	var total int64

	query := conn(ctx, r.db).WithContext(ctx).Model(&entity.Purchase{})

	if params.Search != "" {
		query = query.Where("supplier_name ILIKE ? OR invoice_ref ILIKE ?", "%"+params.Search+"%", "%"+params.Search+"%")
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.StartDate != nil {
		query = query.Where("date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("date DESC").
		Find(&purchases).Error

	return purchases, total, err
}

func (r *purchaseRepository) SumVATBetween(ctx context.Context, start, end time.Time) (float64, error) {
	var sum float64
	err := conn(ctx, r.db).WithContext(ctx).Model(&entity.Purchase{}).
		Select("COALESCE(SUM(vat_amount), 0)").
		Where("status = ?", enum.PurchaseStatusApproved).
		Where("date >= ? AND date <= ?", start, end).
		Scan(&sum).Error
	return sum, err
}
