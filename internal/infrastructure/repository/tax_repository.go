package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
	domainRepo "github.com/tablewise/tablewise-api/internal/domain/repository"
	"gorm.io/gorm"
)

type taxPeriodRepository struct {
	db *gorm.DB
}

// NewTaxPeriodRepository creates a new tax period repository
func NewTaxPeriodRepository(db *gorm.DB) domainRepo.TaxPeriodRepository {
	return &taxPeriodRepository{db: db}
}

func (r *taxPeriodRepository) Create(ctx context.Context, period *entity.TaxPeriod) error {
	return conn(ctx, r.db).WithContext(ctx).Create(period).Error
}

func (r *taxPeriodRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TaxPeriod, error) {
	var period entity.TaxPeriod
	err := conn(ctx, r.db).WithContext(ctx).
		Preload("Return").
		First(&period, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &period, err
}

func (r *taxPeriodRepository) GetByYearQuarter(ctx context.Context, year, quarter int) (*entity.TaxPeriod, error) {
	var period entity.TaxPeriod
	err := conn(ctx, r.db).WithContext(ctx).
		First(&period, "year = ? AND quarter = ?", year, quarter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &period, err
}

func (r *taxPeriodRepository) Update(ctx context.Context, period *entity.TaxPeriod) error {
	return conn(ctx, r.db).WithContext(ctx).Save(period).Error
}

func (r *taxPeriodRepository) List(ctx context.Context, year *int) ([]entity.TaxPeriod, error) {
	var periods []entity.TaxPeriod
	query := conn(ctx, r.db).WithContext(ctx).
		Preload("Return").
		Order("year DESC, quarter DESC")
	if year != nil {
		query = query.Where("year = ?", *year)
	}
	err := query.Find(&periods).Error
	return periods, err
}

type vatReturnRepository struct {
	db *gorm.DB
}

// NewVATReturnRepository creates a new VAT return repository
func NewVATReturnRepository(db *gorm.DB) domainRepo.VATReturnRepository {
	return &vatReturnRepository{db: db}
}

func (r *vatReturnRepository) Create(ctx context.Context, ret *entity.VATReturn) error {
	return conn(ctx, r.db).WithContext(ctx).Create(ret).Error
}

func (r *vatReturnRepository) GetByPeriodID(ctx context.Context, periodID uuid.UUID) (*entity.VATReturn, error) {
	var ret entity.VATReturn
	err := conn(ctx, r.db).WithContext(ctx).First(&ret, "tax_period_id = ?", periodID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ret, err
}

func (r *vatReturnRepository) Update(ctx context.Context, ret *entity.VATReturn) error {
	return conn(ctx, r.db).WithContext(ctx).Save(ret).Error
}
