package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
	domainRepo "github.com/tablewise/tablewise-api/internal/domain/repository"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return conn(ctx, r.db).WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := conn(ctx, r.db).WithContext(ctx).First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error) {
	var payment entity.Payment
	err := conn(ctx, r.db).WithContext(ctx).First(&payment, "transaction_id = ?", transactionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	return conn(ctx, r.db).WithContext(ctx).Save(payment).Error
}

func (r *paymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).WithContext(ctx).Delete(&entity.Payment{}, "id = ?", id).Error
}

func (r *paymentRepository) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := conn(ctx, r.db).WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&payments).Error
	return payments, err
}
