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
	"gorm.io/gorm/clause"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return conn(ctx, r.db).WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := conn(ctx, r.db).WithContext(ctx).
		Preload("Payments").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := conn(ctx, r.db).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// Payments are loaded separately; preloading joins does not mix with row locks.
	err = conn(ctx, r.db).WithContext(ctx).
		Where("order_id = ?", id).
		Find(&order.Payments).Error
	return &order, err
}

func (r *orderRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := conn(ctx, r.db).WithContext(ctx).
		Preload("Table").
		Preload("Items").
		Preload("Payments").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	return conn(ctx, r.db).WithContext(ctx).Save(order).Error
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error {
	return conn(ctx, r.db).WithContext(ctx).Model(&entity.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := conn(ctx, r.db).WithContext(ctx).Model(&entity.Order{})

	if params.Search != "" {
		query = query.Where("invoice_no ILIKE ?", "%"+params.Search+"%")
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.TableID != nil {
		query = query.Where("table_id = ?", *params.TableID)
	}
	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Table").
		Order("created_at DESC").
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepository) SumTaxBetween(ctx context.Context, start, end time.Time) (float64, error) {
	var sum float64
	err := conn(ctx, r.db).WithContext(ctx).Model(&entity.Order{}).
		Select("COALESCE(SUM(tax_amount), 0)").
		Where("status <> ?", enum.OrderStatusCancelled).
		Where("created_at >= ? AND created_at <= ?", start, end).
		Scan(&sum).Error
	return sum, err
}

type orderItemRepository struct {
	db *gorm.DB
}

// NewOrderItemRepository creates a new order item repository
func NewOrderItemRepository(db *gorm.DB) domainRepo.OrderItemRepository {
	return &orderItemRepository{db: db}
}

func (r *orderItemRepository) CreateBatch(ctx context.Context, items []entity.OrderItem) error {
	return conn(ctx, r.db).WithContext(ctx).Create(&items).Error
}

func (r *orderItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.OrderItem, error) {
	var item entity.OrderItem
	err := conn(ctx, r.db).WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *orderItemRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := conn(ctx, r.db).WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *orderItemRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderItemStatus) error {
	return conn(ctx, r.db).WithContext(ctx).Model(&entity.OrderItem{}).
		Where("id = ?", id).
		Update("status", status).Error
}
