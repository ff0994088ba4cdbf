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

type reservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository creates a new reservation repository
func NewReservationRepository(db *gorm.DB) domainRepo.ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	return conn(ctx, r.db).WithContext(ctx).Create(reservation).Error
}

func (r *reservationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	var reservation entity.Reservation
	err := conn(ctx, r.db).WithContext(ctx).
		Preload("Table").
		First(&reservation, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &reservation, err
}

func (r *reservationRepository) Update(ctx context.Context, reservation *entity.Reservation) error {
	return conn(ctx, r.db).WithContext(ctx).Save(reservation).Error
}

func (r *reservationRepository) List(ctx context.Context, params *domainRepo.ReservationFilterParams) ([]entity.Reservation, int64, error) {
	var reservations []entity.Reservation
	var total int64

	query := conn(ctx, r.db).WithContext(ctx).Model(&entity.Reservation{})

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.TableID != nil {
		query = query.Where("table_id = ?", *params.TableID)
	}
	if params.Date != nil {
		dayStart := params.Date.Truncate(24 * time.Hour)
		query = query.Where("reservation_time >= ? AND reservation_time < ?", dayStart, dayStart.Add(24*time.Hour))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Table").
		Order("reservation_time ASC").
		Find(&reservations).Error

	return reservations, total, err
}

func (r *reservationRepository) ConflictingTableIDs(ctx context.Context, from, to time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := conn(ctx, r.db).WithContext(ctx).Model(&entity.Reservation{}).
		Select("DISTINCT table_id").
		Where("table_id IS NOT NULL").
		Where("status IN ?", []enum.ReservationStatus{enum.ReservationStatusPending, enum.ReservationStatusConfirmed}).
		Where("reservation_time >= ? AND reservation_time <= ?", from, to).
		Pluck("table_id", &ids).Error
	return ids, err
}
