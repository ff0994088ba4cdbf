package repository

import (
	"context"
	"time"

	"github.com/tablewise/tablewise-api/internal/domain/entity"
	"github.com/tablewise/tablewise-api/internal/domain/enum"
	domainRepo "github.com/tablewise/tablewise-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetStats(ctx context.Context, from, to time.Time) (*domainRepo.DashboardStats, error) {
	db := conn(ctx, r.db).WithContext(ctx)
	stats := &domainRepo.DashboardStats{}

	err := db.Model(&entity.Order{}).
		Select("COALESCE(SUM(total), 0)").
		Where("status = ?", enum.OrderStatusCompleted).
		Where("created_at >= ? AND created_at < ?", from, to).
		Scan(&stats.Revenue).Error
	if err != nil {
		return nil, err
	}

	if err := db.Model(&entity.Order{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&stats.OrderCount).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&entity.Order{}).
		Where("status IN ?", []enum.OrderStatus{
			enum.OrderStatusPending,
			enum.OrderStatusPreparing,
			enum.OrderStatusReady,
			enum.OrderStatusServed,
		}).
		Count(&stats.OpenOrders).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&entity.Table{}).
		Where("status = ?", enum.TableStatusOccupied).
		Count(&stats.OccupiedTables).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&entity.Reservation{}).
		Where("status IN ?", []enum.ReservationStatus{
			enum.ReservationStatusPending,
			enum.ReservationStatusConfirmed,
			enum.ReservationStatusSeated,
		}).
		Count(&stats.ActiveReservations).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&entity.BuzzerCall{}).
		Where("acknowledged = false").
		Count(&stats.ActiveBuzzerCalls).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
