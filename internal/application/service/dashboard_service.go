package service

import (
	"context"
	"time"

	"github.com/tablewise/tablewise-api/internal/domain/repository"
	"github.com/tablewise/tablewise-api/pkg/apperror"
)

// DashboardService produces the back-office overview figures
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository) *DashboardService {
	return &DashboardService{analyticsRepo: analyticsRepo}
}

// GetStats returns the aggregate snapshot for a date range. When the range is
// omitted it defaults to today.
func (s *DashboardService) GetStats(ctx context.Context, from, to *time.Time) (*repository.DashboardStats, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)

	if from != nil {
		start = *from
	}
	if to != nil {
		end = *to
	}
	if end.Before(start) {
		return nil, apperror.NewBadRequestError("End date must not be before start date")
	}

	return s.analyticsRepo.GetStats(ctx, start, end)
}
