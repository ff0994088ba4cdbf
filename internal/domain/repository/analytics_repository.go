package repository

import (
	"context"
	"time"
)

// DashboardStats is the aggregate snapshot shown on the back-office dashboard.
type DashboardStats struct {
	Revenue            float64 `json:"revenue"`
	OrderCount         int64   `json:"order_count"`
	OpenOrders         int64   `json:"open_orders"`
	OccupiedTables     int64   `json:"occupied_tables"`
	ActiveReservations int64   `json:"active_reservations"`
	ActiveBuzzerCalls  int64   `json:"active_buzzer_calls"`
}

// AnalyticsRepository defines the interface for dashboard aggregate queries
type AnalyticsRepository interface {
	GetStats(ctx context.Context, from, to time.Time) (*DashboardStats, error)
}
