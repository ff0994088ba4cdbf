package database

import (
	"fmt"
	"log"

	"github.com/tablewise/tablewise-api/internal/config"
	"github.com/tablewise/tablewise-api/internal/domain/entity"
	"github.com/tablewise/tablewise-api/pkg/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.User{},

		&entity.MenuCategory{},
		&entity.MenuItem{},

		&entity.Table{},
		&entity.Reservation{},

		&entity.Order{},
		&entity.OrderItem{},
		&entity.Payment{},

		&entity.Purchase{},
		&entity.TaxPeriod{},
		&entity.VATReturn{},

		&entity.BuzzerCall{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// SeedDefaultData creates the initial admin account when the users table is
// empty so a fresh install can be logged into.
func SeedDefaultData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword("admin1234")
	if err != nil {
		return err
	}

	admin := &entity.User{
		FirstName: "Admin",
		Email:     "admin@tablewise.local",
		Password:  hash,
		Role:      entity.RoleAdmin,
		Active:    true,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Println("Seeded default admin account (admin@tablewise.local)")
	return nil
}
