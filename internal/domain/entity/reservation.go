package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Reservation represents a guest booking
type Reservation struct {
	ID              uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	GuestName       string                 `gorm:"size:150;not null" json:"guest_name"`
	GuestEmail      string                 `gorm:"size:255" json:"guest_email,omitempty"`
	GuestPhone      string                 `gorm:"size:50" json:"guest_phone,omitempty"`
	PartySize       int                    `gorm:"not null" json:"party_size"`
	ReservationTime time.Time              `gorm:"not null;index" json:"reservation_time"`
	Status          enum.ReservationStatus `gorm:"default:0;index" json:"status"`
	TableID         *uuid.UUID             `gorm:"type:uuid;index" json:"table_id,omitempty"`
	Notes           string                 `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
	DeletedAt       gorm.DeletedAt         `gorm:"index" json:"-"`

	Table *Table `gorm:"foreignKey:TableID" json:"table,omitempty"`
}

// BeforeCreate generates a UUID before creating a new reservation
func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Reservation model
func (Reservation) TableName() string {
	return "reservations"
}
