package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Buzzer call kinds
const (
	BuzzerKindWaiter = "waiter"
	BuzzerKindBill   = "bill"
)

// BuzzerCall is a guest's request for attention raised from a table.
type BuzzerCall struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	TableID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"table_id"`
	Kind           string     `gorm:"size:20;not null" json:"kind"`
	Acknowledged   bool       `gorm:"default:false;index" json:"acknowledged"`
	AcknowledgedBy *uuid.UUID `gorm:"type:uuid" json:"acknowledged_by,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Table Table `gorm:"foreignKey:TableID" json:"table,omitempty"`
}

// BeforeCreate generates a UUID before creating a new buzzer call
func (b *BuzzerCall) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BuzzerCall model
func (BuzzerCall) TableName() string {
	return "buzzer_calls"
}
