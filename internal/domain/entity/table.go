package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Table represents a dining table on the floor
type Table struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Number    int              `gorm:"uniqueIndex;not null" json:"number"`
	Capacity  int              `gorm:"not null" json:"capacity"`
	Status    enum.TableStatus `gorm:"default:0" json:"status"`
	WaiterID  *uuid.UUID       `gorm:"type:uuid;index" json:"waiter_id,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`

	Waiter *User `gorm:"foreignKey:WaiterID" json:"waiter,omitempty"`
}

// BeforeCreate generates a UUID before creating a new table
func (t *Table) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Table model
func (Table) TableName() string {
	return "tables"
}
