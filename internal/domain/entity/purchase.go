package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Purchase represents a supplier purchase. The VAT amount recorded here is the
// input VAT reclaimed on the tax return for the period the purchase falls in.
type Purchase struct {
	ID           uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	SupplierName string              `gorm:"size:150;not null" json:"supplier_name"`
	InvoiceRef   string              `gorm:"size:100" json:"invoice_ref,omitempty"`
	Date         time.Time           `gorm:"type:date;not null;index" json:"date"`
	NetAmount    float64             `gorm:"type:decimal(15,2);default:0" json:"net_amount"`
	VATAmount    float64             `gorm:"type:decimal(15,2);default:0" json:"vat_amount"`
	GrossAmount  float64             `gorm:"type:decimal(15,2);default:0" json:"gross_amount"`
	Status       enum.PurchaseStatus `gorm:"default:0" json:"status"`
	RecordedByID *uuid.UUID          `gorm:"type:uuid;column:recorded_by" json:"recorded_by,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	DeletedAt    gorm.DeletedAt      `gorm:"index" json:"-"`

	RecordedBy *User `gorm:"foreignKey:RecordedByID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new purchase
func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Purchase model
func (Purchase) TableName() string {
	return "purchases"
}
