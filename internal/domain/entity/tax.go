package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/enum"
	"gorm.io/gorm"
)

// TaxPeriod is a calendar quarter for which one VAT return is filed.
// (Year, Quarter) is unique.
type TaxPeriod struct {
	ID        uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	Year      int                  `gorm:"not null;uniqueIndex:idx_tax_periods_year_quarter" json:"year"`
	Quarter   int                  `gorm:"not null;uniqueIndex:idx_tax_periods_year_quarter" json:"quarter"`
	StartDate time.Time            `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time            `gorm:"type:date;not null" json:"end_date"`
	Status    enum.TaxPeriodStatus `gorm:"default:0" json:"status"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`

	Return *VATReturn `gorm:"foreignKey:TaxPeriodID" json:"return,omitempty"`
}

// BeforeCreate generates a UUID before creating a new tax period
func (p *TaxPeriod) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TaxPeriod model
func (TaxPeriod) TableName() string {
	return "tax_periods"
}

// VATReturn holds the VAT figures for one tax period. At most one return
// exists per period; regeneration updates the figures in place.
type VATReturn struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	TaxPeriodID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"tax_period_id"`
	OutputVAT   float64    `gorm:"type:decimal(15,2);default:0" json:"output_vat"`
	InputVAT    float64    `gorm:"type:decimal(15,2);default:0" json:"input_vat"`
	VATDue      float64    `gorm:"type:decimal(15,2);default:0" json:"vat_due"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	TaxPeriod TaxPeriod `gorm:"foreignKey:TaxPeriodID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new VAT return
func (r *VATReturn) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the VATReturn model
func (VATReturn) TableName() string {
	return "vat_returns"
}
