package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Payment represents money applied against an order. Card payments are never
// physically deleted; refunds flip the status instead. Cash payments may be
// removed outright.
type Payment struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	OrderID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"order_id"`
	Amount        float64            `gorm:"type:decimal(15,2);not null" json:"amount"`
	Method        enum.PaymentMethod `gorm:"default:0" json:"method"`
	Status        enum.PaymentStatus `gorm:"default:0" json:"status"`
	TransactionID *string            `gorm:"size:100;uniqueIndex" json:"transaction_id,omitempty"`
	GatewayMeta   *string            `gorm:"type:jsonb" json:"gateway_meta,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`

	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
