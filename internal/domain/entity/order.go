package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/tablewise/tablewise-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Order represents a sales order for a table or takeaway.
// Total = Subtotal + TaxAmount + ServiceCharge - Discount, computed when the
// order is created or modified, never re-derived from the items afterwards.
type Order struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNo     string           `gorm:"size:100;unique;not null" json:"invoice_no"`
	TableID       *uuid.UUID       `gorm:"type:uuid;index" json:"table_id,omitempty"`
	WaiterID      *uuid.UUID       `gorm:"type:uuid;index" json:"waiter_id,omitempty"`
	Status        enum.OrderStatus `gorm:"default:0;index" json:"status"`
	Subtotal      float64          `gorm:"type:decimal(15,2);default:0" json:"subtotal"`
	TaxAmount     float64          `gorm:"type:decimal(15,2);default:0" json:"tax_amount"`
	ServiceCharge float64          `gorm:"type:decimal(15,2);default:0" json:"service_charge"`
	Discount      float64          `gorm:"type:decimal(15,2);default:0" json:"discount"`
	Total         float64          `gorm:"type:decimal(15,2);default:0" json:"total"`
	Notes         string           `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt     time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`

	Table    *Table      `gorm:"foreignKey:TableID" json:"table,omitempty"`
	Waiter   *User       `gorm:"foreignKey:WaiterID" json:"-"`
	Items    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Payments []Payment   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem represents a line item in an order. Items live and die with their
// parent order.
type OrderItem struct {
	ID         uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	OrderID    uuid.UUID            `gorm:"type:uuid;not null;index" json:"order_id"`
	MenuItemID uuid.UUID            `gorm:"type:uuid;not null;index" json:"menu_item_id"`
	Name       string               `gorm:"size:150;not null" json:"name"`
	Quantity   int                  `gorm:"not null" json:"quantity"`
	UnitPrice  float64              `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	Total      float64              `gorm:"type:decimal(15,2);not null" json:"total"`
	Status     enum.OrderItemStatus `gorm:"default:0" json:"status"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`

	Order    Order    `gorm:"foreignKey:OrderID" json:"-"`
	MenuItem MenuItem `gorm:"foreignKey:MenuItemID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new order item
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
