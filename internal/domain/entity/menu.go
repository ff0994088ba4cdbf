package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuCategory groups menu items (starters, mains, drinks, ...)
type MenuCategory struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:100;uniqueIndex;not null" json:"name"`
	SortOrder int            `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Items []MenuItem `gorm:"foreignKey:CategoryID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *MenuCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MenuCategory model
func (MenuCategory) TableName() string {
	return "menu_categories"
}

// MenuItem represents a dish or drink on the menu
type MenuItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"category_id"`
	Name        string         `gorm:"size:150;not null" json:"name"`
	Slug        string         `gorm:"size:180;uniqueIndex;not null" json:"slug"`
	Description string         `gorm:"size:500" json:"description,omitempty"`
	Price       float64        `gorm:"type:decimal(15,2);not null" json:"price"`
	Available   bool           `gorm:"default:true" json:"available"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Category MenuCategory `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new menu item
func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}
