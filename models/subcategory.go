package models

import (
	"time"
)

// Subcategory is a group of mutually-exclusive options within a category
// (e.g. "Hardware Color"). At most one option per subcategory can be part
// of a configuration.
type Subcategory struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Category relationship
	CategoryID uint     `gorm:"not null;index" json:"category_id"`
	Category   Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	Name      string `gorm:"not null" json:"name"`
	SortOrder int    `gorm:"not null;default:0" json:"sort_order"`
	// Catalog-level flag, distinct from rule-driven dynamic hiding.
	Hidden bool `gorm:"not null;default:false" json:"hidden"`

	// Relationships
	Options []Option `gorm:"foreignKey:SubcategoryID" json:"options,omitempty"`
}

// TableName specifies the table name for Subcategory model
func (Subcategory) TableName() string {
	return "subcategories"
}
