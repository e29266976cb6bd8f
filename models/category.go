package models

import (
	"time"
)

// Category is a top-level display grouping of subcategories (e.g. "Body",
// "Hardware"). Catalog rows are loaded once per session and treated as
// immutable afterwards.
type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name      string `gorm:"not null" json:"name"`
	SortOrder int    `gorm:"not null;default:0;index" json:"sort_order"`

	// Relationships
	Subcategories []Subcategory `gorm:"foreignKey:CategoryID" json:"subcategories,omitempty"`
}

// TableName specifies the table name for Category model
func (Category) TableName() string {
	return "categories"
}
