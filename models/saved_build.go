package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// SavedBuild is the persisted flat-record snapshot of a configuration:
// fixed metadata columns plus one field per subcategory (snake_case of the
// subcategory's display name) holding the selected option id as a string.
// The field map is opaque to everything except the build translation layer.
type SavedBuild struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title      string  `gorm:"not null" json:"title"`
	TotalPrice float64 `gorm:"not null;default:0" json:"total_price"`
	OwnerID    string  `gorm:"index" json:"owner_id"`

	// Flat field map serialized as JSON text, e.g. {"bridge":"725"}.
	Fields string `gorm:"type:text" json:"-"`
}

// TableName specifies the table name for SavedBuild model
func (SavedBuild) TableName() string {
	return "saved_builds"
}

// FieldMap decodes the per-subcategory field record.
func (b SavedBuild) FieldMap() (map[string]string, error) {
	fields := map[string]string{}
	if b.Fields == "" {
		return fields, nil
	}
	if err := json.Unmarshal([]byte(b.Fields), &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// SetFieldMap encodes the per-subcategory field record.
func (b *SavedBuild) SetFieldMap(fields map[string]string) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	b.Fields = string(data)
	return nil
}
