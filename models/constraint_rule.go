package models

import (
	"strconv"
	"strings"
	"time"
)

// ConstraintRule is one row of the declarative compatibility table. A rule
// is active whenever its trigger option is selected anywhere in the current
// configuration; its effects are folded uniformly by the selection reducer
// instead of per-option code branches.
//
// ID lists are stored as comma-separated strings so the whole table stays a
// plain relational row; AutoSelectIDs keeps its declared order.
type ConstraintRule struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TriggerOptionID uint `gorm:"not null;uniqueIndex" json:"trigger_option_id"`

	// Option ids hidden while the trigger is selected (union across rules).
	HiddenOptionIDs string `json:"hidden_option_ids"`
	// Subcategory ids hidden while the trigger is selected.
	HiddenSubcategoryIDs string `json:"hidden_subcategory_ids"`
	// Option ids auto-selected when the trigger is picked, applied in order.
	AutoSelectIDs string `json:"auto_select_ids"`
	// Color-variant sibling that mirrors the trigger when the selected
	// hardware color flips. The pairing is symmetric.
	PairedOptionID *uint `json:"paired_option_id"`
}

// TableName specifies the table name for ConstraintRule model
func (ConstraintRule) TableName() string {
	return "constraint_rules"
}

// HiddenOptions returns the parsed hide set.
func (r ConstraintRule) HiddenOptions() []uint {
	return parseIDList(r.HiddenOptionIDs)
}

// HiddenSubcategories returns the parsed subcategory hide set.
func (r ConstraintRule) HiddenSubcategories() []uint {
	return parseIDList(r.HiddenSubcategoryIDs)
}

// AutoSelects returns the auto-select list in declared order.
func (r ConstraintRule) AutoSelects() []uint {
	return parseIDList(r.AutoSelectIDs)
}

// PackIDList renders an id list in the comma-separated storage form.
func PackIDList(ids []uint) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatUint(uint64(id), 10))
	}
	return strings.Join(parts, ",")
}

func parseIDList(packed string) []uint {
	if packed == "" {
		return nil
	}
	parts := strings.Split(packed, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			// Malformed entries are dropped.
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}
