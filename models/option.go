package models

import (
	"time"
)

// String count values an option can be restricted to.
const (
	StringCount6   = "6"
	StringCount7   = "7"
	StringCountAll = "all"
)

// Scale length values an option can be restricted to.
const (
	ScaleStandard   = "standard"
	ScaleMultiscale = "multiscale"
	ScaleAll        = "all"
)

// Hardware color variants used for paired options.
const (
	HardwareBlack  = "black"
	HardwareChrome = "chrome"
)

// Option is a single selectable choice belonging to one subcategory
// (e.g. "Buckeye Burl" in "Body Wood"). Compatibility attributes
// (StringCount, ScaleLength, HardwareColor) feed the constraint rules;
// presentation attributes (price, images, z-order) feed the derived state.
type Option struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Subcategory relationship
	SubcategoryID uint        `gorm:"not null;index:idx_option_subcat_price" json:"subcategory_id"`
	Subcategory   Subcategory `gorm:"foreignKey:SubcategoryID" json:"subcategory,omitempty"`

	Name string `gorm:"not null" json:"name"`
	// Nil price means "included in base price" and counts as zero.
	PriceUSD  *float64 `gorm:"index:idx_option_subcat_price" json:"price_usd"`
	Active    bool     `gorm:"not null;default:true" json:"active"`
	IsDefault bool     `gorm:"not null;default:false" json:"is_default"`

	// Compatibility attributes. Empty string means "not constrained".
	StringCount   string `json:"string_count"`
	ScaleLength   string `json:"scale_length"`
	HardwareColor string `json:"hardware_color"`

	// Presentation attributes
	ZIndex int `gorm:"not null;default:0" json:"z_index"`
	// Back-view z-index override (catalog-attached, not computed):
	// 0 renders behind everything, a high value renders in front
	// (e.g. bolt-on hardware visible from the rear).
	BackZIndex *int   `json:"back_z_index"`
	FrontImage string `json:"front_image"`
	BackImage  string `json:"back_image"`
}

// TableName specifies the table name for Option model
func (Option) TableName() string {
	return "options"
}

// Price returns the option price treating nil as zero.
func (o Option) Price() float64 {
	if o.PriceUSD == nil {
		return 0
	}
	return *o.PriceUSD
}

// ImageForView returns the stored image reference for the given view,
// or empty if the option contributes nothing to that view.
func (o Option) ImageForView(view string) string {
	if view == "back" {
		return o.BackImage
	}
	return o.FrontImage
}
