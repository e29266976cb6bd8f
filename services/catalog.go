package services

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"guitar_builder_app_go/models"

	"gorm.io/gorm"
)

var (
	// ErrCatalogInvalid marks structurally corrupt catalog data
	// (dangling foreign keys). Orphan options are dropped with a log
	// line instead; only subcategory->category corruption is fatal.
	ErrCatalogInvalid = errors.New("catalog data is inconsistent")
)

// CatalogFilter narrows the loaded option set. An empty filter loads
// everything; the catalog is re-loaded when filter parameters change.
type CatalogFilter struct {
	// Keep only options compatible with this string count ("6" or "7").
	StringCount string
}

// Catalog is the normalized read-only snapshot of the selectable option
// tree. It is loaded once per session and shared by all consumers; nothing
// mutates it after construction.
type Catalog struct {
	categories    []models.Category
	subcategories map[uint]models.Subcategory
	subcatsByCat  map[uint][]models.Subcategory
	options       map[uint]models.Option
	optsBySubcat  map[uint][]models.Option
}

// LoadCatalog reads categories, subcategories and options from the
// persistence layer and builds the validated snapshot.
func LoadCatalog(dbConn *gorm.DB, filter CatalogFilter) (*Catalog, error) {
	var categories []models.Category
	if err := dbConn.Order("sort_order ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	var subcategories []models.Subcategory
	if err := dbConn.Order("sort_order ASC, id ASC").Find(&subcategories).Error; err != nil {
		return nil, fmt.Errorf("failed to load subcategories: %w", err)
	}

	query := dbConn.Where("active = ?", true)
	if filter.StringCount != "" {
		query = query.Where("string_count IN (?, ?, ?)", filter.StringCount, models.StringCountAll, "")
	}
	var options []models.Option
	if err := query.Find(&options).Error; err != nil {
		return nil, fmt.Errorf("failed to load options: %w", err)
	}

	return NewCatalog(categories, subcategories, options)
}

// NewCatalog validates raw catalog rows and produces the three-level tree.
// Options are sorted by ascending price then z-index within a subcategory.
func NewCatalog(categories []models.Category, subcategories []models.Subcategory, options []models.Option) (*Catalog, error) {
	cat := &Catalog{
		categories:    categories,
		subcategories: make(map[uint]models.Subcategory, len(subcategories)),
		subcatsByCat:  make(map[uint][]models.Subcategory),
		options:       make(map[uint]models.Option, len(options)),
		optsBySubcat:  make(map[uint][]models.Option),
	}

	categoryIDs := make(map[uint]bool, len(categories))
	for _, c := range categories {
		categoryIDs[c.ID] = true
	}

	for _, sub := range subcategories {
		if !categoryIDs[sub.CategoryID] {
			return nil, fmt.Errorf("%w: subcategory %d references missing category %d", ErrCatalogInvalid, sub.ID, sub.CategoryID)
		}
		cat.subcategories[sub.ID] = sub
		cat.subcatsByCat[sub.CategoryID] = append(cat.subcatsByCat[sub.CategoryID], sub)
	}

	for _, opt := range options {
		if !opt.Active {
			continue
		}
		if _, ok := cat.subcategories[opt.SubcategoryID]; !ok {
			// Dropped, not fatal: an orphan option only loses itself.
			log.Printf("Dropping option %d (%s): references missing subcategory %d", opt.ID, opt.Name, opt.SubcategoryID)
			continue
		}
		cat.options[opt.ID] = opt
		cat.optsBySubcat[opt.SubcategoryID] = append(cat.optsBySubcat[opt.SubcategoryID], opt)
	}

	for subID := range cat.optsBySubcat {
		opts := cat.optsBySubcat[subID]
		sort.SliceStable(opts, func(i, j int) bool {
			if opts[i].Price() != opts[j].Price() {
				return opts[i].Price() < opts[j].Price()
			}
			if opts[i].ZIndex != opts[j].ZIndex {
				return opts[i].ZIndex < opts[j].ZIndex
			}
			return opts[i].ID < opts[j].ID
		})
	}

	return cat, nil
}

// Ready reports whether the catalog holds anything to configure. An empty
// catalog is "not ready", not an error.
func (c *Catalog) Ready() bool {
	return len(c.categories) > 0 && len(c.options) > 0
}

// Categories returns the top-level groupings in display order.
func (c *Catalog) Categories() []models.Category {
	return c.categories
}

// SubcategoriesForCategory returns a category's subcategories in display order.
func (c *Catalog) SubcategoriesForCategory(categoryID uint) []models.Subcategory {
	return c.subcatsByCat[categoryID]
}

// Subcategory looks up a subcategory by id.
func (c *Catalog) Subcategory(id uint) (models.Subcategory, bool) {
	sub, ok := c.subcategories[id]
	return sub, ok
}

// Subcategories returns every subcategory, ascending by id.
func (c *Catalog) Subcategories() []models.Subcategory {
	subs := make([]models.Subcategory, 0, len(c.subcategories))
	for _, sub := range c.subcategories {
		subs = append(subs, sub)
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].ID < subs[j].ID })
	return subs
}

// OptionsForSubcategory returns the active options of a subcategory sorted
// by ascending price then z-index.
func (c *Catalog) OptionsForSubcategory(subcategoryID uint) []models.Option {
	return c.optsBySubcat[subcategoryID]
}

// OptionByID looks up an option by id.
func (c *Catalog) OptionByID(id uint) (models.Option, bool) {
	opt, ok := c.options[id]
	return opt, ok
}

// SubcategoryIDForOption resolves an option id to its subcategory.
func (c *Catalog) SubcategoryIDForOption(optionID uint) (uint, bool) {
	opt, ok := c.options[optionID]
	if !ok {
		return 0, false
	}
	return opt.SubcategoryID, true
}
