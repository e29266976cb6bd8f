package services

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"guitar_builder_app_go/models"

	"gorm.io/gorm"
)

var (
	ErrBuildNotFound   = errors.New("saved build not found")
	ErrCatalogNotReady = errors.New("catalog is empty, nothing to save or load")
)

var fieldNamePattern = regexp.MustCompile(`[^a-z0-9]+`)

// Preferred option ids for legacy subcategories whose stored selection no
// longer resolves; anything else falls back to the first available option.
var preferredFallbacks = map[string]uint{
	"bridge": 725,
	"tuners": 102,
}

// BuildFieldName converts a subcategory display name into its saved-build
// field name ("Hardware Color" -> "hardware_color"). This table is the only
// place the field-name <-> subcategory mapping lives.
func BuildFieldName(subcategoryName string) string {
	name := strings.ToLower(subcategoryName)
	name = fieldNamePattern.ReplaceAllString(name, "_")
	return strings.Trim(name, "_")
}

// BuildFieldTable is the bidirectional field-name <-> subcategory mapping
// derived from the catalog. On a name collision the lower subcategory id
// keeps the field (logged; a collision is a catalog authoring problem).
type BuildFieldTable struct {
	byField  map[string]uint
	bySubcat map[uint]string
}

// NewBuildFieldTable derives the field table from a catalog snapshot.
func NewBuildFieldTable(cat *Catalog) *BuildFieldTable {
	table := &BuildFieldTable{
		byField:  make(map[string]uint),
		bySubcat: make(map[uint]string),
	}
	for _, sub := range cat.Subcategories() {
		field := BuildFieldName(sub.Name)
		if existing, taken := table.byField[field]; taken {
			log.Printf("Build field %q already mapped to subcategory %d, ignoring subcategory %d", field, existing, sub.ID)
			continue
		}
		table.byField[field] = sub.ID
		table.bySubcat[sub.ID] = field
	}
	return table
}

// SubcategoryForField resolves a stored field name to a subcategory id.
func (t *BuildFieldTable) SubcategoryForField(field string) (uint, bool) {
	subID, ok := t.byField[field]
	return subID, ok
}

// FieldForSubcategory resolves a subcategory id to its field name.
func (t *BuildFieldTable) FieldForSubcategory(subID uint) (string, bool) {
	field, ok := t.bySubcat[subID]
	return field, ok
}

// BuildLoadResult carries a restored selection plus diagnostics: how many
// stored fields no longer resolved and were recovered via fallback.
type BuildLoadResult struct {
	Build     models.SavedBuild
	Selection Selection
	Fallbacks int
}

// SaveBuild walks the selection, writes one field per subcategory with the
// option id as a string, and persists the record with its derived total.
func SaveBuild(dbConn *gorm.DB, cat *Catalog, title string, ownerID string, sel Selection) (models.SavedBuild, error) {
	if !cat.Ready() {
		return models.SavedBuild{}, ErrCatalogNotReady
	}

	table := NewBuildFieldTable(cat)
	fields := make(map[string]string, len(sel))
	for subID, opt := range sel {
		field, ok := table.FieldForSubcategory(subID)
		if !ok {
			continue
		}
		fields[field] = strconv.FormatUint(uint64(opt.ID), 10)
	}

	build := models.SavedBuild{
		Title:      title,
		TotalPrice: TotalPrice(sel),
		OwnerID:    ownerID,
	}
	if err := build.SetFieldMap(fields); err != nil {
		return models.SavedBuild{}, fmt.Errorf("failed to encode build fields: %w", err)
	}

	if err := dbConn.Create(&build).Error; err != nil {
		return models.SavedBuild{}, fmt.Errorf("failed to save build: %w", err)
	}
	return build, nil
}

// LoadBuild restores a saved build into a selection. Stored ids that no
// longer resolve (or resolve into the wrong subcategory after catalog
// drift), and ids the current rule set forbids in the restored
// combination, fall back to the subcategory's preferred legacy option,
// else its first available option; fallbacks are counted, never surfaced
// as errors.
func LoadBuild(dbConn *gorm.DB, cat *Catalog, rules *RuleSet, buildID uint) (BuildLoadResult, error) {
	if !cat.Ready() {
		return BuildLoadResult{}, ErrCatalogNotReady
	}

	var build models.SavedBuild
	if err := dbConn.First(&build, buildID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BuildLoadResult{}, ErrBuildNotFound
		}
		return BuildLoadResult{}, fmt.Errorf("failed to load build: %w", err)
	}

	fields, err := build.FieldMap()
	if err != nil {
		return BuildLoadResult{}, fmt.Errorf("failed to decode build fields: %w", err)
	}

	table := NewBuildFieldTable(cat)
	result := BuildLoadResult{Build: build, Selection: Selection{}}

	for field, stored := range fields {
		subID, ok := table.SubcategoryForField(field)
		if !ok {
			// The subcategory itself is gone; nothing to restore into.
			result.Fallbacks++
			continue
		}

		if id, err := strconv.ParseUint(stored, 10, 64); err == nil {
			if opt, ok := cat.OptionByID(uint(id)); ok && opt.SubcategoryID == subID {
				result.Selection[subID] = opt
				continue
			}
		}

		if opt, ok := fallbackOption(cat, field, subID); ok {
			result.Selection[subID] = opt
			result.Fallbacks++
		} else {
			result.Fallbacks++
		}
	}

	// Stored ids can be individually fine yet forbidden in combination
	// once the rule table has drifted. Hidden survivors fall back like
	// stale ids; a fallback that is itself hidden drops the field.
	for _, subID := range result.Selection.subcategoryIDs() {
		opt := result.Selection[subID]
		if !rules.OptionHidden(opt, result.Selection) {
			continue
		}
		delete(result.Selection, subID)
		if field, ok := table.FieldForSubcategory(subID); ok {
			if fb, ok := fallbackOption(cat, field, subID); ok && !rules.OptionHidden(fb, result.Selection) {
				result.Selection[subID] = fb
			}
		}
		result.Fallbacks++
	}

	if result.Fallbacks > 0 {
		log.Printf("Build %d loaded with %d field fallbacks (catalog drift)", build.ID, result.Fallbacks)
	}
	return result, nil
}

func fallbackOption(cat *Catalog, field string, subID uint) (models.Option, bool) {
	if preferred, ok := preferredFallbacks[field]; ok {
		if opt, ok := cat.OptionByID(preferred); ok && opt.SubcategoryID == subID {
			return opt, true
		}
	}
	options := cat.OptionsForSubcategory(subID)
	if len(options) == 0 {
		return models.Option{}, false
	}
	return options[0], true
}

// ListBuilds returns an owner's saved builds, newest first.
func ListBuilds(dbConn *gorm.DB, ownerID string) ([]models.SavedBuild, error) {
	var builds []models.SavedBuild
	query := dbConn.Order("created_at DESC")
	if ownerID != "" {
		query = query.Where("owner_id = ?", ownerID)
	}
	if err := query.Find(&builds).Error; err != nil {
		return nil, fmt.Errorf("failed to list builds: %w", err)
	}
	return builds, nil
}

// DeleteBuild removes a saved build.
func DeleteBuild(dbConn *gorm.DB, buildID uint) error {
	result := dbConn.Delete(&models.SavedBuild{}, buildID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete build: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBuildNotFound
	}
	return nil
}
