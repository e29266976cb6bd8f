package services

import (
	"fmt"
	"log"
	"sort"

	"guitar_builder_app_go/models"

	"gorm.io/gorm"
)

// RuleSet is the immutable lookup table of constraint rules, keyed by
// trigger option id. All queries are pure reads; the same rule table is
// shared by the reducer and the derived-state calculator.
type RuleSet struct {
	byTrigger map[uint]models.ConstraintRule
	triggers  []uint
	// Symmetric color-variant pairs, registered in both directions.
	pairOf map[uint]uint
}

// LoadRuleSet reads the constraint rule table from the persistence layer.
func LoadRuleSet(dbConn *gorm.DB) (*RuleSet, error) {
	var rules []models.ConstraintRule
	if err := dbConn.Order("trigger_option_id ASC").Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to load constraint rules: %w", err)
	}
	return NewRuleSet(rules), nil
}

// NewRuleSet builds the lookup table from rule rows. Later rows win on a
// duplicate trigger id (logged; the unique index prevents this in storage).
func NewRuleSet(rules []models.ConstraintRule) *RuleSet {
	rs := &RuleSet{
		byTrigger: make(map[uint]models.ConstraintRule, len(rules)),
		pairOf:    make(map[uint]uint),
	}
	for _, rule := range rules {
		if _, dup := rs.byTrigger[rule.TriggerOptionID]; dup {
			log.Printf("Duplicate constraint rule for trigger %d, keeping the later row", rule.TriggerOptionID)
		}
		rs.byTrigger[rule.TriggerOptionID] = rule
		if rule.PairedOptionID != nil {
			rs.pairOf[rule.TriggerOptionID] = *rule.PairedOptionID
			rs.pairOf[*rule.PairedOptionID] = rule.TriggerOptionID
		}
	}
	rs.triggers = make([]uint, 0, len(rs.byTrigger))
	for trigger := range rs.byTrigger {
		rs.triggers = append(rs.triggers, trigger)
	}
	sort.Slice(rs.triggers, func(i, j int) bool { return rs.triggers[i] < rs.triggers[j] })
	return rs
}

// RuleFor returns the rule triggered by the given option id, if any.
func (rs *RuleSet) RuleFor(optionID uint) (models.ConstraintRule, bool) {
	rule, ok := rs.byTrigger[optionID]
	return rule, ok
}

// PairOf returns the color-variant sibling of an option, if one is declared.
func (rs *RuleSet) PairOf(optionID uint) (uint, bool) {
	paired, ok := rs.pairOf[optionID]
	return paired, ok
}

// TriggeredBy returns every rule whose trigger option is currently
// selected, in ascending trigger id order for determinism.
func (rs *RuleSet) TriggeredBy(sel Selection) []models.ConstraintRule {
	var triggered []models.ConstraintRule
	for _, trigger := range rs.triggers {
		if sel.Contains(trigger) {
			triggered = append(triggered, rs.byTrigger[trigger])
		}
	}
	return triggered
}

// OptionHidden reports whether any triggered rule hides the option. Hide
// sets compose by union across rules; a rule never hides its own trigger.
func (rs *RuleSet) OptionHidden(opt models.Option, sel Selection) bool {
	for _, rule := range rs.TriggeredBy(sel) {
		if rule.TriggerOptionID == opt.ID {
			continue
		}
		for _, hidden := range rule.HiddenOptions() {
			if hidden == opt.ID {
				return true
			}
		}
	}
	return false
}

// SubcategoryHidden reports whether any triggered rule hides the whole
// subcategory. Options in a hidden subcategory stay selected but are
// suppressed from rendering.
func (rs *RuleSet) SubcategoryHidden(subcategoryID uint, sel Selection) bool {
	for _, rule := range rs.TriggeredBy(sel) {
		for _, hidden := range rule.HiddenSubcategories() {
			if hidden == subcategoryID {
				return true
			}
		}
	}
	return false
}

// LintCatalog reports authoring errors in the rule table against a catalog:
// a trigger pair whose hides conflict with an auto-select (auto-selecting an
// option another co-triggerable rule hides), and subcategories with more
// than one default option. These are surfaced, never silently resolved.
func LintCatalog(cat *Catalog, rs *RuleSet) []string {
	var problems []string

	for _, t1 := range rs.triggers {
		r1 := rs.byTrigger[t1]
		sub1, ok1 := cat.SubcategoryIDForOption(t1)
		for _, t2 := range rs.triggers {
			if t1 == t2 {
				continue
			}
			r2 := rs.byTrigger[t2]
			sub2, ok2 := cat.SubcategoryIDForOption(t2)
			// Triggers in the same subcategory can never be co-selected.
			if ok1 && ok2 && sub1 == sub2 {
				continue
			}
			for _, auto := range r1.AutoSelects() {
				for _, hidden := range r2.HiddenOptions() {
					if auto == hidden {
						problems = append(problems, fmt.Sprintf(
							"rule for option %d auto-selects %d, which the co-triggerable rule for option %d hides",
							t1, auto, t2))
					}
				}
			}
		}
	}

	for _, sub := range cat.Subcategories() {
		defaults := 0
		for _, opt := range cat.OptionsForSubcategory(sub.ID) {
			if opt.IsDefault {
				defaults++
			}
		}
		if defaults > 1 {
			problems = append(problems, fmt.Sprintf(
				"subcategory %d (%s) has %d default options; the last in catalog order wins",
				sub.ID, sub.Name, defaults))
		}
	}

	return problems
}
