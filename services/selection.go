package services

import (
	"sort"

	"guitar_builder_app_go/models"
)

// Selection is the whole configuration state: the chosen option per
// subcategory. Every value's SubcategoryID equals its key; the map is only
// ever produced by ApplySelection, DefaultSelection or the build loader.
type Selection map[uint]models.Option

// Clone returns an independent copy of the selection.
func (s Selection) Clone() Selection {
	next := make(Selection, len(s))
	for subID, opt := range s {
		next[subID] = opt
	}
	return next
}

// Contains reports whether the option id is selected in any subcategory.
func (s Selection) Contains(optionID uint) bool {
	for _, opt := range s {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}

// subcategoryIDs returns the selected subcategory ids in ascending order,
// so every fold over a selection is deterministic.
func (s Selection) subcategoryIDs() []uint {
	ids := make([]uint, 0, len(s))
	for subID := range s {
		ids = append(ids, subID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// DefaultSelection builds the initial selection from catalog defaults.
// If a subcategory flags more than one default, the last one in catalog
// order wins (catalog authoring responsibility; LintCatalog reports it).
func DefaultSelection(cat *Catalog) Selection {
	sel := Selection{}
	for _, sub := range cat.Subcategories() {
		for _, opt := range cat.OptionsForSubcategory(sub.ID) {
			if opt.IsDefault {
				sel[sub.ID] = opt
			}
		}
	}
	return sel
}

// ApplySelection is the selection reducer: a pure, single-step transition
// from the current selection to the next one under a user pick. It applies,
// in order: direct placement, pairing propagation, auto-selection (then one
// more pairing pass), and exhaustive retroactive invalidation under the
// post-pick map. One pass of invalidation suffices because hide rules
// trigger on presence, never absence, so removals cannot activate new rules.
//
// The reducer never fails: an option id not present in the catalog is a
// defined no-op and returns the input selection unchanged.
func ApplySelection(cat *Catalog, rules *RuleSet, sel Selection, optionID uint) Selection {
	picked, ok := cat.OptionByID(optionID)
	if !ok {
		return sel
	}

	// 1. Direct placement
	next := sel.Clone()
	next[picked.SubcategoryID] = picked

	// 2. Pairing propagation (one pass per invocation)
	propagatePairs(cat, rules, next)

	// 3. Auto-selection, in declared order, for the rule the pick triggers
	if rule, ok := rules.RuleFor(picked.ID); ok {
		for _, autoID := range rule.AutoSelects() {
			if auto, ok := cat.OptionByID(autoID); ok {
				next[auto.SubcategoryID] = auto
			}
		}
		// Pairing is evaluated once more after auto-select completes,
		// exactly once within the same invocation.
		propagatePairs(cat, rules, next)
	}

	// 4. Retroactive invalidation under the post-pick map
	for _, subID := range next.subcategoryIDs() {
		if selected, ok := next[subID]; ok && rules.OptionHidden(selected, next) {
			delete(next, subID)
		}
	}

	return next
}

// propagatePairs makes color-variant pairs mutually consistent with the
// selected hardware color: every selected option with a declared sibling of
// the other color is swapped to the sibling matching the driver color. The
// driver is the selected option that carries a hardware color but no pair
// of its own (the "Black"/"Chrome" pick itself).
func propagatePairs(cat *Catalog, rules *RuleSet, sel Selection) {
	color := selectedHardwareColor(rules, sel)
	if color == "" {
		return
	}
	for _, subID := range sel.subcategoryIDs() {
		opt, ok := sel[subID]
		if !ok {
			continue
		}
		pairedID, ok := rules.PairOf(opt.ID)
		if !ok {
			continue
		}
		paired, ok := cat.OptionByID(pairedID)
		if !ok {
			continue
		}
		if opt.HardwareColor != color && paired.HardwareColor == color {
			sel[paired.SubcategoryID] = paired
		}
	}
}

func selectedHardwareColor(rules *RuleSet, sel Selection) string {
	for _, subID := range sel.subcategoryIDs() {
		opt := sel[subID]
		if opt.HardwareColor == "" {
			continue
		}
		if _, paired := rules.PairOf(opt.ID); !paired {
			return opt.HardwareColor
		}
	}
	return ""
}
