package services

import (
	"sync"
)

// ConfiguratorState is the atomic snapshot published to the view layer:
// the selection, the active view, and the derived price and layer stack,
// all computed from the same selection in one logical step.
type ConfiguratorState struct {
	Selection  Selection    `json:"selection"`
	View       string       `json:"view"`
	TotalPrice float64      `json:"total_price"`
	Layers     []ImageLayer `json:"layers"`
}

// Configurator owns the current selection and view. The selection is its
// only mutable field and is replaced wholesale through the pure reducer;
// a mutex serializes callers so no intermediate state is observable even
// if the host overlaps requests.
type Configurator struct {
	mu      sync.Mutex
	catalog *Catalog
	rules   *RuleSet
	sel     Selection
	view    string
}

// NewConfigurator creates a store primed with the catalog defaults.
func NewConfigurator(cat *Catalog, rules *RuleSet) *Configurator {
	return &Configurator{
		catalog: cat,
		rules:   rules,
		sel:     DefaultSelection(cat),
		view:    ViewFront,
	}
}

// Catalog exposes the read-only catalog snapshot the store currently
// serves. Reload swaps the snapshot, so the read takes the lock too.
func (c *Configurator) Catalog() *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalog
}

// Rules exposes the rule set the store currently serves.
func (c *Configurator) Rules() *RuleSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rules
}

// Select runs the reducer for a pick and returns the resulting snapshot.
// Unknown option ids leave the state unchanged.
func (c *Configurator) Select(optionID uint) ConfiguratorState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sel = ApplySelection(c.catalog, c.rules, c.sel, optionID)
	return c.snapshotLocked()
}

// SetView switches the preview view. Anything but "back" means "front".
func (c *Configurator) SetView(view string) ConfiguratorState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if view == ViewBack {
		c.view = ViewBack
	} else {
		c.view = ViewFront
	}
	return c.snapshotLocked()
}

// Reset replaces the selection with the catalog defaults.
func (c *Configurator) Reset() ConfiguratorState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sel = DefaultSelection(c.catalog)
	return c.snapshotLocked()
}

// ReplaceSelection swaps in a selection wholesale (build load).
func (c *Configurator) ReplaceSelection(sel Selection) ConfiguratorState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sel = sel.Clone()
	return c.snapshotLocked()
}

// Reload swaps in a freshly-loaded catalog and rule set (after an import
// or filter change) and restarts from the new catalog's defaults.
func (c *Configurator) Reload(cat *Catalog, rules *RuleSet) ConfiguratorState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.catalog = cat
	c.rules = rules
	c.sel = DefaultSelection(cat)
	return c.snapshotLocked()
}

// State returns the current snapshot without mutating anything.
func (c *Configurator) State() ConfiguratorState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Configurator) snapshotLocked() ConfiguratorState {
	return ConfiguratorState{
		Selection:  c.sel.Clone(),
		View:       c.view,
		TotalPrice: TotalPrice(c.sel),
		Layers:     ImageLayers(c.rules, c.sel, c.view),
	}
}
