package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPrice(t *testing.T) {
	_, cat, rules := setupSeededCatalog(t)

	t.Run("NilPricesCountAsZero", func(t *testing.T) {
		assert.Equal(t, 0.0, TotalPrice(DefaultSelection(cat)))
	})

	t.Run("SumsSelectedOptions", func(t *testing.T) {
		sel := DefaultSelection(cat)
		sel = ApplySelection(cat, rules, sel, 55)  // +450
		sel = ApplySelection(cat, rules, sel, 370) // +100
		sel = ApplySelection(cat, rules, sel, 61)  // +200, then suppressed but still selected
		assert.Equal(t, 750.0, TotalPrice(sel))
	})

	t.Run("Additivity", func(t *testing.T) {
		sel := ApplySelection(cat, rules, DefaultSelection(cat), 55)
		total := TotalPrice(sel)
		for subID, opt := range sel {
			reduced := sel.Clone()
			delete(reduced, subID)
			assert.Equal(t, total-opt.Price(), TotalPrice(reduced))
		}
	})
}

func TestImageLayersOrdering(t *testing.T) {
	_, cat, rules := setupSeededCatalog(t)
	sel := DefaultSelection(cat)

	layers := ImageLayers(rules, sel, ViewFront)
	assert.NotEmpty(t, layers)
	for i := 1; i < len(layers); i++ {
		if layers[i-1].ZIndex == layers[i].ZIndex {
			assert.Less(t, layers[i-1].OptionID, layers[i].OptionID)
		} else {
			assert.Less(t, layers[i-1].ZIndex, layers[i].ZIndex)
		}
	}
	for _, layer := range layers {
		assert.Equal(t, ViewFront, layer.View)
	}
}

func TestImageLayersSkipsOptionsWithoutImage(t *testing.T) {
	_, cat, rules := setupSeededCatalog(t)
	sel := DefaultSelection(cat)

	for _, layer := range ImageLayers(rules, sel, ViewFront) {
		// Scale and hardware-color picks carry no artwork.
		assert.NotEqual(t, uint(380), layer.OptionID)
		assert.NotEqual(t, uint(727), layer.OptionID)
	}

	// Pickups have no back image at all.
	for _, layer := range ImageLayers(rules, sel, ViewBack) {
		assert.NotEqual(t, uint(90), layer.OptionID)
	}
}

func TestImageLayersBackViewOverrides(t *testing.T) {
	_, cat, rules := setupSeededCatalog(t)
	sel := DefaultSelection(cat)

	layers := ImageLayers(rules, sel, ViewBack)

	zByOption := map[uint]int{}
	for _, layer := range layers {
		zByOption[layer.OptionID] = layer.ZIndex
	}

	// Body forced behind, bolt-on hardware forced in front.
	assert.Equal(t, 0, zByOption[56])
	assert.Equal(t, 95, zByOption[102])
	assert.Equal(t, 96, zByOption[725])
	// The front z-index (70) is not what the back view renders.
	assert.NotEqual(t, 70, zByOption[102])
	assert.Equal(t, uint(56), layers[0].OptionID)
}

func TestImageLayersSuppressesHiddenSelections(t *testing.T) {
	_, cat, rules := setupSeededCatalog(t)

	sel := ApplySelection(cat, rules, DefaultSelection(cat), 55)

	// The finish stays selected (and priced) but its subcategory is
	// hidden while the burl body is on, so it must not render.
	assert.Equal(t, uint(60), sel[12].ID)
	for _, layer := range ImageLayers(rules, sel, ViewFront) {
		assert.NotEqual(t, uint(60), layer.OptionID)
	}
}

func TestResolveImageURLs(t *testing.T) {
	layers := []ImageLayer{{OptionID: 56, ImageFile: "body_alder_front.png"}}
	ResolveImageURLs(layers, "/static/options")
	assert.Equal(t, "/static/options/body_alder_front.png", layers[0].ImageURL)
}
