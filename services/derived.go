package services

import (
	"path"
	"sort"
)

// Preview views the configurator can render.
const (
	ViewFront = "front"
	ViewBack  = "back"
)

// ImageLayer is one stacked image of the visual preview, recomputed on
// every selection or view change and never mutated in place. ImageFile is
// the filename component of the option's stored image reference; mapping
// it to a servable URL is the image collaborator's job.
type ImageLayer struct {
	OptionID  uint   `json:"option_id"`
	ImageFile string `json:"image_file"`
	ImageURL  string `json:"image_url,omitempty"`
	ZIndex    int    `json:"z_index"`
	View      string `json:"view"`
}

// TotalPrice sums the selected options' prices, treating nil as zero.
// Pure and order-independent; recomputed fully on every call.
func TotalPrice(sel Selection) float64 {
	total := 0.0
	for _, opt := range sel {
		total += opt.Price()
	}
	return total
}

// ImageLayers computes the ordered image stack for a view. Options with no
// image for the view are skipped, as are options currently hidden by the
// rule set (selected yet suppressed from rendering). The back view honors
// each option's catalog-attached z-index override. Layers sort ascending
// by z-index, ties broken by option id.
func ImageLayers(rules *RuleSet, sel Selection, view string) []ImageLayer {
	layers := make([]ImageLayer, 0, len(sel))
	for _, subID := range sel.subcategoryIDs() {
		opt := sel[subID]
		ref := opt.ImageForView(view)
		if ref == "" {
			continue
		}
		if rules.OptionHidden(opt, sel) || rules.SubcategoryHidden(opt.SubcategoryID, sel) {
			continue
		}
		z := opt.ZIndex
		if view == ViewBack && opt.BackZIndex != nil {
			z = *opt.BackZIndex
		}
		layers = append(layers, ImageLayer{
			OptionID:  opt.ID,
			ImageFile: path.Base(ref),
			ZIndex:    z,
			View:      view,
		})
	}
	sort.Slice(layers, func(i, j int) bool {
		if layers[i].ZIndex != layers[j].ZIndex {
			return layers[i].ZIndex < layers[j].ZIndex
		}
		return layers[i].OptionID < layers[j].OptionID
	})
	return layers
}

// ResolveImageURLs fills each layer's servable URL from the image
// collaborator's base path. Kept out of the pure calculator so the core
// never depends on deployment layout.
func ResolveImageURLs(layers []ImageLayer, baseURL string) {
	for i := range layers {
		layers[i].ImageURL = baseURL + "/" + layers[i].ImageFile
	}
}
