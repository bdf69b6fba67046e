// Package views keeps each drawing surface in step with the layer store:
// the primary diagram view, the onion-skin stack and the 3D view, plus the
// layer-list controller the front-ends bind their widgets to.
package views

import (
	"errors"

	"delaunay-layers/internal/app"
	"delaunay-layers/internal/diagram"
	"delaunay-layers/internal/stitch"
)

// DefaultOnionOpacities are the onion-skin opacities by distance from the
// active layer.
var DefaultOnionOpacities = []float64{0.5, 0.25, 0.1}

// fallbackOpacity is used past the end of the opacity table.
const fallbackOpacity = 0.1

// Options tunes the views. The zero value is not useful; start from
// DefaultOptions.
type Options struct {
	Style          diagram.Style
	HitRadius      float64
	OnionOpacities []float64
	Lifter         stitch.Lifter
	MarkerRadius   float64
}

// DefaultOptions returns the stock look and feel.
func DefaultOptions() Options {
	return Options{
		Style:          diagram.DefaultStyle(),
		HitRadius:      diagram.HitRadius,
		OnionOpacities: DefaultOnionOpacities,
		Lifter:         stitch.DefaultLifter,
		MarkerRadius:   0.1,
	}
}

// logDiagramError reports a failed diagram computation for one layer. The
// caller has already skipped what failed.
func logDiagramError(view string, layer app.Layer, err error) {
	if err == nil {
		return
	}
	log := app.Logger().With("view", view, "layer", layer.Name, "id", layer.ID)
	if errors.Is(err, diagram.ErrGeometry) {
		log.Error("diagram failed", "err", err)
		return
	}
	log.Debug("diagram skipped", "err", err, "points", len(layer.Points))
}
