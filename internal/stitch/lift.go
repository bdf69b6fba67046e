// Package stitch lifts 2D layers into 3D and connects them into a wireframe
// mesh: each layer is triangulated in its own plane and every vertex of a
// layer is stitched to the nearest vertex of the next layer.
package stitch

import (
	"gonum.org/v1/gonum/spatial/r3"

	"delaunay-layers/internal/app"
)

const (
	// DefaultPlaneScale converts surface pixels to scene units.
	DefaultPlaneScale = 0.01
	// DefaultElevationScale converts a layer's ZHeight to scene units.
	DefaultElevationScale = 0.25
)

// Lifter maps surface coordinates into the 3D scene. The surface center
// lands on the origin, surface X runs along +X, surface Y (pointing down)
// runs along -Z and elevation runs along +Y.
type Lifter struct {
	PlaneScale     float64
	ElevationScale float64
}

// DefaultLifter uses the default scales.
var DefaultLifter = Lifter{
	PlaneScale:     DefaultPlaneScale,
	ElevationScale: DefaultElevationScale,
}

// Lift returns the 3D vertices of a layer drawn on a width x height surface.
func (lf Lifter) Lift(layer app.Layer, width, height float64) []r3.Vec {
	out := make([]r3.Vec, len(layer.Points))
	y := layer.ZHeight * lf.ElevationScale
	for i, p := range layer.Points {
		out[i] = r3.Vec{
			X: (p.X - width/2) * lf.PlaneScale,
			Y: y,
			Z: -(p.Y - height/2) * lf.PlaneScale,
		}
	}
	return out
}

// Lift lifts a layer with DefaultLifter.
func Lift(layer app.Layer, width, height float64) []r3.Vec {
	return DefaultLifter.Lift(layer, width, height)
}
