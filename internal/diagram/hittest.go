package diagram

import "delaunay-layers/pkg/geometry"

// HitRadius is the pick distance, in pixels, used by the primary view.
const HitRadius = 10.0

// HitTest returns the index of the first point, in insertion order, whose
// distance to at is strictly less than radius, or -1.
func HitTest(points []geometry.Point2D, at geometry.Point2D, radius float64) int {
	for i, p := range points {
		if p.Distance(at) < radius {
			return i
		}
	}
	return -1
}
