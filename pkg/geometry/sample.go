package geometry

import "math/rand"

// RandomPoints returns n points drawn uniformly from r shrunk by margin on
// every side. The margin is dropped when r is too small for it.
func RandomPoints(rng *rand.Rand, n int, r Rect, margin float64) []Point2D {
	if n <= 0 {
		return nil
	}
	if r.Width <= 2*margin || r.Height <= 2*margin {
		margin = 0
	}
	out := make([]Point2D, n)
	for i := range out {
		out[i] = Point2D{
			X: r.X + margin + rng.Float64()*(r.Width-2*margin),
			Y: r.Y + margin + rng.Float64()*(r.Height-2*margin),
		}
	}
	return out
}
