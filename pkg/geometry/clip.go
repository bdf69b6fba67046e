package geometry

import "math"

// ClipSegment clips the segment a-b to the rectangle using the Liang-Barsky
// algorithm. Returns false if no part of the segment lies inside r.
func ClipSegment(a, b Point2D, r Rect) (Segment, bool) {
	return clipParametric(a, b.Sub(a), 0, 1, r)
}

// ClipRay clips the half-line starting at origin and heading along dir.
func ClipRay(origin, dir Point2D, r Rect) (Segment, bool) {
	if dir.X == 0 && dir.Y == 0 {
		return Segment{}, false
	}
	return clipParametric(origin, dir, 0, math.Inf(1), r)
}

// ClipLine clips the infinite line through p with direction dir.
func ClipLine(p, dir Point2D, r Rect) (Segment, bool) {
	if dir.X == 0 && dir.Y == 0 {
		return Segment{}, false
	}
	return clipParametric(p, dir, math.Inf(-1), math.Inf(1), r)
}

// clipParametric clips p + t*d for t in [t0, t1] against r.
func clipParametric(p, d Point2D, t0, t1 float64, r Rect) (Segment, bool) {
	minX, minY := r.X, r.Y
	maxX, maxY := r.X+r.Width, r.Y+r.Height

	edges := [4][2]float64{
		{-d.X, p.X - minX},
		{d.X, maxX - p.X},
		{-d.Y, p.Y - minY},
		{d.Y, maxY - p.Y},
	}
	for _, e := range edges {
		pe, qe := e[0], e[1]
		if pe == 0 {
			if qe < 0 {
				return Segment{}, false
			}
			continue
		}
		t := qe / pe
		if pe < 0 {
			if t > t1 {
				return Segment{}, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return Segment{}, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}
	if math.IsInf(t0, 0) || math.IsInf(t1, 0) {
		return Segment{}, false
	}

	return Segment{
		A: r.clamp(Point2D{X: p.X + t0*d.X, Y: p.Y + t0*d.Y}),
		B: r.clamp(Point2D{X: p.X + t1*d.X, Y: p.Y + t1*d.Y}),
	}, true
}

// clamp absorbs rounding error so clipped endpoints are inside r.
func (r Rect) clamp(p Point2D) Point2D {
	p.X = math.Min(math.Max(p.X, r.X), r.X+r.Width)
	p.Y = math.Min(math.Max(p.Y, r.Y), r.Y+r.Height)
	return p
}

// Collinear returns true if every point lies on one line (within epsilon
// relative to the extent of the set). Sets with fewer than 3 points are
// always collinear.
func Collinear(points []Point2D) bool {
	if len(points) < 3 {
		return true
	}

	// Reference line: the first point and the point furthest from it, so a
	// tiny leading segment doesn't dominate.
	bb := BoundingBox(points)
	scale := math.Max(bb.Width, bb.Height)
	if scale == 0 {
		return true
	}
	a := points[0]
	b := a
	for _, p := range points[1:] {
		if distSq(a, p) > distSq(a, b) {
			b = p
		}
	}
	length := a.Distance(b)
	for _, p := range points {
		if math.Abs(crossProduct(a, b, p))/length > 1e-9*scale {
			return false
		}
	}
	return true
}

// crossProduct computes the cross product of vectors OA and OB.
func crossProduct(o, a, b Point2D) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// distSq computes the squared distance between two points.
func distSq(a, b Point2D) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}
