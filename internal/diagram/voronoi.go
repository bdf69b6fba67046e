package diagram

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"delaunay-layers/pkg/geometry"
)

// Voronoi returns the boundary edges of the Voronoi cells of points, clipped
// to bounds. Cells are derived from the Delaunay dual: each interior edge
// joins two circumcenters and each hull edge becomes a ray pointing away
// from the hull. Collinear input yields the perpendicular bisectors of
// consecutive points.
func Voronoi(points []geometry.Point2D, bounds geometry.Rect) ([]geometry.Segment, error) {
	if len(points) < 2 || bounds.Empty() {
		return nil, nil
	}
	if len(points) == 2 || geometry.Collinear(points) {
		return bisectors(points, bounds), nil
	}

	t, err := Triangulate(points)
	if err != nil {
		return nil, fmt.Errorf("voronoi: %w", err)
	}

	centers := make([]r2.Vec, t.Len())
	for i := range centers {
		centers[i] = circumcenter(t.Triangle(i))
	}

	var cells []geometry.Segment
	for e, o := range t.Halfedges {
		if o >= 0 && o < e {
			continue
		}
		c := centers[e/3]
		if o >= 0 {
			if s, ok := geometry.ClipSegment(toPoint(c), toPoint(centers[o/3]), bounds); ok {
				cells = append(cells, s)
			}
			continue
		}

		// Hull edge: ray from the circumcenter along the outward normal.
		p := toVec(t.Points[t.Triangles[e]])
		q := toVec(t.Points[t.Triangles[nextHalfedge(e)]])
		opp := toVec(t.Points[t.Triangles[prevHalfedge(e)]])
		d := r2.Sub(q, p)
		n := r2.Vec{X: d.Y, Y: -d.X}
		if r2.Dot(n, r2.Sub(opp, p)) > 0 {
			n = r2.Scale(-1, n)
		}
		if s, ok := geometry.ClipRay(toPoint(c), toPoint(n), bounds); ok {
			cells = append(cells, s)
		}
	}
	return cells, nil
}

// bisectors handles input without a triangulation: the cells are strips
// separated by the perpendicular bisectors of neighbouring points.
func bisectors(points []geometry.Point2D, bounds geometry.Rect) []geometry.Segment {
	sorted, dir, ok := alongLine(points)
	if !ok {
		return nil
	}
	normal := geometry.NewPoint2D(-dir.Y, dir.X)
	var out []geometry.Segment
	for i := 1; i < len(sorted); i++ {
		a, b := sorted[i-1], sorted[i]
		if a == b {
			continue
		}
		if s, ok := geometry.ClipLine(a.Midpoint(b), normal, bounds); ok {
			out = append(out, s)
		}
	}
	return out
}

// LineHull returns the hull of a set with no triangulation: its distinct
// points sorted along their common line. It is nil when fewer than two
// distinct points remain or the set is not collinear.
func LineHull(points []geometry.Point2D) []geometry.Point2D {
	if len(points) < 2 || !geometry.Collinear(points) {
		return nil
	}
	sorted, _, ok := alongLine(points)
	if !ok {
		return nil
	}
	out := sorted[:1]
	for _, p := range sorted[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}

// alongLine sorts a copy of points by their projection on the line from
// the first point to the one farthest from it. ok is false when every
// point coincides.
func alongLine(points []geometry.Point2D) (sorted []geometry.Point2D, dir r2.Vec, ok bool) {
	origin := points[0]
	far := origin
	for _, p := range points[1:] {
		if origin.Distance(p) > origin.Distance(far) {
			far = p
		}
	}
	dir = toVec(far.Sub(origin))
	if r2.Norm(dir) == 0 {
		return nil, dir, false
	}
	dir = r2.Unit(dir)

	sorted = geometry.ClonePoints(points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return r2.Dot(toVec(sorted[i].Sub(origin)), dir) < r2.Dot(toVec(sorted[j].Sub(origin)), dir)
	})
	return sorted, dir, true
}

func circumcenter(tri [3]geometry.Point2D) r2.Vec {
	a, b, c := toVec(tri[0]), toVec(tri[1]), toVec(tri[2])
	ab := r2.Sub(b, a)
	ac := r2.Sub(c, a)
	bl := r2.Norm2(ab)
	cl := r2.Norm2(ac)
	d := 2 * (ab.X*ac.Y - ab.Y*ac.X)
	if d == 0 {
		// Flat triangle; the library never emits one but stay finite.
		return r2.Scale(1.0/3, r2.Add(r2.Add(a, b), c))
	}
	return r2.Vec{
		X: a.X + (ac.Y*bl-ab.Y*cl)/d,
		Y: a.Y + (ab.X*cl-ac.X*bl)/d,
	}
}

func toVec(p geometry.Point2D) r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

func toPoint(v r2.Vec) geometry.Point2D { return geometry.Point2D{X: v.X, Y: v.Y} }
