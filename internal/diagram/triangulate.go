// Package diagram computes the Delaunay triangulation and Voronoi cells of a
// layer's points and draws them onto render surfaces.
package diagram

import (
	"errors"
	"fmt"

	"github.com/fogleman/delaunay"

	"delaunay-layers/pkg/geometry"
)

var (
	// ErrDegenerate means the input has no triangulation (all points
	// coincident or collinear). Callers skip the draw step.
	ErrDegenerate = errors.New("degenerate point set")
	// ErrGeometry means the triangulation library failed unexpectedly.
	ErrGeometry = errors.New("geometry computation failed")
)

// Edge is an undirected edge between two point indices, I < J.
type Edge struct {
	I, J int
}

// Triangulation is a planar Delaunay triangulation over Points.
type Triangulation struct {
	Points []geometry.Point2D
	// Triangles holds vertex index triples, one per triangle.
	Triangles []int
	// Halfedges[e] is the opposite half-edge of e, or -1 on the hull.
	Halfedges []int
}

// Triangulate computes the Delaunay triangulation of points. Fewer than
// three points give an empty triangulation and no error.
func Triangulate(points []geometry.Point2D) (t *Triangulation, err error) {
	t = &Triangulation{Points: geometry.ClonePoints(points)}
	if len(points) < 3 {
		return t, nil
	}
	if geometry.Collinear(points) {
		return t, fmt.Errorf("triangulate %d points: %w", len(points), ErrDegenerate)
	}

	defer func() {
		if r := recover(); r != nil {
			t = &Triangulation{Points: geometry.ClonePoints(points)}
			err = fmt.Errorf("triangulate %d points: %w: %v", len(points), ErrGeometry, r)
		}
	}()

	in := make([]delaunay.Point, len(points))
	for i, p := range points {
		in[i] = delaunay.Point{X: p.X, Y: p.Y}
	}
	res, err := delaunay.Triangulate(in)
	if err != nil {
		return t, fmt.Errorf("triangulate %d points: %w: %v", len(points), ErrDegenerate, err)
	}
	t.Triangles = res.Triangles
	t.Halfedges = res.Halfedges
	return t, nil
}

// Len returns the number of triangles.
func (t *Triangulation) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Triangles) / 3
}

// Triangle returns the corner points of triangle i.
func (t *Triangulation) Triangle(i int) [3]geometry.Point2D {
	return [3]geometry.Point2D{
		t.Points[t.Triangles[3*i]],
		t.Points[t.Triangles[3*i+1]],
		t.Points[t.Triangles[3*i+2]],
	}
}

// Edges returns each triangle edge once, in first-seen order.
func (t *Triangulation) Edges() []Edge {
	seen := make(map[Edge]struct{}, len(t.Triangles))
	edges := make([]Edge, 0, len(t.Triangles)/2+1)
	for e := range t.Triangles {
		a, b := t.Triangles[e], t.Triangles[nextHalfedge(e)]
		if a > b {
			a, b = b, a
		}
		key := Edge{I: a, J: b}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		edges = append(edges, key)
	}
	return edges
}

// Paths returns one closed polyline per triangle.
func (t *Triangulation) Paths() [][]geometry.Point2D {
	out := make([][]geometry.Point2D, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		tri := t.Triangle(i)
		out = append(out, []geometry.Point2D{tri[0], tri[1], tri[2], tri[0]})
	}
	return out
}

func nextHalfedge(e int) int {
	if e%3 == 2 {
		return e - 2
	}
	return e + 1
}

func prevHalfedge(e int) int {
	if e%3 == 0 {
		return e + 2
	}
	return e - 1
}
