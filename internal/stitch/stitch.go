package stitch

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"delaunay-layers/internal/diagram"
	"delaunay-layers/pkg/geometry"
)

// Edge is a straight line between two scene positions.
type Edge struct {
	A, B r3.Vec
}

// Length returns the Euclidean length of the edge.
func (e Edge) Length() float64 {
	return r3.Norm(r3.Sub(e.B, e.A))
}

// InPlaneEdges triangulates vertices on the X-Z plane and returns each
// triangle edge once with the original Y restored. Fewer than three
// vertices give no edges; a degenerate or failed triangulation gives no
// edges and the error.
func InPlaneEdges(vertices []r3.Vec) ([]Edge, error) {
	projected := make([]geometry.Point2D, len(vertices))
	for i, v := range vertices {
		projected[i] = geometry.Point2D{X: v.X, Y: v.Z}
	}
	tri, err := diagram.Triangulate(projected)
	if err != nil {
		return nil, fmt.Errorf("in-plane edges: %w", err)
	}
	edges := tri.Edges()
	out := make([]Edge, len(edges))
	for i, e := range edges {
		out[i] = Edge{A: vertices[e.I], B: vertices[e.J]}
	}
	return out, nil
}

// Nearest returns the index of the vertex in candidates closest to v, the
// first one on ties, or -1 when candidates is empty.
func Nearest(v r3.Vec, candidates []r3.Vec) int {
	best := -1
	bestDist := 0.0
	for i, c := range candidates {
		d := r3.Norm2(r3.Sub(c, v))
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Stitch connects every lower vertex to its nearest upper vertex. The
// result has one edge per lower vertex, in lower order. Several lower
// vertices may share an upper vertex and nothing is stitched from upper
// to lower.
func Stitch(lower, upper []r3.Vec) []Edge {
	if len(upper) == 0 {
		return nil
	}
	out := make([]Edge, 0, len(lower))
	for _, v := range lower {
		out = append(out, Edge{A: v, B: upper[Nearest(v, upper)]})
	}
	return out
}
