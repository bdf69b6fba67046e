package stitch

import (
	"gonum.org/v1/gonum/spatial/r3"

	"delaunay-layers/internal/app"
)

// LayerMesh is the lifted geometry of one layer.
type LayerMesh struct {
	Layer    app.LayerID
	Name     string
	Vertices []r3.Vec
	Edges    []Edge
}

// Failure records a layer whose in-plane triangulation failed.
type Failure struct {
	Layer app.LayerID
	Name  string
	Err   error
}

// Mesh is the wireframe of a whole layer collection.
type Mesh struct {
	Layers []LayerMesh
	// Stitches[i] joins Layers[i] to Layers[i+1].
	Stitches [][]Edge
	Failures []Failure
}

// Build lifts every layer, triangulates each one in its plane and stitches
// consecutive layers in collection order, whatever their elevations. A
// layer that cannot be triangulated keeps its vertices and stitches and
// is reported in Failures.
func (lf Lifter) Build(layers []app.Layer, width, height float64) Mesh {
	m := Mesh{Layers: make([]LayerMesh, len(layers))}
	for i, l := range layers {
		lm := LayerMesh{Layer: l.ID, Name: l.Name, Vertices: lf.Lift(l, width, height)}
		edges, err := InPlaneEdges(lm.Vertices)
		if err != nil {
			m.Failures = append(m.Failures, Failure{Layer: l.ID, Name: l.Name, Err: err})
		}
		lm.Edges = edges
		m.Layers[i] = lm
	}
	for i := 0; i+1 < len(m.Layers); i++ {
		m.Stitches = append(m.Stitches, Stitch(m.Layers[i].Vertices, m.Layers[i+1].Vertices))
	}
	return m
}

// Build builds a mesh with DefaultLifter.
func Build(layers []app.Layer, width, height float64) Mesh {
	return DefaultLifter.Build(layers, width, height)
}

// VertexCount returns the number of vertices over all layers.
func (m Mesh) VertexCount() int {
	n := 0
	for _, l := range m.Layers {
		n += len(l.Vertices)
	}
	return n
}

// Edges returns every in-plane and stitch edge, layer by layer.
func (m Mesh) Edges() []Edge {
	var out []Edge
	for _, l := range m.Layers {
		out = append(out, l.Edges...)
	}
	for _, s := range m.Stitches {
		out = append(out, s...)
	}
	return out
}

// StitchCount returns the number of stitch edges.
func (m Mesh) StitchCount() int {
	n := 0
	for _, s := range m.Stitches {
		n += len(s)
	}
	return n
}
