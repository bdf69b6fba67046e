package stitch

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"

	"delaunay-layers/internal/app"
	"delaunay-layers/internal/diagram"
	"delaunay-layers/pkg/geometry"
)

func layer(id app.LayerID, z float64, xy ...float64) app.Layer {
	l := app.Layer{ID: id, Name: "L", ZHeight: z, DraggingPoint: app.NoPoint}
	for i := 0; i+1 < len(xy); i += 2 {
		l.Points = append(l.Points, geometry.NewPoint2D(xy[i], xy[i+1]))
	}
	return l
}

func TestLift(t *testing.T) {
	v := Lift(layer(1, 2, 500, 100, 400, 300), 800, 600)
	require.Len(t, v, 2)
	assert.InDelta(t, 1.0, v[0].X, 1e-12)
	assert.InDelta(t, 0.5, v[0].Y, 1e-12)
	assert.InDelta(t, 2.0, v[0].Z, 1e-12)
	assert.Equal(t, r3.Vec{Y: 0.5}, v[1])

	custom := Lifter{PlaneScale: 1, ElevationScale: 1}
	assert.Equal(t, r3.Vec{X: 100, Y: 2, Z: 200}, custom.Lift(layer(1, 2, 500, 100), 800, 600)[0])
}

func TestInPlaneEdges(t *testing.T) {
	v := Lift(layer(1, 4, 0, 0, 10, 0, 5, 10), 0, 0)
	edges, err := InPlaneEdges(v)
	require.NoError(t, err)
	assert.Len(t, edges, 3)
	for _, e := range edges {
		assert.Equal(t, 1.0, e.A.Y)
		assert.Equal(t, 1.0, e.B.Y)
	}

	edges, err = InPlaneEdges(v[:2])
	require.NoError(t, err)
	assert.Empty(t, edges)

	_, err = InPlaneEdges(Lift(layer(1, 0, 0, 0, 1, 1, 2, 2), 0, 0))
	assert.True(t, errors.Is(err, diagram.ErrDegenerate))
}

func TestStitchScenario(t *testing.T) {
	lower := Lift(layer(1, 0, 0, 0, 10, 0, 5, 10), 0, 0)
	upper := Lift(layer(2, 1, 0, 0, 10, 0), 0, 0)

	edges := Stitch(lower, upper)
	require.Len(t, edges, 3)
	assert.Equal(t, upper[0], edges[0].B)
	assert.Equal(t, upper[1], edges[1].B)
	// (5,10) is equidistant from both; the first upper vertex wins.
	assert.Equal(t, upper[0], edges[2].B)
	for i, e := range edges {
		assert.Equal(t, lower[i], e.A)
	}
}

func TestStitchEmpty(t *testing.T) {
	lower := Lift(layer(1, 0, 0, 0), 0, 0)
	assert.Empty(t, Stitch(lower, nil))
	assert.Empty(t, Stitch(nil, lower))
	assert.Equal(t, -1, Nearest(r3.Vec{}, nil))
}

func randomVecs(rng *rand.Rand, n int, y float64) []r3.Vec {
	out := make([]r3.Vec, n)
	for i := range out {
		out[i] = r3.Vec{X: rng.Float64()*8 - 4, Y: y, Z: rng.Float64()*6 - 3}
	}
	return out
}

func TestStitchMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 20; trial++ {
		lower := randomVecs(rng, 1+rng.Intn(40), 0)
		upper := randomVecs(rng, 1+rng.Intn(40), rng.Float64())

		edges := Stitch(lower, upper)
		require.Len(t, edges, len(lower))

		pts := make(kdtree.Points, len(upper))
		for i, u := range upper {
			pts[i] = kdtree.Point{u.X, u.Y, u.Z}
		}
		tree := kdtree.New(pts, false)

		for i, v := range lower {
			want := math.Inf(1)
			for _, u := range upper {
				want = math.Min(want, r3.Norm(r3.Sub(u, v)))
			}
			assert.InDelta(t, want, edges[i].Length(), 1e-12)

			_, d2 := tree.Nearest(kdtree.Point{v.X, v.Y, v.Z})
			assert.InDelta(t, d2, r3.Norm2(r3.Sub(edges[i].B, v)), 1e-9)
		}
	}
}

func TestBuild(t *testing.T) {
	layers := []app.Layer{
		layer(1, 0, 0, 0, 10, 0, 5, 10),
		layer(2, 1, 0, 0, 10, 0),
		layer(3, 0.5, 1, 1, 2, 2, 3, 3),
	}
	m := Build(layers, 100, 100)

	require.Len(t, m.Layers, 3)
	assert.Equal(t, 8, m.VertexCount())
	assert.Len(t, m.Layers[0].Edges, 3)
	assert.Empty(t, m.Layers[1].Edges)
	assert.Empty(t, m.Layers[2].Edges)

	require.Len(t, m.Stitches, 2)
	assert.Len(t, m.Stitches[0], 3)
	assert.Len(t, m.Stitches[1], 2)
	assert.Equal(t, 5, m.StitchCount())
	assert.Len(t, m.Edges(), 8)

	require.Len(t, m.Failures, 1)
	assert.Equal(t, app.LayerID(3), m.Failures[0].Layer)
	assert.True(t, errors.Is(m.Failures[0].Err, diagram.ErrDegenerate))
}

func TestBuildIsIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	var layers []app.Layer
	for i := 0; i < 4; i++ {
		l := layer(app.LayerID(i+1), float64(i))
		for j := 0; j < 12; j++ {
			l.Points = append(l.Points, geometry.NewPoint2D(rng.Float64()*800, rng.Float64()*600))
		}
		layers = append(layers, l)
	}
	assert.Equal(t, Build(layers, 800, 600), Build(layers, 800, 600))
}
