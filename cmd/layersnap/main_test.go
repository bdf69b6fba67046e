package main

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delaunay-layers/pkg/geometry"
)

func TestPopulate(t *testing.T) {
	bounds := geometry.NewRect(0, 0, 400, 300)
	store := populate(rand.New(rand.NewSource(3)), 3, 10, 4, bounds)

	layers := store.Layers()
	require.Len(t, layers, 3)
	assert.Equal(t, layers[0].ID, store.ActiveID())
	for i, l := range layers {
		assert.Len(t, l.Points, 10)
		assert.Equal(t, float64(i)*4, l.ZHeight)
	}
	assert.Equal(t, "Layer 2", layers[1].Name)

	again := populate(rand.New(rand.NewSource(3)), 3, 10, 4, bounds)
	assert.Equal(t, layers[2].Points, again.Layers()[2].Points)
}
