package views

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasterFactoryOrder(t *testing.T) {
	f := NewRasterFactory(10, 10)
	p0 := f.Acquire(0)
	p2 := f.Acquire(2)
	rasters := f.Rasters()
	require.Len(t, rasters, 4)
	assert.Same(t, p2.Voronoi, rasters[0])
	assert.Same(t, p0.Delaunay, rasters[3])

	f.Release(2)
	assert.Len(t, f.Rasters(), 2)
}

func TestExportWritesEveryView(t *testing.T) {
	store, _ := storeWith(3)
	dir := filepath.Join(t.TempDir(), "out")

	paths, err := Export(store, DefaultOptions(), dir, 400, 300)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, PrimaryPNG),
		filepath.Join(dir, OnionPNG),
		filepath.Join(dir, ScenePNG),
	}, paths)

	for _, p := range paths {
		f, err := os.Open(p)
		require.NoError(t, err)
		cfg, err := png.DecodeConfig(f)
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, 400, cfg.Width)
		assert.Equal(t, 300, cfg.Height)
	}
}

func TestExportLeavesStoreListenersClean(t *testing.T) {
	store, ids := storeWith(2)
	_, err := Export(store, DefaultOptions(), t.TempDir(), 100, 100)
	require.NoError(t, err)

	// The off-screen views are closed; further edits must not reach them.
	assert.NotPanics(t, func() { store.UpdateLayerPoints(ids[0], triangle(5)) })
}

func TestExportRejectsBadSize(t *testing.T) {
	store, _ := storeWith(1)
	_, err := Export(store, DefaultOptions(), t.TempDir(), 0, 10)
	assert.Error(t, err)
}
