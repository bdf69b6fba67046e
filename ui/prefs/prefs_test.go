package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delaunay-layers/internal/app"
)

func TestMissingFileGivesFallbacks(t *testing.T) {
	p := LoadFrom(t.TempDir())
	assert.Equal(t, app.Display{ShowDelaunay: true, ShowVoronoi: true}, p.Display())
	assert.Equal(t, 2, p.Int(KeyOnionDepth, 2))
	assert.False(t, p.Bool(KeyOnion, false))
	assert.Empty(t, p.String(KeyExportDir))
	w, h := p.WindowSize(1200, 800)
	assert.Equal(t, 1200.0, w)
	assert.Equal(t, 800.0, h)
}

func TestSaveAndReload(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "delaunay-layers")
	p := LoadFrom(dir)
	p.SetDisplay(app.Display{ShowDelaunay: false, ShowVoronoi: true})
	p.SetInt(KeyOnionDepth, 3)
	p.SetBool(KeyOnion, true)
	p.SetString(KeyExportDir, "/tmp/out")
	p.SetWindowSize(640, 480)
	require.NoError(t, p.Save())

	q := LoadFrom(dir)
	assert.Equal(t, app.Display{ShowDelaunay: false, ShowVoronoi: true}, q.Display())
	assert.Equal(t, 3, q.Int(KeyOnionDepth, 2))
	assert.True(t, q.Bool(KeyOnion, false))
	assert.Equal(t, "/tmp/out", q.String(KeyExportDir))
	w, h := q.WindowSize(0, 0)
	assert.Equal(t, 640.0, w)
	assert.Equal(t, 480.0, h)
}

func TestCorruptFileIsIgnored(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, prefsFile), []byte("{not json"), 0o644))

	p := LoadFrom(dir)
	assert.Equal(t, 2, p.Int(KeyOnionDepth, 2))
	p.SetInt(KeyOnionDepth, 1)
	require.NoError(t, p.Save())
	assert.Equal(t, 1, LoadFrom(dir).Int(KeyOnionDepth, 2))
}

func TestWrongTypeFallsBack(t *testing.T) {
	p := LoadFrom(t.TempDir())
	p.SetString(KeyOnion, "yes")
	assert.False(t, p.Bool(KeyOnion, false))
	p.SetBool(KeyExportDir, true)
	assert.Empty(t, p.String(KeyExportDir))
}
