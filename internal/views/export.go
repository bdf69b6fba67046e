package views

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"delaunay-layers/internal/app"
	"delaunay-layers/internal/render"
	"delaunay-layers/pkg/colorutil"
	"delaunay-layers/pkg/geometry"
)

// Snapshot file names written by Export.
const (
	PrimaryPNG = "primary.png"
	OnionPNG   = "onion.png"
	ScenePNG   = "3d.png"
)

// RasterFactory hands out transparent raster pairs for the onion view.
type RasterFactory struct {
	mu            sync.Mutex
	width, height int
	pairs         map[int]*Pair
}

var _ SurfaceFactory = (*RasterFactory)(nil)

// NewRasterFactory creates a factory for rasters of the given size.
func NewRasterFactory(width, height int) *RasterFactory {
	return &RasterFactory{width: width, height: height, pairs: make(map[int]*Pair)}
}

func (f *RasterFactory) Acquire(slot int) *Pair {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := &Pair{
		Delaunay: render.NewRaster(f.width, f.height, nil),
		Voronoi:  render.NewRaster(f.width, f.height, nil),
	}
	f.pairs[slot] = p
	return p
}

func (f *RasterFactory) Release(slot int) {
	f.mu.Lock()
	delete(f.pairs, slot)
	f.mu.Unlock()
}

// Rasters returns the held rasters bottom to top: farthest slot first,
// Voronoi under Delaunay.
func (f *RasterFactory) Rasters() []*render.Raster {
	f.mu.Lock()
	defer f.mu.Unlock()
	slots := make([]int, 0, len(f.pairs))
	for s := range f.pairs {
		slots = append(slots, s)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(slots)))

	var out []*render.Raster
	for _, s := range slots {
		p := f.pairs[s]
		for _, surface := range []render.Surface{p.Voronoi, p.Delaunay} {
			if r, ok := surface.(*render.Raster); ok {
				out = append(out, r)
			}
		}
	}
	return out
}

// Export renders the store off-screen and writes the primary view, the
// primary view over its onion skin, and the 3D view as PNG files in dir.
// It returns the paths written.
func Export(store *app.Store, opts Options, dir string, width, height int) ([]string, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("export: bad size %dx%d", width, height)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	delaunay := render.NewRaster(width, height, nil)
	voronoi := render.NewRaster(width, height, nil)
	primary := NewDiagramView(store, delaunay, voronoi, opts)
	defer primary.Close()

	factory := NewRasterFactory(width, height)
	onion := NewOnionView(store, factory, opts)
	defer onion.Close()
	onion.SetEnabled(true)

	scene := render.NewRaster(width, height, colorutil.Background)
	threeD := NewThreeDView(store, geometry.NewSize(float64(width), float64(height)), opts)
	defer threeD.Close()
	threeD.Frame(scene)

	var paths []string
	path := filepath.Join(dir, PrimaryPNG)
	if err := render.Flatten(path, width, height, colorutil.Background, voronoi, delaunay); err != nil {
		return paths, err
	}
	paths = append(paths, path)

	path = filepath.Join(dir, OnionPNG)
	stack := append(factory.Rasters(), voronoi, delaunay)
	if err := render.Flatten(path, width, height, colorutil.Background, stack...); err != nil {
		return paths, err
	}
	paths = append(paths, path)

	path = filepath.Join(dir, ScenePNG)
	if err := scene.SavePNG(path); err != nil {
		return paths, err
	}
	paths = append(paths, path)

	app.Logger().Debug("exported snapshots", "dir", dir, "layers", store.Len(), "onion", len(stack)-2)
	return paths, nil
}
