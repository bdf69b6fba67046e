package canvas

import (
	"image"
	"image/color"
	"sync/atomic"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"

	"delaunay-layers/internal/render"
	"delaunay-layers/pkg/geometry"
)

// Layer is a render surface shown as a fyne raster. Drawing only marks it
// dirty; Flush pushes the pixels to the screen, normally once per frame.
type Layer struct {
	*render.Raster
	raster *fynecanvas.Raster
	dirty  atomic.Bool
}

var (
	_ render.Surface = (*Layer)(nil)
	_ render.Labeler = (*Layer)(nil)
)

// NewLayer creates a layer of the given size. A nil background is
// transparent, so layers can be stacked.
func NewLayer(width, height int, background color.Color) *Layer {
	l := &Layer{Raster: render.NewRaster(width, height, background)}
	l.raster = fynecanvas.NewRaster(func(w, h int) image.Image {
		return l.Raster.Image()
	})
	l.raster.ScaleMode = fynecanvas.ImageScaleSmooth
	l.dirty.Store(true)
	return l
}

// Object returns the canvas object to place in a container.
func (l *Layer) Object() fyne.CanvasObject {
	return l.raster
}

func (l *Layer) Resize(width, height float64) {
	l.Raster.Resize(width, height)
	l.dirty.Store(true)
}

func (l *Layer) Clear() {
	l.Raster.Clear()
	l.dirty.Store(true)
}

func (l *Layer) FillCircle(center geometry.Point2D, radius float64, c color.Color) {
	l.Raster.FillCircle(center, radius, c)
	l.dirty.Store(true)
}

func (l *Layer) StrokePath(path render.Path, c color.Color, width float64) {
	l.Raster.StrokePath(path, c, width)
	l.dirty.Store(true)
}

func (l *Layer) Label(at geometry.Point2D, text string, c color.Color) {
	l.Raster.Label(at, text, c)
	l.dirty.Store(true)
}

// Dirty reports whether the layer changed since the last Flush.
func (l *Layer) Dirty() bool {
	return l.dirty.Load()
}

// Flush refreshes the raster if anything was drawn since the last call.
func (l *Layer) Flush() bool {
	if !l.dirty.CompareAndSwap(true, false) {
		return false
	}
	l.raster.Refresh()
	return true
}
