package canvas

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"delaunay-layers/internal/render"
)

const (
	// orbitSpeed is radians of rotation per canvas unit dragged.
	orbitSpeed = 0.01
	zoomStep   = 1.1
)

// SceneViewer is the 3D view the scene canvas drives.
type SceneViewer interface {
	SetViewport(width, height float64)
	Orbit(dAzimuth, dPolar float64)
	Zoom(factor float64)
	Frame(surface render.Surface)
}

// SceneCanvas shows the 3D view. Drag orbits, the wheel zooms; there is
// no pan.
type SceneCanvas struct {
	widget.BaseWidget
	layer  *Layer
	viewer SceneViewer
}

// NewSceneCanvas creates a 3D viewport of the given size.
func NewSceneCanvas(viewer SceneViewer, width, height int, background color.Color) *SceneCanvas {
	sc := &SceneCanvas{layer: NewLayer(width, height, background), viewer: viewer}
	viewer.SetViewport(float64(width), float64(height))
	sc.ExtendBaseWidget(sc)
	return sc
}

// Surface returns the raster the scene is rendered into.
func (sc *SceneCanvas) Surface() *Layer {
	return sc.layer
}

// Frame advances the camera, renders and flushes. Call it from the frame
// loop.
func (sc *SceneCanvas) Frame() {
	sc.viewer.Frame(sc.layer)
	sc.layer.Flush()
}

func (sc *SceneCanvas) Dragged(ev *fyne.DragEvent) {
	sc.viewer.Orbit(-float64(ev.Dragged.DX)*orbitSpeed, -float64(ev.Dragged.DY)*orbitSpeed)
}

func (sc *SceneCanvas) DragEnd() {}

func (sc *SceneCanvas) Scrolled(ev *fyne.ScrollEvent) {
	switch {
	case ev.Scrolled.DY > 0:
		sc.viewer.Zoom(1 / zoomStep)
	case ev.Scrolled.DY < 0:
		sc.viewer.Zoom(zoomStep)
	}
}

func (sc *SceneCanvas) MinSize() fyne.Size {
	return fyne.NewSize(200, 200)
}

func (sc *SceneCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &sceneCanvasRenderer{canvas: sc}
}

type sceneCanvasRenderer struct {
	canvas *SceneCanvas
	last   fyne.Size
}

func (r *sceneCanvasRenderer) Layout(size fyne.Size) {
	obj := r.canvas.layer.Object()
	obj.Move(fyne.NewPos(0, 0))
	obj.Resize(size)
	if size == r.last || size.Width < 1 || size.Height < 1 {
		return
	}
	r.last = size
	w, h := math.Round(float64(size.Width)), math.Round(float64(size.Height))
	r.canvas.layer.Resize(w, h)
	r.canvas.viewer.SetViewport(w, h)
}

func (r *sceneCanvasRenderer) MinSize() fyne.Size {
	return r.canvas.MinSize()
}

func (r *sceneCanvasRenderer) Refresh() {
	r.canvas.layer.Object().Refresh()
}

func (r *sceneCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.layer.Object()}
}

func (r *sceneCanvasRenderer) Destroy() {}
