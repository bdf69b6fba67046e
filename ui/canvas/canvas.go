// Package canvas provides the fyne widgets the editor draws on: a stacked
// 2D diagram canvas with onion-skin slots and a 3D viewport.
package canvas

import (
	"image/color"
	"sort"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"delaunay-layers/internal/render"
	"delaunay-layers/internal/views"
	"delaunay-layers/pkg/geometry"
)

// PointerHandler receives the primary view's gestures.
type PointerHandler interface {
	PointerDown(at geometry.Point2D)
	PointerMove(at geometry.Point2D)
	PointerUp()
	Cursor() views.Cursor
}

// DiagramCanvas stacks the onion-skin layers behind the Voronoi and
// Delaunay layers of the active layer and forwards mouse input.
type DiagramCanvas struct {
	widget.BaseWidget

	mu       sync.Mutex
	delaunay *Layer
	voronoi  *Layer
	onion    map[int]*views.Pair
	size     fyne.Size
	minSize  fyne.Size
	handler  PointerHandler
	onResize func(width, height float64)
	pressed  bool
}

var (
	_ desktop.Mouseable    = (*DiagramCanvas)(nil)
	_ desktop.Hoverable    = (*DiagramCanvas)(nil)
	_ desktop.Cursorable   = (*DiagramCanvas)(nil)
	_ fyne.Draggable       = (*DiagramCanvas)(nil)
	_ views.SurfaceFactory = (*DiagramCanvas)(nil)
)

// NewDiagramCanvas creates the canvas with the given initial size.
func NewDiagramCanvas(width, height int, background color.Color) *DiagramCanvas {
	dc := &DiagramCanvas{
		delaunay: NewLayer(width, height, nil),
		voronoi:  NewLayer(width, height, background),
		onion:    make(map[int]*views.Pair),
		size:     fyne.NewSize(float32(width), float32(height)),
		minSize:  fyne.NewSize(200, 200),
	}
	dc.ExtendBaseWidget(dc)
	return dc
}

// Delaunay returns the surface for points and triangulation.
func (dc *DiagramCanvas) Delaunay() render.Surface { return dc.delaunay }

// Voronoi returns the surface for the Voronoi cells. It is the bottom of
// the stack and carries the background.
func (dc *DiagramCanvas) Voronoi() render.Surface { return dc.voronoi }

// SetHandler installs the gesture receiver.
func (dc *DiagramCanvas) SetHandler(h PointerHandler) {
	dc.mu.Lock()
	dc.handler = h
	dc.mu.Unlock()
}

// OnResize registers a callback for size changes, in canvas units.
func (dc *DiagramCanvas) OnResize(callback func(width, height float64)) {
	dc.mu.Lock()
	dc.onResize = callback
	dc.mu.Unlock()
}

// Acquire creates the transparent surface pair for an onion slot.
func (dc *DiagramCanvas) Acquire(slot int) *views.Pair {
	dc.mu.Lock()
	w, h := int(dc.size.Width), int(dc.size.Height)
	d, v := NewLayer(w, h, nil), NewLayer(w, h, nil)
	dc.onion[slot] = &views.Pair{Delaunay: d, Voronoi: v}
	pair := dc.onion[slot]
	dc.mu.Unlock()

	for _, l := range []*Layer{d, v} {
		l.Object().Resize(dc.Size())
	}
	dc.Refresh()
	return pair
}

// Release drops an onion slot.
func (dc *DiagramCanvas) Release(slot int) {
	dc.mu.Lock()
	delete(dc.onion, slot)
	dc.mu.Unlock()
	dc.Refresh()
}

// Flush pushes every dirty layer to the screen.
func (dc *DiagramCanvas) Flush() {
	for _, l := range dc.layers() {
		l.Flush()
	}
}

// Snapshot returns every layer from bottom to top, for export.
func (dc *DiagramCanvas) Snapshot() []*render.Raster {
	layers := dc.layers()
	out := make([]*render.Raster, len(layers))
	for i, l := range layers {
		out[i] = l.Raster
	}
	return out
}

// layers returns the stack bottom to top: background Voronoi, the onion
// slots farthest first, then the active layer's Delaunay.
func (dc *DiagramCanvas) layers() []*Layer {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	slots := make([]int, 0, len(dc.onion))
	for s := range dc.onion {
		slots = append(slots, s)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(slots)))

	out := []*Layer{dc.voronoi}
	for _, s := range slots {
		p := dc.onion[s]
		if l, ok := p.Voronoi.(*Layer); ok {
			out = append(out, l)
		}
		if l, ok := p.Delaunay.(*Layer); ok {
			out = append(out, l)
		}
	}
	return append(out, dc.delaunay)
}

func (dc *DiagramCanvas) currentHandler() PointerHandler {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	return dc.handler
}

func (dc *DiagramCanvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	if h := dc.currentHandler(); h != nil {
		dc.pressed = true
		h.PointerDown(toPoint(ev.Position))
	}
}

func (dc *DiagramCanvas) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	dc.release()
}

func (dc *DiagramCanvas) MouseIn(ev *desktop.MouseEvent) {
	dc.MouseMoved(ev)
}

func (dc *DiagramCanvas) MouseMoved(ev *desktop.MouseEvent) {
	if h := dc.currentHandler(); h != nil {
		h.PointerMove(toPoint(ev.Position))
	}
}

// MouseOut ends a drag that leaves the canvas.
func (dc *DiagramCanvas) MouseOut() {
	dc.release()
}

func (dc *DiagramCanvas) Dragged(ev *fyne.DragEvent) {
	if h := dc.currentHandler(); h != nil {
		h.PointerMove(toPoint(ev.Position))
	}
}

func (dc *DiagramCanvas) DragEnd() {
	dc.release()
}

func (dc *DiagramCanvas) release() {
	if !dc.pressed {
		return
	}
	dc.pressed = false
	if h := dc.currentHandler(); h != nil {
		h.PointerUp()
	}
}

// Cursor shows a pointer over draggable points.
func (dc *DiagramCanvas) Cursor() desktop.Cursor {
	if h := dc.currentHandler(); h != nil && h.Cursor() == views.CursorPointer {
		return desktop.PointerCursor
	}
	return desktop.DefaultCursor
}

func (dc *DiagramCanvas) MinSize() fyne.Size {
	return dc.minSize
}

func (dc *DiagramCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &diagramCanvasRenderer{canvas: dc}
}

func toPoint(p fyne.Position) geometry.Point2D {
	return geometry.NewPoint2D(float64(p.X), float64(p.Y))
}

type diagramCanvasRenderer struct {
	canvas *DiagramCanvas
}

func (r *diagramCanvasRenderer) Layout(size fyne.Size) {
	dc := r.canvas
	for _, obj := range r.Objects() {
		obj.Move(fyne.NewPos(0, 0))
		obj.Resize(size)
	}

	if size.Width < 1 || size.Height < 1 {
		return
	}
	dc.mu.Lock()
	changed := size != dc.size
	dc.size = size
	callback := dc.onResize
	var onion []render.Surface
	for _, p := range dc.onion {
		onion = append(onion, p.Delaunay, p.Voronoi)
	}
	dc.mu.Unlock()

	if !changed {
		return
	}
	for _, s := range onion {
		s.Resize(float64(size.Width), float64(size.Height))
	}
	if callback != nil {
		callback(float64(size.Width), float64(size.Height))
	}
}

func (r *diagramCanvasRenderer) MinSize() fyne.Size {
	return r.canvas.MinSize()
}

// Refresh repaints without re-laying out: onion slots come and go while
// the onion view holds its lock, and a layout may call back into it.
func (r *diagramCanvasRenderer) Refresh() {
	for _, obj := range r.Objects() {
		obj.Refresh()
	}
}

func (r *diagramCanvasRenderer) Objects() []fyne.CanvasObject {
	layers := r.canvas.layers()
	objs := make([]fyne.CanvasObject, len(layers))
	for i, l := range layers {
		objs[i] = l.Object()
	}
	return objs
}

func (r *diagramCanvasRenderer) Destroy() {}
