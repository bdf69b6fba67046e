package views

import (
	"sync"

	"delaunay-layers/internal/app"
	"delaunay-layers/internal/diagram"
	"delaunay-layers/internal/render"
	"delaunay-layers/pkg/geometry"
)

// Cursor is the pointer shape the primary view asks for.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer        // over a point: it can be dragged
)

// DiagramView draws the active layer on two surfaces, points and
// triangulation on one and Voronoi cells on the other, and turns pointer
// gestures into store commands: press on empty space adds a point, press
// on a point starts dragging it, release ends the drag.
type DiagramView struct {
	store    *app.Store
	delaunay render.Surface
	voronoi  render.Surface
	opts     Options

	mu     sync.Mutex
	cursor Cursor
	unsub  func()
}

// NewDiagramView binds the primary view to store. voronoi may be nil to
// draw everything on one surface.
func NewDiagramView(store *app.Store, delaunay, voronoi render.Surface, opts Options) *DiagramView {
	v := &DiagramView{store: store, delaunay: delaunay, voronoi: voronoi, opts: opts}
	redraw := store.Subscribe(func(app.Event) { v.Redraw() },
		app.EventActiveLayerChanged, app.EventLayersChanged, app.EventDisplayChanged)
	endDrags := store.On(app.EventActiveLayerChanged, v.endInactiveDrags)
	v.unsub = func() {
		redraw()
		endDrags()
	}
	v.Redraw()
	return v
}

// Close stops listening to the store.
func (v *DiagramView) Close() {
	v.unsub()
}

// endInactiveDrags drops the drag of any layer that is no longer active,
// so hovering over it later does not move a point.
func (v *DiagramView) endInactiveDrags(ev app.Event) {
	active := app.NoLayer
	if ev.Active != nil {
		active = ev.Active.ID
	}
	for _, l := range v.store.Layers() {
		if l.ID != active && l.Dragging() {
			v.store.UpdateLayer(l.ID, app.LayerPatch{DraggingPoint: app.Ptr(app.NoPoint)})
		}
	}
}

// Redraw repaints both surfaces from the current active layer.
func (v *DiagramView) Redraw() {
	v.delaunay.Clear()
	if v.voronoi != nil {
		v.voronoi.Clear()
	}
	layer, ok := v.store.ActiveLayer()
	if !ok {
		return
	}
	bounds := v.delaunay.Size().Rect()
	d, err := diagram.Compute(layer.Points, bounds, v.store.DisplaySettings())
	logDiagramError("primary", layer, err)
	diagram.Draw(v.delaunay, v.voronoi, layer.Points, d, v.opts.Style)
}

// Resize resizes both surfaces and repaints. The Voronoi clip follows the
// new size.
func (v *DiagramView) Resize(width, height float64) {
	v.delaunay.Resize(width, height)
	if v.voronoi != nil {
		v.voronoi.Resize(width, height)
	}
	v.Redraw()
}

// Cursor returns the cursor the view wants shown.
func (v *DiagramView) Cursor() Cursor {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cursor
}

func (v *DiagramView) setCursor(c Cursor) {
	v.mu.Lock()
	v.cursor = c
	v.mu.Unlock()
}

// PointerDown handles a primary-button press at a surface position.
func (v *DiagramView) PointerDown(at geometry.Point2D) {
	layer, ok := v.store.ActiveLayer()
	if !ok {
		return
	}
	if hit := diagram.HitTest(layer.Points, at, v.opts.HitRadius); hit >= 0 {
		v.setCursor(CursorPointer)
		v.store.UpdateLayer(layer.ID, app.LayerPatch{DraggingPoint: app.Ptr(hit)})
		return
	}
	v.setCursor(CursorDefault)
	v.store.UpdateLayerPoints(layer.ID, append(layer.Points, at))
}

// PointerMove moves the dragged point, or updates the hover cursor when
// nothing is being dragged.
func (v *DiagramView) PointerMove(at geometry.Point2D) {
	layer, ok := v.store.ActiveLayer()
	if !ok {
		return
	}
	if layer.Dragging() {
		layer.Points[layer.DraggingPoint] = at
		v.store.UpdateLayerPoints(layer.ID, layer.Points)
		return
	}
	if diagram.HitTest(layer.Points, at, v.opts.HitRadius) >= 0 {
		v.setCursor(CursorPointer)
	} else {
		v.setCursor(CursorDefault)
	}
}

// PointerUp ends a drag. The point stays where the last move put it.
func (v *DiagramView) PointerUp() {
	v.setCursor(CursorDefault)
	layer, ok := v.store.ActiveLayer()
	if !ok || !layer.Dragging() {
		return
	}
	v.store.UpdateLayer(layer.ID, app.LayerPatch{DraggingPoint: app.Ptr(app.NoPoint)})
}

// ClearPoints deletes every point of the active layer.
func (v *DiagramView) ClearPoints() {
	layer, ok := v.store.ActiveLayer()
	if !ok {
		return
	}
	v.store.UpdateLayerPoints(layer.ID, nil)
}
