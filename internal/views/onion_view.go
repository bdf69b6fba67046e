package views

import (
	"sync"

	"delaunay-layers/internal/app"
	"delaunay-layers/internal/diagram"
	"delaunay-layers/internal/render"
)

// Pair is the surface pair of one onion-skin slot.
type Pair struct {
	Delaunay render.Surface
	Voronoi  render.Surface
}

// SurfaceFactory hands out onion-skin surfaces by slot; slot 0 is nearest
// the active layer. Acquire may return nil when the surface cannot be
// created yet.
type SurfaceFactory interface {
	Acquire(slot int) *Pair
	Release(slot int)
}

// VisibleLayers returns the layers shown in the onion skin: the run of at
// most depth layers strictly after the active one. It is empty when there
// is no active layer or it is not in layers.
func VisibleLayers(layers []app.Layer, active app.LayerID, depth int) []app.Layer {
	if active == app.NoLayer || depth <= 0 {
		return nil
	}
	for i, l := range layers {
		if l.ID != active {
			continue
		}
		end := i + 1 + depth
		if end > len(layers) {
			end = len(layers)
		}
		return layers[i+1 : end]
	}
	return nil
}

// OpacityFor returns the default opacity of onion slot i.
func OpacityFor(i int) float64 {
	return opacityFor(DefaultOnionOpacities, i)
}

func opacityFor(table []float64, i int) float64 {
	if i >= 0 && i < len(table) && table[i] > 0 {
		return table[i]
	}
	return fallbackOpacity
}

// OnionView draws the layers after the active one translucently, each on
// its own surface pair, fading with distance.
type OnionView struct {
	store   *app.Store
	factory SurfaceFactory
	opts    Options

	mu      sync.Mutex
	enabled bool
	slots   []*Pair
	unsub   func()
}

// NewOnionView binds a disabled onion-skin view to store.
func NewOnionView(store *app.Store, factory SurfaceFactory, opts Options) *OnionView {
	v := &OnionView{store: store, factory: factory, opts: opts}
	v.unsub = store.Subscribe(func(app.Event) { v.Redraw() },
		app.EventLayersChanged, app.EventActiveLayerChanged,
		app.EventDisplayChanged, app.EventOnionDepthChanged)
	return v
}

// Close stops listening to the store and releases every surface.
func (v *OnionView) Close() {
	v.unsub()
	v.mu.Lock()
	defer v.mu.Unlock()
	v.shrinkLocked(0)
}

// Enabled reports whether the onion skin is shown.
func (v *OnionView) Enabled() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.enabled
}

// Toggle flips the onion skin on or off.
func (v *OnionView) Toggle() {
	v.SetEnabled(!v.Enabled())
}

// SetEnabled shows the onion skin, or clears and releases every surface.
func (v *OnionView) SetEnabled(on bool) {
	v.mu.Lock()
	v.enabled = on
	if !on {
		v.shrinkLocked(0)
	}
	v.mu.Unlock()

	if on {
		v.Redraw()
	}
}

// VisibleLayers returns what the view currently shows.
func (v *OnionView) VisibleLayers() []app.Layer {
	if !v.Enabled() {
		return nil
	}
	return VisibleLayers(v.store.Layers(), v.store.ActiveID(), v.store.OnionDepth())
}

// OpacityFor returns the opacity of slot i.
func (v *OnionView) OpacityFor(i int) float64 {
	return opacityFor(v.opts.OnionOpacities, i)
}

// Slots returns how many surface pairs are held.
func (v *OnionView) Slots() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.slots)
}

// Redraw repaints every visible layer and releases the surfaces of slots
// that are no longer visible.
func (v *OnionView) Redraw() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.enabled {
		return
	}

	visible := VisibleLayers(v.store.Layers(), v.store.ActiveID(), v.store.OnionDepth())
	display := v.store.DisplaySettings()
	v.shrinkLocked(len(visible))

	for i, layer := range visible {
		pair := v.slotLocked(i)
		if pair == nil {
			app.Logger().Warn("onion surface not available yet", "slot", i, "layer", layer.Name)
			continue
		}
		pair.Delaunay.Clear()
		if pair.Voronoi != nil {
			pair.Voronoi.Clear()
		}
		d, err := diagram.Compute(layer.Points, pair.Delaunay.Size().Rect(), display)
		logDiagramError("onion", layer, err)

		style := diagram.OnionStyle(v.OpacityFor(i))
		style.PointRadius = v.opts.Style.PointRadius
		style.LineWidth = v.opts.Style.LineWidth
		diagram.Draw(pair.Delaunay, pair.Voronoi, layer.Points, d, style)
	}
}

// slotLocked returns the pair for slot i, acquiring it when missing.
func (v *OnionView) slotLocked(i int) *Pair {
	for len(v.slots) <= i {
		v.slots = append(v.slots, nil)
	}
	if p := v.slots[i]; p != nil {
		return p
	}
	p := v.factory.Acquire(i)
	if p == nil || p.Delaunay == nil {
		return nil
	}
	v.slots[i] = p
	return p
}

// shrinkLocked clears and releases every slot from n on.
func (v *OnionView) shrinkLocked(n int) {
	for i := n; i < len(v.slots); i++ {
		p := v.slots[i]
		if p == nil {
			continue
		}
		p.Delaunay.Clear()
		if p.Voronoi != nil {
			p.Voronoi.Clear()
		}
		v.factory.Release(i)
	}
	if n < len(v.slots) {
		v.slots = v.slots[:n]
	}
}
