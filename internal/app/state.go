// Package app holds the layer store shared by every view, together with
// logging, the frame loop and the GUI theme.
package app

import (
	"fmt"
	"sync"

	"delaunay-layers/internal/diagram"
	"delaunay-layers/pkg/geometry"
)

// LayerID identifies a layer. IDs are never reused within a store.
type LayerID int64

const (
	// NoLayer means "no layer", e.g. when nothing is active.
	NoLayer LayerID = 0
	// NoPoint is the DraggingPoint value of a layer that is not being dragged.
	NoPoint = -1
	// Append as an AddLayer index appends at the end.
	Append = -1
	// DefaultOnionDepth is the number of layers shown in the onion skin.
	DefaultOnionDepth = 2
)

// Layer is one editable point set.
type Layer struct {
	ID      LayerID            `json:"id"`
	Name    string             `json:"name"`
	ZHeight float64            `json:"zHeight"`
	Points  []geometry.Point2D `json:"points"`

	// DraggingPoint is the index in Points being dragged, or NoPoint.
	DraggingPoint int `json:"-"`

	// Rename state. At most one layer in a store is Editing.
	Editing      bool   `json:"-"`
	PreviousName string `json:"-"`
}

// Dragging reports whether a point of the layer is being dragged.
func (l Layer) Dragging() bool {
	return l.DraggingPoint != NoPoint
}

func (l Layer) clone() Layer {
	l.Points = geometry.ClonePoints(l.Points)
	return l
}

func cloneLayers(layers []Layer) []Layer {
	out := make([]Layer, len(layers))
	for i, l := range layers {
		out[i] = l.clone()
	}
	return out
}

// LayerPatch lists the fields UpdateLayer should change. Nil fields are left
// alone.
type LayerPatch struct {
	Name          *string
	ZHeight       *float64
	Editing       *bool
	DraggingPoint *int
	PreviousName  *string
}

// Ptr returns a pointer to v, for building patches.
func Ptr[T any](v T) *T {
	return &v
}

// Display selects which diagrams the 2D views draw.
type Display = diagram.Display

// EventType identifies what changed in the store.
type EventType int

const (
	EventLayersChanged EventType = iota
	EventActiveLayerChanged
	EventPointsChanged
	EventZHeightChanged
	EventDisplayChanged
	EventOnionDepthChanged
)

var eventNames = [...]string{
	EventLayersChanged:      "layers",
	EventActiveLayerChanged: "active",
	EventPointsChanged:      "points",
	EventZHeightChanged:     "zheight",
	EventDisplayChanged:     "display",
	EventOnionDepthChanged:  "onion-depth",
}

func (e EventType) String() string {
	if e >= 0 && int(e) < len(eventNames) {
		return eventNames[e]
	}
	return fmt.Sprintf("event(%d)", int(e))
}

// Event carries a snapshot of the state that changed. Which fields are set
// depends on Type:
//   - EventLayersChanged, EventZHeightChanged: Layers
//   - EventActiveLayerChanged: Active (nil when no layer is active)
//   - EventPointsChanged: Layer and Points
//   - EventDisplayChanged: Display
//   - EventOnionDepthChanged: OnionDepth
type Event struct {
	Type       EventType
	Layers     []Layer
	Active     *Layer
	Layer      LayerID
	Points     []geometry.Point2D
	Display    Display
	OnionDepth int
}

// Listener is called synchronously for every event it subscribed to.
type Listener func(Event)

type subscription struct {
	id       int
	listener Listener
}

// Store is the single source of truth for layers, the active layer, the
// display toggles and the onion depth. Every mutation publishes snapshot
// events to the listeners before returning. Listeners run outside the
// store lock and may call back into the store.
type Store struct {
	mu sync.RWMutex

	layers     []Layer
	active     LayerID
	nextID     LayerID
	display    Display
	onionDepth int

	listeners map[EventType][]subscription
	nextSub   int
}

// NewStore creates a store holding one active layer named "Layer 1".
func NewStore() *Store {
	s := &Store{
		nextID:     1,
		onionDepth: DefaultOnionDepth,
		listeners:  make(map[EventType][]subscription),
	}
	first := s.newLayerLocked("Layer 1")
	s.layers = append(s.layers, first)
	s.active = first.ID
	return s
}

// On registers listener for one event type. The returned function removes
// it; calling it more than once is harmless.
func (s *Store) On(event EventType, listener Listener) (unsubscribe func()) {
	return s.Subscribe(listener, event)
}

// Subscribe registers listener for each of the given event types.
func (s *Store) Subscribe(listener Listener, events ...EventType) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSub++
	id := s.nextSub
	for _, ev := range events {
		s.listeners[ev] = append(s.listeners[ev], subscription{id: id, listener: listener})
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for _, ev := range events {
				subs := s.listeners[ev]
				for i, sub := range subs {
					if sub.id == id {
						s.listeners[ev] = append(subs[:i:i], subs[i+1:]...)
						break
					}
				}
			}
		})
	}
}

// emit delivers events in order. Must be called without holding mu.
func (s *Store) emit(events ...Event) {
	for _, ev := range events {
		s.mu.RLock()
		subs := s.listeners[ev.Type]
		s.mu.RUnlock()

		for _, sub := range subs {
			sub.listener(ev)
		}
	}
}

func (s *Store) newLayerLocked(name string) Layer {
	id := s.nextID
	s.nextID++
	return Layer{
		ID:            id,
		Name:          name,
		Points:        []geometry.Point2D{},
		DraggingPoint: NoPoint,
	}
}

func (s *Store) indexLocked(id LayerID) int {
	if id == NoLayer {
		return -1
	}
	for i := range s.layers {
		if s.layers[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) layersEventLocked(t EventType) Event {
	return Event{Type: t, Layers: cloneLayers(s.layers)}
}

func (s *Store) activeEventLocked() Event {
	ev := Event{Type: EventActiveLayerChanged}
	if i := s.indexLocked(s.active); i >= 0 {
		l := s.layers[i].clone()
		ev.Active = &l
	}
	return ev
}

// AddLayer creates an empty layer and inserts it at index, or appends it
// when index is outside [0, Len()] (use Append). The new layer is not made
// active.
func (s *Store) AddLayer(name string, index int) Layer {
	s.mu.Lock()
	l := s.newLayerLocked(name)
	if index >= 0 && index <= len(s.layers) {
		s.layers = append(s.layers, Layer{})
		copy(s.layers[index+1:], s.layers[index:])
		s.layers[index] = l
	} else {
		s.layers = append(s.layers, l)
	}
	ev := s.layersEventLocked(EventLayersChanged)
	s.mu.Unlock()

	s.emit(ev)
	return l.clone()
}

// RemoveLayer deletes a layer. Removing the active layer activates the
// first remaining layer, or none.
func (s *Store) RemoveLayer(id LayerID) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		Logger().Debug("remove: unknown layer", "id", id)
		return
	}
	s.layers = append(s.layers[:i], s.layers[i+1:]...)
	events := []Event{s.layersEventLocked(EventLayersChanged)}
	if s.active == id {
		s.active = NoLayer
		if len(s.layers) > 0 {
			s.active = s.layers[0].ID
		}
		events = append(events, s.activeEventLocked())
	}
	s.mu.Unlock()

	s.emit(events...)
}

// ReorderLayers moves the layer at from so it ends up at to. Indices
// outside the collection are ignored.
func (s *Store) ReorderLayers(from, to int) {
	s.mu.Lock()
	n := len(s.layers)
	if from < 0 || from >= n || to < 0 || to >= n {
		s.mu.Unlock()
		Logger().Debug("reorder: index out of range", "from", from, "to", to, "len", n)
		return
	}
	l := s.layers[from]
	s.layers = append(s.layers[:from], s.layers[from+1:]...)
	s.layers = append(s.layers, Layer{})
	copy(s.layers[to+1:], s.layers[to:])
	s.layers[to] = l
	ev := s.layersEventLocked(EventLayersChanged)
	s.mu.Unlock()

	s.emit(ev)
}

// SetActiveLayer activates the layer with id, or no layer if it is unknown.
func (s *Store) SetActiveLayer(id LayerID) {
	s.mu.Lock()
	s.active = NoLayer
	if s.indexLocked(id) >= 0 {
		s.active = id
	}
	ev := s.activeEventLocked()
	s.mu.Unlock()

	s.emit(ev)
}

// ActiveLayer returns a snapshot of the active layer.
func (s *Store) ActiveLayer() (Layer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexLocked(s.active)
	if i < 0 {
		return Layer{}, false
	}
	return s.layers[i].clone(), true
}

// ActiveID returns the id of the active layer, or NoLayer.
func (s *Store) ActiveID() LayerID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// UpdateLayer merges patch into the layer with id. A DraggingPoint that is
// not NoPoint or a valid index is ignored. Setting Editing clears it on
// every other layer. A ZHeight patch additionally publishes
// EventZHeightChanged, even when id is unknown.
func (s *Store) UpdateLayer(id LayerID, patch LayerPatch) {
	s.mu.Lock()
	var events []Event
	if i := s.indexLocked(id); i >= 0 {
		l := &s.layers[i]
		if patch.Name != nil {
			l.Name = *patch.Name
		}
		if patch.ZHeight != nil {
			l.ZHeight = *patch.ZHeight
		}
		if patch.PreviousName != nil {
			l.PreviousName = *patch.PreviousName
		}
		if patch.DraggingPoint != nil {
			if dp := *patch.DraggingPoint; dp >= NoPoint && dp < len(l.Points) {
				l.DraggingPoint = dp
			} else {
				Logger().Debug("update: drag index out of range", "id", id, "index", dp)
			}
		}
		if patch.Editing != nil {
			if *patch.Editing {
				for j := range s.layers {
					s.layers[j].Editing = false
				}
			}
			l.Editing = *patch.Editing
		}
		events = append(events, s.layersEventLocked(EventLayersChanged))
	}
	if patch.ZHeight != nil {
		events = append(events, s.layersEventLocked(EventZHeightChanged))
	}
	s.mu.Unlock()

	s.emit(events...)
}

// UpdateLayerPoints replaces the points of a layer. A drag index that no
// longer fits is cleared.
func (s *Store) UpdateLayerPoints(id LayerID, points []geometry.Point2D) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		Logger().Debug("update points: unknown layer", "id", id)
		return
	}
	l := &s.layers[i]
	l.Points = geometry.ClonePoints(points)
	if l.DraggingPoint >= len(l.Points) {
		l.DraggingPoint = NoPoint
	}
	events := []Event{
		{Type: EventPointsChanged, Layer: id, Points: geometry.ClonePoints(points)},
		s.layersEventLocked(EventLayersChanged),
	}
	s.mu.Unlock()

	s.emit(events...)
}

// ReplaceLayers swaps in a whole new collection. IDs are kept; missing or
// duplicate IDs get fresh ones and later IDs are allocated past the
// largest. Invalid drag indices and extra editors are cleared. The active
// layer falls back to the first layer when it is no longer present.
func (s *Store) ReplaceLayers(layers []Layer) {
	s.mu.Lock()
	next := cloneLayers(layers)
	for _, l := range next {
		if l.ID >= s.nextID {
			s.nextID = l.ID + 1
		}
	}
	seen := make(map[LayerID]bool, len(next))
	editing := false
	for i := range next {
		l := &next[i]
		if l.ID <= NoLayer || seen[l.ID] {
			l.ID = s.nextID
			s.nextID++
		}
		seen[l.ID] = true
		if l.DraggingPoint < NoPoint || l.DraggingPoint >= len(l.Points) {
			l.DraggingPoint = NoPoint
		}
		if l.Editing && editing {
			l.Editing = false
		}
		editing = editing || l.Editing
	}
	s.layers = next

	events := []Event{s.layersEventLocked(EventLayersChanged)}
	if s.active != NoLayer && s.indexLocked(s.active) < 0 {
		s.active = NoLayer
		if len(s.layers) > 0 {
			s.active = s.layers[0].ID
		}
		events = append(events, s.activeEventLocked())
	}
	s.mu.Unlock()

	s.emit(events...)
}

// SetEditingLayer makes id the only layer being renamed. NoLayer (or an
// unknown id) stops every rename.
func (s *Store) SetEditingLayer(id LayerID) {
	s.mu.Lock()
	for i := range s.layers {
		s.layers[i].Editing = s.layers[i].ID == id
	}
	ev := s.layersEventLocked(EventLayersChanged)
	s.mu.Unlock()

	s.emit(ev)
}

// EditingLayer returns the layer being renamed, if any.
func (s *Store) EditingLayer() (Layer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.layers {
		if l.Editing {
			return l.clone(), true
		}
	}
	return Layer{}, false
}

// SetDisplaySettings replaces the display toggles.
func (s *Store) SetDisplaySettings(d Display) {
	s.mu.Lock()
	s.display = d
	s.mu.Unlock()

	s.emit(Event{Type: EventDisplayChanged, Display: d})
}

// DisplaySettings returns the display toggles.
func (s *Store) DisplaySettings() Display {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.display
}

// SetOnionDepth sets how many layers the onion skin shows. Negative values
// are clamped to zero.
func (s *Store) SetOnionDepth(n int) {
	if n < 0 {
		n = 0
	}
	s.mu.Lock()
	s.onionDepth = n
	s.mu.Unlock()

	s.emit(Event{Type: EventOnionDepthChanged, OnionDepth: n})
}

// OnionDepth returns the onion-skin depth.
func (s *Store) OnionDepth() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.onionDepth
}

// Layers returns a snapshot of every layer in display order.
func (s *Store) Layers() []Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneLayers(s.layers)
}

// Layer returns a snapshot of one layer.
func (s *Store) Layer(id LayerID) (Layer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexLocked(id)
	if i < 0 {
		return Layer{}, false
	}
	return s.layers[i].clone(), true
}

// Len returns the number of layers.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.layers)
}

// IndexOf returns the position of a layer, or -1.
func (s *Store) IndexOf(id LayerID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexLocked(id)
}
