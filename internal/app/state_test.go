package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delaunay-layers/pkg/geometry"
)

type eventLog struct {
	events []Event
}

func (l *eventLog) listen(s *Store) {
	s.Subscribe(func(ev Event) { l.events = append(l.events, ev) },
		EventLayersChanged, EventActiveLayerChanged, EventPointsChanged,
		EventZHeightChanged, EventDisplayChanged, EventOnionDepthChanged)
}

func (l *eventLog) types() []EventType {
	out := make([]EventType, len(l.events))
	for i, ev := range l.events {
		out[i] = ev.Type
	}
	return out
}

func names(layers []Layer) []string {
	out := make([]string, len(layers))
	for i, l := range layers {
		out[i] = l.Name
	}
	return out
}

func TestNewStore(t *testing.T) {
	s := NewStore()
	require.Equal(t, 1, s.Len())

	active, ok := s.ActiveLayer()
	require.True(t, ok)
	assert.Equal(t, "Layer 1", active.Name)
	assert.Equal(t, NoPoint, active.DraggingPoint)
	assert.NotNil(t, active.Points)
	assert.Equal(t, DefaultOnionDepth, s.OnionDepth())
	assert.Equal(t, Display{}, s.DisplaySettings())
}

func TestAddLayerIDsAndPlacement(t *testing.T) {
	s := NewStore()
	var log eventLog
	log.listen(s)

	b := s.AddLayer("B", Append)
	c := s.AddLayer("C", 0)
	d := s.AddLayer("D", 1)
	e := s.AddLayer("E", 99)

	assert.Equal(t, []string{"C", "D", "Layer 1", "B", "E"}, names(s.Layers()))

	seen := map[LayerID]bool{}
	for _, l := range s.Layers() {
		assert.False(t, seen[l.ID], "duplicate id %d", l.ID)
		seen[l.ID] = true
	}
	assert.Less(t, b.ID, c.ID)
	assert.Less(t, d.ID, e.ID)

	assert.Equal(t, []EventType{EventLayersChanged, EventLayersChanged, EventLayersChanged, EventLayersChanged}, log.types())
	assert.Len(t, log.events[3].Layers, 5)
}

func TestRemoveActiveReassigns(t *testing.T) {
	s := NewStore()
	first, _ := s.ActiveLayer()
	second := s.AddLayer("Second", Append)
	s.SetActiveLayer(second.ID)

	var log eventLog
	log.listen(s)

	s.RemoveLayer(second.ID)
	assert.Equal(t, []EventType{EventLayersChanged, EventActiveLayerChanged}, log.types())
	require.NotNil(t, log.events[1].Active)
	assert.Equal(t, first.ID, log.events[1].Active.ID)
	assert.Equal(t, first.ID, s.ActiveID())

	s.RemoveLayer(first.ID)
	_, ok := s.ActiveLayer()
	assert.False(t, ok)
	assert.Nil(t, log.events[len(log.events)-1].Active)
	assert.Equal(t, NoLayer, s.ActiveID())
}

func TestRemoveInactiveKeepsActive(t *testing.T) {
	s := NewStore()
	first, _ := s.ActiveLayer()
	other := s.AddLayer("Other", Append)

	var log eventLog
	log.listen(s)
	s.RemoveLayer(other.ID)
	s.RemoveLayer(12345)

	assert.Equal(t, []EventType{EventLayersChanged}, log.types())
	assert.Equal(t, first.ID, s.ActiveID())
}

func TestReorderLayers(t *testing.T) {
	s := NewStore()
	s.AddLayer("B", Append)
	s.AddLayer("C", Append)

	s.ReorderLayers(0, 2)
	assert.Equal(t, []string{"B", "C", "Layer 1"}, names(s.Layers()))
	s.ReorderLayers(2, 0)
	assert.Equal(t, []string{"Layer 1", "B", "C"}, names(s.Layers()))

	var log eventLog
	log.listen(s)
	s.ReorderLayers(-1, 0)
	s.ReorderLayers(0, 3)
	s.ReorderLayers(5, 1)
	assert.Empty(t, log.events)
	assert.Equal(t, []string{"Layer 1", "B", "C"}, names(s.Layers()))
}

func TestSetActiveLayerUnknownClears(t *testing.T) {
	s := NewStore()
	var log eventLog
	log.listen(s)

	s.SetActiveLayer(999)
	_, ok := s.ActiveLayer()
	assert.False(t, ok)
	require.Len(t, log.events, 1)
	assert.Nil(t, log.events[0].Active)
}

func TestUpdateLayerZHeight(t *testing.T) {
	s := NewStore()
	l, _ := s.ActiveLayer()
	var log eventLog
	log.listen(s)

	s.UpdateLayer(l.ID, LayerPatch{Name: Ptr("Ground")})
	assert.Equal(t, []EventType{EventLayersChanged}, log.types())

	s.UpdateLayer(l.ID, LayerPatch{ZHeight: Ptr(3.5)})
	assert.Equal(t, []EventType{EventLayersChanged, EventLayersChanged, EventZHeightChanged}, log.types())
	assert.Equal(t, 3.5, log.events[2].Layers[0].ZHeight)

	got, _ := s.Layer(l.ID)
	assert.Equal(t, "Ground", got.Name)
	assert.Equal(t, 3.5, got.ZHeight)
}

func TestUpdateUnknownLayer(t *testing.T) {
	s := NewStore()
	var log eventLog
	log.listen(s)

	s.UpdateLayer(999, LayerPatch{Name: Ptr("x")})
	assert.Empty(t, log.events)

	s.UpdateLayer(999, LayerPatch{ZHeight: Ptr(1.0)})
	assert.Equal(t, []EventType{EventZHeightChanged}, log.types())
	assert.Equal(t, 0.0, log.events[0].Layers[0].ZHeight)
}

func TestSingleEditor(t *testing.T) {
	s := NewStore()
	a, _ := s.ActiveLayer()
	b := s.AddLayer("B", Append)
	c := s.AddLayer("C", Append)

	countEditing := func() int {
		n := 0
		for _, l := range s.Layers() {
			if l.Editing {
				n++
			}
		}
		return n
	}

	s.SetEditingLayer(b.ID)
	assert.Equal(t, 1, countEditing())
	s.UpdateLayer(c.ID, LayerPatch{Editing: Ptr(true)})
	assert.Equal(t, 1, countEditing())
	editing, ok := s.EditingLayer()
	require.True(t, ok)
	assert.Equal(t, c.ID, editing.ID)

	s.SetEditingLayer(a.ID)
	editing, _ = s.EditingLayer()
	assert.Equal(t, a.ID, editing.ID)

	s.SetEditingLayer(NoLayer)
	assert.Zero(t, countEditing())
}

func TestDraggingPointValidity(t *testing.T) {
	s := NewStore()
	l, _ := s.ActiveLayer()
	s.UpdateLayerPoints(l.ID, []geometry.Point2D{{X: 1, Y: 1}, {X: 2, Y: 2}})

	s.UpdateLayer(l.ID, LayerPatch{DraggingPoint: Ptr(5)})
	got, _ := s.Layer(l.ID)
	assert.Equal(t, NoPoint, got.DraggingPoint)

	s.UpdateLayer(l.ID, LayerPatch{DraggingPoint: Ptr(1)})
	got, _ = s.Layer(l.ID)
	assert.Equal(t, 1, got.DraggingPoint)
	assert.True(t, got.Dragging())

	s.UpdateLayerPoints(l.ID, []geometry.Point2D{{X: 1, Y: 1}})
	got, _ = s.Layer(l.ID)
	assert.Equal(t, NoPoint, got.DraggingPoint)
}

func TestUpdateLayerPointsEvents(t *testing.T) {
	s := NewStore()
	l, _ := s.ActiveLayer()
	var log eventLog
	log.listen(s)

	in := []geometry.Point2D{{X: 10, Y: 20}}
	s.UpdateLayerPoints(l.ID, in)
	assert.Equal(t, []EventType{EventPointsChanged, EventLayersChanged}, log.types())
	assert.Equal(t, l.ID, log.events[0].Layer)
	assert.Equal(t, in, log.events[0].Points)

	s.UpdateLayerPoints(999, in)
	assert.Len(t, log.events, 2)
}

func TestSnapshotsAreCopies(t *testing.T) {
	s := NewStore()
	l, _ := s.ActiveLayer()
	in := []geometry.Point2D{{X: 1, Y: 1}}
	s.UpdateLayerPoints(l.ID, in)

	in[0].X = 50
	snap, _ := s.Layer(l.ID)
	assert.Equal(t, 1.0, snap.Points[0].X)

	snap.Points[0].X = 70
	s.Layers()[0].Points[0].X = 80
	again, _ := s.ActiveLayer()
	assert.Equal(t, 1.0, again.Points[0].X)
}

func TestReplaceLayers(t *testing.T) {
	s := NewStore()
	var log eventLog
	log.listen(s)

	s.ReplaceLayers([]Layer{
		{ID: 40, Name: "A", DraggingPoint: 3},
		{ID: 40, Name: "B", Editing: true},
		{Name: "C", Editing: true},
	})
	layers := s.Layers()
	require.Len(t, layers, 3)
	assert.Equal(t, LayerID(40), layers[0].ID)
	assert.Equal(t, NoPoint, layers[0].DraggingPoint)
	assert.Greater(t, layers[1].ID, LayerID(40))
	assert.NotEqual(t, layers[1].ID, layers[2].ID)
	assert.True(t, layers[1].Editing)
	assert.False(t, layers[2].Editing)

	// The original active layer is gone.
	assert.Equal(t, []EventType{EventLayersChanged, EventActiveLayerChanged}, log.types())
	assert.Equal(t, LayerID(40), s.ActiveID())

	next := s.AddLayer("D", Append)
	assert.Greater(t, next.ID, layers[2].ID)
}

func TestDisplayAndOnionDepth(t *testing.T) {
	s := NewStore()
	var log eventLog
	log.listen(s)

	s.SetDisplaySettings(Display{ShowVoronoi: true})
	s.SetOnionDepth(-3)
	s.SetOnionDepth(3)

	assert.Equal(t, Display{ShowVoronoi: true}, s.DisplaySettings())
	assert.Equal(t, 3, s.OnionDepth())
	require.Len(t, log.events, 3)
	assert.True(t, log.events[0].Display.ShowVoronoi)
	assert.Equal(t, 0, log.events[1].OnionDepth)
}

func TestUnsubscribe(t *testing.T) {
	s := NewStore()
	calls := 0
	off := s.On(EventLayersChanged, func(Event) { calls++ })
	s.AddLayer("x", Append)
	off()
	off()
	s.AddLayer("y", Append)
	assert.Equal(t, 1, calls)
}

func TestListenerMayReenter(t *testing.T) {
	s := NewStore()
	var seen []int
	s.On(EventLayersChanged, func(ev Event) {
		seen = append(seen, s.Len())
	})
	s.AddLayer("x", Append)
	assert.Equal(t, []int{2}, seen)
	assert.Equal(t, 1, s.IndexOf(s.Layers()[1].ID))
	assert.Equal(t, -1, s.IndexOf(NoLayer))
	assert.Equal(t, "zheight", EventZHeightChanged.String())
}
