package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delaunay-layers/internal/app"
	"delaunay-layers/pkg/geometry"
)

func rowNames(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestLayerListAddInsertsAtActive(t *testing.T) {
	s := app.NewStore()
	list := NewLayerList(s)
	s.AddLayer("B", app.Append)
	s.AddLayer("C", app.Append)
	layers := s.Layers()
	s.SetActiveLayer(layers[1].ID)

	added := list.Add()
	assert.Equal(t, "Layer 4", added.Name)
	assert.Equal(t, []string{"Layer 1", "Layer 4", "B", "C"}, rowNames(list.Rows()))
	assert.Equal(t, added.ID, s.ActiveID())

	rows := list.Rows()
	assert.True(t, rows[1].Active)
	assert.False(t, rows[2].Active)
}

func TestLayerListAddWithoutActive(t *testing.T) {
	s := app.NewStore()
	s.AddLayer("B", app.Append)
	s.SetActiveLayer(app.NoLayer)
	list := NewLayerList(s)

	list.Add()
	assert.Equal(t, []string{"Layer 3", "Layer 1", "B"}, rowNames(list.Rows()))
}

func TestLayerListRename(t *testing.T) {
	s := app.NewStore()
	list := NewLayerList(s)
	id := s.ActiveID()

	list.BeginRename(id)
	assert.True(t, list.IsEditing())
	list.FinishRename(id, "  Base  ")
	assert.False(t, list.IsEditing())
	l, _ := s.Layer(id)
	assert.Equal(t, "Base", l.Name)

	// Blank names restore the previous one.
	list.BeginRename(id)
	list.FinishRename(id, "   ")
	l, _ = s.Layer(id)
	assert.Equal(t, "Base", l.Name)
	assert.False(t, l.Editing)

	// No previous name: fall back to a default.
	s.ReplaceLayers([]app.Layer{{ID: id, Name: "", Editing: true}})
	list.FinishRename(id, "")
	l, _ = s.Layer(id)
	assert.Equal(t, "Layer 2", l.Name)

	list.FinishRename(999, "x")
	list.BeginRename(999)
	assert.False(t, list.IsEditing())
}

func TestLayerListSelectFinishesOtherRename(t *testing.T) {
	s := app.NewStore()
	list := NewLayerList(s)
	first := s.ActiveID()
	second := s.AddLayer("Second", app.Append)

	list.BeginRename(first)
	list.Select(second.ID)

	assert.False(t, list.IsEditing())
	assert.Equal(t, second.ID, s.ActiveID())
	l, _ := s.Layer(first)
	assert.Equal(t, "Layer 1", l.Name)

	// Selecting the layer being renamed keeps the rename going.
	list.BeginRename(second.ID)
	list.Select(second.ID)
	assert.True(t, list.IsEditing())
}

func TestLayerListReset(t *testing.T) {
	s := app.NewStore()
	list := NewLayerList(s)
	old := list.Add()
	s.UpdateLayerPoints(old.ID, []geometry.Point2D{{X: 1, Y: 2}})

	layer := list.Reset()
	rows := list.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Layer 1", rows[0].Name)
	assert.Zero(t, rows[0].Points)
	assert.True(t, rows[0].Active)
	assert.Equal(t, layer.ID, s.ActiveID())
	assert.Greater(t, int64(layer.ID), int64(old.ID), "ids are not reused")
}

func TestLayerListMoveRemoveZHeight(t *testing.T) {
	s := app.NewStore()
	list := NewLayerList(s)
	b := s.AddLayer("B", app.Append)

	list.Move(1, 0)
	assert.Equal(t, []string{"B", "Layer 1"}, rowNames(list.Rows()))

	list.SetZHeight(b.ID, 2.5)
	rows := list.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, 2.5, rows[0].ZHeight)

	list.Remove(b.ID)
	assert.Equal(t, []string{"Layer 1"}, rowNames(list.Rows()))
}
