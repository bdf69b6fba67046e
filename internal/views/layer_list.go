package views

import (
	"fmt"
	"strings"

	"delaunay-layers/internal/app"
)

// Row is one line of a layer list.
type Row struct {
	ID      app.LayerID
	Name    string
	ZHeight float64
	Points  int
	Active  bool
	Editing bool
}

// LayerList holds the layer-list behaviour shared by the front-ends:
// selecting, adding, removing, moving and renaming layers and editing
// their elevation.
type LayerList struct {
	store *app.Store
}

// NewLayerList returns a controller over store.
func NewLayerList(store *app.Store) *LayerList {
	return &LayerList{store: store}
}

// Rows returns the list in display order.
func (l *LayerList) Rows() []Row {
	active := l.store.ActiveID()
	layers := l.store.Layers()
	rows := make([]Row, len(layers))
	for i, layer := range layers {
		rows[i] = Row{
			ID:      layer.ID,
			Name:    layer.Name,
			ZHeight: layer.ZHeight,
			Points:  len(layer.Points),
			Active:  layer.ID == active,
			Editing: layer.Editing,
		}
	}
	return rows
}

// Select activates a layer, first finishing a rename in progress on any
// other layer.
func (l *LayerList) Select(id app.LayerID) {
	if editing, ok := l.store.EditingLayer(); ok && editing.ID != id {
		l.FinishRename(editing.ID, editing.Name)
	}
	l.store.SetActiveLayer(id)
}

// Add inserts "Layer N+1" at the active layer's position (or at the top
// when nothing is active) and selects it.
func (l *LayerList) Add() app.Layer {
	index := l.store.IndexOf(l.store.ActiveID())
	if index < 0 {
		index = 0
	}
	layer := l.store.AddLayer(l.nextName(), index)
	l.Select(layer.ID)
	return layer
}

// Remove deletes a layer.
func (l *LayerList) Remove(id app.LayerID) {
	l.store.RemoveLayer(id)
}

// Reset replaces every layer with a single empty "Layer 1" and selects it.
func (l *LayerList) Reset() app.Layer {
	l.store.ReplaceLayers([]app.Layer{{Name: "Layer 1", DraggingPoint: app.NoPoint}})
	layer := l.store.Layers()[0]
	l.store.SetActiveLayer(layer.ID)
	return layer
}

// Move moves the layer at from to position to.
func (l *LayerList) Move(from, to int) {
	l.store.ReorderLayers(from, to)
}

// BeginRename remembers the current name and makes id the layer being
// renamed.
func (l *LayerList) BeginRename(id app.LayerID) {
	layer, ok := l.store.Layer(id)
	if !ok {
		return
	}
	l.store.UpdateLayer(id, app.LayerPatch{PreviousName: app.Ptr(layer.Name)})
	l.store.SetEditingLayer(id)
}

// FinishRename ends a rename with the typed name. A blank name restores
// the name from before the rename, or a fresh default.
func (l *LayerList) FinishRename(id app.LayerID, name string) {
	layer, ok := l.store.Layer(id)
	if !ok {
		return
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = layer.PreviousName
	}
	if name == "" {
		name = l.nextName()
	}
	l.store.UpdateLayer(id, app.LayerPatch{Name: app.Ptr(name), Editing: app.Ptr(false)})
}

// SetZHeight changes a layer's elevation.
func (l *LayerList) SetZHeight(id app.LayerID, z float64) {
	l.store.UpdateLayer(id, app.LayerPatch{ZHeight: app.Ptr(z)})
}

// IsEditing reports whether any layer is being renamed.
func (l *LayerList) IsEditing() bool {
	_, ok := l.store.EditingLayer()
	return ok
}

func (l *LayerList) nextName() string {
	return fmt.Sprintf("Layer %d", l.store.Len()+1)
}
