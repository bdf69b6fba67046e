// Package panels provides the side panels of the main window.
package panels

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"delaunay-layers/internal/app"
	"delaunay-layers/internal/views"
)

// LayerPanel lists the layers and edits their order, names and elevation.
type LayerPanel struct {
	store     *app.Store
	list      *views.LayerList
	container fyne.CanvasObject

	mu   sync.Mutex
	rows []views.Row

	layers    *widget.List
	nameEntry *widget.Entry
	zEntry    *widget.Entry
	status    *widget.Label
	unsub     func()
}

// NewLayerPanel creates a layer panel bound to store.
func NewLayerPanel(store *app.Store) *LayerPanel {
	lp := &LayerPanel{
		store: store,
		list:  views.NewLayerList(store),
	}

	lp.layers = widget.NewList(
		func() int {
			lp.mu.Lock()
			defer lp.mu.Unlock()
			return len(lp.rows)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("Layer 00 (000 pts, z=000.0)")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			row, ok := lp.row(id)
			if !ok {
				return
			}
			label := obj.(*widget.Label)
			label.TextStyle = fyne.TextStyle{Bold: row.Active, Italic: row.Editing}
			label.SetText(rowLabel(row))
		},
	)
	lp.layers.OnSelected = func(id widget.ListItemID) {
		if row, ok := lp.row(id); ok && !row.Active {
			lp.list.Select(row.ID)
		}
	}

	lp.nameEntry = widget.NewEntry()
	lp.nameEntry.SetPlaceHolder("Layer name")
	lp.nameEntry.OnSubmitted = func(text string) { lp.finishRename(text) }
	lp.nameEntry.Disable()

	lp.zEntry = widget.NewEntry()
	lp.zEntry.SetPlaceHolder("Elevation")
	lp.zEntry.OnSubmitted = func(text string) { lp.setElevation(text) }

	lp.status = widget.NewLabel("")

	addBtn := widget.NewButton("Add", func() { lp.list.Add() })
	removeBtn := widget.NewButton("Remove", lp.removeActive)
	upBtn := widget.NewButton("Up", func() { lp.moveActive(-1) })
	downBtn := widget.NewButton("Down", func() { lp.moveActive(1) })
	renameBtn := widget.NewButton("Rename", lp.beginRename)

	controls := container.NewVBox(
		container.NewGridWithColumns(4, addBtn, removeBtn, upBtn, downBtn),
		widget.NewCard("Name", "", container.NewBorder(nil, nil, nil, renameBtn, lp.nameEntry)),
		widget.NewCard("Elevation", "", lp.zEntry),
		lp.status,
	)
	lp.container = container.NewBorder(nil, controls, nil, nil, lp.layers)

	lp.unsub = store.Subscribe(func(app.Event) { lp.Sync() },
		app.EventLayersChanged, app.EventActiveLayerChanged, app.EventZHeightChanged)
	lp.Sync()
	return lp
}

// Container returns the panel container.
func (lp *LayerPanel) Container() fyne.CanvasObject {
	return lp.container
}

// Close stops listening to the store.
func (lp *LayerPanel) Close() {
	lp.unsub()
}

// Sync reloads the rows from the store and refreshes the widgets.
func (lp *LayerPanel) Sync() {
	rows := lp.list.Rows()
	lp.mu.Lock()
	lp.rows = rows
	lp.mu.Unlock()

	lp.layers.Refresh()
	active := -1
	for i, r := range rows {
		if r.Active {
			active = i
		}
	}
	if active < 0 {
		lp.layers.UnselectAll()
		lp.zEntry.SetText("")
		lp.status.SetText("No active layer")
		return
	}
	lp.layers.Select(active)
	row := rows[active]
	if !row.Editing {
		lp.nameEntry.SetText(row.Name)
		lp.nameEntry.Disable()
	}
	lp.zEntry.SetText(strconv.FormatFloat(row.ZHeight, 'f', -1, 64))
	lp.status.SetText(fmt.Sprintf("%d layers", len(rows)))
}

func (lp *LayerPanel) row(i int) (views.Row, bool) {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	if i < 0 || i >= len(lp.rows) {
		return views.Row{}, false
	}
	return lp.rows[i], true
}

func (lp *LayerPanel) removeActive() {
	if id := lp.store.ActiveID(); id != app.NoLayer {
		lp.list.Remove(id)
	}
}

func (lp *LayerPanel) moveActive(delta int) {
	from := lp.store.IndexOf(lp.store.ActiveID())
	if from < 0 {
		return
	}
	lp.list.Move(from, from+delta)
}

func (lp *LayerPanel) beginRename() {
	id := lp.store.ActiveID()
	if id == app.NoLayer {
		return
	}
	lp.list.BeginRename(id)
	lp.nameEntry.Enable()
}

func (lp *LayerPanel) finishRename(text string) {
	editing, ok := lp.store.EditingLayer()
	if !ok {
		return
	}
	lp.list.FinishRename(editing.ID, text)
	lp.nameEntry.Disable()
}

func (lp *LayerPanel) setElevation(text string) {
	id := lp.store.ActiveID()
	if id == app.NoLayer {
		return
	}
	z, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		lp.status.SetText("Elevation must be a number")
		return
	}
	lp.list.SetZHeight(id, z)
}

func rowLabel(r views.Row) string {
	return fmt.Sprintf("%s (%d pts, z=%g)", r.Name, r.Points, r.ZHeight)
}
