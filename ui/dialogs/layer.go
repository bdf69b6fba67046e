// Package dialogs provides application dialogs.
package dialogs

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"delaunay-layers/internal/app"
	"delaunay-layers/internal/views"
	"delaunay-layers/pkg/geometry"
)

// MaxRandomPoints caps the point generator.
const MaxRandomPoints = 500

// pointMargin keeps generated points away from the canvas edge.
const pointMargin = 20

// LayerDialog edits one layer's name and elevation, and can fill it with
// random points.
type LayerDialog struct {
	store  *app.Store
	list   *views.LayerList
	id     app.LayerID
	bounds geometry.Rect
	rng    *rand.Rand
	window fyne.Window

	nameEntry   *widget.Entry
	zEntry      *widget.Entry
	pointsEntry *widget.Entry
}

// NewLayerDialog creates a dialog for layer id. bounds is the area random
// points are drawn from.
func NewLayerDialog(store *app.Store, id app.LayerID, bounds geometry.Rect, rng *rand.Rand, window fyne.Window) *LayerDialog {
	return &LayerDialog{
		store:  store,
		list:   views.NewLayerList(store),
		id:     id,
		bounds: bounds,
		rng:    rng,
		window: window,
	}
}

// Show displays the dialog.
func (d *LayerDialog) Show() {
	layer, ok := d.store.Layer(d.id)
	if !ok {
		return
	}
	content := d.createContent(layer)

	dlg := dialog.NewCustomConfirm(
		"Layer: "+layer.Name,
		"Apply",
		"Cancel",
		content,
		func(apply bool) {
			if !apply {
				return
			}
			if err := d.Apply(); err != nil {
				dialog.ShowError(err, d.window)
			}
		},
		d.window,
	)
	dlg.Resize(fyne.NewSize(360, 240))
	dlg.Show()
}

func (d *LayerDialog) createContent(layer app.Layer) fyne.CanvasObject {
	d.nameEntry = widget.NewEntry()
	d.nameEntry.SetText(layer.Name)

	d.zEntry = widget.NewEntry()
	d.zEntry.SetText(strconv.FormatFloat(layer.ZHeight, 'f', -1, 64))

	d.pointsEntry = widget.NewEntry()
	d.pointsEntry.SetPlaceHolder("0 keeps the current points")

	return widget.NewForm(
		widget.NewFormItem("Name", d.nameEntry),
		widget.NewFormItem("Elevation", d.zEntry),
		widget.NewFormItem("Random points", d.pointsEntry),
	)
}

// Apply validates the form and writes it to the store. Nothing is written
// when any field is invalid.
func (d *LayerDialog) Apply() error {
	if _, ok := d.store.Layer(d.id); !ok {
		return fmt.Errorf("layer %d no longer exists", d.id)
	}
	z, err := strconv.ParseFloat(strings.TrimSpace(d.zEntry.Text), 64)
	if err != nil {
		return errors.New("elevation must be a number")
	}
	n := 0
	if s := strings.TrimSpace(d.pointsEntry.Text); s != "" {
		n, err = strconv.Atoi(s)
		if err != nil || n < 0 || n > MaxRandomPoints {
			return fmt.Errorf("random points must be between 0 and %d", MaxRandomPoints)
		}
	}

	d.list.BeginRename(d.id)
	d.list.FinishRename(d.id, d.nameEntry.Text)
	d.list.SetZHeight(d.id, z)
	if n > 0 {
		d.store.UpdateLayerPoints(d.id, geometry.RandomPoints(d.rng, n, d.bounds, pointMargin))
	}
	return nil
}
