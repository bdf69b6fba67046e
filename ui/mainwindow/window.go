// Package mainwindow provides the main application window.
package mainwindow

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"delaunay-layers/internal/app"
	"delaunay-layers/internal/config"
	"delaunay-layers/internal/render"
	"delaunay-layers/internal/version"
	"delaunay-layers/internal/views"
	"delaunay-layers/pkg/colorutil"
	"delaunay-layers/pkg/geometry"
	"delaunay-layers/ui/canvas"
	"delaunay-layers/ui/dialogs"
	"delaunay-layers/ui/panels"
	"delaunay-layers/ui/prefs"
)

// Export file names.
const (
	DiagramPNG = "diagram.png"
	ScenePNG   = "scene.png"
)

var onionDepths = []string{"1", "2", "3"}

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	store *app.Store
	prefs *prefs.Prefs
	cfg   config.Config

	diagram    *canvas.DiagramCanvas
	scene      *canvas.SceneCanvas
	layerPanel *panels.LayerPanel
	statusBar  *widget.Label
	viewArea   *fyne.Container

	diagramView *views.DiagramView
	onionView   *views.OnionView
	threeDView  *views.ThreeDView

	delaunayCheck *widget.Check
	voronoiCheck  *widget.Check
	onionCheck    *widget.Check
	depthSelect   *widget.Select
	threeDCheck   *widget.Check

	rng    *rand.Rand
	show3D atomic.Bool
	loop   *app.FrameLoop
	cancel context.CancelFunc
}

// New creates the main window and binds every view to store.
func New(fyneApp fyne.App, store *app.Store, p *prefs.Prefs, cfg config.Config) *MainWindow {
	win := fyneApp.NewWindow("Delaunay Layers")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		store:  store,
		prefs:  p,
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	mw.setupViews()
	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.restorePreferences()

	mw.loop = app.NewFrameLoop(cfg.Scene.FrameInterval.Duration, mw.onFrame)
	mw.SetCloseIntercept(mw.onClose)
	return mw
}

// setupViews creates the canvases and the views drawing on them.
func (mw *MainWindow) setupViews() {
	w, h := mw.cfg.Canvas.Width, mw.cfg.Canvas.Height
	opts := mw.cfg.ViewOptions()

	mw.diagram = canvas.NewDiagramCanvas(w, h, colorutil.Background)
	mw.diagramView = views.NewDiagramView(mw.store, mw.diagram.Delaunay(), mw.diagram.Voronoi(), opts)
	mw.onionView = views.NewOnionView(mw.store, mw.diagram, opts)
	mw.threeDView = views.NewThreeDView(mw.store, geometry.NewSize(float64(w), float64(h)), opts)

	mw.diagram.SetHandler(mw.diagramView)
	mw.diagram.OnResize(func(width, height float64) {
		mw.diagramView.Resize(width, height)
		mw.onionView.Redraw()
		mw.threeDView.Resize(width, height)
	})

	mw.scene = canvas.NewSceneCanvas(mw.threeDView, w, h, colorutil.Background)
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.layerPanel = panels.NewLayerPanel(mw.store)
	mw.statusBar = widget.NewLabel("Ready")
	mw.viewArea = container.NewGridWithColumns(1, mw.diagram)

	toolbar := mw.createToolbar()

	split := container.NewHSplit(
		mw.layerPanel.Container(),
		container.NewBorder(toolbar, nil, nil, nil, mw.viewArea),
	)
	split.SetOffset(0.22)

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil,
		nil,
		split,
	)
	mw.SetContent(content)
}

// createToolbar creates the display toggles and actions.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	mw.delaunayCheck = widget.NewCheck("Delaunay", func(on bool) {
		d := mw.store.DisplaySettings()
		if d.ShowDelaunay != on {
			d.ShowDelaunay = on
			mw.store.SetDisplaySettings(d)
		}
	})
	mw.voronoiCheck = widget.NewCheck("Voronoi", func(on bool) {
		d := mw.store.DisplaySettings()
		if d.ShowVoronoi != on {
			d.ShowVoronoi = on
			mw.store.SetDisplaySettings(d)
		}
	})
	mw.onionCheck = widget.NewCheck("Onion", func(on bool) {
		mw.onionView.SetEnabled(on)
		mw.updateStatus(onOff("Onion skin", on))
	})
	mw.depthSelect = widget.NewSelect(onionDepths, func(s string) {
		if n, err := strconv.Atoi(s); err == nil && n != mw.store.OnionDepth() {
			mw.store.SetOnionDepth(n)
		}
	})
	mw.threeDCheck = widget.NewCheck("3D", mw.setShow3D)

	clearBtn := widget.NewButton("Clear Points", mw.onClearPoints)
	exportBtn := widget.NewButton("Export...", mw.onExport)

	return container.NewHBox(
		mw.delaunayCheck,
		mw.voronoiCheck,
		widget.NewSeparator(),
		mw.onionCheck,
		widget.NewLabel("Depth:"),
		mw.depthSelect,
		widget.NewSeparator(),
		mw.threeDCheck,
		widget.NewSeparator(),
		clearBtn,
		exportBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Export PNG...", mw.onExport),
		fyne.NewMenuItem("Save Settings As...", mw.onSaveConfig),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Add Layer", func() { views.NewLayerList(mw.store).Add() }),
		fyne.NewMenuItem("Layer Properties...", mw.onLayerProperties),
		fyne.NewMenuItem("Clear Points", mw.onClearPoints),
		fyne.NewMenuItem("Reset Layers...", mw.onResetLayers),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Toggle Delaunay", func() { mw.delaunayCheck.SetChecked(!mw.delaunayCheck.Checked) }),
		fyne.NewMenuItem("Toggle Voronoi", func() { mw.voronoiCheck.SetChecked(!mw.voronoiCheck.Checked) }),
		fyne.NewMenuItem("Toggle Onion Skin", func() { mw.onionCheck.SetChecked(!mw.onionCheck.Checked) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Toggle 3D View", func() { mw.threeDCheck.SetChecked(!mw.threeDCheck.Checked) }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
}

// setupEventHandlers keeps the toolbar in step with the store.
func (mw *MainWindow) setupEventHandlers() {
	mw.store.On(app.EventDisplayChanged, func(ev app.Event) {
		mw.delaunayCheck.SetChecked(ev.Display.ShowDelaunay)
		mw.voronoiCheck.SetChecked(ev.Display.ShowVoronoi)
	})

	mw.store.On(app.EventOnionDepthChanged, func(ev app.Event) {
		mw.depthSelect.SetSelected(strconv.Itoa(ev.OnionDepth))
		mw.updateStatus(fmt.Sprintf("Onion depth %d", ev.OnionDepth))
	})

	mw.store.On(app.EventPointsChanged, func(ev app.Event) {
		if layer, ok := mw.store.Layer(ev.Layer); ok {
			mw.updateStatus(fmt.Sprintf("%s: %d points", layer.Name, len(ev.Points)))
		}
	})
}

// restorePreferences applies the settings remembered from the last
// session.
func (mw *MainWindow) restorePreferences() {
	mw.store.SetDisplaySettings(mw.prefs.Display())
	mw.store.SetOnionDepth(mw.prefs.Int(prefs.KeyOnionDepth, mw.cfg.Onion.Depth))
	mw.onionCheck.SetChecked(mw.prefs.Bool(prefs.KeyOnion, false))
	mw.threeDCheck.SetChecked(mw.prefs.Bool(prefs.KeyShow3D, false))

	w, h := mw.prefs.WindowSize(float64(mw.cfg.Canvas.Width)+320, float64(mw.cfg.Canvas.Height)+80)
	mw.Resize(fyne.NewSize(float32(w), float32(h)))
}

// SavePreferences writes the current settings to disk.
func (mw *MainWindow) SavePreferences() {
	mw.prefs.SetDisplay(mw.store.DisplaySettings())
	mw.prefs.SetInt(prefs.KeyOnionDepth, mw.store.OnionDepth())
	mw.prefs.SetBool(prefs.KeyOnion, mw.onionView.Enabled())
	mw.prefs.SetBool(prefs.KeyShow3D, mw.show3D.Load())
	size := mw.Canvas().Size()
	mw.prefs.SetWindowSize(float64(size.Width), float64(size.Height))
	if err := mw.prefs.Save(); err != nil {
		app.Logger().Warn("failed to save preferences", "path", mw.prefs.Path(), "err", err)
	}
}

// ShowAndRun starts the frame loop and runs the application.
func (mw *MainWindow) ShowAndRun() {
	ctx, cancel := context.WithCancel(context.Background())
	mw.cancel = cancel
	mw.loop.Start(ctx)
	mw.Window.ShowAndRun()
}

func (mw *MainWindow) onFrame(time.Time) {
	mw.diagram.Flush()
	if mw.show3D.Load() {
		mw.scene.Frame()
	}
}

func (mw *MainWindow) onClose() {
	mw.SavePreferences()
	if mw.cancel != nil {
		mw.cancel()
	}
	mw.loop.Stop()
	mw.layerPanel.Close()
	mw.diagramView.Close()
	mw.onionView.Close()
	mw.threeDView.Close()
	mw.Close()
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) setShow3D(on bool) {
	mw.show3D.Store(on)
	if on {
		mw.viewArea.Objects = []fyne.CanvasObject{mw.diagram, mw.scene}
		mw.viewArea.Layout = layout.NewGridLayoutWithColumns(2)
	} else {
		mw.viewArea.Objects = []fyne.CanvasObject{mw.diagram}
		mw.viewArea.Layout = layout.NewGridLayoutWithColumns(1)
	}
	mw.viewArea.Refresh()
	mw.updateStatus(onOff("3D view", on))
}

func (mw *MainWindow) onLayerProperties() {
	id := mw.store.ActiveID()
	if id == app.NoLayer {
		mw.updateStatus("No active layer")
		return
	}
	bounds := mw.diagram.Delaunay().Size().Rect()
	dialogs.NewLayerDialog(mw.store, id, bounds, mw.rng, mw.Window).Show()
}

func (mw *MainWindow) onClearPoints() {
	mw.diagramView.ClearPoints()
}

func (mw *MainWindow) onResetLayers() {
	dialog.ShowConfirm("Reset Layers", "Remove every layer and start over with an empty one?", func(ok bool) {
		if ok {
			views.NewLayerList(mw.store).Reset()
		}
	}, mw.Window)
}

func (mw *MainWindow) onExport() {
	dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if dir == nil {
			return
		}
		paths, err := mw.ExportTo(dir.Path())
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(prefs.KeyExportDir, dir.Path())
		mw.updateStatus(fmt.Sprintf("Exported %d images to %s", len(paths), dir.Path()))
	}, mw.Window)
}

// ExportTo writes the 2D stack and, when shown, the 3D view as PNG files
// in dir.
func (mw *MainWindow) ExportTo(dir string) ([]string, error) {
	size := mw.diagram.Delaunay().Size()
	path := filepath.Join(dir, DiagramPNG)
	err := render.Flatten(path, int(size.Width), int(size.Height), colorutil.Background, mw.diagram.Snapshot()...)
	if err != nil {
		return nil, err
	}
	paths := []string{path}

	if mw.show3D.Load() {
		path = filepath.Join(dir, ScenePNG)
		if err := mw.scene.Surface().SavePNG(path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (mw *MainWindow) onSaveConfig() {
	dialog.ShowFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil || w == nil {
			return
		}
		path := w.URI().Path()
		w.Close()
		if err := config.Save(path, mw.cfg); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Settings saved to " + path)
	}, mw.Window)
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Delaunay Layers",
		fmt.Sprintf("Delaunay Layers v%s\n\n"+
			"Stacked Delaunay and Voronoi sketches with a 3D preview.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}

func onOff(what string, on bool) string {
	if on {
		return what + " on"
	}
	return what + " off"
}
