package main

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"delaunay-layers/internal/app"
	"delaunay-layers/internal/config"
	"delaunay-layers/internal/diagram"
	"delaunay-layers/internal/views"
	"delaunay-layers/pkg/geometry"
)

const elevationStep = 1.0

var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#87CEFA")
	editFg    = lipgloss.Color("#FFA500")
	borderCol = lipgloss.Color("#243141")

	appStyle    = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	activeStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	editStyle   = lipgloss.NewStyle().Foreground(editFg).Underline(true)
	dimStyle    = lipgloss.NewStyle().Foreground(baseDimFg)
)

type exportedMsg struct {
	paths []string
	err   error
}

type copiedMsg struct {
	path string
	err  error
}

// exportFunc writes snapshots; swapped out in tests.
type exportFunc func(store *app.Store, opts views.Options, dir string, width, height int) ([]string, error)

// copyFunc puts text on the clipboard; swapped out in tests.
type copyFunc func(text string) error

type model struct {
	store  *app.Store
	list   *views.LayerList
	cfg    config.Config
	opts   views.Options
	outDir string
	rng    *rand.Rand
	export exportFunc
	copy   copyFunc

	width, height int
	renaming      bool
	nameBuf       string
	lastExport    string
	status        string
}

func newModel(store *app.Store, cfg config.Config, outDir string, seed int64) model {
	store.SetOnionDepth(cfg.Onion.Depth)
	return model{
		store:  store,
		list:   views.NewLayerList(store),
		cfg:    cfg,
		opts:   cfg.ViewOptions(),
		outDir: outDir,
		rng:    rand.New(rand.NewSource(seed)),
		export: views.Export,
		copy:   clipboard.WriteAll,
		status: "press ? for keys",
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
			return m, nil
		}
		if len(msg.paths) > 0 {
			m.lastExport = msg.paths[0]
		}
		m.status = fmt.Sprintf("exported %d images to %s", len(msg.paths), m.outDir)
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = "clipboard: " + msg.err.Error()
		} else {
			m.status = "copied " + msg.path
		}
		return m, nil

	case tea.KeyMsg:
		if m.renaming {
			return m.updateRename(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m model) updateRename(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	editing, ok := m.store.EditingLayer()
	if !ok {
		m.renaming = false
		return m, nil
	}
	switch msg.Type {
	case tea.KeyEnter:
		m.list.FinishRename(editing.ID, m.nameBuf)
		m.renaming = false
		m.status = "renamed"
	case tea.KeyEscape:
		m.list.FinishRename(editing.ID, "")
		m.renaming = false
		m.status = "rename cancelled"
	case tea.KeyBackspace:
		if r := []rune(m.nameBuf); len(r) > 0 {
			m.nameBuf = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.nameBuf += " "
	case tea.KeyRunes:
		m.nameBuf += string(msg.Runes)
	}
	return m, nil
}

func (m model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	active, hasActive := m.store.ActiveLayer()
	index := m.store.IndexOf(m.store.ActiveID())

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.status = "j/k select  J/K move  a add  d delete  X reset  r rename  +/- elevation  p point  c clear  t/v toggles  o/1-3 onion  e export  y copy"
	case "j", "down":
		m.selectAt(index + 1)
	case "k", "up":
		m.selectAt(index - 1)
	case "J":
		if hasActive {
			m.list.Move(index, index+1)
		}
	case "K":
		if hasActive {
			m.list.Move(index, index-1)
		}
	case "a":
		l := m.list.Add()
		m.status = "added " + l.Name
	case "d":
		if hasActive {
			m.list.Remove(active.ID)
			m.status = "removed " + active.Name
		}
	case "X":
		l := m.list.Reset()
		m.status = "reset to " + l.Name
	case "r":
		if hasActive {
			m.list.BeginRename(active.ID)
			m.renaming = true
			m.nameBuf = active.Name
		}
	case "+", "=":
		if hasActive {
			m.list.SetZHeight(active.ID, active.ZHeight+elevationStep)
		}
	case "-", "_":
		if hasActive {
			m.list.SetZHeight(active.ID, active.ZHeight-elevationStep)
		}
	case "p":
		if hasActive {
			bounds := geometry.NewRect(0, 0, float64(m.cfg.Canvas.Width), float64(m.cfg.Canvas.Height))
			pts := append(active.Points, geometry.RandomPoints(m.rng, 1, bounds, 20)...)
			m.store.UpdateLayerPoints(active.ID, pts)
		}
	case "c":
		if hasActive {
			m.store.UpdateLayerPoints(active.ID, nil)
		}
	case "t":
		d := m.store.DisplaySettings()
		d.ShowDelaunay = !d.ShowDelaunay
		m.store.SetDisplaySettings(d)
	case "v":
		d := m.store.DisplaySettings()
		d.ShowVoronoi = !d.ShowVoronoi
		m.store.SetDisplaySettings(d)
	case "1", "2", "3":
		m.store.SetOnionDepth(int(msg.Runes[0] - '0'))
	case "e":
		m.status = "exporting..."
		return m, m.exportCmd()
	case "y":
		if m.lastExport == "" {
			m.status = "nothing exported yet"
			return m, nil
		}
		return m, m.copyCmd(m.lastExport)
	}
	return m, nil
}

func (m model) selectAt(i int) {
	layers := m.store.Layers()
	if i < 0 || i >= len(layers) {
		return
	}
	m.list.Select(layers[i].ID)
}

func (m model) exportCmd() tea.Cmd {
	store, opts, dir := m.store, m.opts, m.outDir
	w, h := m.cfg.Canvas.Width, m.cfg.Canvas.Height
	export := m.export
	return func() tea.Msg {
		paths, err := export(store, opts, dir, w, h)
		return exportedMsg{paths: paths, err: err}
	}
}

func (m model) copyCmd(path string) tea.Cmd {
	cp := m.copy
	return func() tea.Msg {
		return copiedMsg{path: path, err: cp(path)}
	}
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Delaunay Layers"))
	b.WriteString("\n\n")

	var rows []string
	for _, r := range m.list.Rows() {
		line := fmt.Sprintf("%-16s z=%-6g %3d pts", r.Name, r.ZHeight, r.Points)
		switch {
		case r.Editing && m.renaming:
			line = editStyle.Render(fmt.Sprintf("%-16s", m.nameBuf+"_")) + dimStyle.Render(" (enter to keep, esc to cancel)")
		case r.Active:
			line = activeStyle.Render("> " + line)
		default:
			line = "  " + line
		}
		rows = append(rows, line)
	}
	if len(rows) == 0 {
		rows = append(rows, dimStyle.Render("no layers, press a"))
	}
	b.WriteString(boxStyle.Render(strings.Join(rows, "\n")))
	b.WriteString("\n")
	b.WriteString(m.summary())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(m.status))
	return appStyle.Render(b.String())
}

// summary describes the active layer's diagram and the view toggles.
func (m model) summary() string {
	display := m.store.DisplaySettings()
	toggles := fmt.Sprintf("delaunay %s  voronoi %s  onion depth %d",
		onOff(display.ShowDelaunay), onOff(display.ShowVoronoi), m.store.OnionDepth())

	layer, ok := m.store.ActiveLayer()
	if !ok {
		return toggles
	}
	bounds := geometry.NewRect(0, 0, float64(m.cfg.Canvas.Width), float64(m.cfg.Canvas.Height))
	d, err := diagram.Compute(layer.Points, bounds, display)
	stats := fmt.Sprintf("%s: %d triangles, %d cells", layer.Name, d.Triangles.Len(), len(d.Cells))
	if err != nil {
		stats += dimStyle.Render(" (" + err.Error() + ")")
	}
	return stats + "\n" + toggles
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
