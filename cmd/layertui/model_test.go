package main

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delaunay-layers/internal/app"
	"delaunay-layers/internal/config"
	"delaunay-layers/internal/views"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, cmd := m.Update(msg)
		m = next.(model)
		if cmd != nil {
			if res := cmd(); res != nil {
				if _, quit := res.(tea.QuitMsg); !quit {
					next, _ = m.Update(res)
					m = next.(model)
				}
			}
		}
	}
	return m
}

func newTestModel() (model, *app.Store) {
	store := app.NewStore()
	return newModel(store, config.Default(), "out", 1), store
}

func TestLayerCommands(t *testing.T) {
	m, store := newTestModel()

	m = press(t, m, key("a"))
	require.Equal(t, 2, store.Len())
	active, _ := store.ActiveLayer()
	assert.Equal(t, "Layer 2", active.Name)
	assert.Equal(t, 0, store.IndexOf(active.ID))

	m = press(t, m, key("J"))
	assert.Equal(t, 1, store.IndexOf(active.ID))

	m = press(t, m, key("k"))
	top := store.Layers()[0]
	assert.Equal(t, top.ID, store.ActiveID())

	m = press(t, m, key("+"), key("+"), key("-"))
	top, _ = store.Layer(top.ID)
	assert.Equal(t, 1.0, top.ZHeight)

	m = press(t, m, key("p"), key("p"), key("p"))
	top, _ = store.Layer(top.ID)
	assert.Len(t, top.Points, 3)
	assert.Contains(t, m.View(), "1 triangles")

	m = press(t, m, key("c"))
	top, _ = store.Layer(top.ID)
	assert.Empty(t, top.Points)

	m = press(t, m, key("d"))
	assert.Equal(t, 1, store.Len())

	m = press(t, m, key("a"), key("a"), key("X"))
	require.Equal(t, 1, store.Len())
	assert.Equal(t, "reset to Layer 1", m.status)
	active, _ = store.ActiveLayer()
	assert.Equal(t, "Layer 1", active.Name)
}

func TestRename(t *testing.T) {
	m, store := newTestModel()

	m = press(t, m, key("r"))
	assert.True(t, m.renaming)
	m = press(t, m,
		tea.KeyMsg{Type: tea.KeyBackspace},
		key("X"),
		tea.KeyMsg{Type: tea.KeySpace},
		key("y"),
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	assert.False(t, m.renaming)
	layer, _ := store.ActiveLayer()
	assert.Equal(t, "Layer X y", layer.Name)

	m = press(t, m, key("r"), tea.KeyMsg{Type: tea.KeyEscape})
	layer, _ = store.ActiveLayer()
	assert.Equal(t, "Layer X y", layer.Name, "escape restores the old name")
	assert.False(t, layer.Editing)
}

func TestTogglesAndDepth(t *testing.T) {
	m, store := newTestModel()
	require.Equal(t, app.Display{}, store.DisplaySettings())

	m = press(t, m, key("t"), key("3"))
	assert.Equal(t, app.Display{ShowDelaunay: true, ShowVoronoi: false}, store.DisplaySettings())
	assert.Equal(t, 3, store.OnionDepth())
	assert.Contains(t, m.View(), "delaunay on")
	assert.Contains(t, m.View(), "voronoi off")

	m = press(t, m, key("v"), key("t"))
	assert.Equal(t, app.Display{ShowDelaunay: false, ShowVoronoi: true}, store.DisplaySettings())
	assert.Contains(t, m.View(), "delaunay off")
}

func TestExportAndCopy(t *testing.T) {
	m, _ := newTestModel()
	var copied string
	m.export = func(_ *app.Store, _ views.Options, dir string, w, h int) ([]string, error) {
		return []string{dir + "/" + views.PrimaryPNG}, nil
	}
	m.copy = func(text string) error {
		copied = text
		return nil
	}

	m = press(t, m, key("y"))
	assert.Equal(t, "nothing exported yet", m.status)

	m = press(t, m, key("e"), key("y"))
	assert.Equal(t, "out/"+views.PrimaryPNG, copied)
	assert.Equal(t, "copied out/"+views.PrimaryPNG, m.status)

	m.export = func(*app.Store, views.Options, string, int, int) ([]string, error) {
		return nil, errors.New("disk full")
	}
	m = press(t, m, key("e"))
	assert.Equal(t, "export failed: disk full", m.status)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
