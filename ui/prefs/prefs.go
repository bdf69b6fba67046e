// Package prefs remembers GUI settings between sessions in a small JSON
// key/value file.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"delaunay-layers/internal/app"
)

const prefsFile = "preferences.json"

// Keys used by the main window.
const (
	KeyShowDelaunay = "display.delaunay"
	KeyShowVoronoi  = "display.voronoi"
	KeyOnion        = "onion.enabled"
	KeyOnionDepth   = "onion.depth"
	KeyShow3D       = "view.3d"
	KeyWindowWidth  = "window.width"
	KeyWindowHeight = "window.height"
	KeyExportDir    = "export.dir"
)

// Prefs stores preferences as a key/value map.
type Prefs struct {
	mu     sync.RWMutex
	values map[string]interface{}
	path   string
}

// Load reads preferences from <user config dir>/delaunay-layers.
// A missing or unreadable file yields empty preferences.
func Load() *Prefs {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return LoadFrom(filepath.Join(configDir, "delaunay-layers"))
}

// LoadFrom reads preferences from dir.
func LoadFrom(dir string) *Prefs {
	p := &Prefs{
		values: make(map[string]interface{}),
		path:   filepath.Join(dir, prefsFile),
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		return p
	}
	if err := json.Unmarshal(data, &p.values); err != nil {
		app.Logger().Warn("ignoring corrupt preferences", "path", p.path, "err", err)
		p.values = make(map[string]interface{})
	}
	return p
}

// Path returns the backing file.
func (p *Prefs) Path() string { return p.path }

// Save writes preferences to disk.
func (p *Prefs) Save() error {
	p.mu.RLock()
	data, err := json.MarshalIndent(p.values, "", "  ")
	p.mu.RUnlock()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}

// FloatWithFallback returns a float64 preference, or fallback if not set.
func (p *Prefs) FloatWithFallback(key string, fallback float64) float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.values[key]; ok {
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		}
	}
	return fallback
}

// SetFloat stores a float64 preference.
func (p *Prefs) SetFloat(key string, val float64) {
	p.set(key, val)
}

// Int returns an integer preference, or fallback if not set. JSON numbers
// come back as float64 and are truncated.
func (p *Prefs) Int(key string, fallback int) int {
	return int(p.FloatWithFallback(key, float64(fallback)))
}

// SetInt stores an integer preference.
func (p *Prefs) SetInt(key string, val int) {
	p.set(key, val)
}

// String returns a string preference, or "" if not set.
func (p *Prefs) String(key string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if s, ok := p.values[key].(string); ok {
		return s
	}
	return ""
}

// SetString stores a string preference.
func (p *Prefs) SetString(key string, val string) {
	p.set(key, val)
}

// Bool returns a bool preference, or fallback if not set.
func (p *Prefs) Bool(key string, fallback bool) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if b, ok := p.values[key].(bool); ok {
		return b
	}
	return fallback
}

// SetBool stores a bool preference.
func (p *Prefs) SetBool(key string, val bool) {
	p.set(key, val)
}

func (p *Prefs) set(key string, val interface{}) {
	p.mu.Lock()
	p.values[key] = val
	p.mu.Unlock()
}

// Display returns the remembered display toggles.
func (p *Prefs) Display() app.Display {
	return app.Display{
		ShowDelaunay: p.Bool(KeyShowDelaunay, true),
		ShowVoronoi:  p.Bool(KeyShowVoronoi, true),
	}
}

// SetDisplay remembers the display toggles.
func (p *Prefs) SetDisplay(d app.Display) {
	p.SetBool(KeyShowDelaunay, d.ShowDelaunay)
	p.SetBool(KeyShowVoronoi, d.ShowVoronoi)
}

// WindowSize returns the remembered window size, or the fallback.
func (p *Prefs) WindowSize(fallbackW, fallbackH float64) (float64, float64) {
	return p.FloatWithFallback(KeyWindowWidth, fallbackW), p.FloatWithFallback(KeyWindowHeight, fallbackH)
}

// SetWindowSize remembers the window size.
func (p *Prefs) SetWindowSize(w, h float64) {
	p.SetFloat(KeyWindowWidth, w)
	p.SetFloat(KeyWindowHeight, h)
}
