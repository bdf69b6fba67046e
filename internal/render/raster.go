package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"delaunay-layers/pkg/colorutil"
	"delaunay-layers/pkg/geometry"
)

// LabelSize is the point size used for labels on raster surfaces.
const LabelSize = 12.0

var (
	fontOnce sync.Once
	monoFont *truetype.Font
	fontErr  error
)

func labelFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		monoFont, fontErr = truetype.Parse(gomono.TTF)
	})
	return monoFont, fontErr
}

// Raster is a Surface that rasterizes into an RGBA image using gg.
type Raster struct {
	mu         sync.Mutex
	dc         *gg.Context
	background color.Color
	opacity    float64
}

// NewRaster creates a raster surface. A nil background clears to
// transparent so rasters can be stacked.
func NewRaster(width, height int, background color.Color) *Raster {
	r := &Raster{background: background, opacity: 1}
	r.dc = newContext(width, height)
	r.clearLocked()
	return r
}

func newContext(width, height int) *gg.Context {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	dc := gg.NewContext(width, height)
	if f, err := labelFont(); err == nil {
		dc.SetFontFace(truetype.NewFace(f, &truetype.Options{
			Size:    LabelSize,
			DPI:     72,
			Hinting: font.HintingFull,
		}))
	}
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	return dc
}

// Size returns the raster size in pixels.
func (r *Raster) Size() geometry.Size {
	r.mu.Lock()
	defer r.mu.Unlock()
	return geometry.NewSize(float64(r.dc.Width()), float64(r.dc.Height()))
}

// Resize reallocates the raster. Content is discarded.
func (r *Raster) Resize(width, height float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dc = newContext(int(math.Round(width)), int(math.Round(height)))
	r.clearLocked()
}

// Clear fills the raster with its background.
func (r *Raster) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()
}

func (r *Raster) clearLocked() {
	r.dc.SetColor(colorOr(r.background, color.Transparent))
	r.dc.Clear()
}

// SetOpacity scales the alpha of subsequent drawing.
func (r *Raster) SetOpacity(opacity float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opacity = opacity
}

// FillCircle draws a filled circle.
func (r *Raster) FillCircle(center geometry.Point2D, radius float64, c color.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dc.DrawCircle(center.X, center.Y, radius)
	r.dc.SetColor(colorutil.WithAlpha(c, r.opacity))
	r.dc.Fill()
}

// StrokePath strokes every polyline of path.
func (r *Raster) StrokePath(path Path, c color.Color, width float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, line := range path {
		if len(line) < 2 {
			continue
		}
		r.dc.MoveTo(line[0].X, line[0].Y)
		for _, p := range line[1:] {
			r.dc.LineTo(p.X, p.Y)
		}
	}
	r.dc.SetColor(colorutil.WithAlpha(c, r.opacity))
	r.dc.SetLineWidth(width)
	r.dc.Stroke()
}

// Label draws text with its baseline-left corner at at.
func (r *Raster) Label(at geometry.Point2D, text string, c color.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dc.SetColor(colorutil.WithAlpha(c, r.opacity))
	r.dc.DrawString(text, at.X, at.Y)
}

// Image returns a copy of the current pixels.
func (r *Raster) Image() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	src := r.dc.Image().(*image.RGBA)
	out := image.NewRGBA(src.Bounds())
	copy(out.Pix, src.Pix)
	return out
}

// SavePNG writes the raster to a PNG file.
func (r *Raster) SavePNG(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.dc.SavePNG(path); err != nil {
		return fmt.Errorf("save png %s: %w", path, err)
	}
	return nil
}

// Flatten composites rasters bottom to top over background and writes the
// result to path. All rasters are drawn at the origin.
func Flatten(path string, width, height int, background color.Color, layers ...*Raster) error {
	dc := gg.NewContext(width, height)
	dc.SetColor(colorOr(background, color.Transparent))
	dc.Clear()
	for _, l := range layers {
		if l == nil {
			continue
		}
		dc.DrawImage(l.Image(), 0, 0)
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save png %s: %w", path, err)
	}
	return nil
}

func colorOr(c, fallback color.Color) color.Color {
	if c == nil {
		return fallback
	}
	return c
}
