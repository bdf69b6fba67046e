// Package colorutil provides shared color utilities for the layer editor.
package colorutil

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// Colors used by the diagram and 3D views.
var (
	Background    = color.NRGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 0xff}
	Text          = toNRGBA(colornames.Whitesmoke)
	DelaunayLines = toNRGBA(colornames.Lightskyblue)
	VoronoiLines  = toNRGBA(colornames.Orange)

	// Onion-skin layers are drawn in white at fixed alpha; the per-layer
	// opacity is applied on top of these.
	OnionPoints   = color.NRGBA{R: 255, G: 255, B: 255, A: 128}
	OnionVoronoi  = color.NRGBA{R: 255, G: 255, B: 255, A: 64}
	OnionDelaunay = color.NRGBA{R: 255, G: 255, B: 255, A: 115}

	AxisX  = color.NRGBA{R: 0xff, G: 0x44, B: 0x44, A: 0xff}
	AxisY  = color.NRGBA{R: 0x44, G: 0xff, B: 0x44, A: 0xff}
	AxisZ  = color.NRGBA{R: 0x44, G: 0x44, B: 0xff, A: 0xff}
	Marker = toNRGBA(colornames.White)
	Mesh   = toNRGBA(colornames.White)
)

// ErrBadHex is returned by ParseHex for malformed input.
var ErrBadHex = errors.New("invalid hex color")

// WithAlpha returns c with its alpha multiplied by opacity (clamped to [0,1]).
func WithAlpha(c color.Color, opacity float64) color.NRGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	n := toNRGBA(c)
	n.A = uint8(float64(n.A)*opacity + 0.5)
	return n
}

// Shade scales the RGB channels of c by f (clamped to [0,1]) keeping alpha.
func Shade(c color.Color, f float64) color.NRGBA {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	n := toNRGBA(c)
	n.R = uint8(float64(n.R)*f + 0.5)
	n.G = uint8(float64(n.G)*f + 0.5)
	n.B = uint8(float64(n.B)*f + 0.5)
	return n
}

// ParseHex parses "#rrggbb" or "#rrggbbaa" (leading '#' optional). Named
// colors from the SVG palette ("white", "orange", ...) are accepted too.
func ParseHex(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if named, ok := colornames.Map[s]; ok {
		return toNRGBA(named), nil
	}
	s = strings.TrimPrefix(s, "#")

	var r, g, b, a uint8
	a = 0xff
	switch len(s) {
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadHex, s)
		}
	case 8:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadHex, s)
		}
	default:
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadHex, s)
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

// Hex formats c as "#rrggbbaa".
func Hex(c color.Color) string {
	n := toNRGBA(c)
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

func toNRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
