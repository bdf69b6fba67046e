package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"delaunay-layers/pkg/colorutil"
)

// LayersTheme is the dark theme of the editor. The background matches the
// 3D viewport so the canvases blend with the chrome.
type LayersTheme struct{}

var _ fyne.Theme = (*LayersTheme)(nil)

func (t *LayersTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return colorutil.Background
	case theme.ColorNamePrimary:
		return colorutil.DelaunayLines
	case theme.ColorNameFocus, theme.ColorNameSelection:
		return colorutil.WithAlpha(colorutil.VoronoiLines, 0.5) // Editing / active layer
	case theme.ColorNameForeground:
		return colorutil.Text
	case theme.ColorNameScrollBar:
		return color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
	default:
		return theme.DefaultTheme().Color(name, theme.VariantDark)
	}
}

func (t *LayersTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *LayersTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *LayersTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameScrollBar:
		return 12
	default:
		return theme.DefaultTheme().Size(name)
	}
}
