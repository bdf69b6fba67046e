package app

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"

	"delaunay-layers/pkg/colorutil"
)

func TestLayersTheme(t *testing.T) {
	a := test.NewApp()
	t.Cleanup(a.Quit)

	th := &LayersTheme{}
	assert.Equal(t, colorutil.Background, th.Color(theme.ColorNameBackground, theme.VariantDark))
	assert.Equal(t, colorutil.Text, th.Color(theme.ColorNameForeground, theme.VariantLight))
	assert.Equal(t,
		theme.DefaultTheme().Color(theme.ColorNameError, theme.VariantDark),
		th.Color(theme.ColorNameError, theme.VariantLight),
		"unlisted colors always come from the dark variant")
	assert.Equal(t, float32(12), th.Size(theme.SizeNameScrollBar))
	assert.Equal(t, theme.DefaultTheme().Size(theme.SizeNamePadding), th.Size(theme.SizeNamePadding))
}
