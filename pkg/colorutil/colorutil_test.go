package colorutil

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithAlpha(t *testing.T) {
	c := WithAlpha(color.White, 0.5)
	assert.Equal(t, uint8(128), c.A)
	assert.Equal(t, uint8(255), c.R)

	assert.Equal(t, uint8(0), WithAlpha(color.White, -1).A)
	assert.Equal(t, uint8(255), WithAlpha(color.White, 3).A)
	assert.Equal(t, uint8(64), WithAlpha(OnionPoints, 0.5).A)
}

func TestShade(t *testing.T) {
	c := Shade(AxisX, 0.5)
	assert.Equal(t, uint8(128), c.R)
	assert.Equal(t, uint8(0xff), c.A)
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#1a1a1a", Background},
		{"ff4444", AxisX},
		{"#ffffff80", color.NRGBA{R: 255, G: 255, B: 255, A: 128}},
		{"White", color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "#12345", "#zzzzzz"} {
		_, err := ParseHex(bad)
		assert.True(t, errors.Is(err, ErrBadHex), bad)
	}
}

func TestHexRoundTrip(t *testing.T) {
	assert.Equal(t, "#4444ffff", Hex(AxisZ))
	got, err := ParseHex(Hex(OnionDelaunay))
	require.NoError(t, err)
	assert.Equal(t, OnionDelaunay, got)
}
