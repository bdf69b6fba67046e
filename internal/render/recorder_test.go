package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"delaunay-layers/pkg/geometry"
)

func TestRecorderRecordsWithOpacity(t *testing.T) {
	rec := NewRecorder(200, 100)
	assert.Equal(t, geometry.NewSize(200, 100), rec.Size())
	assert.True(t, rec.Empty())

	rec.SetOpacity(0.5)
	rec.FillCircle(geometry.NewPoint2D(10, 10), 5, color.White)
	var p Path
	p.MoveTo(geometry.NewPoint2D(0, 0))
	p.LineTo(geometry.NewPoint2D(10, 0))
	p.LineTo(geometry.NewPoint2D(10, 10))
	rec.StrokePath(p, color.White, 1)

	ops := rec.Ops()
	require.Len(t, ops, 2)
	assert.Equal(t, OpFillCircle, ops[0].Kind)
	assert.Equal(t, 0.5, ops[0].Opacity)
	assert.Equal(t, 1, rec.Count(OpStrokePath))
	assert.Equal(t, 2, rec.StrokedSegments())

	// The recorded path is a copy.
	p[0][0].X = 99
	assert.Equal(t, 0.0, rec.Ops()[1].Path[0][0].X)
}

func TestRecorderClearAndResize(t *testing.T) {
	rec := NewRecorder(10, 10)
	rec.FillCircle(geometry.Point2D{}, 1, color.White)
	rec.Clear()
	assert.True(t, rec.Empty())
	assert.Equal(t, 1, rec.Clears())

	rec.FillCircle(geometry.Point2D{}, 1, color.White)
	rec.Resize(30, 40)
	assert.True(t, rec.Empty())
	assert.Equal(t, geometry.NewSize(30, 40), rec.Size())
}

func TestRecorderReplay(t *testing.T) {
	src := NewRecorder(50, 50)
	src.SetOpacity(0.25)
	src.FillCircle(geometry.NewPoint2D(1, 2), 3, color.White)
	src.Label(geometry.NewPoint2D(4, 5), "x", color.White)

	dst := NewRecorder(50, 50)
	src.Replay(dst)

	ops := dst.Ops()
	require.Len(t, ops, 2)
	assert.Equal(t, OpFillCircle, ops[0].Kind)
	assert.Equal(t, 0.25, ops[0].Opacity)
	assert.Equal(t, "x", ops[1].Text)
}

func TestPathSegments(t *testing.T) {
	var p Path
	p.LineTo(geometry.NewPoint2D(0, 0))
	p.AddSegment(geometry.Segment{A: geometry.NewPoint2D(0, 0), B: geometry.NewPoint2D(1, 1)})
	assert.Len(t, p, 2)
	assert.Equal(t, 1, p.Segments())
	assert.Equal(t, "StrokePath", OpStrokePath.String())
}
