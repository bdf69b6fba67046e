// Package render defines the 2D drawing surface the views paint on, a
// recording implementation used by tests and replay, and a raster
// implementation backed by fogleman/gg.
package render

import (
	"image/color"

	"delaunay-layers/pkg/geometry"
)

// Surface is a 2D drawing target with its own local coordinate space.
// Coordinates are in pixels with the origin at the top-left corner.
type Surface interface {
	// Size returns the current drawable size.
	Size() geometry.Size
	// Resize changes the drawable size. Content is discarded.
	Resize(width, height float64)
	// Clear erases everything drawn so far.
	Clear()
	// SetOpacity sets the opacity (0..1) applied to subsequent drawing.
	SetOpacity(opacity float64)
	// FillCircle draws a filled circle.
	FillCircle(center geometry.Point2D, radius float64, c color.Color)
	// StrokePath strokes every polyline of path.
	StrokePath(path Path, c color.Color, width float64)
}

// Labeler is implemented by surfaces that can draw text.
type Labeler interface {
	Label(at geometry.Point2D, text string, c color.Color)
}

// Path is a list of polylines. Each polyline is stroked independently.
type Path [][]geometry.Point2D

// MoveTo starts a new polyline at p.
func (p *Path) MoveTo(pt geometry.Point2D) {
	*p = append(*p, []geometry.Point2D{pt})
}

// LineTo extends the current polyline to pt. Without a current polyline it
// behaves like MoveTo.
func (p *Path) LineTo(pt geometry.Point2D) {
	if len(*p) == 0 {
		p.MoveTo(pt)
		return
	}
	last := len(*p) - 1
	(*p)[last] = append((*p)[last], pt)
}

// AddSegment appends a two-point polyline.
func (p *Path) AddSegment(s geometry.Segment) {
	*p = append(*p, []geometry.Point2D{s.A, s.B})
}

// Segments returns the number of straight segments in the path.
func (p Path) Segments() int {
	n := 0
	for _, line := range p {
		if len(line) > 1 {
			n += len(line) - 1
		}
	}
	return n
}

// Clone returns a deep copy of the path.
func (p Path) Clone() Path {
	out := make(Path, len(p))
	for i, line := range p {
		out[i] = geometry.ClonePoints(line)
	}
	return out
}
