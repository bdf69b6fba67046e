package diagram

import (
	"errors"
	"image/color"

	"delaunay-layers/internal/render"
	"delaunay-layers/pkg/colorutil"
	"delaunay-layers/pkg/geometry"
)

// Display selects which diagrams are drawn.
type Display struct {
	ShowDelaunay bool `json:"delaunay"`
	ShowVoronoi  bool `json:"voronoi"`
}

// Diagram is the computed geometry of one layer.
type Diagram struct {
	Triangles *Triangulation
	// Hull replaces Triangles for two or more collinear points.
	Hull  []geometry.Point2D
	Cells []geometry.Segment
}

// Compute triangulates points and derives the Voronoi cells clipped to
// bounds, for the parts enabled in show. Fewer than two points give an
// empty diagram; collinear points get a Hull polyline instead of
// triangles. A failing step leaves its part empty; the other part is still
// returned alongside the joined errors.
func Compute(points []geometry.Point2D, bounds geometry.Rect, show Display) (Diagram, error) {
	var d Diagram
	if len(points) < 2 {
		return d, nil
	}

	var errs []error
	if show.ShowDelaunay {
		t, err := Triangulate(points)
		if err != nil {
			errs = append(errs, err)
		} else {
			d.Triangles = t
		}
		if t.Len() == 0 {
			d.Hull = LineHull(points)
		}
	}
	if show.ShowVoronoi {
		cells, err := Voronoi(points, bounds)
		if err != nil {
			errs = append(errs, err)
		} else {
			d.Cells = cells
		}
	}
	return d, errors.Join(errs...)
}

// Style controls how a layer is drawn.
type Style struct {
	PointRadius   float64
	PointColor    color.Color
	DelaunayColor color.Color
	VoronoiColor  color.Color
	LineWidth     float64
	Opacity       float64
}

// DefaultStyle is the style of the active layer in the primary view.
func DefaultStyle() Style {
	return Style{
		PointRadius:   5,
		PointColor:    colorutil.Text,
		DelaunayColor: colorutil.DelaunayLines,
		VoronoiColor:  colorutil.VoronoiLines,
		LineWidth:     1,
		Opacity:       1,
	}
}

// OnionStyle is the style of a layer shown in the onion-skin stack at the
// given opacity.
func OnionStyle(opacity float64) Style {
	return Style{
		PointRadius:   5,
		PointColor:    colorutil.OnionPoints,
		DelaunayColor: colorutil.OnionDelaunay,
		VoronoiColor:  colorutil.OnionVoronoi,
		LineWidth:     1,
		Opacity:       opacity,
	}
}

// Draw paints points and the triangulation on primary and the Voronoi cells
// on cells. A nil cells surface puts everything on primary. Surfaces are not
// cleared first.
func Draw(primary, cells render.Surface, points []geometry.Point2D, d Diagram, style Style) {
	if cells == nil {
		cells = primary
	}
	primary.SetOpacity(style.Opacity)
	cells.SetOpacity(style.Opacity)

	for _, p := range points {
		primary.FillCircle(p, style.PointRadius, style.PointColor)
	}
	if d.Triangles != nil && d.Triangles.Len() > 0 {
		primary.StrokePath(d.Triangles.Paths(), style.DelaunayColor, style.LineWidth)
	} else if len(d.Hull) > 1 {
		primary.StrokePath(render.Path{d.Hull}, style.DelaunayColor, style.LineWidth)
	}
	if len(d.Cells) > 0 {
		var path render.Path
		for _, s := range d.Cells {
			path.AddSegment(s)
		}
		cells.StrokePath(path, style.VoronoiColor, style.LineWidth)
	}
}
