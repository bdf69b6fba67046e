package scene3d

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"delaunay-layers/internal/render"
	"delaunay-layers/pkg/geometry"
)

// Projector draws a scene with a camera onto a 2D surface: lines first,
// then markers back to front. Lights are kept in the scene for shaded
// materials; lines and markers are unlit and ignore them.
type Projector struct {
	LineWidth float64
	// MinMarkerRadius keeps distant markers visible, in pixels.
	MinMarkerRadius float64
}

// NewProjector returns a projector with 1px lines.
func NewProjector() *Projector {
	return &Projector{LineWidth: 1, MinMarkerRadius: 1}
}

type projectedMarker struct {
	center geometry.Point2D
	radius float64
	depth  float64
	node   Node
}

// Render clears surface and draws scene through cam. Rendering the same
// scene with an unchanged camera produces the same draw calls.
func (p *Projector) Render(scene *Scene, cam *Camera, surface render.Surface) {
	size := surface.Size()
	surface.Clear()
	surface.SetOpacity(1)
	if size.Width <= 0 || size.Height <= 0 {
		return
	}
	v := cam.view()
	labeler, _ := surface.(render.Labeler)

	var markers []projectedMarker
	for _, n := range scene.Nodes() {
		switch n.Kind {
		case KindLine:
			a, b, ok := v.clipNear(v.toCamera(n.From), v.toCamera(n.To))
			if !ok {
				continue
			}
			sa, sb := v.toScreen(a, size), v.toScreen(b, size)
			surface.StrokePath(render.Path{{sa, sb}}, n.Color, p.LineWidth)
			if n.Label != "" && labeler != nil && b == v.toCamera(n.To) {
				labeler.Label(sb, n.Label, n.Color)
			}
		case KindMarker:
			c := v.toCamera(n.Position)
			if c.Z < v.near || c.Z > v.far {
				continue
			}
			r := n.Radius * v.focal / c.Z * size.Height / 2
			if r < p.MinMarkerRadius {
				r = p.MinMarkerRadius
			}
			markers = append(markers, projectedMarker{
				center: v.toScreen(c, size),
				radius: r,
				depth:  c.Z,
				node:   n,
			})
		}
	}

	sort.SliceStable(markers, func(i, j int) bool { return markers[i].depth > markers[j].depth })
	for _, m := range markers {
		surface.FillCircle(m.center, m.radius, m.node.Color)
	}
}

// clipNear clips the camera-space segment a-b to the near and far planes.
func (v view) clipNear(a, b r3.Vec) (r3.Vec, r3.Vec, bool) {
	clipPlane := func(a, b r3.Vec, z float64, keepAbove bool) (r3.Vec, r3.Vec, bool) {
		inA := a.Z >= z == keepAbove
		inB := b.Z >= z == keepAbove
		switch {
		case inA && inB:
			return a, b, true
		case !inA && !inB:
			return a, b, false
		}
		t := (z - a.Z) / (b.Z - a.Z)
		m := r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
		m.Z = z
		if inA {
			return a, m, true
		}
		return m, b, true
	}
	a, b, ok := clipPlane(a, b, v.near, true)
	if !ok {
		return a, b, false
	}
	return clipPlane(a, b, v.far, false)
}
