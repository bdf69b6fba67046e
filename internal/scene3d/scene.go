// Package scene3d is a small retained-mode 3D scene: tagged nodes (lights,
// lines and point markers), an orbit camera and a software projector that
// draws the scene onto a render.Surface.
package scene3d

import (
	"image/color"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"delaunay-layers/pkg/colorutil"
)

// Tag says who owns a node. Generated nodes are rebuilt from layer data;
// Fixed nodes (axes, lights) live for the whole session.
type Tag uint8

const (
	Fixed Tag = iota
	Generated
)

// Kind is the node type.
type Kind uint8

const (
	KindLight Kind = iota
	KindLine
	KindMarker
)

// LightKind distinguishes light sources.
type LightKind uint8

const (
	Ambient LightKind = iota
	Directional
)

// Node is one scene element. Only the fields of its Kind are meaningful.
type Node struct {
	Tag   Tag
	Kind  Kind
	Color color.NRGBA

	// Lines
	From, To r3.Vec
	Label    string

	// Markers and directional lights
	Position r3.Vec
	Radius   float64

	// Lights
	Light     LightKind
	Intensity float64
}

// NewLine returns a line node.
func NewLine(from, to r3.Vec, c color.NRGBA, tag Tag) Node {
	return Node{Tag: tag, Kind: KindLine, From: from, To: to, Color: c}
}

// NewMarker returns a sphere marker node.
func NewMarker(pos r3.Vec, radius float64, c color.NRGBA, tag Tag) Node {
	return Node{Tag: tag, Kind: KindMarker, Position: pos, Radius: radius, Color: c}
}

// NewAmbientLight returns a fixed ambient light.
func NewAmbientLight(c color.NRGBA, intensity float64) Node {
	return Node{Tag: Fixed, Kind: KindLight, Light: Ambient, Color: c, Intensity: intensity}
}

// NewDirectionalLight returns a fixed directional light shining from pos
// towards the origin.
func NewDirectionalLight(c color.NRGBA, intensity float64, pos r3.Vec) Node {
	return Node{Tag: Fixed, Kind: KindLight, Light: Directional, Color: c, Intensity: intensity, Position: pos}
}

// AxisLength is the length of the reference axes.
const AxisLength = 5.0

// Axes returns the three fixed reference axes from the origin: X red,
// Y green, Z blue.
func Axes(length float64) []Node {
	o := r3.Vec{}
	x := NewLine(o, r3.Vec{X: length}, colorutil.AxisX, Fixed)
	x.Label = "X"
	y := NewLine(o, r3.Vec{Y: length}, colorutil.AxisY, Fixed)
	y.Label = "Y"
	z := NewLine(o, r3.Vec{Z: length}, colorutil.AxisZ, Fixed)
	z.Label = "Z"
	return []Node{x, y, z}
}

// Lights returns the default lighting rig.
func Lights() []Node {
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	return []Node{
		NewAmbientLight(white, 2),
		NewDirectionalLight(white, 3, r3.Vec{X: 5, Y: 5, Z: 5}),
		NewDirectionalLight(white, 2, r3.Vec{X: -5, Y: 5, Z: 5}),
	}
}

// Scene is a list of nodes. It is safe for concurrent use so the frame
// loop can render while the UI goroutine rebuilds.
type Scene struct {
	mu    sync.RWMutex
	nodes []Node
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// Add appends nodes.
func (s *Scene) Add(nodes ...Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = append(s.nodes, nodes...)
}

// RemoveTagged removes every node carrying tag and returns how many were
// removed.
func (s *Scene) RemoveTagged(tag Tag) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(tag)
}

func (s *Scene) removeLocked(tag Tag) int {
	kept := s.nodes[:0]
	removed := 0
	for _, n := range s.nodes {
		if n.Tag == tag {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	s.nodes = kept
	return removed
}

// ReplaceTagged removes every node carrying tag and adds nodes, in one step.
// Added nodes are retagged with tag.
func (s *Scene) ReplaceTagged(tag Tag, nodes []Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(tag)
	for _, n := range nodes {
		n.Tag = tag
		s.nodes = append(s.nodes, n)
	}
}

// Nodes returns a copy of the node list.
func (s *Scene) Nodes() []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// Count returns the number of nodes with tag and kind.
func (s *Scene) Count(tag Tag, kind Kind) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, node := range s.nodes {
		if node.Tag == tag && node.Kind == kind {
			n++
		}
	}
	return n
}

// Len returns the number of nodes.
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}
