package render

import (
	"image/color"
	"sync"

	"delaunay-layers/pkg/geometry"
)

// OpKind identifies a recorded drawing operation.
type OpKind uint8

const (
	OpFillCircle OpKind = iota // Filled circle
	OpStrokePath               // Stroked polylines
	OpLabel                    // Text label
)

var opKindNames = [...]string{
	OpFillCircle: "FillCircle",
	OpStrokePath: "StrokePath",
	OpLabel:      "Label",
}

// String returns the operation name.
func (k OpKind) String() string {
	if int(k) < len(opKindNames) {
		return opKindNames[k]
	}
	return "Unknown"
}

// Op is one recorded drawing operation. Fields not used by Kind are zero.
type Op struct {
	Kind    OpKind
	Opacity float64
	Color   color.Color
	Center  geometry.Point2D
	Radius  float64
	Path    Path
	Width   float64
	Text    string
}

// Recorder is a Surface that keeps a display list instead of pixels.
// Views are tested against it and it can be replayed onto any other
// Surface. Recorder is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	size    geometry.Size
	opacity float64
	ops     []Op
	clears  int
}

// NewRecorder creates an empty recorder of the given size.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{
		size:    geometry.NewSize(width, height),
		opacity: 1,
	}
}

// Size returns the current size.
func (r *Recorder) Size() geometry.Size {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Resize changes the size and drops the display list.
func (r *Recorder) Resize(width, height float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.size = geometry.NewSize(width, height)
	r.ops = nil
}

// Clear drops the display list.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = nil
	r.clears++
}

// SetOpacity sets the opacity recorded with subsequent operations.
func (r *Recorder) SetOpacity(opacity float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opacity = opacity
}

// Opacity returns the current opacity.
func (r *Recorder) Opacity() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opacity
}

// FillCircle records a filled circle.
func (r *Recorder) FillCircle(center geometry.Point2D, radius float64, c color.Color) {
	r.record(Op{Kind: OpFillCircle, Center: center, Radius: radius, Color: c})
}

// StrokePath records a stroked path. The path is copied.
func (r *Recorder) StrokePath(path Path, c color.Color, width float64) {
	r.record(Op{Kind: OpStrokePath, Path: path.Clone(), Color: c, Width: width})
}

// Label records a text label.
func (r *Recorder) Label(at geometry.Point2D, text string, c color.Color) {
	r.record(Op{Kind: OpLabel, Center: at, Text: text, Color: c})
}

func (r *Recorder) record(op Op) {
	r.mu.Lock()
	defer r.mu.Unlock()
	op.Opacity = r.opacity
	r.ops = append(r.ops, op)
}

// Ops returns a copy of the display list.
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Count returns how many operations of kind k are recorded.
func (r *Recorder) Count(k OpKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, op := range r.ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// StrokedSegments returns the total number of straight segments stroked.
func (r *Recorder) StrokedSegments() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, op := range r.ops {
		if op.Kind == OpStrokePath {
			n += op.Path.Segments()
		}
	}
	return n
}

// Empty reports whether nothing is recorded.
func (r *Recorder) Empty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ops) == 0
}

// Clears returns how many times Clear has been called.
func (r *Recorder) Clears() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clears
}

// Replay draws the display list onto dst, restoring each operation's
// opacity. Labels are skipped when dst cannot draw text.
func (r *Recorder) Replay(dst Surface) {
	ops := r.Ops()
	labeler, _ := dst.(Labeler)
	for _, op := range ops {
		dst.SetOpacity(op.Opacity)
		switch op.Kind {
		case OpFillCircle:
			dst.FillCircle(op.Center, op.Radius, op.Color)
		case OpStrokePath:
			dst.StrokePath(op.Path, op.Color, op.Width)
		case OpLabel:
			if labeler != nil {
				labeler.Label(op.Center, op.Text, op.Color)
			}
		}
	}
}
