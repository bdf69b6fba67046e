package scene3d

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"delaunay-layers/pkg/geometry"
)

// Camera defaults.
const (
	DefaultFOV         = 75.0 // degrees, vertical
	DefaultNear        = 0.1
	DefaultFar         = 1000.0
	DefaultMinDistance = 5.0
	DefaultMaxDistance = 50.0
	DefaultDamping     = 0.25
)

// DefaultPosition is where the camera starts.
var DefaultPosition = r3.Vec{X: 8, Y: 8, Z: 8}

const (
	// Keep the polar angle off the poles so the view basis stays defined.
	minPolar = 1e-6
	maxPolar = math.Pi - 1e-6
	// Rotation deltas below this are dropped so damping settles.
	settle = 1e-6
)

// Camera is a perspective camera orbiting a target. Rotation requests are
// applied gradually by Update (damping); zoom is applied immediately and
// clamped to [MinDistance, MaxDistance]. There is no panning.
type Camera struct {
	Target      r3.Vec
	FOV         float64
	Near, Far   float64
	Aspect      float64
	MinDistance float64
	MaxDistance float64
	Damping     float64

	// Spherical coordinates relative to Target: azimuth around +Y from +Z,
	// polar angle from +Y.
	azimuth, polar, distance float64
	dAzimuth, dPolar         float64
}

// NewCamera returns a camera at DefaultPosition looking at the origin.
func NewCamera(aspect float64) *Camera {
	c := &Camera{
		FOV:         DefaultFOV,
		Near:        DefaultNear,
		Far:         DefaultFar,
		Aspect:      aspect,
		MinDistance: DefaultMinDistance,
		MaxDistance: DefaultMaxDistance,
		Damping:     DefaultDamping,
	}
	c.SetPosition(DefaultPosition)
	return c
}

// SetPosition moves the camera to p, keeping it aimed at Target.
func (c *Camera) SetPosition(p r3.Vec) {
	off := r3.Sub(p, c.Target)
	c.distance = clamp(r3.Norm(off), c.MinDistance, c.MaxDistance)
	if c.distance == 0 {
		return
	}
	c.azimuth = math.Atan2(off.X, off.Z)
	c.polar = clamp(math.Acos(clamp(off.Y/r3.Norm(off), -1, 1)), minPolar, maxPolar)
	c.dAzimuth, c.dPolar = 0, 0
}

// Position returns the camera position in world space.
func (c *Camera) Position() r3.Vec {
	sinP := math.Sin(c.polar)
	return r3.Add(c.Target, r3.Vec{
		X: c.distance * sinP * math.Sin(c.azimuth),
		Y: c.distance * math.Cos(c.polar),
		Z: c.distance * sinP * math.Cos(c.azimuth),
	})
}

// Distance returns the distance to Target.
func (c *Camera) Distance() float64 {
	return c.distance
}

// SetAspect updates the aspect ratio (width / height).
func (c *Camera) SetAspect(aspect float64) {
	if aspect > 0 {
		c.Aspect = aspect
	}
}

// Rotate queues an orbit by the given angles in radians.
func (c *Camera) Rotate(dAzimuth, dPolar float64) {
	c.dAzimuth += dAzimuth
	c.dPolar += dPolar
}

// Zoom scales the orbit distance by factor (>1 moves away).
func (c *Camera) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	c.distance = clamp(c.distance*factor, c.MinDistance, c.MaxDistance)
}

// Update applies queued rotation. With damping, only that fraction of the
// remaining rotation is applied per call. Returns whether the camera moved.
func (c *Camera) Update() bool {
	if c.dAzimuth == 0 && c.dPolar == 0 {
		return false
	}
	f := 1.0
	if c.Damping > 0 {
		f = c.Damping
	}
	c.azimuth += c.dAzimuth * f
	c.polar = clamp(c.polar+c.dPolar*f, minPolar, maxPolar)

	if c.Damping > 0 {
		c.dAzimuth *= 1 - f
		c.dPolar *= 1 - f
	} else {
		c.dAzimuth, c.dPolar = 0, 0
	}
	if math.Abs(c.dAzimuth) < settle {
		c.dAzimuth = 0
	}
	if math.Abs(c.dPolar) < settle {
		c.dPolar = 0
	}
	return true
}

// Settled reports whether no rotation is pending.
func (c *Camera) Settled() bool {
	return c.dAzimuth == 0 && c.dPolar == 0
}

// view is the camera basis for one frame.
type view struct {
	eye                r3.Vec
	right, up, forward r3.Vec
	focal, aspect      float64
	near, far          float64
}

func (c *Camera) view() view {
	eye := c.Position()
	forward := r3.Unit(r3.Sub(c.Target, eye))
	right := r3.Unit(r3.Cross(forward, r3.Vec{Y: 1}))
	up := r3.Cross(right, forward)
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return view{
		eye:     eye,
		right:   right,
		up:      up,
		forward: forward,
		focal:   1 / math.Tan(c.FOV*math.Pi/360),
		aspect:  aspect,
		near:    c.Near,
		far:     c.Far,
	}
}

// toCamera returns p in camera space; Z is the depth along the view axis.
func (v view) toCamera(p r3.Vec) r3.Vec {
	d := r3.Sub(p, v.eye)
	return r3.Vec{X: r3.Dot(d, v.right), Y: r3.Dot(d, v.up), Z: r3.Dot(d, v.forward)}
}

// toScreen maps a camera-space point with positive depth to pixels.
func (v view) toScreen(p r3.Vec, size geometry.Size) geometry.Point2D {
	sx := p.X * v.focal / v.aspect / p.Z
	sy := p.Y * v.focal / p.Z
	return geometry.Point2D{
		X: (sx + 1) / 2 * size.Width,
		Y: (1 - sy) / 2 * size.Height,
	}
}

// Project maps a world point to surface pixels. ok is false when the point
// is outside the near/far range.
func (c *Camera) Project(p r3.Vec, size geometry.Size) (pt geometry.Point2D, depth float64, ok bool) {
	v := c.view()
	cp := v.toCamera(p)
	if cp.Z < v.near || cp.Z > v.far {
		return geometry.Point2D{}, cp.Z, false
	}
	return v.toScreen(cp, size), cp.Z, true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
