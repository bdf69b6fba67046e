package views

import (
	"sync"

	"delaunay-layers/internal/app"
	"delaunay-layers/internal/render"
	"delaunay-layers/internal/scene3d"
	"delaunay-layers/internal/stitch"
	"delaunay-layers/pkg/colorutil"
	"delaunay-layers/pkg/geometry"
)

// ThreeDView rebuilds the 3D wireframe whenever layers or elevations change
// and renders it once per frame. Axes and lights are created once; every
// marker and edge is regenerated from scratch on each rebuild.
type ThreeDView struct {
	store     *app.Store
	opts      Options
	scene     *scene3d.Scene
	projector *scene3d.Projector

	mu     sync.Mutex
	camera *scene3d.Camera
	plane  geometry.Size
	mesh   stitch.Mesh
	unsub  func()
}

// NewThreeDView binds a 3D view to store. plane is the size of the 2D
// surface the points were placed on; it centres the lifted layers.
func NewThreeDView(store *app.Store, plane geometry.Size, opts Options) *ThreeDView {
	v := &ThreeDView{
		store:     store,
		opts:      opts,
		scene:     scene3d.NewScene(),
		projector: scene3d.NewProjector(),
		camera:    scene3d.NewCamera(aspect(plane)),
		plane:     plane,
	}
	v.scene.Add(scene3d.Axes(scene3d.AxisLength)...)
	v.scene.Add(scene3d.Lights()...)

	v.unsub = store.Subscribe(func(app.Event) { v.Rebuild() },
		app.EventLayersChanged, app.EventZHeightChanged)
	v.Rebuild()
	return v
}

// Close stops listening to the store and drops the wireframe.
func (v *ThreeDView) Close() {
	v.unsub()
	v.scene.RemoveTagged(scene3d.Generated)
}

// Scene returns the scene graph.
func (v *ThreeDView) Scene() *scene3d.Scene {
	return v.scene
}

// Mesh returns the mesh of the last rebuild.
func (v *ThreeDView) Mesh() stitch.Mesh {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mesh
}

// Rebuild regenerates the markers and edges from the store.
func (v *ThreeDView) Rebuild() {
	v.mu.Lock()
	plane := v.plane
	v.mu.Unlock()

	mesh := v.opts.Lifter.Build(v.store.Layers(), plane.Width, plane.Height)
	for _, f := range mesh.Failures {
		logDiagramError("3d", app.Layer{ID: f.Layer, Name: f.Name}, f.Err)
	}

	nodes := make([]scene3d.Node, 0, mesh.VertexCount()+len(mesh.Edges()))
	for _, l := range mesh.Layers {
		for _, p := range l.Vertices {
			nodes = append(nodes, scene3d.NewMarker(p, v.opts.MarkerRadius, colorutil.Marker, scene3d.Generated))
		}
	}
	for _, e := range mesh.Edges() {
		nodes = append(nodes, scene3d.NewLine(e.A, e.B, colorutil.Mesh, scene3d.Generated))
	}
	v.scene.ReplaceTagged(scene3d.Generated, nodes)

	v.mu.Lock()
	v.mesh = mesh
	v.mu.Unlock()
}

// Resize sets the viewport and plane size, e.g. when the window changes,
// and rebuilds.
func (v *ThreeDView) Resize(width, height float64) {
	v.mu.Lock()
	v.plane = geometry.NewSize(width, height)
	v.camera.SetAspect(aspect(v.plane))
	v.mu.Unlock()
	v.Rebuild()
}

// SetViewport updates only the camera aspect ratio.
func (v *ThreeDView) SetViewport(width, height float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.camera.SetAspect(aspect(geometry.NewSize(width, height)))
}

// Orbit queues a camera rotation in radians.
func (v *ThreeDView) Orbit(dAzimuth, dPolar float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.camera.Rotate(dAzimuth, dPolar)
}

// Zoom scales the camera distance.
func (v *ThreeDView) Zoom(factor float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.camera.Zoom(factor)
}

// CameraPosition returns the camera position.
func (v *ThreeDView) CameraPosition() (x, y, z float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	p := v.camera.Position()
	return p.X, p.Y, p.Z
}

// Frame advances camera damping and renders onto surface. It is safe to
// call from the frame loop goroutine.
func (v *ThreeDView) Frame(surface render.Surface) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.camera.Update()
	v.projector.Render(v.scene, v.camera, surface)
}

func aspect(s geometry.Size) float64 {
	if s.Width <= 0 || s.Height <= 0 {
		return 1
	}
	return s.Width / s.Height
}
