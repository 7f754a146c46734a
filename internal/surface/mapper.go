package surface

import rl "github.com/gen2brain/raylib-go/raylib"

// ViewSource supplies the current camera and viewport. The scene implements it; tests use fixed values.
type ViewSource interface {
	View() (rl.Camera3D, Viewport)
}

// FixedView is a ViewSource that never changes.
type FixedView struct {
	Camera   rl.Camera3D
	Viewport Viewport
}

// View returns the fixed camera and viewport.
func (f FixedView) View() (rl.Camera3D, Viewport) {
	return f.Camera, f.Viewport
}

// Mapper binds the calibrated plane and court bounds to a view so callers resolve with pointer coordinates only.
// Plane and Bounds are fixed after the court is loaded.
type Mapper struct {
	Plane  Plane
	Bounds Bounds
	view   ViewSource
}

// NewMapper returns a Mapper reading the camera from view on every call.
func NewMapper(plane Plane, bounds Bounds, view ViewSource) *Mapper {
	return &Mapper{Plane: plane, Bounds: bounds, view: view}
}

// Resolve maps a pointer position to a clamped surface point. See Resolve.
func (m *Mapper) Resolve(pointerX, pointerY float32) (rl.Vector3, bool) {
	cam, vp := m.view.View()
	return Resolve(pointerX, pointerY, cam, vp, m.Plane, m.Bounds)
}
