package surface

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/exp/constraints"
)

// parallelEpsilon is the smallest |dir.Y| treated as crossing the plane. Rays flatter than this are
// considered parallel and never resolve.
const parallelEpsilon = 1e-6

// Bounds is the axis-aligned court rectangle on the XZ plane. Every placed or sampled point is clamped into it.
type Bounds struct {
	MinX float32 `yaml:"minX" json:"minX"`
	MaxX float32 `yaml:"maxX" json:"maxX"`
	MinZ float32 `yaml:"minZ" json:"minZ"`
	MaxZ float32 `yaml:"maxZ" json:"maxZ"`
}

// Clamp returns p with X and Z pulled inside the bounds. Y is left untouched.
func (b Bounds) Clamp(p rl.Vector3) rl.Vector3 {
	p.X = clamp(p.X, b.MinX, b.MaxX)
	p.Z = clamp(p.Z, b.MinZ, b.MaxZ)
	return p
}

// Contains reports whether p lies inside the bounds on X and Z (edges included).
func (b Bounds) Contains(p rl.Vector3) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Z >= b.MinZ && p.Z <= b.MaxZ
}

// Size returns the width (X) and depth (Z) of the rectangle.
func (b Bounds) Size() (width, depth float32) {
	return b.MaxX - b.MinX, b.MaxZ - b.MinZ
}

// Center returns the middle of the rectangle at height y.
func (b Bounds) Center(y float32) rl.Vector3 {
	return rl.NewVector3((b.MinX+b.MaxX)*0.5, y, (b.MinZ+b.MaxZ)*0.5)
}

// Valid reports whether min <= max on both axes.
func (b Bounds) Valid() bool {
	return b.MinX <= b.MaxX && b.MinZ <= b.MaxZ
}

// Plane is the infinite horizontal pick plane y = Height.
type Plane struct {
	Height float32
}

// Viewport is the render surface in screen pixels. Pointer coordinates are given in the same space.
type Viewport struct {
	X, Y          float32
	Width, Height float32
}

// ScreenViewport returns a viewport covering a full w×h screen.
func ScreenViewport(w, h int) Viewport {
	return Viewport{Width: float32(w), Height: float32(h)}
}

// Resolve casts a ray from cam through the pointer position and intersects it with plane.
// The hit is clamped to bounds and its Y is exactly plane.Height. ok is false when the viewport or
// camera basis is degenerate, the ray runs parallel to the plane, or the plane lies behind the camera.
// Resolve is pure: identical inputs always yield identical output.
func Resolve(pointerX, pointerY float32, cam rl.Camera3D, vp Viewport, plane Plane, bounds Bounds) (rl.Vector3, bool) {
	ray, ok := PickRay(pointerX, pointerY, cam, vp)
	if !ok {
		return rl.Vector3{}, false
	}
	hit, ok := IntersectPlane(ray, plane)
	if !ok {
		return rl.Vector3{}, false
	}
	hit = bounds.Clamp(hit)
	hit.Y = plane.Height
	return hit, true
}

// PickRay builds the world-space ray under the pointer. Perspective cameras shoot from the eye through the
// frustum; orthographic cameras shoot parallel rays from the view rectangle (Fovy is the view height).
func PickRay(pointerX, pointerY float32, cam rl.Camera3D, vp Viewport) (rl.Ray, bool) {
	if vp.Width <= 0 || vp.Height <= 0 {
		return rl.Ray{}, false
	}
	ndcX := ((pointerX-vp.X)/vp.Width)*2 - 1
	ndcY := -((pointerY-vp.Y)/vp.Height)*2 + 1
	aspect := vp.Width / vp.Height

	forward, right, up, ok := basis(cam)
	if !ok {
		return rl.Ray{}, false
	}

	if cam.Projection == rl.CameraOrthographic {
		halfH := cam.Fovy * 0.5
		halfW := halfH * aspect
		origin := rl.Vector3Add(cam.Position, rl.Vector3Scale(right, ndcX*halfW))
		origin = rl.Vector3Add(origin, rl.Vector3Scale(up, ndcY*halfH))
		return rl.Ray{Position: origin, Direction: forward}, true
	}

	tanHalf := math32.Tan(cam.Fovy * math32.Pi / 180 * 0.5)
	dir := rl.Vector3Add(forward, rl.Vector3Scale(right, ndcX*tanHalf*aspect))
	dir = rl.Vector3Add(dir, rl.Vector3Scale(up, ndcY*tanHalf))
	return rl.Ray{Position: cam.Position, Direction: rl.Vector3Normalize(dir)}, true
}

// IntersectPlane returns where ray meets the horizontal plane. Hits behind the ray origin do not count.
func IntersectPlane(ray rl.Ray, plane Plane) (rl.Vector3, bool) {
	if math32.Abs(ray.Direction.Y) < parallelEpsilon {
		return rl.Vector3{}, false
	}
	t := (plane.Height - ray.Position.Y) / ray.Direction.Y
	if t < 0 {
		return rl.Vector3{}, false
	}
	return rl.Vector3Add(ray.Position, rl.Vector3Scale(ray.Direction, t)), true
}

// basis returns the camera's forward, right and true-up unit vectors.
func basis(cam rl.Camera3D) (forward, right, up rl.Vector3, ok bool) {
	f := rl.Vector3Subtract(cam.Target, cam.Position)
	if rl.Vector3Length(f) == 0 {
		return forward, right, up, false
	}
	forward = rl.Vector3Normalize(f)
	r := rl.Vector3CrossProduct(forward, cam.Up)
	if rl.Vector3Length(r) < parallelEpsilon {
		return forward, right, up, false
	}
	right = rl.Vector3Normalize(r)
	up = rl.Vector3CrossProduct(right, forward)
	return forward, right, up, true
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
