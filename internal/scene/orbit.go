package scene

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	minPitch         = 0.05
	maxPitch         = math32.Pi/2 - 0.01
	rotateSpeed      = 0.005 // radians per pixel dragged
	zoomStep         = 0.1   // fraction of the distance per wheel notch
	minOrbitDistance = 2
)

// Orbit is a camera circling a target point. Yaw is measured around Y from +Z, pitch up from the XZ plane.
type Orbit struct {
	Target      rl.Vector3
	Yaw         float32
	Pitch       float32
	Distance    float32
	MinDistance float32
	MaxDistance float32
}

// OrbitFrom derives the orbit that puts a camera at position looking at target.
func OrbitFrom(position, target rl.Vector3, maxDistance float32) Orbit {
	off := rl.Vector3Subtract(position, target)
	d := rl.Vector3Length(off)
	o := Orbit{Target: target, Distance: d, MinDistance: minOrbitDistance, MaxDistance: maxDistance}
	if d > 0 {
		o.Yaw = math32.Atan2(off.X, off.Z)
		o.Pitch = math32.Asin(off.Y / d)
	}
	o.clamp()
	return o
}

func (o *Orbit) clamp() {
	o.Pitch = math32.Max(minPitch, math32.Min(maxPitch, o.Pitch))
	if o.MaxDistance > 0 {
		o.Distance = math32.Min(o.Distance, o.MaxDistance)
	}
	o.Distance = math32.Max(o.Distance, o.MinDistance)
}

// Position returns the camera position for the current angles and distance.
func (o Orbit) Position() rl.Vector3 {
	cp := math32.Cos(o.Pitch)
	return rl.NewVector3(
		o.Target.X+o.Distance*cp*math32.Sin(o.Yaw),
		o.Target.Y+o.Distance*math32.Sin(o.Pitch),
		o.Target.Z+o.Distance*cp*math32.Cos(o.Yaw),
	)
}

// Rotate turns the orbit by a mouse drag of dx, dy pixels. Reports whether anything moved.
func (o *Orbit) Rotate(dx, dy float32) bool {
	if dx == 0 && dy == 0 {
		return false
	}
	o.Yaw -= dx * rotateSpeed
	o.Pitch += dy * rotateSpeed
	o.clamp()
	return true
}

// Zoom moves toward (positive wheel) or away from the target. Reports whether anything moved.
func (o *Orbit) Zoom(wheel float32) bool {
	if wheel == 0 {
		return false
	}
	before := o.Distance
	o.Distance *= 1 - wheel*zoomStep
	o.clamp()
	return o.Distance != before
}

// Apply writes the orbit into cam.
func (o Orbit) Apply(cam *rl.Camera3D) {
	cam.Position = o.Position()
	cam.Target = o.Target
}
