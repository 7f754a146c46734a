// Package present keeps marker labels at a constant on-screen size.
package present

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"playboard/internal/board"
)

// DefaultPixelSize is the label height on screen in pixels.
const DefaultPixelSize = 36

// LabelScale returns the world-space size that makes an object at target appear px pixels tall on a
// surface screenHeight pixels high. Orthographic cameras ignore distance.
func LabelScale(cam rl.Camera3D, target rl.Vector3, screenHeight, px float32) float32 {
	if screenHeight <= 0 {
		return 0
	}
	if cam.Projection == rl.CameraOrthographic {
		return cam.Fovy / screenHeight * px
	}
	half := cam.Fovy * 0.5 * math32.Pi / 180
	d := rl.Vector3Distance(cam.Position, target)
	return 2 * math32.Tan(half) * d / screenHeight * px
}

// Sync caches one scale per marker and recomputes them only after MarkDirty.
type Sync struct {
	pixelSize float32
	dirty     bool
	scales    map[int]float32
}

// NewSync returns a Sync that starts dirty. pixelSize <= 0 means DefaultPixelSize.
func NewSync(pixelSize float32) *Sync {
	if pixelSize <= 0 {
		pixelSize = DefaultPixelSize
	}
	return &Sync{pixelSize: pixelSize, dirty: true, scales: make(map[int]float32)}
}

// MarkDirty requests a recompute on the next Tick.
func (s *Sync) MarkDirty() {
	s.dirty = true
}

// Dirty reports whether the next Tick will recompute.
func (s *Sync) Dirty() bool {
	return s.dirty
}

// BoardChanged marks the scales stale when markers appear, move or go away.
func (s *Sync) BoardChanged(c board.Change) {
	switch c.Kind {
	case board.MarkerCreated, board.MarkerRelocated, board.MarkerDeleted, board.Cleared:
		s.dirty = true
	}
}

// Tick recomputes every label scale if dirty and reports whether it did.
func (s *Sync) Tick(cam rl.Camera3D, screenHeight float32, markers []board.Marker) bool {
	if !s.dirty {
		return false
	}
	clear(s.scales)
	for _, m := range markers {
		s.scales[m.Number] = LabelScale(cam, m.Position, screenHeight, s.pixelSize)
	}
	s.dirty = false
	return true
}

// Scale returns the last computed scale for marker number.
func (s *Sync) Scale(number int) (float32, bool) {
	v, ok := s.scales[number]
	return v, ok
}

var _ board.Observer = (*Sync)(nil)
