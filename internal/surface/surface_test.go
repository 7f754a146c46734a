package surface

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var courtBounds = Bounds{MinX: -14, MaxX: 14, MinZ: -7.5, MaxZ: 7.5}

func perspective(pos, target rl.Vector3) rl.Camera3D {
	return rl.Camera3D{
		Position:   pos,
		Target:     target,
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       50,
		Projection: rl.CameraPerspective,
	}
}

func TestResolve(t *testing.T) {
	vp := Viewport{Width: 800, Height: 600}

	tests := []struct {
		name   string
		cam    rl.Camera3D
		plane  Plane
		px, py float32
		want   rl.Vector3
		wantOK bool
	}{
		{
			name:   "center of screen hits camera target",
			cam:    perspective(rl.NewVector3(0, 10, 10), rl.NewVector3(2, 0, 3)),
			px:     400,
			py:     300,
			want:   rl.NewVector3(2, 0, 3),
			wantOK: true,
		},
		{
			name:   "raised plane keeps calibrated height",
			cam:    perspective(rl.NewVector3(0, 10, 10), rl.NewVector3(0, 1.5, 0)),
			plane:  Plane{Height: 1.5},
			px:     400,
			py:     300,
			want:   rl.NewVector3(0, 1.5, 0),
			wantOK: true,
		},
		{
			name:   "far hit is clamped to court bounds",
			cam:    perspective(rl.NewVector3(30, 5, 50), rl.NewVector3(30, 0, 40)),
			px:     400,
			py:     300,
			want:   rl.NewVector3(14, 0, 7.5),
			wantOK: true,
		},
		{
			name:   "ray parallel to plane misses",
			cam:    perspective(rl.NewVector3(0, 0, 10), rl.NewVector3(0, 0, 0)),
			px:     400,
			py:     300,
			wantOK: false,
		},
		{
			name:   "plane behind camera misses",
			cam:    perspective(rl.NewVector3(0, 5, 10), rl.NewVector3(0, 10, 0)),
			px:     400,
			py:     300,
			wantOK: false,
		},
		{
			name:   "camera looking along up vector is degenerate",
			cam:    perspective(rl.NewVector3(0, 10, 0), rl.NewVector3(0, 0, 0)),
			px:     400,
			py:     300,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.px, tt.py, tt.cam, vp, tt.plane, courtBounds)
			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.InDelta(t, tt.want.X, got.X, 1e-3)
			assert.Equal(t, tt.plane.Height, got.Y)
			assert.InDelta(t, tt.want.Z, got.Z, 1e-3)
		})
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	cam := perspective(rl.NewVector3(0, 18, 22), rl.NewVector3(0, 0, 0))
	vp := Viewport{Width: 1280, Height: 720}

	first, ok := Resolve(317, 412, cam, vp, Plane{}, courtBounds)
	require.True(t, ok)
	for i := 0; i < 10; i++ {
		again, ok := Resolve(317, 412, cam, vp, Plane{}, courtBounds)
		require.True(t, ok)
		assert.Equal(t, first, again)
	}
}

func TestResolveStaysInsideBounds(t *testing.T) {
	cam := perspective(rl.NewVector3(0, 18, 22), rl.NewVector3(0, 0, 0))
	vp := Viewport{Width: 640, Height: 480}

	for x := float32(0); x <= 640; x += 40 {
		for y := float32(0); y <= 480; y += 40 {
			p, ok := Resolve(x, y, cam, vp, Plane{}, courtBounds)
			if !ok {
				continue
			}
			assert.True(t, courtBounds.Contains(p), "point %v outside bounds", p)
		}
	}
}

func TestResolveScreenEdgesMoveAcrossCourt(t *testing.T) {
	cam := perspective(rl.NewVector3(0, 18, 22), rl.NewVector3(0, 0, 0))
	vp := Viewport{Width: 800, Height: 600}

	left, ok := Resolve(100, 300, cam, vp, Plane{}, courtBounds)
	require.True(t, ok)
	right, ok := Resolve(700, 300, cam, vp, Plane{}, courtBounds)
	require.True(t, ok)
	top, ok := Resolve(400, 200, cam, vp, Plane{}, courtBounds)
	require.True(t, ok)

	assert.Less(t, left.X, right.X)
	assert.InDelta(t, -left.X, right.X, 1e-3)
	// Screen up points away from a camera sitting on +Z.
	assert.Less(t, top.Z, float32(0))
}

func TestResolveOrthographic(t *testing.T) {
	cam := rl.Camera3D{
		Position:   rl.NewVector3(0, 20, 0),
		Target:     rl.NewVector3(0, 0, 0),
		Up:         rl.NewVector3(0, 0, -1),
		Fovy:       10,
		Projection: rl.CameraOrthographic,
	}
	vp := Viewport{Width: 400, Height: 400}

	p, ok := Resolve(400, 200, cam, vp, Plane{}, courtBounds)
	require.True(t, ok)
	assert.InDelta(t, 5, p.X, 1e-4)
	assert.InDelta(t, 0, p.Z, 1e-4)
}

func TestResolveDegenerateViewport(t *testing.T) {
	cam := perspective(rl.NewVector3(0, 10, 10), rl.NewVector3(0, 0, 0))
	_, ok := Resolve(1, 1, cam, Viewport{}, Plane{}, courtBounds)
	assert.False(t, ok)
}

func TestMapperUsesViewSource(t *testing.T) {
	view := FixedView{
		Camera:   perspective(rl.NewVector3(0, 10, 10), rl.NewVector3(-3, 0, 1)),
		Viewport: ScreenViewport(1024, 768),
	}
	m := NewMapper(Plane{}, courtBounds, view)

	p, ok := m.Resolve(512, 384)
	require.True(t, ok)
	assert.InDelta(t, -3, p.X, 1e-3)
	assert.InDelta(t, 1, p.Z, 1e-3)
}

func TestBoundsClamp(t *testing.T) {
	p := courtBounds.Clamp(rl.NewVector3(-20, 4, 9))
	assert.Equal(t, rl.NewVector3(-14, 4, 7.5), p)

	w, d := courtBounds.Size()
	assert.Equal(t, float32(28), w)
	assert.Equal(t, float32(15), d)
	assert.True(t, courtBounds.Valid())
	assert.Equal(t, rl.NewVector3(0, 2, 0), courtBounds.Center(2))
}
