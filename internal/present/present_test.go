package present

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playboard/internal/board"
)

func camAt(pos rl.Vector3, fov float32) rl.Camera3D {
	return rl.Camera3D{
		Position:   pos,
		Target:     rl.NewVector3(0, 0, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       fov,
		Projection: rl.CameraPerspective,
	}
}

func TestLabelScale(t *testing.T) {
	// fov 90: tan(45°) = 1, so scale = 2·d/H·px.
	cam := camAt(rl.NewVector3(0, 10, 0), 90)

	tests := []struct {
		name   string
		target rl.Vector3
		h, px  float32
		want   float32
	}{
		{"ten units away", rl.NewVector3(0, 0, 0), 1000, 36, 0.72},
		{"twice as far doubles", rl.NewVector3(0, -10, 0), 1000, 36, 1.44},
		{"taller surface shrinks", rl.NewVector3(0, 0, 0), 2000, 36, 0.36},
		{"zero height", rl.NewVector3(0, 0, 0), 0, 36, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, LabelScale(cam, tc.target, tc.h, tc.px), 1e-4)
		})
	}
}

func TestLabelScaleOrthographic(t *testing.T) {
	cam := camAt(rl.NewVector3(0, 50, 0), 20)
	cam.Projection = rl.CameraOrthographic
	assert.InDelta(t, 0.72, LabelScale(cam, rl.NewVector3(0, 0, 0), 1000, 36), 1e-5)
	assert.InDelta(t, 0.72, LabelScale(cam, rl.NewVector3(5, 0, 5), 1000, 36), 1e-5)
}

func TestSyncRecomputesOnlyWhenDirty(t *testing.T) {
	s := NewSync(0)
	cam := camAt(rl.NewVector3(0, 10, 0), 90)
	markers := []board.Marker{{Number: 1, Position: rl.NewVector3(0, 0, 0)}}

	require.True(t, s.Dirty())
	assert.True(t, s.Tick(cam, 1000, markers))
	got, ok := s.Scale(1)
	require.True(t, ok)
	assert.InDelta(t, 0.72, got, 1e-4)

	cam.Position = rl.NewVector3(0, 20, 0)
	assert.False(t, s.Tick(cam, 1000, markers), "no recompute without a change notification")
	got, _ = s.Scale(1)
	assert.InDelta(t, 0.72, got, 1e-4)

	s.MarkDirty()
	assert.True(t, s.Tick(cam, 1000, markers))
	got, _ = s.Scale(1)
	assert.InDelta(t, 1.44, got, 1e-4)
	assert.False(t, s.Dirty())
}

func TestSyncFollowsBoard(t *testing.T) {
	s := NewSync(36)
	store := board.New(board.Options{})
	store.Subscribe(s)
	cam := camAt(rl.NewVector3(0, 10, 0), 90)

	s.Tick(cam, 1000, store.Markers())
	store.PlaceOrMove(3, rl.NewVector3(0, 0, 0))
	require.True(t, s.Dirty())
	s.Tick(cam, 1000, store.Markers())
	_, ok := s.Scale(3)
	assert.True(t, ok)

	store.BeginStroke(rl.NewVector3(0, 0, 0))
	assert.False(t, s.Dirty(), "strokes have no labels")

	store.Clear()
	require.True(t, s.Dirty())
	s.Tick(cam, 1000, store.Markers())
	_, ok = s.Scale(3)
	assert.False(t, ok)
}
