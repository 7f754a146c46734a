package board

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playboard/internal/surface"
)

var testBounds = surface.Bounds{MinX: -14, MaxX: 14, MinZ: -7.5, MaxZ: 7.5}

func newTestStore() *Store {
	return New(Options{Bounds: testBounds})
}

func v(x, y, z float32) rl.Vector3 { return rl.NewVector3(x, y, z) }

func TestPlaceOrMoveCreatesThenMoves(t *testing.T) {
	s := newTestStore()

	a := s.PlaceOrMove(2, v(0, 0, 0))
	added, ok := a.(MarkerAdded)
	require.True(t, ok)
	assert.Equal(t, 2, added.Number)
	assert.Equal(t, v(0, 0, 0), added.Snapshot.Position)
	assert.Equal(t, "#f39c12", added.Snapshot.Color)

	a = s.PlaceOrMove(2, v(1, 0, 1))
	moved, ok := a.(MarkerMoved)
	require.True(t, ok)
	assert.Equal(t, v(0, 0, 0), moved.Previous)
	assert.Equal(t, KindMove, a.Kind())

	m, ok := s.Marker(2)
	require.True(t, ok)
	assert.Equal(t, v(1, 0, 1), m.Position)
	assert.Equal(t, 1, s.MarkerCount())
}

func TestOneMarkerPerNumber(t *testing.T) {
	s := newTestStore()
	positions := []rl.Vector3{v(1, 0, 1), v(-3, 0, 2), v(5, 0, -4), v(0, 0, 0)}
	for _, p := range positions {
		s.PlaceOrMove(3, p)
	}

	markers := s.Markers()
	require.Len(t, markers, 1)
	assert.Equal(t, 3, markers[0].Number)
	assert.Equal(t, positions[len(positions)-1], markers[0].Position)
}

func TestPlacementIsClamped(t *testing.T) {
	s := newTestStore()
	s.PlaceOrMove(1, v(40, 0, -40))

	m, _ := s.Marker(1)
	assert.Equal(t, v(14, 0, -7.5), m.Position)
}

func TestMarkerColors(t *testing.T) {
	s := newTestStore()
	for n := 1; n <= 6; n++ {
		s.PlaceOrMove(n, v(float32(n), 0, 0))
	}
	want := append(append([]string{}, DefaultPalette...), FallbackColor)
	for i, m := range s.Markers() {
		assert.Equal(t, want[i], m.Color, "marker %d", m.Number)
	}
}

func TestStrokeSampling(t *testing.T) {
	s := newTestStore()
	s.BeginStroke(v(0, 0, 0))
	require.True(t, s.StrokeInProgress())

	assert.False(t, s.ExtendStroke(v(0, 0, 0)), "same point twice")
	assert.False(t, s.ExtendStroke(v(0.1, 0, 0)), "below minimum distance")
	assert.True(t, s.ExtendStroke(v(1, 0, 0)))
	assert.False(t, s.ExtendStroke(v(1, 0, 0)), "jitter on the last sample")
	assert.True(t, s.ExtendStroke(v(2, 0, 0)))

	a, ok := s.FinalizeStroke()
	require.True(t, ok)
	assert.Equal(t, StrokeAdded{ID: 1}, a)
	assert.False(t, s.StrokeInProgress())

	strokes := s.Strokes()
	require.Len(t, strokes, 1)
	assert.Equal(t, []rl.Vector3{v(0, 0, 0), v(1, 0, 0), v(2, 0, 0)}, strokes[0].Points)
}

func TestShortStrokeIsDiscarded(t *testing.T) {
	s := newTestStore()
	s.BeginStroke(v(1, 0, 1))
	s.ExtendStroke(v(1.05, 0, 1))

	a, ok := s.FinalizeStroke()
	assert.False(t, ok)
	assert.Nil(t, a)
	assert.Zero(t, s.StrokeCount())
	assert.Nil(t, s.Candidate())
}

func TestFinalizeWithoutStroke(t *testing.T) {
	s := newTestStore()
	_, ok := s.FinalizeStroke()
	assert.False(t, ok)
}

func TestExtendWithoutBeginIsIgnored(t *testing.T) {
	s := newTestStore()
	assert.False(t, s.ExtendStroke(v(3, 0, 3)))
	assert.False(t, s.StrokeInProgress())
}

func TestCancelStroke(t *testing.T) {
	s := newTestStore()
	s.BeginStroke(v(0, 0, 0))
	s.ExtendStroke(v(2, 0, 0))
	s.CancelStroke()

	assert.False(t, s.StrokeInProgress())
	assert.Zero(t, s.StrokeCount())
}

func TestStrokePointsAreClamped(t *testing.T) {
	s := newTestStore()
	s.BeginStroke(v(-30, 0, 0))
	s.ExtendStroke(v(30, 0, 30))
	s.FinalizeStroke()

	for _, st := range s.Strokes() {
		for _, p := range st.Points {
			assert.True(t, testBounds.Contains(p), "point %v outside bounds", p)
		}
	}
}

func TestStrokeIDsFollowInsertionOrder(t *testing.T) {
	s := newTestStore()
	for i := 0; i < 3; i++ {
		s.BeginStroke(v(0, 0, float32(i)))
		s.ExtendStroke(v(1, 0, float32(i)))
		s.FinalizeStroke()
	}
	s.RemoveStroke(2)

	var ids []int
	for _, st := range s.Strokes() {
		ids = append(ids, st.ID)
	}
	assert.Equal(t, []int{1, 3}, ids)

	s.RemoveStroke(42)
	assert.Equal(t, 2, s.StrokeCount())
}

func TestRemoveAndRelocateAbsentAreNoops(t *testing.T) {
	s := newTestStore()
	var changes []Change
	s.Subscribe(ObserverFunc(func(c Change) { changes = append(changes, c) }))

	s.RemoveMarker(4)
	s.RelocateMarker(4, v(1, 0, 1))
	s.RemoveStroke(1)

	assert.Empty(t, changes)
}

func TestClear(t *testing.T) {
	s := newTestStore()
	s.PlaceOrMove(1, v(1, 0, 1))
	s.BeginStroke(v(0, 0, 0))
	s.ExtendStroke(v(3, 0, 0))
	s.FinalizeStroke()
	s.BeginStroke(v(0, 0, 2))

	s.Clear()

	assert.Zero(t, s.MarkerCount())
	assert.Zero(t, s.StrokeCount())
	assert.False(t, s.StrokeInProgress())
}

func TestObserversSeeChangesSynchronously(t *testing.T) {
	s := newTestStore()
	var kinds []ChangeKind
	s.Subscribe(ObserverFunc(func(c Change) {
		kinds = append(kinds, c.Kind)
		if c.Kind == MarkerCreated {
			_, ok := s.Marker(c.Number)
			assert.True(t, ok, "marker visible while notified")
		}
	}))

	s.PlaceOrMove(1, v(0, 0, 0))
	s.PlaceOrMove(1, v(1, 0, 0))
	s.RemoveMarker(1)
	s.BeginStroke(v(0, 0, 0))
	s.ExtendStroke(v(1, 0, 0))
	s.FinalizeStroke()
	s.RemoveStroke(1)
	s.Clear()

	assert.Equal(t, []ChangeKind{
		MarkerCreated, MarkerRelocated, MarkerDeleted,
		CandidateChanged, CandidateChanged, StrokeCommitted, StrokeDeleted,
		Cleared,
	}, kinds)
}

func TestRestore(t *testing.T) {
	s := newTestStore()
	s.RestoreMarker(Marker{Number: 2, Position: v(0, 0, 0)})
	s.RestoreMarker(Marker{Number: 7, Position: v(50, 0, 0), Color: "#ffffff"})

	m2, _ := s.Marker(2)
	assert.Equal(t, "#f39c12", m2.Color)
	m7, _ := s.Marker(7)
	assert.Equal(t, "#ffffff", m7.Color)
	assert.Equal(t, v(14, 0, 0), m7.Position)

	assert.Zero(t, s.RestoreStroke([]rl.Vector3{v(0, 0, 0)}))
	id := s.RestoreStroke([]rl.Vector3{v(0, 0, 0), v(1, 0, 1)})
	assert.Equal(t, 1, id)
	assert.Equal(t, 1, s.StrokeCount())
}

func TestSnapshotIsDetached(t *testing.T) {
	s := newTestStore()
	s.PlaceOrMove(1, v(1, 0, 1))
	s.BeginStroke(v(0, 0, 0))
	s.ExtendStroke(v(2, 0, 0))
	s.FinalizeStroke()

	snap := s.Snapshot()
	require.Len(t, snap.Markers, 1)
	require.Len(t, snap.Strokes, 1)

	snap.Markers[0].Position = v(9, 9, 9)
	snap.Strokes[0].Points[0] = v(9, 9, 9)

	m, _ := s.Marker(1)
	assert.Equal(t, v(1, 0, 1), m.Position)
	assert.Equal(t, v(0, 0, 0), s.Strokes()[0].Points[0])
}

func TestSnapshotOfEmptyStore(t *testing.T) {
	snap := newTestStore().Snapshot()
	assert.NotNil(t, snap.Markers)
	assert.NotNil(t, snap.Strokes)
	assert.Empty(t, snap.Markers)
	assert.Empty(t, snap.Strokes)
}

func TestActionKindString(t *testing.T) {
	assert.Equal(t, "add", KindAdd.String())
	assert.Equal(t, "move", KindMove.String())
	assert.Equal(t, "stroke", KindStroke.String())
	assert.Equal(t, "ActionKind(9)", ActionKind(9).String())
}
