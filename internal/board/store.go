package board

import (
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/jinzhu/copier"

	"playboard/internal/surface"
)

// DefaultMinSegment is the minimum distance between consecutive stroke samples.
const DefaultMinSegment = 0.15

// Options configures a Store. Zero MinSegment means DefaultMinSegment; nil Palette means DefaultPalette.
type Options struct {
	Bounds     surface.Bounds
	MinSegment float32
	Palette    []string
}

// Store owns every marker and stroke on the board plus the stroke being drawn.
// All points are clamped to the court bounds on insertion. Observers are notified synchronously.
type Store struct {
	bounds     surface.Bounds
	minSegment float32
	palette    []string

	markers map[int]*Marker
	strokes []Stroke
	nextID  int

	candidate []rl.Vector3
	drawing   bool

	observers []Observer
}

// New returns an empty store.
func New(opts Options) *Store {
	if opts.MinSegment <= 0 {
		opts.MinSegment = DefaultMinSegment
	}
	if opts.Palette == nil {
		opts.Palette = DefaultPalette
	}
	return &Store{
		bounds:     opts.Bounds,
		minSegment: opts.MinSegment,
		palette:    opts.Palette,
		markers:    make(map[int]*Marker),
		nextID:     1,
	}
}

// Subscribe adds an observer. Observers are called in subscription order.
func (s *Store) Subscribe(o Observer) {
	s.observers = append(s.observers, o)
}

func (s *Store) notify(c Change) {
	for _, o := range s.observers {
		o.BoardChanged(c)
	}
}

// Bounds returns the court rectangle points are clamped to.
func (s *Store) Bounds() surface.Bounds {
	return s.bounds
}

// PlaceOrMove creates the marker for number at p, or moves the existing one there.
// Returns MarkerAdded for a creation and MarkerMoved (with the old position) for a move.
func (s *Store) PlaceOrMove(number int, p rl.Vector3) Action {
	p = s.bounds.Clamp(p)
	if m, ok := s.markers[number]; ok {
		prev := m.Position
		m.Position = p
		s.notify(Change{Kind: MarkerRelocated, Number: number})
		return MarkerMoved{Number: number, Previous: prev}
	}
	m := &Marker{Number: number, Position: p, Color: ColorFor(number, s.palette)}
	s.markers[number] = m
	var snap Marker
	_ = copier.Copy(&snap, m)
	s.notify(Change{Kind: MarkerCreated, Number: number})
	return MarkerAdded{Number: number, Snapshot: snap}
}

// RelocateMarker moves an existing marker without producing an action. No-op if absent.
func (s *Store) RelocateMarker(number int, p rl.Vector3) {
	m, ok := s.markers[number]
	if !ok {
		return
	}
	m.Position = s.bounds.Clamp(p)
	s.notify(Change{Kind: MarkerRelocated, Number: number})
}

// RemoveMarker deletes the marker for number. No-op if absent.
func (s *Store) RemoveMarker(number int) {
	if _, ok := s.markers[number]; !ok {
		return
	}
	delete(s.markers, number)
	s.notify(Change{Kind: MarkerDeleted, Number: number})
}

// RestoreMarker inserts m directly, replacing any marker with the same number. An empty color is derived
// from the palette. Used when loading a saved play.
func (s *Store) RestoreMarker(m Marker) {
	if m.Color == "" {
		m.Color = ColorFor(m.Number, s.palette)
	}
	m.Position = s.bounds.Clamp(m.Position)
	_, existed := s.markers[m.Number]
	s.markers[m.Number] = &m
	if existed {
		s.notify(Change{Kind: MarkerRelocated, Number: m.Number})
		return
	}
	s.notify(Change{Kind: MarkerCreated, Number: m.Number})
}

// Marker returns a copy of the marker for number.
func (s *Store) Marker(number int) (Marker, bool) {
	m, ok := s.markers[number]
	if !ok {
		return Marker{}, false
	}
	return *m, true
}

// Markers returns copies of all markers ordered by number.
func (s *Store) Markers() []Marker {
	out := make([]Marker, 0, len(s.markers))
	for _, m := range s.markers {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// MarkerCount returns the number of live markers.
func (s *Store) MarkerCount() int {
	return len(s.markers)
}

// BeginStroke starts a new candidate stroke at p, dropping any previous uncommitted candidate.
func (s *Store) BeginStroke(p rl.Vector3) {
	s.candidate = append(s.candidate[:0], s.bounds.Clamp(p))
	s.drawing = true
	s.notify(Change{Kind: CandidateChanged})
}

// ExtendStroke appends p to the candidate when it lies at least MinSegment away from the last sample.
// Reports whether the point was appended.
func (s *Store) ExtendStroke(p rl.Vector3) bool {
	if !s.drawing || len(s.candidate) == 0 {
		return false
	}
	p = s.bounds.Clamp(p)
	last := s.candidate[len(s.candidate)-1]
	if rl.Vector3Distance(last, p) < s.minSegment {
		return false
	}
	s.candidate = append(s.candidate, p)
	s.notify(Change{Kind: CandidateChanged})
	return true
}

// FinalizeStroke ends the candidate. Candidates with fewer than 2 points are discarded and ok is false;
// otherwise the stroke is committed and a StrokeAdded action returned.
func (s *Store) FinalizeStroke() (Action, bool) {
	if !s.drawing {
		return nil, false
	}
	pts := s.candidate
	s.candidate = nil
	s.drawing = false
	if len(pts) < 2 {
		s.notify(Change{Kind: CandidateChanged})
		return nil, false
	}
	id := s.nextID
	s.nextID++
	s.strokes = append(s.strokes, Stroke{ID: id, Points: pts})
	s.notify(Change{Kind: StrokeCommitted, StrokeID: id})
	return StrokeAdded{ID: id}, true
}

// CancelStroke drops the candidate without committing it.
func (s *Store) CancelStroke() {
	if !s.drawing {
		return
	}
	s.candidate = nil
	s.drawing = false
	s.notify(Change{Kind: CandidateChanged})
}

// StrokeInProgress reports whether a candidate stroke is being drawn.
func (s *Store) StrokeInProgress() bool {
	return s.drawing
}

// Candidate returns a copy of the points sampled so far for the stroke in progress.
func (s *Store) Candidate() []rl.Vector3 {
	if !s.drawing {
		return nil
	}
	out := make([]rl.Vector3, len(s.candidate))
	copy(out, s.candidate)
	return out
}

// RestoreStroke commits a stroke directly, bypassing sampling. Strokes with fewer than 2 points are ignored.
// Returns the new stroke id, or 0 when ignored.
func (s *Store) RestoreStroke(points []rl.Vector3) int {
	if len(points) < 2 {
		return 0
	}
	pts := make([]rl.Vector3, len(points))
	for i, p := range points {
		pts[i] = s.bounds.Clamp(p)
	}
	id := s.nextID
	s.nextID++
	s.strokes = append(s.strokes, Stroke{ID: id, Points: pts})
	s.notify(Change{Kind: StrokeCommitted, StrokeID: id})
	return id
}

// RemoveStroke deletes the stroke with the given id. No-op if absent.
func (s *Store) RemoveStroke(id int) {
	for i := range s.strokes {
		if s.strokes[i].ID != id {
			continue
		}
		s.strokes = append(s.strokes[:i], s.strokes[i+1:]...)
		s.notify(Change{Kind: StrokeDeleted, StrokeID: id})
		return
	}
}

// Strokes returns the committed strokes in insertion order. The point slices are shared and must not be modified.
func (s *Store) Strokes() []Stroke {
	out := make([]Stroke, len(s.strokes))
	copy(out, s.strokes)
	return out
}

// StrokeCount returns the number of committed strokes.
func (s *Store) StrokeCount() int {
	return len(s.strokes)
}

// Clear removes every marker, stroke and the candidate.
func (s *Store) Clear() {
	s.markers = make(map[int]*Marker)
	s.strokes = nil
	s.candidate = nil
	s.drawing = false
	s.notify(Change{Kind: Cleared})
}

// Snapshot returns a deep copy of the board contents.
func (s *Store) Snapshot() Snapshot {
	src := Snapshot{Markers: s.Markers(), Strokes: s.strokes}
	var out Snapshot
	_ = copier.CopyWithOption(&out, &src, copier.Option{DeepCopy: true})
	if out.Markers == nil {
		out.Markers = []Marker{}
	}
	if out.Strokes == nil {
		out.Strokes = []Stroke{}
	}
	return out
}
