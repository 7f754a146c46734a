package board

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DefaultPalette colors markers by role number (index 0 = role 1).
var DefaultPalette = []string{"#e74c3c", "#f39c12", "#27ae60", "#2980b9", "#8e44ad"}

// FallbackColor is used for role numbers outside the palette.
const FallbackColor = "#4b82f0"

// Marker is a numbered role marker on the court. Number is its identity; at most one Marker per Number.
type Marker struct {
	Number   int
	Position rl.Vector3
	Color    string
}

// Stroke is a finalized freehand polyline. ID is assigned in insertion order. Points are never modified
// once the stroke is committed.
type Stroke struct {
	ID     int
	Points []rl.Vector3
}

// Snapshot is a detached copy of the board contents: markers ordered by number, strokes by id.
type Snapshot struct {
	Markers []Marker
	Strokes []Stroke
}

// ActionKind tags the variants of Action.
type ActionKind uint8

const (
	KindAdd ActionKind = iota + 1
	KindMove
	KindStroke
)

func (k ActionKind) String() string {
	switch k {
	case KindAdd:
		return "add"
	case KindMove:
		return "move"
	case KindStroke:
		return "stroke"
	}
	return fmt.Sprintf("ActionKind(%d)", uint8(k))
}

// Action is one reversible board mutation. The set of variants is closed: MarkerAdded, MarkerMoved and StrokeAdded.
type Action interface {
	Kind() ActionKind
	action()
}

// MarkerAdded records the creation of a marker. Snapshot is a copy of the marker as created.
type MarkerAdded struct {
	Number   int
	Snapshot Marker
}

// MarkerMoved records a relocation; Previous is where the marker stood before.
type MarkerMoved struct {
	Number   int
	Previous rl.Vector3
}

// StrokeAdded records a committed stroke.
type StrokeAdded struct {
	ID int
}

func (MarkerAdded) Kind() ActionKind { return KindAdd }
func (MarkerMoved) Kind() ActionKind { return KindMove }
func (StrokeAdded) Kind() ActionKind { return KindStroke }

func (MarkerAdded) action() {}
func (MarkerMoved) action() {}
func (StrokeAdded) action() {}

// ChangeKind identifies a structural change published to observers.
type ChangeKind uint8

const (
	MarkerCreated ChangeKind = iota + 1
	MarkerRelocated
	MarkerDeleted
	StrokeCommitted
	StrokeDeleted
	CandidateChanged
	Cleared
)

// Change describes one store mutation. Number is set for marker changes, StrokeID for stroke changes.
type Change struct {
	Kind     ChangeKind
	Number   int
	StrokeID int
}

// Observer receives every change synchronously, before the mutating call returns.
type Observer interface {
	BoardChanged(c Change)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(c Change)

// BoardChanged calls f(c).
func (f ObserverFunc) BoardChanged(c Change) { f(c) }

// ColorFor returns the palette color for a role number, or FallbackColor.
func ColorFor(number int, palette []string) string {
	if number >= 1 && number <= len(palette) && palette[number-1] != "" {
		return palette[number-1]
	}
	return FallbackColor
}
