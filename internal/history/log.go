package history

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"playboard/internal/board"
)

// Target is what undo reverses actions against. *board.Store satisfies it.
type Target interface {
	StrokeInProgress() bool
	CancelStroke()
	RemoveMarker(number int)
	RelocateMarker(number int, p rl.Vector3)
	RemoveStroke(id int)
}

// Log is the undo stack: committed, not yet undone actions in insertion order.
type Log struct {
	entries []board.Action
}

// New returns an empty log.
func New() *Log {
	return &Log{}
}

// Push appends a to the top of the stack. Nil actions are ignored.
func (l *Log) Push(a board.Action) {
	if a == nil {
		return
	}
	l.entries = append(l.entries, a)
}

// Undo reverses the most recent action against t and reports whether anything was undone.
// A stroke still being drawn is cancelled instead and the log is left untouched.
func (l *Log) Undo(t Target) bool {
	if t.StrokeInProgress() {
		t.CancelStroke()
		return true
	}
	if len(l.entries) == 0 {
		return false
	}
	last := l.entries[len(l.entries)-1]
	l.entries[len(l.entries)-1] = nil
	l.entries = l.entries[:len(l.entries)-1]
	reverse(t, last)
	return true
}

func reverse(t Target, a board.Action) {
	switch a := a.(type) {
	case board.MarkerAdded:
		t.RemoveMarker(a.Number)
	case board.MarkerMoved:
		t.RelocateMarker(a.Number, a.Previous)
	case board.StrokeAdded:
		t.RemoveStroke(a.ID)
	default:
		panic(fmt.Sprintf("history: unhandled action %T", a))
	}
}

// Peek returns the most recent action without removing it.
func (l *Log) Peek() (board.Action, bool) {
	if len(l.entries) == 0 {
		return nil, false
	}
	return l.entries[len(l.entries)-1], true
}

// Len returns the number of committed, not yet undone actions.
func (l *Log) Len() int {
	return len(l.entries)
}

// Clear drops every entry.
func (l *Log) Clear() {
	l.entries = nil
}
