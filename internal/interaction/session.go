package interaction

import (
	"errors"
	"fmt"
	"strings"

	"playboard/internal/board"
	"playboard/internal/history"
)

// Tool is the active editing tool. Exactly one is active at a time.
type Tool uint8

const (
	ToolPlace Tool = iota
	ToolDraw
	ToolNavigate
)

// MinRole and MaxRole bound the role numbers selectable from the toolbar.
const (
	MinRole = 1
	MaxRole = 5
)

var (
	ErrInvalidRole = errors.New("interaction: invalid role")
	ErrUnknownTool = errors.New("interaction: unknown tool")
)

func (t Tool) String() string {
	switch t {
	case ToolPlace:
		return "place"
	case ToolDraw:
		return "draw"
	case ToolNavigate:
		return "navigate"
	}
	return fmt.Sprintf("Tool(%d)", uint8(t))
}

// ParseTool accepts a tool name ("place", "draw", "navigate"; "move" is an alias of navigate).
func ParseTool(name string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "place":
		return ToolPlace, nil
	case "draw":
		return ToolDraw, nil
	case "navigate", "nav", "move":
		return ToolNavigate, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTool, name)
}

// Session is the editing state of one board: entities, undo log, active tool and role.
type Session struct {
	Store *board.Store
	Log   *history.Log
	Tool  Tool
	Role  int
}

// NewSession returns a session in Place mode with role 1.
func NewSession(store *board.Store, log *history.Log) *Session {
	return &Session{Store: store, Log: log, Tool: ToolPlace, Role: MinRole}
}
