package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	statusWidth      = 260
	statusLineHeight = 26
	statusMargin     = 8
)

// Status is the bottom-left panel summarising the session: tool, role, board contents and undo depth.
// It owns its nodes and rewrites their text on Update.
type Status struct {
	panel   *Node
	tool    *Node
	role    *Node
	board   *Node
	history *Node
}

// StatusInfo is the data shown in the panel. The editor fills it each frame; ui does not depend on the board.
type StatusInfo struct {
	Tool    string
	Role    int
	Markers int
	Strokes int
	Undo    int
	Drawing bool
	Backend string
}

// NewStatus creates the panel with nodes styled by .status and .status-line.
func NewStatus() *Status {
	return &Status{
		panel:   NewNode("panel", "status", "", ""),
		tool:    NewNode("label", "status-line", "", ""),
		role:    NewNode("label", "status-line", "", ""),
		board:   NewNode("label", "status-line", "", ""),
		history: NewNode("label", "status-line", "", ""),
	}
}

func (s *Status) lines() []*Node {
	return []*Node{s.tool, s.role, s.board, s.history}
}

// Update rewrites the labels from info.
func (s *Status) Update(info StatusInfo) {
	s.tool.Text = "Tool: " + info.Tool
	if info.Drawing {
		s.tool.Text += " (drawing)"
	}
	s.role.Text = fmt.Sprintf("Role: %d", info.Role)
	s.board.Text = fmt.Sprintf("Players: %d  Lines: %d", info.Markers, info.Strokes)
	s.history.Text = fmt.Sprintf("Undo: %d  Store: %s", info.Undo, info.Backend)
}

// Layout pins the panel to the bottom-left corner.
func (s *Status) Layout(screenW, screenH int32) {
	lines := s.lines()
	h := float32(len(lines)*statusLineHeight + 2*statusMargin)
	top := float32(screenH) - h - statusMargin
	s.panel.Bounds = rl.Rectangle{X: statusMargin, Y: top, Width: statusWidth, Height: h}
	for i, n := range lines {
		n.Bounds = rl.Rectangle{X: statusMargin, Y: top + statusMargin/2 + float32(i*statusLineHeight), Width: statusWidth, Height: statusLineHeight}
	}
}

// Contains reports whether the point is over the panel.
func (s *Status) Contains(x, y float32) bool {
	return s.panel.Contains(x, y)
}

// AppendNodes appends the panel nodes to dst in draw order.
func (s *Status) AppendNodes(dst []*Node) []*Node {
	return append(append(dst, s.panel), s.lines()...)
}
