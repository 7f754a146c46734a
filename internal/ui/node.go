package ui

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Node is a single UI element: panel, label or button. It has optional classes and id for CSS matching,
// bounds (position and size), optional text, and inline properties applied after the stylesheet.
type Node struct {
	Type   string // "panel", "label", "button"
	Class  string // space-separated, e.g. "button active"
	ID     string // e.g. "undo" for #undo
	Bounds rl.Rectangle
	Text   string
	Props  map[string]string // inline style, wins over the stylesheet
}

// NewNode creates a node with type and optional class, id, and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{Type: typ, Class: class, ID: id, Text: text}
}

// HasClass reports whether class is one of the node's classes.
func (n *Node) HasClass(class string) bool {
	for _, c := range strings.Fields(n.Class) {
		if c == class {
			return true
		}
	}
	return false
}

// SetClass adds or removes class. Reports whether the class list changed.
func (n *Node) SetClass(class string, on bool) bool {
	if n.HasClass(class) == on {
		return false
	}
	if on {
		n.Class = strings.TrimSpace(n.Class + " " + class)
		return true
	}
	kept := strings.Fields(n.Class)[:0]
	for _, c := range strings.Fields(n.Class) {
		if c != class {
			kept = append(kept, c)
		}
	}
	n.Class = strings.Join(kept, " ")
	return true
}

// Contains reports whether the screen point lies inside the node bounds.
func (n *Node) Contains(x, y float32) bool {
	b := n.Bounds
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}
