package ui

import (
	_ "embed"
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

//go:embed toolbar.css
var toolbarCSS string

const (
	barMargin    = 8
	buttonGap    = 6
	buttonHeight = 36
	// charWidth approximates the default font's advance at 20px so layout works without a GL context.
	charWidth = 11
	roleWidth = 36
	menuWidth = 220
)

// ActionKind says which control was clicked.
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionTool
	ActionRole
	ActionUndo
	ActionClear
	ActionSave
	ActionLoadMenu
	ActionLoad
)

// Action is the result of a click on the toolbar.
type Action struct {
	Kind ActionKind
	Tool string // ActionTool
	Role int    // ActionRole
	Name string // ActionLoad
}

// ToolNames are the tool button ids in display order.
var ToolNames = []string{"place", "draw", "navigate"}

// Toolbar is the row of controls along the top edge: tools, roles, undo, clear, save and load.
// Load opens a menu of saved play names below the bar.
type Toolbar struct {
	engine *Engine
	bar    *Node
	tools  []*Node
	roles  []*Node
	undo   *Node
	clear  *Node
	save   *Node
	load   *Node

	menu     *Node
	plays    []*Node
	menuOpen bool

	status *Status

	screenW, screenH int32
	dirty            bool
}

// NewToolbar builds the toolbar. palette colors the role buttons; entries past its end use fallback.
func NewToolbar(palette []string, fallback string) *Toolbar {
	t := &Toolbar{
		engine: New(),
		bar:    NewNode("panel", "bar", "", ""),
		undo:   NewNode("button", "button", "undo", "Undo"),
		clear:  NewNode("button", "button", "clear", "Clear"),
		save:   NewNode("button", "button", "save", "Save"),
		load:   NewNode("button", "button", "load", "Load"),
		menu:   NewNode("panel", "menu", "", ""),
		status: NewStatus(),
	}
	for _, name := range ToolNames {
		t.tools = append(t.tools, NewNode("button", "button", "tool-"+name, strings.ToUpper(name[:1])+name[1:]))
	}
	for i := 1; i <= 5; i++ {
		color := fallback
		if i <= len(palette) && palette[i-1] != "" {
			color = palette[i-1]
		}
		n := NewNode("button", "role", "role-"+strconv.Itoa(i), strconv.Itoa(i))
		n.Props = map[string]string{"background": color}
		t.roles = append(t.roles, n)
	}
	t.engine.SetStylesheet(ParseCSS(toolbarCSS))
	t.rebuild()
	return t
}

// Status returns the status panel drawn with the toolbar.
func (t *Toolbar) Status() *Status {
	return t.status
}

func (t *Toolbar) rebuild() {
	nodes := []*Node{t.bar}
	nodes = append(nodes, t.tools...)
	nodes = append(nodes, t.roles...)
	nodes = append(nodes, t.undo, t.clear, t.save, t.load)
	if t.menuOpen {
		nodes = append(nodes, t.menu)
		nodes = append(nodes, t.plays...)
	}
	nodes = t.status.AppendNodes(nodes)
	t.engine.SetNodes(nodes)
	t.dirty = true
}

func textWidth(s string, pad int32) float32 {
	return float32(len(s)*charWidth) + float32(2*pad)
}

// Layout places every node for a screen of the given size.
func (t *Toolbar) Layout(screenW, screenH int32) {
	if !t.dirty && screenW == t.screenW && screenH == t.screenH {
		return
	}
	x := float32(barMargin)
	y := float32(barMargin)
	place := func(n *Node, w float32) {
		n.Bounds = rl.Rectangle{X: x, Y: y, Width: w, Height: buttonHeight}
		x += w + buttonGap
	}
	for _, n := range t.tools {
		place(n, textWidth(n.Text, 8))
	}
	x += buttonGap * 2
	for _, n := range t.roles {
		place(n, roleWidth)
	}
	x += buttonGap * 2
	for _, n := range []*Node{t.undo, t.clear, t.save, t.load} {
		place(n, textWidth(n.Text, 8))
	}
	t.bar.Bounds = rl.Rectangle{X: 0, Y: 0, Width: float32(screenW), Height: buttonHeight + 2*barMargin}

	menuX := t.load.Bounds.X
	if menuX+menuWidth > float32(screenW) {
		menuX = float32(screenW) - menuWidth
	}
	menuY := t.bar.Bounds.Height
	for i, n := range t.plays {
		n.Bounds = rl.Rectangle{X: menuX + 4, Y: menuY + 4 + float32(i)*(buttonHeight+4), Width: menuWidth - 8, Height: buttonHeight}
	}
	t.menu.Bounds = rl.Rectangle{X: menuX, Y: menuY, Width: menuWidth, Height: float32(len(t.plays))*(buttonHeight+4) + 4}

	t.status.Layout(screenW, screenH)
	t.engine.Layout(screenW, screenH)
	t.screenW, t.screenH = screenW, screenH
	t.dirty = false
}

// SetTool marks the named tool button active.
func (t *Toolbar) SetTool(name string) {
	t.setActive(t.tools, "tool-"+name)
}

// SetRole marks role button n active.
func (t *Toolbar) SetRole(n int) {
	t.setActive(t.roles, "role-"+strconv.Itoa(n))
}

func (t *Toolbar) setActive(group []*Node, id string) {
	changed := false
	for _, n := range group {
		if n.SetClass("active", n.ID == id) {
			changed = true
		}
	}
	if changed {
		t.engine.Invalidate()
	}
}

// SetSaved replaces the names shown in the load menu.
func (t *Toolbar) SetSaved(names []string) {
	t.plays = t.plays[:0]
	for i, name := range names {
		t.plays = append(t.plays, NewNode("button", "play", "play-"+strconv.Itoa(i), name))
	}
	t.rebuild()
}

// LoadMenuOpen reports whether the saved-play menu is showing.
func (t *Toolbar) LoadMenuOpen() bool {
	return t.menuOpen
}

// SetLoadMenu shows or hides the saved-play menu.
func (t *Toolbar) SetLoadMenu(open bool) {
	if t.menuOpen == open {
		return
	}
	t.menuOpen = open
	t.rebuild()
}

// Contains reports whether the point is over the bar or the open menu; such pointer events belong to the UI.
func (t *Toolbar) Contains(x, y float32) bool {
	t.Layout(t.screenW, t.screenH)
	if t.bar.Contains(x, y) || t.status.Contains(x, y) {
		return true
	}
	return t.menuOpen && t.menu.Contains(x, y)
}

// Click maps a click to an action. Clicking outside the open menu closes it.
func (t *Toolbar) Click(x, y float32) (Action, bool) {
	t.Layout(t.screenW, t.screenH)
	n := t.engine.HitTest(x, y)
	if n == nil {
		if t.menuOpen && !t.menu.Contains(x, y) {
			t.SetLoadMenu(false)
		}
		return Action{}, false
	}
	id := n.ID
	switch {
	case strings.HasPrefix(id, "tool-"):
		return Action{Kind: ActionTool, Tool: strings.TrimPrefix(id, "tool-")}, true
	case strings.HasPrefix(id, "role-"):
		r, _ := strconv.Atoi(strings.TrimPrefix(id, "role-"))
		return Action{Kind: ActionRole, Role: r}, true
	case strings.HasPrefix(id, "play-"):
		t.SetLoadMenu(false)
		return Action{Kind: ActionLoad, Name: n.Text}, true
	case id == "undo":
		return Action{Kind: ActionUndo}, true
	case id == "clear":
		return Action{Kind: ActionClear}, true
	case id == "save":
		return Action{Kind: ActionSave}, true
	case id == "load":
		return Action{Kind: ActionLoadMenu}, true
	}
	return Action{}, false
}

// SetFont sets the font used for button and status text.
func (t *Toolbar) SetFont(font rl.Font) {
	t.engine.SetFont(font)
}

// Draw lays out for the current screen and draws the toolbar, the open menu and the status panel.
func (t *Toolbar) Draw() {
	t.Layout(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	t.engine.Draw()
}
