package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSS(t *testing.T) {
	sheet := ParseCSS(`
/* toolbar */
.button, #undo { background: #333; Color: #fff; }
div { color: #f00; }
.a .b { color: #0f0; }
#save {
  width: 80px;
  left: 50%;
}
.broken { color: #fff
`)
	require.Len(t, sheet.Rules, 3)
	assert.Equal(t, ".button", sheet.Rules[0].Selector)
	assert.Equal(t, "#undo", sheet.Rules[1].Selector)
	assert.Equal(t, map[string]string{"background": "#333", "color": "#fff"}, sheet.Rules[0].Props)
	assert.Equal(t, map[string]string{"width": "80px", "left": "50%"}, sheet.Rules[2].Props)

	sheet.Rules[0].Props["color"] = "#000"
	assert.Equal(t, "#fff", sheet.Rules[1].Props["color"], "selector lists do not share maps")
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want rl.Color
		ok   bool
	}{
		{"#fff", rl.NewColor(255, 255, 255, 255), true},
		{"#e74c3c", rl.NewColor(0xe7, 0x4c, 0x3c, 255), true},
		{" #4B82F0 ", rl.NewColor(0x4b, 0x82, 0xf0, 255), true},
		{"#1e1e1ee6", rl.NewColor(0x1e, 0x1e, 0x1e, 0xe6), true},
		{"#12345", rl.Black, false},
		{"#zzzzzz", rl.Black, false},
		{"red", rl.Black, false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseHexColor(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveProps(t *testing.T) {
	s := ResolveProps(map[string]string{
		"background": "#102030",
		"border":     "#fff",
		"width":      "120px",
		"height":     "36",
		"left":       "50%",
		"top":        "10",
		"padding":    "6",
		"font-size":  "18",
	})
	assert.Equal(t, rl.NewColor(0x10, 0x20, 0x30, 255), s.Background)
	assert.True(t, s.HasBorder)
	assert.Equal(t, int32(120), s.Width)
	assert.Equal(t, int32(36), s.Height)
	assert.Equal(t, int32(50), s.LeftPct)
	assert.Equal(t, int32(-1), s.TopPct)
	assert.Equal(t, int32(10), s.Top)
	assert.True(t, s.Positioned)
	assert.Equal(t, int32(6), s.Padding)
	assert.Equal(t, int32(18), s.FontSize)

	d := ResolveProps(map[string]string{"border": "none", "padding": "-3"})
	assert.False(t, d.HasBorder)
	assert.False(t, d.Positioned)
	assert.Equal(t, int32(4), d.Padding)
}

func TestNodeClasses(t *testing.T) {
	n := NewNode("button", "button", "undo", "Undo")
	assert.True(t, n.SetClass("active", true))
	assert.False(t, n.SetClass("active", true))
	assert.Equal(t, "button active", n.Class)
	assert.True(t, n.HasClass("active"))
	assert.True(t, n.SetClass("active", false))
	assert.Equal(t, "button", n.Class)
}

func TestEngineInlinePropsWin(t *testing.T) {
	e := New()
	e.SetStylesheet(ParseCSS(`.role { background: #000; color: #fff; } #role-1 { width: 40; left: 100%; top: 0; }`))
	n := NewNode("button", "role", "role-1", "1")
	n.Bounds.Height = 30
	n.Props = map[string]string{"background": "#e74c3c"}
	e.SetNodes([]*Node{n})
	e.Layout(800, 600)

	st := e.Style(0)
	assert.Equal(t, rl.NewColor(0xe7, 0x4c, 0x3c, 255), st.Background)
	assert.Equal(t, rl.White, st.Color)
	assert.Equal(t, rl.Rectangle{X: 760, Y: 0, Width: 40, Height: 30}, n.Bounds)
	assert.Same(t, n, e.HitTest(770, 10))
	assert.Nil(t, e.HitTest(10, 10))
}

func center(n *Node) (float32, float32) {
	return n.Bounds.X + n.Bounds.Width/2, n.Bounds.Y + n.Bounds.Height/2
}

func TestToolbarClicks(t *testing.T) {
	tb := NewToolbar([]string{"#e74c3c", "#f39c12"}, "#4b82f0")
	tb.Layout(1280, 720)

	tests := []struct {
		node *Node
		want Action
	}{
		{tb.tools[1], Action{Kind: ActionTool, Tool: "draw"}},
		{tb.tools[2], Action{Kind: ActionTool, Tool: "navigate"}},
		{tb.roles[3], Action{Kind: ActionRole, Role: 4}},
		{tb.undo, Action{Kind: ActionUndo}},
		{tb.clear, Action{Kind: ActionClear}},
		{tb.save, Action{Kind: ActionSave}},
		{tb.load, Action{Kind: ActionLoadMenu}},
	}
	for _, tc := range tests {
		x, y := center(tc.node)
		got, ok := tb.Click(x, y)
		require.True(t, ok, tc.node.ID)
		assert.Equal(t, tc.want, got)
	}

	assert.Equal(t, "#f39c12", tb.roles[1].Props["background"])
	assert.Equal(t, "#4b82f0", tb.roles[4].Props["background"])

	_, ok := tb.Click(640, 400)
	assert.False(t, ok)
	assert.True(t, tb.Contains(640, 10))
	assert.False(t, tb.Contains(640, 400))
}

func TestToolbarLoadMenu(t *testing.T) {
	tb := NewToolbar(nil, "#4b82f0")
	tb.Layout(1280, 720)
	tb.SetSaved([]string{"box", "horns"})

	x, y := center(tb.load)
	_, ok := tb.Click(x, y+80)
	assert.False(t, ok, "menu closed: nothing below the bar")

	tb.SetLoadMenu(true)
	require.True(t, tb.LoadMenuOpen())
	x, y = center(tb.plays[1])
	assert.True(t, tb.Contains(x, y))
	got, ok := tb.Click(x, y)
	require.True(t, ok)
	assert.Equal(t, Action{Kind: ActionLoad, Name: "horns"}, got)
	assert.False(t, tb.LoadMenuOpen(), "choosing a play closes the menu")

	tb.SetLoadMenu(true)
	tb.Click(640, 400)
	assert.False(t, tb.LoadMenuOpen(), "clicking elsewhere closes the menu")
}

func TestToolbarActive(t *testing.T) {
	tb := NewToolbar(nil, "#4b82f0")
	tb.SetTool("draw")
	tb.SetRole(2)
	assert.True(t, tb.tools[1].HasClass("active"))
	assert.False(t, tb.tools[0].HasClass("active"))
	assert.True(t, tb.roles[1].HasClass("active"))

	tb.SetTool("place")
	assert.False(t, tb.tools[1].HasClass("active"))
	assert.True(t, tb.tools[0].HasClass("active"))
}

func TestStatusText(t *testing.T) {
	s := NewStatus()
	s.Update(StatusInfo{Tool: "draw", Role: 3, Markers: 2, Strokes: 1, Undo: 4, Drawing: true, Backend: "files"})
	assert.Equal(t, "Tool: draw (drawing)", s.tool.Text)
	assert.Equal(t, "Role: 3", s.role.Text)
	assert.Equal(t, "Players: 2  Lines: 1", s.board.Text)
	assert.Equal(t, "Undo: 4  Store: files", s.history.Text)

	s.Layout(1280, 720)
	assert.True(t, s.Contains(20, 700))
	assert.False(t, s.Contains(600, 300))
}
