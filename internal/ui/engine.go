package ui

import rl "github.com/gen2brain/raylib-go/raylib"

const defaultFontSize = 20

// Engine holds the current stylesheet and nodes, and draws them with raylib.
// Draw order is node order (first node drawn first, then on top the next).
// Resolved styles are cached and only recomputed when the sheet, the nodes or the screen size change.
// If a font is set (SetFont), text is drawn with that font; otherwise raylib's default (pixel) font is used.
type Engine struct {
	sheet        *Stylesheet
	nodes        []*Node
	cachedStyles []ComputedStyle
	cacheValid   bool
	screenW      int32
	screenH      int32
	font         rl.Font
}

// New creates an empty UI engine (no stylesheet, no nodes).
func New() *Engine {
	return &Engine{}
}

// SetStylesheet sets the stylesheet directly (e.g. from embedded CSS).
func (e *Engine) SetStylesheet(sheet *Stylesheet) {
	e.sheet = sheet
	e.cacheValid = false
}

// SetFont sets the font for node text. The caller owns it. Zero texture ID = use raylib default.
func (e *Engine) SetFont(font rl.Font) {
	e.font = font
}

// SetNodes replaces all nodes.
func (e *Engine) SetNodes(nodes []*Node) {
	e.nodes = nodes
	e.cacheValid = false
}

// Invalidate forces styles to be resolved again, e.g. after a node's classes changed.
func (e *Engine) Invalidate() {
	e.cacheValid = false
}

func (e *Engine) matches(n *Node, sel string) bool {
	if len(sel) < 2 {
		return false
	}
	switch sel[0] {
	case '.':
		return n.HasClass(sel[1:])
	case '#':
		return n.ID == sel[1:]
	}
	return false
}

// resolveProps returns merged properties for a node: matching rules in order, then inline props.
func (e *Engine) resolveProps(n *Node) map[string]string {
	merged := make(map[string]string)
	if e.sheet != nil {
		for _, rule := range e.sheet.Rules {
			if e.matches(n, rule.Selector) {
				for k, v := range rule.Props {
					merged[k] = v
				}
			}
		}
	}
	for k, v := range n.Props {
		merged[k] = v
	}
	return merged
}

// resolveBounds applies size and position from style to n. Percentages are taken of the free space on screen.
func resolveBounds(n *Node, style ComputedStyle, screenW, screenH int32) {
	if style.Width > 0 {
		n.Bounds.Width = float32(style.Width)
	}
	if style.Height > 0 {
		n.Bounds.Height = float32(style.Height)
	}
	if !style.Positioned {
		return
	}
	n.Bounds.X = float32(style.Left)
	n.Bounds.Y = float32(style.Top)
	if style.LeftPct >= 0 {
		n.Bounds.X = float32((screenW - int32(n.Bounds.Width)) * style.LeftPct / 100)
	}
	if style.TopPct >= 0 {
		n.Bounds.Y = float32((screenH - int32(n.Bounds.Height)) * style.TopPct / 100)
	}
}

// Layout resolves styles and bounds for a screen of the given size. Cheap when nothing changed.
func (e *Engine) Layout(screenW, screenH int32) {
	if e.cacheValid && screenW == e.screenW && screenH == e.screenH {
		return
	}
	e.cachedStyles = make([]ComputedStyle, len(e.nodes))
	for i, n := range e.nodes {
		e.cachedStyles[i] = ResolveProps(e.resolveProps(n))
		resolveBounds(n, e.cachedStyles[i], screenW, screenH)
	}
	e.screenW, e.screenH = screenW, screenH
	e.cacheValid = true
}

// Style returns the resolved style of the i-th node. Layout must have run.
func (e *Engine) Style(i int) ComputedStyle {
	if i < 0 || i >= len(e.cachedStyles) {
		return DefaultComputedStyle()
	}
	return e.cachedStyles[i]
}

// HitTest returns the topmost node with an id under the point, or nil.
func (e *Engine) HitTest(x, y float32) *Node {
	for i := len(e.nodes) - 1; i >= 0; i-- {
		n := e.nodes[i]
		if n.ID != "" && n.Contains(x, y) {
			return n
		}
	}
	return nil
}

// Draw lays out for the current screen and draws all nodes: background, border, then text.
func (e *Engine) Draw() {
	e.Layout(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	for i, n := range e.nodes {
		style := e.cachedStyles[i]
		x, y := int32(n.Bounds.X), int32(n.Bounds.Y)
		w, h := int32(n.Bounds.Width), int32(n.Bounds.Height)

		if style.Background.A > 0 {
			rl.DrawRectangle(x, y, w, h, style.Background)
		}
		if style.HasBorder && w > 0 && h > 0 {
			rl.DrawRectangleLines(x, y, w, h, style.Border)
		}
		if n.Text != "" {
			textX := x + style.Padding
			textY := y + style.Padding
			if e.font.Texture.ID != 0 {
				rl.DrawTextEx(e.font, n.Text, rl.NewVector2(float32(textX), float32(textY)), float32(style.FontSize), 1, style.Color)
			} else {
				rl.DrawText(n.Text, textX, textY, style.FontSize, style.Color)
			}
		}
	}
}
