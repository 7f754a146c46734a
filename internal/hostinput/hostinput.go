// Package hostinput turns raylib's polled mouse and keyboard state into pointer events and command lines.
package hostinput

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"playboard/internal/interaction"
)

// Frame is the mouse state sampled once per frame.
type Frame struct {
	X, Y     float32
	Pressed  bool // left button went down this frame
	Down     bool
	Released bool
	OnScreen bool
	At       time.Duration
}

// Poll reads the current mouse state from raylib.
func Poll() Frame {
	p := rl.GetMousePosition()
	return Frame{
		X:        p.X,
		Y:        p.Y,
		Pressed:  rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		Down:     rl.IsMouseButtonDown(rl.MouseButtonLeft),
		Released: rl.IsMouseButtonReleased(rl.MouseButtonLeft),
		OnScreen: rl.IsCursorOnScreen(),
		At:       time.Duration(rl.GetTime() * float64(time.Second)),
	}
}

// Translator diffs consecutive frames into pointer events.
type Translator struct {
	lastX, lastY float32
	onScreen     bool
	primed       bool
}

// Translate returns the events for f in delivery order. overUI drops a press that lands on the UI;
// move, up and leave are still delivered so a stroke in progress always ends.
func (t *Translator) Translate(f Frame, overUI bool) []interaction.PointerEvent {
	var out []interaction.PointerEvent
	ev := func(typ interaction.EventType) {
		out = append(out, interaction.PointerEvent{Type: typ, X: f.X, Y: f.Y, At: f.At})
	}

	if t.primed && t.onScreen && !f.OnScreen {
		ev(interaction.PointerLeave)
	}
	if f.OnScreen {
		if f.Pressed && !overUI {
			ev(interaction.PointerDown)
		}
		if t.primed && (f.X != t.lastX || f.Y != t.lastY) {
			ev(interaction.PointerMove)
		}
		if f.Released {
			ev(interaction.PointerUp)
		}
	}

	t.lastX, t.lastY = f.X, f.Y
	t.onScreen = f.OnScreen
	t.primed = true
	return out
}

// Keys is the keyboard state the shortcuts need.
type Keys struct {
	Pressed func(key int32) bool
	Ctrl    bool
}

// PollKeys reads modifier state from raylib. Ctrl includes Cmd on macOS.
func PollKeys() Keys {
	return Keys{
		Pressed: rl.IsKeyPressed,
		Ctrl: rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
			rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper),
	}
}

var toolKeys = []struct {
	key  int32
	line string
}{
	{rl.KeyP, "tool place"},
	{rl.KeyD, "tool draw"},
	{rl.KeyN, "tool navigate"},
}

var roleKeys = []struct {
	key  int32
	line string
}{
	{rl.KeyOne, "role 1"},
	{rl.KeyTwo, "role 2"},
	{rl.KeyThree, "role 3"},
	{rl.KeyFour, "role 4"},
	{rl.KeyFive, "role 5"},
}

// Shortcuts returns the command lines bound to the keys pressed this frame.
// Ctrl+Z is undo; with Ctrl held the letter and digit bindings are ignored.
func Shortcuts(k Keys) []string {
	if k.Pressed == nil {
		return nil
	}
	if k.Ctrl {
		if k.Pressed(rl.KeyZ) {
			return []string{"undo"}
		}
		return nil
	}
	var out []string
	for _, b := range toolKeys {
		if k.Pressed(b.key) {
			out = append(out, b.line)
		}
	}
	for _, b := range roleKeys {
		if k.Pressed(b.key) || k.Pressed(b.key-rl.KeyZero+rl.KeyKp0) {
			out = append(out, b.line)
		}
	}
	return out
}
