package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fpsFontSize   = 20
	fpsPadding    = 12
	fpsLineHeight = fpsFontSize + 4
	// topOffset keeps the overlay below the toolbar.
	topOffset = 60
	// updateInterval: only refresh text every N frames to reduce allocations.
	updateInterval = 30
)

// Counts is the board summary shown under FPS.
type Counts struct {
	Markers int
	Strokes int
	Points  int
	Undo    int
}

// Debug holds the runtime overlays (FPS, heap, board counts). All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	// Counts, if set, is sampled with the other text and drawn while ShowFPS is on.
	Counts func() Counts

	frameCount   uint32
	lines        []string
	lastMemStats runtime.MemStats
	font         rl.Font
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetShowFPS sets whether the FPS counter is drawn (top-right, green).
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
	d.lines = nil
}

// SetFont sets the overlay font. Zero texture ID = use raylib default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// SetShowMemAlloc sets whether the heap counter is drawn under FPS.
func (d *Debug) SetShowMemAlloc(show bool) {
	d.ShowMemAlloc = show
	d.lines = nil
}

// Text returns the overlay lines for the given frame rate. Exposed for the terminal and tests.
func (d *Debug) Text(fps int32) []string {
	var out []string
	if d.ShowFPS {
		out = append(out, fmt.Sprintf("FPS: %d", fps))
		if d.Counts != nil {
			c := d.Counts()
			out = append(out, fmt.Sprintf("Players: %d  Lines: %d (%d pts)  Undo: %d", c.Markers, c.Strokes, c.Points, c.Undo))
		}
	}
	if d.ShowMemAlloc {
		runtime.ReadMemStats(&d.lastMemStats)
		out = append(out, fmt.Sprintf("Mem: %.2f MiB", float64(d.lastMemStats.Alloc)/(1024*1024)))
	}
	return out
}

// Draw renders the enabled overlays right-aligned near the top. Text is rebuilt every updateInterval frames.
func (d *Debug) Draw() {
	if !d.ShowFPS && !d.ShowMemAlloc {
		return
	}
	d.frameCount++
	if d.lines == nil || d.frameCount%updateInterval == 0 {
		d.lines = d.Text(rl.GetFPS())
	}
	screenW := int32(rl.GetScreenWidth())
	y := int32(topOffset)
	for _, text := range d.lines {
		if d.font.Texture.ID != 0 {
			w := int32(rl.MeasureTextEx(d.font, text, fpsFontSize, 1).X)
			rl.DrawTextEx(d.font, text, rl.NewVector2(float32(screenW-w-fpsPadding), float32(y)), fpsFontSize, 1, rl.Green)
		} else {
			w := rl.MeasureText(text, fpsFontSize)
			rl.DrawText(text, screenW-w-fpsPadding, y, fpsFontSize, rl.Green)
		}
		y += fpsLineHeight
	}
}
