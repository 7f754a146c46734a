package terminal

import (
	"strings"
	"time"
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"playboard/internal/commands"
	"playboard/internal/logger"
)

const (
	BarHeight = 40
	prompt    = "> "
	fontSize  = 20
	padding   = 8
	// Number of log lines drawn above the input bar when the terminal is open.
	maxLinesOnScreen = 14
	lineHeight       = fontSize + 4
	maxLineChars     = 200
	// NoticeDuration is how long a notice banner stays up.
	NoticeDuration = 3 * time.Second
)

var (
	// Reused every frame when drawing the terminal bar to avoid per-frame color allocations.
	termBarColor    = rl.NewColor(40, 40, 40, 255)
	termLineColor   = rl.NewColor(80, 80, 80, 255)
	termChatBgColor = rl.NewColor(24, 24, 24, 240)
	noticeBgColor   = rl.NewColor(20, 20, 20, 200)
)

// Terminal is the command bar at the bottom of the screen. It is shown/hidden with ESC.
// When open it captures the keyboard; each submitted line is run through the command registry.
// Notices are short non-blocking banners shown whether or not the terminal is open.
type Terminal struct {
	log      *logger.Logger
	reg      *commands.Registry
	inputBuf string
	open     bool
	font     rl.Font

	notice      string
	noticeUntil time.Time
	now         func() time.Time
}

// New returns a Terminal that logs lines and runs them through reg. It starts closed.
func New(log *logger.Logger, reg *commands.Registry) *Terminal {
	return &Terminal{log: log, reg: reg, now: time.Now}
}

// IsOpen returns true when the terminal is visible and capturing the keyboard.
func (t *Terminal) IsOpen() bool {
	return t.open
}

// SetFont sets the font used to draw the terminal bar. Zero texture ID = use raylib default.
func (t *Terminal) SetFont(font rl.Font) {
	t.font = font
}

// Prompt opens the terminal with the input prefilled (e.g. "save ").
func (t *Terminal) Prompt(prefill string) {
	t.open = true
	t.inputBuf = prefill
}

// Close hides the terminal and drops any unsent input.
func (t *Terminal) Close() {
	t.open = false
	t.inputBuf = ""
}

// Input returns the text typed so far.
func (t *Terminal) Input() string {
	return t.inputBuf
}

// Notify shows msg as a banner and records it in the log.
func (t *Terminal) Notify(msg string) {
	t.notice = msg
	t.noticeUntil = t.now().Add(NoticeDuration)
	lg := t.log.Component("notice")
	lg.Info().Msg(msg)
}

// Notice returns the banner text while it is still showing.
func (t *Terminal) Notice() (string, bool) {
	if t.notice == "" || !t.now().Before(t.noticeUntil) {
		return "", false
	}
	return t.notice, true
}

// Submit logs line and runs it. Errors become notices.
func (t *Terminal) Submit(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	t.log.Log(line)
	if err := t.reg.ExecuteLine(line); err != nil {
		t.Notify(err.Error())
	}
}

// Update handles ESC (toggle open/closed), and when open: typing, paste, backspace, enter. Call once per frame.
func (t *Terminal) Update() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		if t.open {
			t.Close()
		} else {
			t.open = true
		}
		return
	}
	if !t.open {
		return
	}
	// Paste: Ctrl+V (Windows/Linux) or Cmd+V (macOS)
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		if pasted := rl.GetClipboardText(); pasted != "" {
			t.inputBuf += strings.ReplaceAll(pasted, "\n", " ")
		}
	} else {
		for {
			c := rl.GetCharPressed()
			if c == 0 {
				break
			}
			t.inputBuf += string(rune(c))
		}
	}
	if (rl.IsKeyPressed(rl.KeyBackspace) || rl.IsKeyPressedRepeat(rl.KeyBackspace)) && len(t.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(t.inputBuf)
		t.inputBuf = t.inputBuf[:len(t.inputBuf)-size]
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
		line := t.inputBuf
		t.inputBuf = ""
		t.open = false
		t.Submit(line)
	}
}

func (t *Terminal) text(s string, x, y int, c rl.Color) {
	if t.font.Texture.ID != 0 {
		rl.DrawTextEx(t.font, s, rl.NewVector2(float32(x), float32(y)), float32(fontSize), 1, c)
		return
	}
	rl.DrawText(s, int32(x), int32(y), int32(fontSize), c)
}

// Draw draws the notice banner, and when open the input bar with the recent log lines above it.
func (t *Terminal) Draw() {
	screenW := int(rl.GetScreenWidth())
	screenH := int(rl.GetScreenHeight())
	barY := screenH - BarHeight

	if msg, ok := t.Notice(); ok {
		w := int(rl.MeasureText(msg, fontSize)) + 2*padding
		x := (screenW - w) / 2
		y := barY - lineHeight - 2*padding
		if t.open {
			y = padding * 8
		}
		rl.DrawRectangle(int32(x), int32(y), int32(w), int32(lineHeight+padding), noticeBgColor)
		t.text(msg, x+padding, y+padding/2, rl.RayWhite)
	}
	if !t.open {
		return
	}

	chatHeight := maxLinesOnScreen * lineHeight
	chatY := barY - chatHeight
	if chatY < 0 {
		chatHeight = barY
		chatY = 0
	}
	if chatHeight > 0 {
		rl.DrawRectangle(0, int32(chatY), int32(screenW), int32(chatHeight), termChatBgColor)
	}
	lines := t.log.Lines()
	start := 0
	if len(lines) > maxLinesOnScreen {
		start = len(lines) - maxLinesOnScreen
	}
	for i := start; i < len(lines); i++ {
		y := chatY + (i-start)*lineHeight + padding
		line := lines[i]
		if len(line) > maxLineChars {
			line = line[:maxLineChars-3] + "..."
		}
		t.text(line, padding, y, rl.LightGray)
	}

	rl.DrawRectangle(0, int32(barY), int32(screenW), int32(BarHeight), termBarColor)
	rl.DrawRectangle(0, int32(barY), int32(screenW), 1, termLineColor)
	t.text(prompt+t.inputBuf+"|", padding, barY+padding, rl.White)
}
