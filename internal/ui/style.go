package ui

import (
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Rule is a single CSS rule: one selector and a set of property values (raw strings).
type Rule struct {
	Selector string            // e.g. ".button" or "#undo"
	Props    map[string]string // e.g. "background" -> "#333"
}

// Stylesheet is a list of rules (order matters: later overrides earlier).
type Stylesheet struct {
	Rules []Rule
}

// ComputedStyle holds resolved values used for drawing.
// LeftPct/TopPct: 0–100 for percentage positioning; -1 means use Left/Top as pixels.
// Positioned is false when neither left nor top was given; the node keeps the bounds its owner laid out.
type ComputedStyle struct {
	Background rl.Color
	Color      rl.Color
	Border     rl.Color
	HasBorder  bool
	Width      int32
	Height     int32
	Left       int32
	Top        int32
	LeftPct    int32
	TopPct     int32
	Positioned bool
	Padding    int32
	FontSize   int32
}

// DefaultComputedStyle returns a minimal style (transparent background, white text, no border, zero size).
func DefaultComputedStyle() ComputedStyle {
	return ComputedStyle{
		Background: rl.NewColor(0, 0, 0, 0),
		Color:      rl.White,
		Border:     rl.Black,
		LeftPct:    -1,
		TopPct:     -1,
		Padding:    4,
		FontSize:   defaultFontSize,
	}
}

// ParseHexColor parses #RGB, #RRGGBB or #RRGGBBAA into rl.Color. Returns rl.Black and false on parse error.
func ParseHexColor(s string) (rl.Color, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 4 || s[0] != '#' {
		return rl.Black, false
	}
	hex := s[1:]
	for i := 0; i < len(hex); i++ {
		if _, ok := hexDigit(hex[i]); !ok {
			return rl.Black, false
		}
	}
	switch len(hex) {
	case 3:
		return rl.NewColor(hexByte(hex[0])*17, hexByte(hex[1])*17, hexByte(hex[2])*17, 255), true
	case 6:
		return rl.NewColor(hexPair(hex[0:2]), hexPair(hex[2:4]), hexPair(hex[4:6]), 255), true
	case 8:
		return rl.NewColor(hexPair(hex[0:2]), hexPair(hex[2:4]), hexPair(hex[4:6]), hexPair(hex[6:8])), true
	}
	return rl.Black, false
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func hexByte(c byte) uint8 {
	v, _ := hexDigit(c)
	return v
}

func hexPair(s string) uint8 {
	return hexByte(s[0])<<4 + hexByte(s[1])
}

// ParsePx parses a number, with optional "px" suffix, to int32. Unitless is treated as pixels.
func ParsePx(s string) (int32, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// ParsePct parses "N%" to int32 (0–100). Used for left/top percentage positioning.
func ParsePct(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[len(s)-1] != '%' {
		return 0, false
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return int32(n), true
}

// ResolveProps builds a ComputedStyle from a merged property map (e.g. from matching rules).
func ResolveProps(props map[string]string) ComputedStyle {
	out := DefaultComputedStyle()
	for k, v := range props {
		v = strings.TrimSpace(v)
		switch k {
		case "background":
			if c, ok := ParseHexColor(v); ok {
				out.Background = c
			}
		case "color":
			if c, ok := ParseHexColor(v); ok {
				out.Color = c
			}
		case "border":
			if v == "none" {
				out.HasBorder = false
			} else if c, ok := ParseHexColor(v); ok {
				out.Border = c
				out.HasBorder = true
			}
		case "width":
			if n, ok := ParsePx(v); ok {
				out.Width = n
			}
		case "height":
			if n, ok := ParsePx(v); ok {
				out.Height = n
			}
		case "left", "x":
			if pct, ok := ParsePct(v); ok {
				out.LeftPct = pct
				out.Positioned = true
			} else if n, ok := ParsePx(v); ok {
				out.Left = n
				out.Positioned = true
			}
		case "top", "y":
			if pct, ok := ParsePct(v); ok {
				out.TopPct = pct
				out.Positioned = true
			} else if n, ok := ParsePx(v); ok {
				out.Top = n
				out.Positioned = true
			}
		case "padding":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Padding = n
			}
		case "font-size":
			if n, ok := ParsePx(v); ok && n > 0 {
				out.FontSize = n
			}
		}
	}
	return out
}
