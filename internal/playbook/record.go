package playbook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	rl "github.com/gen2brain/raylib-go/raylib"

	"playboard/internal/board"
)

// record is the stored form of a play.
type record struct {
	Players []player `json:"players"`
	Lines   []line   `json:"lines"`
}

type player struct {
	N   int    `json:"n"`
	Pos vec3   `json:"pos"`
	Col string `json:"col"`
}

type vec3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

type line struct {
	Points flatPoints `json:"points"`
}

// flatPoints is x0,y0,z0,x1,... Older saves wrote it as an object keyed by index.
type flatPoints []float32

func (f *flatPoints) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = nil
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var arr []float32
		if err := json.Unmarshal(data, &arr); err != nil {
			return err
		}
		*f = arr
		return nil
	}
	var obj map[string]float32
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("points: %w", err)
	}
	idx := make([]int, 0, len(obj))
	for k := range obj {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 {
			return fmt.Errorf("points: bad index %q", k)
		}
		idx = append(idx, i)
	}
	sort.Ints(idx)
	out := make([]float32, len(idx))
	for i, k := range idx {
		out[i] = obj[strconv.Itoa(k)]
	}
	*f = out
	return nil
}

func (f flatPoints) vectors() []rl.Vector3 {
	n := len(f) / 3
	out := make([]rl.Vector3, n)
	for i := 0; i < n; i++ {
		out[i] = rl.NewVector3(f[3*i], f[3*i+1], f[3*i+2])
	}
	return out
}

func flatten(points []rl.Vector3) flatPoints {
	out := make(flatPoints, 0, 3*len(points))
	for _, p := range points {
		out = append(out, p.X, p.Y, p.Z)
	}
	return out
}

func encode(snap board.Snapshot) record {
	rec := record{
		Players: make([]player, 0, len(snap.Markers)),
		Lines:   make([]line, 0, len(snap.Strokes)),
	}
	for _, m := range snap.Markers {
		rec.Players = append(rec.Players, player{
			N:   m.Number,
			Pos: vec3{X: m.Position.X, Y: m.Position.Y, Z: m.Position.Z},
			Col: m.Color,
		})
	}
	for _, s := range snap.Strokes {
		rec.Lines = append(rec.Lines, line{Points: flatten(s.Points)})
	}
	return rec
}
