// Package court loads the playing surface: its height, its bounds and the marker palette.
// The definition is read once at startup and never changes afterwards.
package court

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"

	"playboard/internal/board"
	"playboard/internal/surface"
)

// DefaultPath is the court definition file, relative to the working directory.
const DefaultPath = "assets/court.yaml"

// heightLift keeps the pick plane just above the sampled floor.
const heightLift = 0.0001

// Definition is the YAML form of a court (e.g. assets/court.yaml).
type Definition struct {
	Name string `yaml:"name"`
	// SurfaceHeight is used when HeightSamples is empty.
	SurfaceHeight float32 `yaml:"surfaceHeight"`
	// HeightSamples are floor heights measured on a grid; the pick plane sits at their median.
	HeightSamples []float32      `yaml:"heightSamples,omitempty"`
	Bounds        surface.Bounds `yaml:"bounds"`
	Palette       []string       `yaml:"palette,omitempty"`
	DefaultColor  string         `yaml:"defaultColor,omitempty"`
	FloorColor    string         `yaml:"floorColor,omitempty"`
	LineColor     string         `yaml:"lineColor,omitempty"`
}

// Default returns the built-in basketball court.
func Default() Definition {
	return Definition{
		Name:          "basketball",
		SurfaceHeight: 0,
		Bounds:        surface.Bounds{MinX: -14, MaxX: 14, MinZ: -7.5, MaxZ: 7.5},
		Palette:       append([]string(nil), board.DefaultPalette...),
		DefaultColor:  board.FallbackColor,
		FloorColor:    "#c8915a",
		LineColor:     "#f5f5f5",
	}
}

// Load reads the definition at path. A missing file yields Default. Fields left out of the file keep
// their default values.
func Load(path string) (Definition, error) {
	def := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("court: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML definition over Default.
func Parse(data []byte) (Definition, error) {
	def := Default()
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Default(), fmt.Errorf("court: parse: %w", err)
	}
	if !def.Bounds.Valid() {
		return Default(), fmt.Errorf("court: invalid bounds %+v", def.Bounds)
	}
	if len(def.Palette) == 0 {
		def.Palette = append([]string(nil), board.DefaultPalette...)
	}
	if def.DefaultColor == "" {
		def.DefaultColor = board.FallbackColor
	}
	return def, nil
}

// Height returns the calibrated pick-plane height.
func (d Definition) Height() float32 {
	if len(d.HeightSamples) == 0 {
		return d.SurfaceHeight
	}
	return CalibrateHeight(d.HeightSamples)
}

// Plane returns the pick plane for the court.
func (d Definition) Plane() surface.Plane {
	return surface.Plane{Height: d.Height()}
}

// MaxDimension returns the larger side of the court rectangle.
func (d Definition) MaxDimension() float32 {
	w, h := d.Bounds.Size()
	return math32.Max(w, h)
}

// FrameDistance returns how far a camera with the given vertical fov (degrees) must sit so the whole
// court fits in view.
func (d Definition) FrameDistance(fovDeg float32) float32 {
	half := fovDeg * 0.5 * math32.Pi / 180
	t := math32.Tan(half)
	if t <= 0 {
		return d.MaxDimension()
	}
	return d.MaxDimension() * 0.5 / t
}

// CalibrateHeight returns the median of samples (upper median for even counts) lifted by a small epsilon.
// An empty slice gives the epsilon alone.
func CalibrateHeight(samples []float32) float32 {
	if len(samples) == 0 {
		return heightLift
	}
	ys := append([]float32(nil), samples...)
	sort.Slice(ys, func(i, j int) bool { return ys[i] < ys[j] })
	return ys[len(ys)/2] + heightLift
}
