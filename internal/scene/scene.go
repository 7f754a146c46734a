package scene

import (
	"strconv"

	rl "github.com/gen2brain/raylib-go/raylib"

	"playboard/internal/board"
	"playboard/internal/court"
	"playboard/internal/present"
	"playboard/internal/surface"
	"playboard/internal/ui"
)

// Heights above the pick plane at which things are drawn. Stored points stay on the plane.
const (
	markerLift = 0.01
	labelLift  = 0.03
	strokeLift = 0.02
	courtLift  = 0.005
)

const (
	markerRadius  = 0.45
	markerHeight  = 0.01
	markerSlices  = 48
	labelTexSize  = 128
	labelFontSize = 72
	circleRadius  = 1.8
	gridStep      = 1
	gridAlpha     = 40
	orbitFactor   = 4 // max orbit distance as a multiple of the court's largest side
)

var (
	backgroundColor = rl.NewColor(0x20, 0x20, 0x25, 255)
	strokeColor     = rl.NewColor(0xff, 0xf0, 0x7a, 230)
	candidateColor  = rl.NewColor(0xff, 0xff, 0xff, 230)
)

// Options configures a Scene.
type Options struct {
	Court  court.Definition
	Fov    float32
	Store  *board.Store
	Labels *present.Sync
}

type label struct {
	tex   rl.Texture2D
	color string
}

// Scene owns the camera and draws the court, the markers with their number labels and the strokes.
// It follows the board through BoardChanged and only reads from the store.
type Scene struct {
	Camera rl.Camera3D
	orbit  Orbit

	court  court.Definition
	plane  surface.Plane
	store  *board.Store
	labels *present.Sync

	floorColor rl.Color
	lineColor  rl.Color
	gridColor  rl.Color

	navigation bool
	screenW    int
	screenH    int

	// Label textures are GPU resources: created lazily on the draw path and released there too.
	textures map[int]label
	stale    []rl.Texture2D
}

// New returns a scene with a perspective camera framing the whole court.
func New(opts Options) *Scene {
	s := &Scene{
		court:    opts.Court,
		plane:    opts.Court.Plane(),
		store:    opts.Store,
		labels:   opts.Labels,
		textures: make(map[int]label),
	}
	s.floorColor = hexOr(opts.Court.FloorColor, rl.NewColor(0xc8, 0x91, 0x5a, 255))
	s.lineColor = hexOr(opts.Court.LineColor, rl.RayWhite)
	s.gridColor = rl.NewColor(s.lineColor.R, s.lineColor.G, s.lineColor.B, gridAlpha)

	fov := opts.Fov
	if fov <= 0 {
		fov = 50
	}
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = fov
	s.Camera.Projection = rl.CameraPerspective

	dist := opts.Court.FrameDistance(fov)
	target := opts.Court.Bounds.Center(s.plane.Height)
	start := rl.NewVector3(target.X, target.Y+dist*0.6, target.Z+dist*1.2)
	s.orbit = OrbitFrom(start, target, opts.Court.MaxDimension()*orbitFactor)
	s.orbit.Apply(&s.Camera)
	return s
}

func hexOr(s string, fallback rl.Color) rl.Color {
	if c, ok := ui.ParseHexColor(s); ok {
		return c
	}
	return fallback
}

// View returns the camera and the full-screen viewport, for mapping pointer positions onto the court.
func (s *Scene) View() (rl.Camera3D, surface.Viewport) {
	return s.Camera, surface.ScreenViewport(rl.GetScreenWidth(), rl.GetScreenHeight())
}

// SetNavigation enables or disables camera control.
func (s *Scene) SetNavigation(allowed bool) {
	s.navigation = allowed
}

// NavigationEnabled reports whether Update will move the camera.
func (s *Scene) NavigationEnabled() bool {
	return s.navigation
}

// BoardChanged keeps label textures in step with the markers.
func (s *Scene) BoardChanged(c board.Change) {
	switch c.Kind {
	case board.MarkerDeleted:
		s.dropLabel(c.Number)
	case board.Cleared:
		for n := range s.textures {
			s.dropLabel(n)
		}
	}
}

func (s *Scene) dropLabel(number int) {
	if l, ok := s.textures[number]; ok {
		s.stale = append(s.stale, l.tex)
		delete(s.textures, number)
	}
}

// Update orbits and zooms the camera while navigation is allowed and the pointer is not over the UI.
// Call once per frame.
func (s *Scene) Update(pointerOverUI bool) {
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	if w != s.screenW || h != s.screenH {
		s.screenW, s.screenH = w, h
		s.labels.MarkDirty()
	}
	if !s.navigation || pointerOverUI {
		return
	}
	moved := false
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) || rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		moved = s.orbit.Rotate(d.X, d.Y)
	}
	if s.orbit.Zoom(rl.GetMouseWheelMove()) {
		moved = true
	}
	if moved {
		s.orbit.Apply(&s.Camera)
		s.labels.MarkDirty()
	}
}

// Draw renders the court, strokes and markers. Call after ClearBackground and before the 2D overlay.
func (s *Scene) Draw() {
	s.releaseStale()
	markers := s.store.Markers()
	s.labels.Tick(s.Camera, float32(rl.GetScreenHeight()), markers)

	rl.BeginMode3D(s.Camera)
	s.drawCourt()
	s.drawStrokes()
	s.drawMarkers(markers)
	rl.EndMode3D()
}

// Background is the clear color behind the court.
func Background() rl.Color {
	return backgroundColor
}

func (s *Scene) drawCourt() {
	b := s.court.Bounds
	y := s.plane.Height
	w, d := b.Size()
	rl.DrawPlane(b.Center(y-courtLift), rl.NewVector2(w, d), s.floorColor)

	ly := y + courtLift
	var start, end rl.Vector3
	for x := b.MinX + gridStep; x < b.MaxX; x += gridStep {
		start.X, start.Y, start.Z = x, ly, b.MinZ
		end.X, end.Y, end.Z = x, ly, b.MaxZ
		rl.DrawLine3D(start, end, s.gridColor)
	}
	for z := b.MinZ + gridStep; z < b.MaxZ; z += gridStep {
		start.X, start.Y, start.Z = b.MinX, ly, z
		end.X, end.Y, end.Z = b.MaxX, ly, z
		rl.DrawLine3D(start, end, s.gridColor)
	}

	corners := [4]rl.Vector3{
		rl.NewVector3(b.MinX, ly, b.MinZ),
		rl.NewVector3(b.MaxX, ly, b.MinZ),
		rl.NewVector3(b.MaxX, ly, b.MaxZ),
		rl.NewVector3(b.MinX, ly, b.MaxZ),
	}
	for i := range corners {
		rl.DrawLine3D(corners[i], corners[(i+1)%len(corners)], s.lineColor)
	}
	mid := b.Center(ly)
	rl.DrawLine3D(rl.NewVector3(mid.X, ly, b.MinZ), rl.NewVector3(mid.X, ly, b.MaxZ), s.lineColor)
	rl.DrawCircle3D(mid, circleRadius, rl.NewVector3(1, 0, 0), 90, s.lineColor)
}

func (s *Scene) drawPolyline(points []rl.Vector3, c rl.Color) {
	lift := rl.NewVector3(0, strokeLift, 0)
	for i := 1; i < len(points); i++ {
		rl.DrawLine3D(rl.Vector3Add(points[i-1], lift), rl.Vector3Add(points[i], lift), c)
	}
}

// drawStrokes draws committed strokes and the one being drawn on top of everything else.
func (s *Scene) drawStrokes() {
	rl.DisableDepthTest()
	for _, st := range s.store.Strokes() {
		s.drawPolyline(st.Points, strokeColor)
	}
	s.drawPolyline(s.store.Candidate(), candidateColor)
	rl.EnableDepthTest()
}

func (s *Scene) drawMarkers(markers []board.Marker) {
	for _, m := range markers {
		col := hexOr(m.Color, rl.NewColor(0x4b, 0x82, 0xf0, 255))
		col.A = 217
		base := rl.NewVector3(m.Position.X, m.Position.Y+markerLift, m.Position.Z)
		rl.DrawCylinder(base, markerRadius, markerRadius, markerHeight, markerSlices, col)
	}
	rl.DisableDepthTest()
	for _, m := range markers {
		scale, ok := s.labels.Scale(m.Number)
		if !ok || scale <= 0 {
			continue
		}
		tex := s.labelTexture(m)
		pos := rl.NewVector3(m.Position.X, m.Position.Y+labelLift+scale*0.5, m.Position.Z)
		rl.DrawBillboard(s.Camera, tex, pos, scale, rl.White)
	}
	rl.EnableDepthTest()
}

// labelTexture returns the number disc for m, rebuilding it when the marker color changed.
func (s *Scene) labelTexture(m board.Marker) rl.Texture2D {
	if l, ok := s.textures[m.Number]; ok && l.color == m.Color {
		return l.tex
	}
	s.dropLabel(m.Number)

	col := hexOr(m.Color, rl.NewColor(0x4b, 0x82, 0xf0, 255))
	img := rl.GenImageColor(labelTexSize, labelTexSize, rl.Blank)
	half := int32(labelTexSize / 2)
	rl.ImageDrawCircle(img, half, half, int32(labelTexSize * 45 / 100), col)
	text := strconv.Itoa(m.Number)
	tw := rl.MeasureText(text, labelFontSize)
	rl.ImageDrawText(img, half-tw/2, half-labelFontSize/2, text, labelFontSize, rl.White)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(tex, rl.FilterBilinear)

	s.textures[m.Number] = label{tex: tex, color: m.Color}
	return tex
}

func (s *Scene) releaseStale() {
	for _, t := range s.stale {
		rl.UnloadTexture(t)
	}
	s.stale = s.stale[:0]
}

// Close releases every GPU resource held by the scene. Call before the window closes.
func (s *Scene) Close() {
	for n := range s.textures {
		s.dropLabel(n)
	}
	s.releaseStale()
}

var (
	_ board.Observer     = (*Scene)(nil)
	_ surface.ViewSource = (*Scene)(nil)
)
