package interaction

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
)

// DefaultSampleInterval is the minimum time between two stroke samples.
const DefaultSampleInterval = 16 * time.Millisecond

// EventType is the kind of pointer event delivered by the host.
type EventType uint8

const (
	PointerDown EventType = iota + 1
	PointerMove
	PointerUp
	PointerLeave
)

func (e EventType) String() string {
	switch e {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerLeave:
		return "leave"
	}
	return fmt.Sprintf("EventType(%d)", uint8(e))
}

// PointerEvent is one host pointer event. X/Y are viewport pixels; At is a monotonic timestamp used for throttling.
type PointerEvent struct {
	Type EventType
	X, Y float32
	At   time.Duration
}

// Resolver maps pointer coordinates to a surface point. *surface.Mapper satisfies it.
type Resolver interface {
	Resolve(x, y float32) (rl.Vector3, bool)
}

// Navigator is the camera-control collaborator. It is told whenever camera navigation becomes allowed or not.
type Navigator interface {
	SetNavigation(enabled bool)
}

// Options tunes a Machine. Zero SampleInterval means DefaultSampleInterval.
type Options struct {
	SampleInterval time.Duration
	// ConcurrentNavigation lets the camera move in Place and Draw while no stroke is being drawn.
	ConcurrentNavigation bool
	Logger               zerolog.Logger
}

type handler func(m *Machine, ev PointerEvent) bool

// dispatch maps each event type to its transition. Handlers report whether the event was consumed.
var dispatch = map[EventType]handler{
	PointerDown:  (*Machine).pointerDown,
	PointerMove:  (*Machine).pointerMove,
	PointerUp:    (*Machine).pointerEnd,
	PointerLeave: (*Machine).pointerEnd,
}

// Machine routes pointer events to the session's store and log according to the active tool.
// It is not safe for concurrent use; all calls must come from the frame loop.
type Machine struct {
	session  *Session
	resolver Resolver
	nav      Navigator
	opts     Options
	log      zerolog.Logger

	lastSample time.Duration
	navAllowed bool
}

// New returns a Machine driving session. nav may be nil.
func New(session *Session, resolver Resolver, nav Navigator, opts Options) *Machine {
	if opts.SampleInterval <= 0 {
		opts.SampleInterval = DefaultSampleInterval
	}
	m := &Machine{
		session:  session,
		resolver: resolver,
		nav:      nav,
		opts:     opts,
		log:      opts.Logger,
	}
	m.navAllowed = m.computeNavigation()
	if nav != nil {
		nav.SetNavigation(m.navAllowed)
	}
	return m
}

// Session returns the session the machine drives.
func (m *Machine) Session() *Session {
	return m.session
}

// Tool returns the active tool.
func (m *Machine) Tool() Tool {
	return m.session.Tool
}

// Role returns the active role number.
func (m *Machine) Role() int {
	return m.session.Role
}

// Drawing reports whether a stroke is in progress.
func (m *Machine) Drawing() bool {
	return m.session.Store.StrokeInProgress()
}

// NavigationAllowed reports whether the camera collaborator may move the camera right now.
func (m *Machine) NavigationAllowed() bool {
	return m.navAllowed
}

// SetTool switches the active tool. Leaving Draw finalizes a stroke in progress first.
func (m *Machine) SetTool(t Tool) error {
	if t > ToolNavigate {
		return fmt.Errorf("%w: %d", ErrUnknownTool, t)
	}
	if t == m.session.Tool {
		return nil
	}
	m.finishStroke()
	m.session.Tool = t
	m.log.Debug().Stringer("tool", t).Msg("tool selected")
	m.syncNavigation()
	return nil
}

// SetRole selects the role number used by Place.
func (m *Machine) SetRole(n int) error {
	if n < MinRole || n > MaxRole {
		return fmt.Errorf("%w: %d (want %d..%d)", ErrInvalidRole, n, MinRole, MaxRole)
	}
	m.session.Role = n
	return nil
}

// Handle processes one pointer event. It returns false when the event was not intercepted
// (Navigate mode), so the host can hand it to camera controls.
func (m *Machine) Handle(ev PointerEvent) bool {
	h, ok := dispatch[ev.Type]
	if !ok {
		return false
	}
	return h(m, ev)
}

// Undo reverses the latest action, or cancels the stroke in progress.
func (m *Machine) Undo() bool {
	undone := m.session.Log.Undo(m.session.Store)
	m.syncNavigation()
	return undone
}

// Clear empties the board and the undo log.
func (m *Machine) Clear() {
	m.session.Store.Clear()
	m.session.Log.Clear()
	m.syncNavigation()
}

// Reset re-derives navigation state after the session was changed from outside (e.g. a load).
func (m *Machine) Reset() {
	m.syncNavigation()
}

func (m *Machine) pointerDown(ev PointerEvent) bool {
	switch m.session.Tool {
	case ToolPlace:
		p, ok := m.resolver.Resolve(ev.X, ev.Y)
		if !ok {
			return true
		}
		a := m.session.Store.PlaceOrMove(m.session.Role, p)
		m.session.Log.Push(a)
		m.log.Debug().Int("role", m.session.Role).Stringer("action", a.Kind()).Msg("marker placed")
		return true
	case ToolDraw:
		p, ok := m.resolver.Resolve(ev.X, ev.Y)
		if !ok {
			return true
		}
		m.finishStroke()
		m.session.Store.BeginStroke(p)
		m.lastSample = ev.At
		m.syncNavigation()
		return true
	}
	return false
}

func (m *Machine) pointerMove(ev PointerEvent) bool {
	if m.session.Tool != ToolDraw || !m.session.Store.StrokeInProgress() {
		return m.session.Tool != ToolNavigate
	}
	if ev.At-m.lastSample < m.opts.SampleInterval {
		return true
	}
	m.lastSample = ev.At
	p, ok := m.resolver.Resolve(ev.X, ev.Y)
	if !ok {
		return true
	}
	m.session.Store.ExtendStroke(p)
	return true
}

func (m *Machine) pointerEnd(ev PointerEvent) bool {
	if m.session.Store.StrokeInProgress() {
		m.finishStroke()
		m.syncNavigation()
		return true
	}
	return m.session.Tool != ToolNavigate
}

// finishStroke finalizes a stroke in progress and records it when committed.
func (m *Machine) finishStroke() {
	if !m.session.Store.StrokeInProgress() {
		return
	}
	a, ok := m.session.Store.FinalizeStroke()
	if !ok {
		m.log.Debug().Msg("stroke discarded")
		return
	}
	m.session.Log.Push(a)
	m.log.Debug().Int("strokes", m.session.Store.StrokeCount()).Msg("stroke committed")
}

func (m *Machine) computeNavigation() bool {
	if m.session.Tool == ToolNavigate {
		return true
	}
	return m.opts.ConcurrentNavigation && !m.session.Store.StrokeInProgress()
}

func (m *Machine) syncNavigation() {
	allowed := m.computeNavigation()
	if allowed == m.navAllowed {
		return
	}
	m.navAllowed = allowed
	if m.nav != nil {
		m.nav.SetNavigation(allowed)
	}
}
