// Package editor wires the board, its undo log, the tools, storage and the raylib front end into one
// frame-driven editor.
package editor

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"

	"playboard/internal/board"
	"playboard/internal/commands"
	"playboard/internal/config"
	"playboard/internal/court"
	"playboard/internal/debug"
	"playboard/internal/fonts"
	"playboard/internal/history"
	"playboard/internal/hostinput"
	"playboard/internal/interaction"
	"playboard/internal/kv"
	"playboard/internal/kv/fskv"
	"playboard/internal/kv/sqlitekv"
	"playboard/internal/logger"
	"playboard/internal/playbook"
	"playboard/internal/present"
	"playboard/internal/scene"
	"playboard/internal/surface"
	"playboard/internal/terminal"
	"playboard/internal/ui"
)

// fontLoadSize is the glyph size fonts are rasterised at; text is drawn at 20px.
const fontLoadSize = 40

// Options configures an Editor. Log and Backend are required.
type Options struct {
	Config config.Config
	// ConfigDir is where toggled settings are written back. Empty disables writing.
	ConfigDir string
	Court     court.Definition
	Log       *logger.Logger
	Backend   kv.Store
	// Resolver overrides the scene-backed surface mapper. Tests use it to run without a window.
	Resolver interaction.Resolver
}

// Editor owns one board session and everything that displays or drives it.
type Editor struct {
	cfg       config.Config
	configDir string
	log       *logger.Logger
	lg        zerolog.Logger

	store   *board.Store
	history *history.Log
	machine *interaction.Machine
	labels  *present.Sync
	scene   *scene.Scene

	backend kv.Store
	plays   *playbook.Bridge

	reg     *commands.Registry
	term    *terminal.Terminal
	toolbar *ui.Toolbar
	debug   *debug.Debug
	input   hostinput.Translator
	font    rl.Font
}

// OpenBackend opens the key-value store selected by the storage settings.
// A sqlite path without an extension gets ".db".
func OpenBackend(c config.StorageConfig) (kv.Store, error) {
	switch c.Backend {
	case config.BackendSQLite:
		file := c.Path
		if file != "" && filepath.Ext(file) == "" {
			file += ".db"
		}
		s, err := sqlitekv.Open(file)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendFiles, "":
		s, err := fskv.NewOS(c.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("editor: unknown storage backend %q", c.Backend)
}

// New builds an editor in Place mode with role 1 and an empty board.
func New(opts Options) *Editor {
	cfg := opts.Config
	def := opts.Court
	e := &Editor{
		cfg:       cfg,
		configDir: opts.ConfigDir,
		log:       opts.Log,
		lg:        opts.Log.Component("editor"),
		history:   history.New(),
		labels:    present.NewSync(cfg.Markers.PixelSize),
		backend:   opts.Backend,
		reg:       commands.NewRegistry(),
		debug:     debug.New(),
	}
	e.store = board.New(board.Options{
		Bounds:     def.Bounds,
		MinSegment: cfg.Strokes.MinSegment,
		Palette:    def.Palette,
	})
	e.scene = scene.New(scene.Options{Court: def, Fov: cfg.Camera.Fov, Store: e.store, Labels: e.labels})
	e.store.Subscribe(e.labels)
	e.store.Subscribe(e.scene)

	resolver := opts.Resolver
	if resolver == nil {
		resolver = surface.NewMapper(def.Plane(), def.Bounds, e.scene)
	}
	e.machine = interaction.New(interaction.NewSession(e.store, e.history), resolver, e.scene, interaction.Options{
		SampleInterval:       cfg.Strokes.SampleInterval,
		ConcurrentNavigation: cfg.Navigation.Concurrent,
		Logger:               opts.Log.Component("interaction"),
	})
	e.plays = playbook.New(e.store, e.history, e.backend, opts.Log.Component("playbook"))

	e.term = terminal.New(e.log, e.reg)
	commands.RegisterBoard(e.reg, e, e.term.Notify)

	e.toolbar = ui.NewToolbar(def.Palette, def.DefaultColor)
	e.toolbar.SetTool(e.machine.Tool().String())
	e.toolbar.SetRole(e.machine.Role())

	e.debug.SetShowFPS(cfg.Debug.ShowFPS)
	e.debug.SetShowMemAlloc(cfg.Debug.ShowMemAlloc)
	e.debug.Counts = e.counts

	e.refreshSaved()
	e.lg.Info().
		Str("court", def.Name).
		Str("backend", cfg.Storage.Backend).
		Bool("concurrentNavigation", cfg.Navigation.Concurrent).
		Msg("editor ready")
	return e
}

// Store returns the board.
func (e *Editor) Store() *board.Store {
	return e.store
}

// History returns the undo log.
func (e *Editor) History() *history.Log {
	return e.history
}

// Machine returns the tool state machine.
func (e *Editor) Machine() *interaction.Machine {
	return e.machine
}

// Terminal returns the command terminal.
func (e *Editor) Terminal() *terminal.Terminal {
	return e.term
}

func (e *Editor) counts() debug.Counts {
	c := debug.Counts{
		Markers: e.store.MarkerCount(),
		Strokes: e.store.StrokeCount(),
		Undo:    e.history.Len(),
	}
	for _, s := range e.store.Strokes() {
		c.Points += len(s.Points)
	}
	return c
}

func (e *Editor) refreshSaved() {
	names, err := e.plays.List()
	if err != nil {
		e.lg.Warn().Err(err).Msg("list saved plays")
		return
	}
	e.toolbar.SetSaved(names)
}

// SelectTool switches to the named tool.
func (e *Editor) SelectTool(name string) error {
	t, err := interaction.ParseTool(name)
	if err != nil {
		return err
	}
	if err := e.machine.SetTool(t); err != nil {
		return err
	}
	e.toolbar.SetTool(t.String())
	return nil
}

// SelectRole sets the role used by Place.
func (e *Editor) SelectRole(n int) error {
	if err := e.machine.SetRole(n); err != nil {
		return err
	}
	e.toolbar.SetRole(n)
	return nil
}

// Undo reverses the latest action.
func (e *Editor) Undo() bool {
	return e.machine.Undo()
}

// Clear empties the board and the undo log.
func (e *Editor) Clear() {
	e.machine.Clear()
	e.lg.Info().Msg("board cleared")
}

// Save stores the board under name and refreshes the load menu.
func (e *Editor) Save(name string) error {
	if err := e.plays.Save(name); err != nil {
		return err
	}
	e.refreshSaved()
	return nil
}

// Load replaces the board with the play stored under name.
func (e *Editor) Load(name string) error {
	if err := e.plays.Load(name); err != nil {
		return err
	}
	e.machine.Reset()
	return nil
}

// List returns the saved play names.
func (e *Editor) List() ([]string, error) {
	return e.plays.List()
}

// Delete removes a saved play and refreshes the load menu.
func (e *Editor) Delete(name string) error {
	if err := e.plays.Delete(name); err != nil {
		return err
	}
	e.refreshSaved()
	return nil
}

// ShowFPS toggles the debug overlay and writes the setting back to the config file.
func (e *Editor) ShowFPS(on bool) {
	e.debug.SetShowFPS(on)
	e.cfg.Debug.ShowFPS = on
	if e.configDir == "" {
		return
	}
	if err := config.Save(e.configDir, e.cfg); err != nil {
		e.lg.Warn().Err(err).Msg("save config")
	}
}

// FPSShown reports whether the debug overlay is on.
func (e *Editor) FPSShown() bool {
	return e.debug.ShowFPS
}

// Apply performs a toolbar action.
func (e *Editor) Apply(a ui.Action) {
	switch a.Kind {
	case ui.ActionTool:
		e.notifyErr(e.SelectTool(a.Tool))
	case ui.ActionRole:
		e.notifyErr(e.SelectRole(a.Role))
	case ui.ActionUndo:
		e.Undo()
	case ui.ActionClear:
		e.Clear()
	case ui.ActionSave:
		e.term.Prompt("save ")
	case ui.ActionLoadMenu:
		if e.toolbar.LoadMenuOpen() {
			e.toolbar.SetLoadMenu(false)
			return
		}
		e.refreshSaved()
		names, _ := e.plays.List()
		if len(names) == 0 {
			e.term.Notify("no saved plays")
			return
		}
		e.toolbar.SetLoadMenu(true)
	case ui.ActionLoad:
		if err := e.Load(a.Name); err != nil {
			e.term.Notify(err.Error())
			return
		}
		e.term.Notify("loaded " + a.Name)
	}
}

func (e *Editor) notifyErr(err error) {
	if err != nil {
		e.term.Notify(err.Error())
	}
}

// run executes a command line produced by a shortcut. Errors become notices.
func (e *Editor) run(line string) {
	if err := e.reg.ExecuteLine(line); err != nil && !errors.Is(err, commands.ErrEmptyLine) {
		e.term.Notify(err.Error())
	}
}

// HandlePointer routes one frame of mouse state: presses on the toolbar become actions, the rest
// become pointer events for the active tool. It returns whether the pointer is over the UI.
func (e *Editor) HandlePointer(f hostinput.Frame) bool {
	overUI := e.toolbar.Contains(f.X, f.Y)
	if f.Pressed {
		switch {
		case overUI:
			if a, ok := e.toolbar.Click(f.X, f.Y); ok {
				e.Apply(a)
			}
		case e.toolbar.LoadMenuOpen():
			// The first click outside an open menu only closes it.
			e.toolbar.SetLoadMenu(false)
			overUI = true
		}
	}
	for _, ev := range e.input.Translate(f, overUI) {
		e.machine.Handle(ev)
	}
	return overUI
}

// HandleKeys runs the shortcuts for this frame's key presses.
func (e *Editor) HandleKeys(k hostinput.Keys) {
	for _, line := range hostinput.Shortcuts(k) {
		e.run(line)
	}
}

func (e *Editor) status() ui.StatusInfo {
	return ui.StatusInfo{
		Tool:    e.machine.Tool().String(),
		Role:    e.machine.Role(),
		Markers: e.store.MarkerCount(),
		Strokes: e.store.StrokeCount(),
		Undo:    e.history.Len(),
		Drawing: e.machine.Drawing(),
		Backend: e.cfg.Storage.Backend,
	}
}

// Update polls input and advances the editor by one frame. Call from the window loop.
func (e *Editor) Update() {
	wasOpen := e.term.IsOpen()
	e.term.Update()
	overUI := e.HandlePointer(hostinput.Poll())
	if !wasOpen && !e.term.IsOpen() {
		e.HandleKeys(hostinput.PollKeys())
	}
	e.scene.Update(overUI)
	e.toolbar.Status().Update(e.status())
}

// Draw renders the board, the toolbar and the overlays.
func (e *Editor) Draw() {
	e.scene.Draw()
	e.toolbar.Draw()
	e.debug.Draw()
	e.term.Draw()
}

// LoadFont looks up the configured font family under fonts.Dir and uses it for the toolbar, the terminal
// and the debug overlay. Needs an open window. An empty family keeps raylib's default font.
func (e *Editor) LoadFont() {
	family := e.cfg.UI.Font
	if family == "" {
		return
	}
	rel, err := fonts.Find(os.DirFS(fonts.Dir), family)
	if err != nil {
		e.lg.Warn().Err(err).Str("font", family).Msg("font not found")
		return
	}
	e.font = rl.LoadFontEx(path.Join(fonts.Dir, rel), fontLoadSize, nil)
	rl.SetTextureFilter(e.font.Texture, rl.FilterBilinear)
	e.term.SetFont(e.font)
	e.debug.SetFont(e.font)
	e.toolbar.SetFont(e.font)
	e.lg.Info().Str("font", rel).Msg("font loaded")
}

// Release frees GPU resources. Call while the window is still open.
func (e *Editor) Release() {
	e.scene.Close()
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
		e.font = rl.Font{}
	}
}

// Close closes the storage backend.
func (e *Editor) Close() error {
	if err := e.backend.Close(); err != nil {
		return fmt.Errorf("editor: close backend: %w", err)
	}
	return nil
}

var _ commands.Board = (*Editor)(nil)
