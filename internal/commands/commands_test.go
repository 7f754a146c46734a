package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBoard struct {
	tool    string
	role    int
	undos   int
	history int
	cleared bool
	saved   []string
	plays   map[string]bool
	fps     bool
}

var errMissing = errors.New("not found")

func newFakeBoard() *fakeBoard {
	return &fakeBoard{plays: map[string]bool{}}
}

func (f *fakeBoard) SelectTool(name string) error {
	if name != "place" && name != "draw" && name != "navigate" {
		return errors.New("unknown tool")
	}
	f.tool = name
	return nil
}

func (f *fakeBoard) SelectRole(n int) error {
	if n < 1 || n > 5 {
		return errors.New("bad role")
	}
	f.role = n
	return nil
}

func (f *fakeBoard) Undo() bool {
	if f.history == 0 {
		return false
	}
	f.history--
	f.undos++
	return true
}

func (f *fakeBoard) Clear() { f.cleared = true }

func (f *fakeBoard) Save(name string) error {
	if name == "" {
		return errors.New("empty name")
	}
	f.saved = append(f.saved, name)
	f.plays[name] = true
	return nil
}

func (f *fakeBoard) Load(name string) error {
	if !f.plays[name] {
		return errMissing
	}
	return nil
}

func (f *fakeBoard) List() ([]string, error) {
	return []string{"box", "horns"}, nil
}

func (f *fakeBoard) Delete(name string) error {
	if !f.plays[name] {
		return errMissing
	}
	delete(f.plays, name)
	return nil
}

func (f *fakeBoard) ShowFPS(on bool) { f.fps = on }
func (f *fakeBoard) FPSShown() bool  { return f.fps }

func setup() (*Registry, *fakeBoard, *[]string) {
	r := NewRegistry()
	b := newFakeBoard()
	var notes []string
	RegisterBoard(r, b, func(s string) { notes = append(notes, s) })
	return r, b, &notes
}

func TestParse(t *testing.T) {
	assert.Equal(t, []string{"save", "zone", "press"}, Parse("  save zone   press "))
	assert.Equal(t, []string{"undo"}, Parse("/undo"))
	assert.Empty(t, Parse("   "))
}

func TestExecuteErrors(t *testing.T) {
	r, _, _ := setup()
	assert.ErrorIs(t, r.ExecuteLine(""), ErrEmptyLine)
	assert.ErrorContains(t, r.ExecuteLine("jump"), "unknown command: jump")
	assert.ErrorContains(t, r.ExecuteLine("undo -x"), "undo:")
	assert.ErrorContains(t, r.ExecuteLine("role five"), "not a number")
	assert.Error(t, r.ExecuteLine("role 9"))
	assert.Error(t, r.ExecuteLine("tool"))
}

func TestToolAndRole(t *testing.T) {
	r, b, _ := setup()
	require.NoError(t, r.ExecuteLine("tool draw"))
	require.NoError(t, r.ExecuteLine("ROLE 4"))
	assert.Equal(t, "draw", b.tool)
	assert.Equal(t, 4, b.role)
}

func TestUndoCount(t *testing.T) {
	r, b, notes := setup()
	b.history = 5

	require.NoError(t, r.ExecuteLine("undo -n 3"))
	assert.Equal(t, 3, b.undos)

	require.NoError(t, r.ExecuteLine("undo"))
	assert.Equal(t, 4, b.undos, "-n resets between runs")

	require.NoError(t, r.ExecuteLine("undo -n 10"))
	assert.Equal(t, 5, b.undos)
	assert.Empty(t, *notes)

	require.NoError(t, r.ExecuteLine("undo"))
	assert.Equal(t, []string{"nothing to undo"}, *notes)
}

func TestSaveLoadDelete(t *testing.T) {
	r, b, notes := setup()

	require.NoError(t, r.ExecuteLine("save zone press"))
	assert.Equal(t, []string{"zone press"}, b.saved)
	require.NoError(t, r.ExecuteLine("load zone press"))
	assert.ErrorIs(t, r.ExecuteLine("load horns"), errMissing)
	require.NoError(t, r.ExecuteLine("delete zone press"))
	assert.ErrorIs(t, r.ExecuteLine("delete zone press"), errMissing)
	assert.Error(t, r.ExecuteLine("save"))

	assert.Equal(t, []string{"saved zone press", "loaded zone press", "deleted zone press"}, *notes)
}

func TestListClearFPSHelp(t *testing.T) {
	r, b, notes := setup()

	require.NoError(t, r.ExecuteLine("list"))
	require.NoError(t, r.ExecuteLine("clear"))
	assert.True(t, b.cleared)

	require.NoError(t, r.ExecuteLine("fps"))
	assert.True(t, b.fps)
	require.NoError(t, r.ExecuteLine("fps -on"))
	assert.True(t, b.fps)
	require.NoError(t, r.ExecuteLine("fps -off"))
	assert.False(t, b.fps)
	assert.Error(t, r.ExecuteLine("fps -on -off"))

	require.NoError(t, r.ExecuteLine("help save"))
	require.NoError(t, r.ExecuteLine("help"))
	assert.Error(t, r.ExecuteLine("help jump"))

	assert.Equal(t, []string{
		"saved plays: box, horns",
		"save NAME",
		"commands: clear delete fps help list load role save tool undo",
	}, *notes)
}
