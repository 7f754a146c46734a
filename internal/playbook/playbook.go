// Package playbook saves and restores the board under a name in a key-value store.
package playbook

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"

	"playboard/internal/board"
	"playboard/internal/history"
	"playboard/internal/kv"
)

// KeyPrefix is prepended to every play name to form its storage key.
const KeyPrefix = "play_"

var (
	// ErrNotFound is returned when no play is stored under the requested name.
	ErrNotFound = errors.New("not found")
	// ErrEmptyName is returned by Save when the name is empty.
	ErrEmptyName = errors.New("playbook: empty name")
)

// Bridge connects the board and its undo log to a kv.Store.
type Bridge struct {
	store *board.Store
	log   *history.Log
	kv    kv.Store
	lg    zerolog.Logger
}

// New returns a Bridge. A zero logger discards output.
func New(store *board.Store, log *history.Log, backend kv.Store, lg zerolog.Logger) *Bridge {
	return &Bridge{store: store, log: log, kv: backend, lg: lg}
}

// Key returns the storage key for name.
func Key(name string) string {
	return KeyPrefix + name
}

// Save writes every marker and stroke under name, replacing any earlier play with that name.
func (b *Bridge) Save(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	data, err := json.Marshal(encode(b.store.Snapshot()))
	if err != nil {
		return fmt.Errorf("playbook: encode %q: %w", name, err)
	}
	if err := b.kv.Set(Key(name), data); err != nil {
		return fmt.Errorf("playbook: save %q: %w", name, err)
	}
	b.lg.Info().Str("name", name).Int("players", b.store.MarkerCount()).Int("lines", b.store.StrokeCount()).Msg("play saved")
	return nil
}

// Load replaces the board with the play stored under name and empties the undo log.
// The board is untouched when the play is missing or cannot be decoded.
func (b *Bridge) Load(name string) error {
	data, err := b.kv.Get(Key(name))
	if errors.Is(err, kv.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("playbook: load %q: %w", name, err)
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("playbook: decode %q: %w", name, err)
	}

	b.store.Clear()
	for _, p := range rec.Players {
		b.store.RestoreMarker(board.Marker{
			Number:   p.N,
			Position: rl.NewVector3(p.Pos.X, p.Pos.Y, p.Pos.Z),
			Color:    p.Col,
		})
	}
	skipped := 0
	for _, l := range rec.Lines {
		if b.store.RestoreStroke(l.Points.vectors()) == 0 {
			skipped++
		}
	}
	b.log.Clear()

	ev := b.lg.Info().Str("name", name).Int("players", len(rec.Players)).Int("lines", len(rec.Lines)-skipped)
	if skipped > 0 {
		ev = ev.Int("skipped", skipped)
	}
	ev.Msg("play loaded")
	return nil
}

// List returns the saved play names in ascending order.
func (b *Bridge) List() ([]string, error) {
	keys, err := b.kv.Keys()
	if err != nil {
		return nil, fmt.Errorf("playbook: list: %w", err)
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		if name, ok := strings.CutPrefix(k, KeyPrefix); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// Delete removes the play stored under name.
func (b *Bridge) Delete(name string) error {
	err := b.kv.Delete(Key(name))
	if errors.Is(err, kv.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("playbook: delete %q: %w", name, err)
	}
	b.lg.Info().Str("name", name).Msg("play deleted")
	return nil
}
