// Package fskv stores each key as one JSON file in a directory of a hackpadfs filesystem.
// Production uses the OS filesystem; tests use an in-memory one.
package fskv

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hack-pad/hackpadfs"
	osfs "github.com/hack-pad/hackpadfs/os"

	"playboard/internal/kv"
)

const (
	fileExt = ".json"
	tmpExt  = ".tmp"
)

// Store is a kv.Store over a directory of fs.
type Store struct {
	fs  hackpadfs.FS
	dir string
}

// New returns a Store keeping files under dir (a slash-separated path valid for fs). dir is created if needed.
func New(fs hackpadfs.FS, dir string) (*Store, error) {
	dir = path.Clean(dir)
	if err := hackpadfs.MkdirAll(fs, dir, 0o755); err != nil {
		return nil, fmt.Errorf("fskv: %w", err)
	}
	return &Store{fs: fs, dir: dir}, nil
}

// NewOS returns a Store over an operating-system directory (relative paths resolve against the working directory).
func NewOS(dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("fskv: %w", err)
	}
	rel := strings.TrimPrefix(filepath.ToSlash(abs), "/")
	if rel == "" {
		rel = "."
	}
	return New(osfs.NewFS(), rel)
}

func (s *Store) fileFor(key string) string {
	return path.Join(s.dir, url.PathEscape(key)+fileExt)
}

// Get returns the document stored under key, or kv.ErrNotFound.
func (s *Store) Get(key string) ([]byte, error) {
	data, err := hackpadfs.ReadFile(s.fs, s.fileFor(key))
	if errors.Is(err, hackpadfs.ErrNotExist) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fskv: read %q: %w", key, err)
	}
	return data, nil
}

// Set writes value under key. The file is written beside the target and renamed over it.
func (s *Store) Set(key string, value []byte) error {
	target := s.fileFor(key)
	tmp := target + tmpExt
	if err := hackpadfs.WriteFullFile(s.fs, tmp, value, 0o644); err != nil {
		return fmt.Errorf("fskv: write %q: %w", key, err)
	}
	if err := hackpadfs.Rename(s.fs, tmp, target); err != nil {
		_ = hackpadfs.Remove(s.fs, tmp)
		return fmt.Errorf("fskv: write %q: %w", key, err)
	}
	return nil
}

// Delete removes key, or returns kv.ErrNotFound.
func (s *Store) Delete(key string) error {
	err := hackpadfs.Remove(s.fs, s.fileFor(key))
	if errors.Is(err, hackpadfs.ErrNotExist) {
		return kv.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("fskv: delete %q: %w", key, err)
	}
	return nil
}

// Keys lists the stored keys in ascending order. Files that are not ours are skipped.
func (s *Store) Keys() ([]string, error) {
	entries, err := hackpadfs.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("fskv: list: %w", err)
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		key, err := url.PathUnescape(strings.TrimSuffix(name, fileExt))
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op; files are closed after every operation.
func (s *Store) Close() error {
	return nil
}

var _ kv.Store = (*Store)(nil)
