// Package logger is the editor log: zerolog entries to a file plus a readable in-memory tail.
package logger

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// DefaultFilePath is the log file, relative to the working directory.
const DefaultFilePath = "logs/playboard.log"

// defaultMaxLines caps the in-memory history shown by the terminal overlay.
const defaultMaxLines = 500

// Options configures a Logger. Empty File disables the file sink. Level defaults to info.
type Options struct {
	File     string
	Level    string
	MaxLines int
}

// Logger writes structured entries to a JSON-lines file and keeps a human-readable copy of each entry in
// memory for the terminal overlay.
type Logger struct {
	mu    sync.Mutex
	lines []string
	max   int
	file  *os.File
	zl    zerolog.Logger
}

// New returns a Logger, creating the log directory if needed. If the file cannot be opened the logger
// still works in memory and the error is returned alongside it.
func New(opts Options) (*Logger, error) {
	l := &Logger{max: opts.MaxLines}
	if l.max <= 0 {
		l.max = defaultMaxLines
	}

	console := zerolog.ConsoleWriter{
		Out:        (*lineSink)(l),
		NoColor:    true,
		TimeFormat: "15:04:05",
	}
	var w io.Writer = console
	var openErr error
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			openErr = err
		} else if f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err != nil {
			openErr = err
		} else {
			l.file = f
			w = zerolog.MultiLevelWriter(console, f)
		}
	}

	l.zl = zerolog.New(w).Level(ParseLevel(opts.Level)).With().Timestamp().Logger()
	l.zl.Info().Str("loglevel", l.zl.GetLevel().String()).Msg("logging set up")
	return l, openErr
}

// ParseLevel maps a config level name to a zerolog level. Unknown names mean info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToUpper(s) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Zerolog returns the structured logger. Components add their own fields with With().
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}

// Component returns a child logger tagged with the component name.
func (l *Logger) Component(name string) zerolog.Logger {
	return l.zl.With().Str("component", name).Logger()
}

// Log records a plain line typed into the terminal.
func (l *Logger) Log(line string) {
	l.zl.Info().Str("component", "terminal").Msg(line)
}

// Lines returns a copy of the in-memory lines, oldest first.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// lineSink receives console-formatted entries and appends them to the in-memory history.
type lineSink Logger

func (s *lineSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ln := range bytes.Split(bytes.TrimRight(p, "\n"), []byte("\n")) {
		if len(ln) == 0 {
			continue
		}
		s.lines = append(s.lines, string(ln))
	}
	if over := len(s.lines) - s.max; over > 0 {
		s.lines = append(s.lines[:0], s.lines[over:]...)
	}
	return len(p), nil
}

// Memory returns a Logger without a file sink.
func Memory() *Logger {
	l, _ := New(Options{})
	return l
}
