package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ErrEmptyLine is returned by Execute when there is nothing to run.
var ErrEmptyLine = errors.New("missing command")

// Command is a terminal command with its own flags and a Run function.
// Flags are defined on FlagSet; Run is called after Parse and reads flag state and FlagSet.Args().
type Command struct {
	Name    string
	Usage   string
	FlagSet *flag.FlagSet
	Run     func() error
}

// Registry holds commands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// NewFlagSet returns a FlagSet that reports errors instead of exiting and prints nothing.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// Register adds a command. name is the first token of the line (e.g. "save"); usage is the one-line help.
// fs is that command's FlagSet; run is called after fs.Parse(args[1:]) succeeds.
func (r *Registry) Register(name, usage string, fs *flag.FlagSet, run func() error) {
	r.cmds[name] = &Command{Name: name, Usage: usage, FlagSet: fs, Run: run}
}

// Names returns the registered command names in order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Usage returns the help line for name.
func (r *Registry) Usage(name string) (string, bool) {
	c, ok := r.cmds[name]
	if !ok {
		return "", false
	}
	return c.Usage, true
}

// Parse splits a terminal line into tokens. A leading "/" is accepted and dropped.
func Parse(line string) []string {
	line = strings.TrimPrefix(strings.TrimSpace(line), "/")
	return strings.Fields(line)
}

// Execute runs the command in args[0] with args[1:] as flag/positional arguments.
// Returns an error for unknown command, parse error, or from Run().
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return ErrEmptyLine
	}
	name := strings.ToLower(args[0])
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("unknown command: %s", args[0])
	}
	// Flag values outlive a run; start every invocation from the defaults.
	cmd.FlagSet.VisitAll(func(f *flag.Flag) { _ = f.Value.Set(f.DefValue) })
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return cmd.Run()
}

// ExecuteLine parses and runs one terminal line.
func (r *Registry) ExecuteLine(line string) error {
	return r.Execute(Parse(line))
}
