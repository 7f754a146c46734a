package commands

import (
	"fmt"
	"strconv"
	"strings"
)

// Board is what the board commands drive. The editor implements it.
type Board interface {
	SelectTool(name string) error
	SelectRole(n int) error
	Undo() bool
	Clear()
	Save(name string) error
	Load(name string) error
	List() ([]string, error)
	Delete(name string) error
	ShowFPS(on bool)
	FPSShown() bool
}

// RegisterBoard adds the board commands to r. Results are reported through notify.
func RegisterBoard(r *Registry, b Board, notify func(string)) {
	{
		fs := NewFlagSet("tool")
		r.Register("tool", "tool place|draw|navigate", fs, func() error {
			if fs.NArg() != 1 {
				return fmt.Errorf("usage: tool place|draw|navigate")
			}
			return b.SelectTool(fs.Arg(0))
		})
	}
	{
		fs := NewFlagSet("role")
		r.Register("role", "role 1-5", fs, func() error {
			if fs.NArg() != 1 {
				return fmt.Errorf("usage: role 1-5")
			}
			n, err := strconv.Atoi(fs.Arg(0))
			if err != nil {
				return fmt.Errorf("role: %q is not a number", fs.Arg(0))
			}
			return b.SelectRole(n)
		})
	}
	{
		fs := NewFlagSet("undo")
		count := fs.Int("n", 1, "number of steps")
		r.Register("undo", "undo [-n steps]", fs, func() error {
			done := 0
			for done < *count && b.Undo() {
				done++
			}
			if done == 0 {
				notify("nothing to undo")
			}
			return nil
		})
	}
	{
		fs := NewFlagSet("clear")
		r.Register("clear", "clear", fs, func() error {
			b.Clear()
			return nil
		})
	}
	{
		fs := NewFlagSet("save")
		r.Register("save", "save NAME", fs, func() error {
			name := strings.Join(fs.Args(), " ")
			if err := b.Save(name); err != nil {
				return err
			}
			notify("saved " + name)
			return nil
		})
	}
	{
		fs := NewFlagSet("load")
		r.Register("load", "load NAME", fs, func() error {
			name := strings.Join(fs.Args(), " ")
			if err := b.Load(name); err != nil {
				return err
			}
			notify("loaded " + name)
			return nil
		})
	}
	{
		fs := NewFlagSet("list")
		r.Register("list", "list", fs, func() error {
			names, err := b.List()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				notify("no saved plays")
				return nil
			}
			notify("saved plays: " + strings.Join(names, ", "))
			return nil
		})
	}
	{
		fs := NewFlagSet("delete")
		r.Register("delete", "delete NAME", fs, func() error {
			name := strings.Join(fs.Args(), " ")
			if err := b.Delete(name); err != nil {
				return err
			}
			notify("deleted " + name)
			return nil
		})
	}
	{
		fs := NewFlagSet("fps")
		on := fs.Bool("on", false, "show the overlay")
		off := fs.Bool("off", false, "hide the overlay")
		r.Register("fps", "fps [-on|-off]", fs, func() error {
			switch {
			case *on && *off:
				return fmt.Errorf("fps: -on and -off together")
			case *on:
				b.ShowFPS(true)
			case *off:
				b.ShowFPS(false)
			default:
				b.ShowFPS(!b.FPSShown())
			}
			return nil
		})
	}
	{
		fs := NewFlagSet("help")
		r.Register("help", "help [command]", fs, func() error {
			if fs.NArg() > 0 {
				u, ok := r.Usage(fs.Arg(0))
				if !ok {
					return fmt.Errorf("unknown command: %s", fs.Arg(0))
				}
				notify(u)
				return nil
			}
			notify("commands: " + strings.Join(r.Names(), " "))
			return nil
		})
	}
}
