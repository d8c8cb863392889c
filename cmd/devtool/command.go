package main

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
)

const (
	defaultAPIURL = "http://localhost:8080"
	confirmYes    = "yes"
)

// errUnknownCommand is returned by Dispatch for names nothing registered
var errUnknownCommand = errors.New("unknown command")

// Command is one devtool subcommand
type Command interface {
	Name() string
	Description() string
	Run(args []string) error
}

// Registry maps command names to commands
type Registry struct {
	commands map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

func (r *Registry) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns the commands sorted by name
func (r *Registry) List() []Command {
	cmds := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	slices.SortFunc(cmds, func(a, b Command) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return cmds
}

// Dispatch runs the command named by args[0]. No args, "help" or an unknown
// name print the command list to w.
func (r *Registry) Dispatch(w io.Writer, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		r.PrintHelp(w)
		if len(args) == 0 {
			return usageError(nil, "<command> [args...]")
		}
		return nil
	}

	cmd, ok := r.Get(args[0])
	if !ok {
		r.PrintHelp(w)
		return fmt.Errorf("%w: %s", errUnknownCommand, args[0])
	}
	if err := cmd.Run(args[1:]); err != nil {
		return fmt.Errorf("%s failed: %w", cmd.Name(), err)
	}
	return nil
}

// PrintHelp writes the usage line and an aligned command table
func (r *Registry) PrintHelp(w io.Writer) {
	fmt.Fprintln(w, "Usage: devtool <command> [args...]")
	fmt.Fprintln(w, "\nAvailable Commands:")

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, cmd := range r.List() {
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.Name(), cmd.Description())
	}
	_ = tw.Flush()
}

// usageError formats a missing-argument error with the expected usage
func usageError(cmd Command, usage string) error {
	if cmd == nil {
		return fmt.Errorf("usage: devtool %s", usage)
	}
	return fmt.Errorf("usage: devtool %s %s", cmd.Name(), usage)
}
