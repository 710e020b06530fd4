package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/pliske/mprisctl/internal/config"
	"github.com/pliske/mprisctl/internal/domain"
	"github.com/pliske/mprisctl/internal/mpris"
)

// Runner executes a parsed invocation against the selected players
type Runner struct {
	flags  *CLI
	cfg    *config.Config
	source domain.Source
	logger *zap.Logger

	format string
	stdout io.Writer
	stderr io.Writer
}

// NewRunner wires the command dispatcher with its collaborators
func NewRunner(flags *CLI, cfg *config.Config, source domain.Source, logger *zap.Logger) *Runner {
	return &Runner{
		flags:  flags,
		cfg:    cfg,
		source: source,
		logger: logger,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// Run executes the invocation and returns the process exit code. A
// handled command stops at the first player unless --all-players is
// set; an unhandled one falls through to the next candidate
func (r *Runner) Run(ctx context.Context) int {
	if r.flags.ListAll {
		return r.listAll(ctx)
	}

	name := r.flags.Command[0]
	args := r.flags.Command[1:]
	cmd, known := commandNamed(name)

	r.format = r.flags.Format
	if r.format == "" && r.cfg != nil {
		r.format = r.cfg.Formats[name]
	}

	running, err := r.source.List(ctx)
	if err != nil {
		fmt.Fprintf(r.stderr, "%s\n", err)
		return 1
	}
	if len(running) == 0 {
		fmt.Fprintln(r.stderr, "No players were found")
		return 0
	}

	selected := r.selectPlayers(running)
	if len(selected) == 0 {
		fmt.Fprintln(r.stderr, "No players were found")
		return 0
	}
	r.logger.Debug("Players selected",
		zap.Strings("players", selected),
		zap.String("command", name))

	if !known {
		fmt.Fprintf(r.stderr, "Could not execute command: Command not recognized: %s\n", name)
		return 1
	}

	for _, player := range selected {
		handle, err := r.source.Connect(ctx, player)
		if err != nil {
			fmt.Fprintf(r.stderr, "Connection to player failed: %s\n", err)
			return 1
		}

		handled, err := cmd(ctx, r, handle, args)
		if err != nil {
			fmt.Fprintf(r.stderr, "Could not execute command: %s\n", err)
			return 1
		}
		if handled && !r.flags.AllPlayers {
			break
		}
	}
	return 0
}

// listAll prints the names of the running players, one per line
func (r *Runner) listAll(ctx context.Context) int {
	names, err := r.source.List(ctx)
	if err != nil {
		fmt.Fprintf(r.stderr, "%s\n", err)
		return 1
	}
	if len(names) == 0 {
		fmt.Fprintln(r.stderr, "No players were found")
		return 0
	}
	for _, name := range names {
		fmt.Fprintln(r.stdout, name)
	}
	return 0
}

// selectPlayers applies the flag, environment, and configuration
// preferences to the list of running instances. Flags win over the
// configuration file, and an empty request means every player
func (r *Runner) selectPlayers(running []string) []string {
	requested := splitList(r.flags.Player)
	if len(requested) == 0 && r.cfg != nil {
		requested = r.cfg.Players
	}
	if len(requested) == 0 {
		requested = running
	}

	ignored := splitList(r.flags.IgnorePlayer)
	if len(ignored) == 0 && r.cfg != nil {
		ignored = r.cfg.Ignore
	}

	return mpris.SelectNames(requested, running, ignored)
}
