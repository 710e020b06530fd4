package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
)

// Version is the release version reported by --version. Overridden at
// build time via -ldflags
var Version = "0.6.0"

const description = `Controller for media players implementing the MPRIS D-Bus specification.

Available Commands:
  play                    Command the player to play
  pause                   Command the player to pause
  play-pause              Command the player to toggle between play/pause
  stop                    Command the player to stop
  next                    Command the player to skip to the next track
  previous                Command the player to skip to the previous track
  position [OFFSET][+/-]  Command the player to go to the position or seek forward/backward OFFSET in seconds
  volume [LEVEL][+/-]     Print or set the volume to LEVEL from 0.0 to 1.0
  status                  Get the play status of the player
  metadata [KEY...]       Print metadata information for the current track. If KEY is passed, print only those values
  open [URI]              Command for the player to open given URI. URI can be either file path or remote URL`

// CLI declares the command-line grammar. The command itself and its
// arguments are positional so flags can appear on either side
type CLI struct {
	Player       string           `help:"A comma separated list of names of players to control (default: the first available player)" short:"p" placeholder:"NAME" env:"MPRISCTL_PLAYER"`
	AllPlayers   bool             `help:"Select all available players to be controlled" short:"a"`
	IgnorePlayer string           `help:"A comma separated list of names of players to ignore." short:"i" placeholder:"IGNORE" env:"MPRISCTL_IGNORE"`
	Format       string           `help:"A format string for printing properties and metadata" short:"f"`
	ListAll      bool             `help:"List the names of running players that can be controlled" short:"l"`
	Verbose      bool             `help:"Enable verbose logging"`
	Version      kong.VersionFlag `help:"Print version information" short:"v"`

	Command []string `arg:"" optional:"" placeholder:"COMMAND" help:"Command to run, with its arguments"`
}

// Validate enforces that a command is present unless the invocation is
// satisfied by a listing flag alone
func (c *CLI) Validate() error {
	if len(c.Command) == 0 && !c.ListAll {
		return errors.New("no command entered")
	}
	return nil
}

// Parse reads argv into the CLI grammar. Help and version requests
// terminate through the exit hook; parse and validation errors print
// the usage text and the error, then exit 1
func Parse(args []string, exit func(int), stdout, stderr io.Writer) *CLI {
	flags := &CLI{}
	parser := kong.Must(flags,
		kong.Name("mprisctl"),
		kong.Description(description),
		kong.Exit(exit),
		kong.Writers(stdout, stderr),
		kong.Vars{"version": "v" + Version},
	)
	if _, err := parser.Parse(args); err != nil {
		// kong's FatalIfErrorf would exit with its usage-error code;
		// a failed invocation of this tool always exits 1
		var parseErr *kong.ParseError
		if errors.As(err, &parseErr) {
			_ = parseErr.Context.PrintUsage(false)
			fmt.Fprintln(stdout)
		}
		parser.Errorf("%s", err)
		exit(1)
	}
	return flags
}

// splitList parses a comma separated list option, trimming whitespace
// and dropping empty entries
func splitList(arg string) []string {
	if arg == "" {
		return nil
	}
	var names []string
	for _, token := range strings.Split(arg, ",") {
		if token = strings.TrimSpace(token); token != "" {
			names = append(names, token)
		}
	}
	return names
}
