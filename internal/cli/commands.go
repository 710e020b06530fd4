package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/pliske/mprisctl/internal/domain"
	"github.com/pliske/mprisctl/internal/template"
)

// errNoFormat rejects --format on commands that produce no output
var errNoFormat = errors.New("format strings are not supported on command functions.")

// commandFunc runs one command against a player. The boolean reports
// whether the player actually handled it, so the dispatcher can fall
// through to the next selected player when it did not
type commandFunc func(ctx context.Context, r *Runner, p domain.Player, args []string) (bool, error)

// commands is the dispatch table, in resolution order
var commands = []struct {
	name string
	run  commandFunc
}{
	{"open", cmdOpen},
	{"play", actionCommand(domain.Player.Play, domain.CanPlay)},
	{"pause", actionCommand(domain.Player.Pause, domain.CanPause)},
	{"play-pause", actionCommand(domain.Player.PlayPause, domain.CanPlay)},
	{"stop", actionCommand(domain.Player.Stop, domain.CanPlay)},
	{"next", actionCommand(domain.Player.Next, domain.CanGoNext)},
	{"previous", actionCommand(domain.Player.Previous, domain.CanGoPrevious)},
	{"position", cmdPosition},
	{"volume", cmdVolume},
	{"status", cmdStatus},
	{"metadata", cmdMetadata},
}

// commandNamed resolves a command by name
func commandNamed(name string) (commandFunc, bool) {
	for _, c := range commands {
		if c.name == name {
			return c.run, true
		}
	}
	return nil, false
}

// actionCommand builds a playback command gated on a capability.
// Players lacking the capability are skipped rather than failed. Stop
// shares the play gate because MPRIS has no CanStop property
func actionCommand(action func(domain.Player, context.Context) error, gate domain.Capability) commandFunc {
	return func(ctx context.Context, r *Runner, p domain.Player, _ []string) (bool, error) {
		if r.format != "" {
			return false, errNoFormat
		}
		ok, err := p.Can(ctx, gate)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		if err := action(p, ctx); err != nil {
			return false, err
		}
		return true, nil
	}
}

func cmdOpen(ctx context.Context, r *Runner, p domain.Player, args []string) (bool, error) {
	if r.format != "" {
		return false, errNoFormat
	}
	if len(args) == 0 {
		return true, nil
	}
	if err := p.OpenURI(ctx, openTarget(args[0])); err != nil {
		return false, err
	}
	return true, nil
}

// openTarget turns a local path into a file URI, leaving anything that
// already carries a scheme untouched
func openTarget(arg string) string {
	if u, err := url.Parse(arg); err == nil && u.Scheme != "" {
		return arg
	}
	abs, err := filepath.Abs(arg)
	if err != nil {
		return arg
	}
	u := url.URL{Scheme: "file", Path: abs}
	return u.String()
}

func cmdPosition(ctx context.Context, r *Runner, p domain.Player, args []string) (bool, error) {
	if len(args) == 0 {
		position, err := p.Position(ctx)
		if err != nil {
			return false, err
		}
		if r.format != "" {
			fctx := template.NewContext()
			fctx.Set("position", template.IntValue(position))
			formatted, err := template.Expand(r.format, fctx)
			if err != nil {
				return false, err
			}
			fmt.Fprintf(r.stdout, "%s\n", formatted)
		} else {
			fmt.Fprintf(r.stdout, "%f\n", float64(position)/1000000.0)
		}
		return true, nil
	}

	if r.format != "" {
		return false, errNoFormat
	}

	arg := args[0]
	number := arg
	var sign byte
	if n := len(arg); n > 0 && (arg[n-1] == '+' || arg[n-1] == '-') {
		sign = arg[n-1]
		number = arg[:n-1]
	}
	seconds, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return false, fmt.Errorf("Could not parse position as a number: %s", arg)
	}
	offset := int64(seconds * 1000000.0)

	ok, err := p.Can(ctx, domain.CanSeek)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	switch sign {
	case '+':
		err = p.Seek(ctx, offset)
	case '-':
		err = p.Seek(ctx, -offset)
	default:
		err = p.SetPosition(ctx, offset)
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func cmdVolume(ctx context.Context, r *Runner, p domain.Player, args []string) (bool, error) {
	if len(args) == 0 {
		level, err := p.Volume(ctx)
		if err != nil {
			return false, err
		}
		if r.format != "" {
			fctx := template.NewContext()
			fctx.Set("volume", template.FloatValue(level))
			formatted, err := template.Expand(r.format, fctx)
			if err != nil {
				return false, err
			}
			fmt.Fprintf(r.stdout, "%s\n", formatted)
		} else {
			fmt.Fprintf(r.stdout, "%f\n", level)
		}
		return true, nil
	}

	if r.format != "" {
		return false, errNoFormat
	}

	arg := args[0]
	var level float64
	if n := len(arg); n > 0 && (arg[n-1] == '+' || arg[n-1] == '-') {
		adjustment, err := strconv.ParseFloat(arg[:n-1], 64)
		if err != nil {
			return false, fmt.Errorf("Could not parse volume as a number: %s", arg)
		}
		if arg[n-1] == '-' {
			adjustment = -adjustment
		}
		current, err := p.Volume(ctx)
		if err != nil {
			return false, err
		}
		level = current + adjustment
	} else {
		parsed, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return false, fmt.Errorf("Could not parse volume as a number: %s", arg)
		}
		level = parsed
	}

	ok, err := p.Can(ctx, domain.CanControl)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := p.SetVolume(ctx, level); err != nil {
		return false, err
	}
	return true, nil
}

func cmdStatus(ctx context.Context, r *Runner, p domain.Player, _ []string) (bool, error) {
	status, err := p.Status(ctx)
	if err != nil {
		return false, err
	}
	if r.format != "" {
		fctx := template.NewContext()
		fctx.Set("status", template.StringValue(string(status)))
		formatted, err := template.Expand(r.format, fctx)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(r.stdout, "%s\n", formatted)
		return true, nil
	}
	if status == "" {
		fmt.Fprintln(r.stdout, "Not available")
		return true, nil
	}
	fmt.Fprintf(r.stdout, "%s\n", status)
	return true, nil
}

func cmdMetadata(ctx context.Context, r *Runner, p domain.Player, args []string) (bool, error) {
	ok, err := p.Can(ctx, domain.CanPlay)
	if err != nil {
		return false, err
	}
	if !ok {
		// no current track
		return false, nil
	}

	meta, err := p.Metadata(ctx)
	if err != nil {
		return false, err
	}

	if r.format != "" {
		formatted, err := template.Expand(r.format, metadataContext(meta))
		if err != nil {
			return false, err
		}
		fmt.Fprintf(r.stdout, "%s\n", formatted)
		return true, nil
	}

	if len(args) == 0 {
		for _, key := range sortedKeys(meta) {
			fmt.Fprintf(r.stdout, "%s\t%s\n", key, meta[key].String())
		}
		return true, nil
	}

	for _, key := range args {
		if value, found := lookupAlias(meta, key); found {
			fmt.Fprintf(r.stdout, "%s\n", value.String())
		}
	}
	return true, nil
}

// metadataAliases maps the shorthand keys onto their xesam fields, in
// the order the shorthands are added to the format context
var metadataAliases = []struct{ alias, key string }{
	{"artist", "xesam:artist"},
	{"album", "xesam:album"},
	{"title", "xesam:title"},
}

// metadataContext exposes the raw metadata plus the artist, album, and
// title shorthands for fields the player did not name directly
func metadataContext(meta map[string]template.Value) *template.Context {
	fctx := template.NewContext()
	for _, key := range sortedKeys(meta) {
		fctx.Set(key, meta[key])
	}
	for _, a := range metadataAliases {
		if fctx.Contains(a.alias) {
			continue
		}
		if value, ok := meta[a.key]; ok {
			fctx.Set(a.alias, value)
		}
	}
	return fctx
}

// lookupAlias resolves the artist, title, and album shorthands to
// their xesam fields before falling back to the raw key
func lookupAlias(meta map[string]template.Value, key string) (template.Value, bool) {
	switch key {
	case "artist", "title", "album":
		if value, ok := meta["xesam:"+key]; ok {
			return value, true
		}
	}
	value, ok := meta[key]
	return value, ok
}

func sortedKeys(meta map[string]template.Value) []string {
	keys := make([]string, 0, len(meta))
	for key := range meta {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
