package domain

import (
	"context"

	"github.com/pliske/mprisctl/internal/template"
)

// Player defines the control surface of one running media player instance.
// Implementations handle MPRIS communication over D-Bus. Position, Seek and
// SetPosition work in microseconds, matching the MPRIS wire representation.
//
//go:generate mockgen -destination=mocks/domain_mock.go -package=mocks github.com/pliske/mprisctl/internal/domain Player,Source
type Player interface {
	// Name returns the short instance name, e.g. "spotify" or "vlc.instance42"
	Name() string

	// Play resumes playback
	Play(ctx context.Context) error

	// Pause pauses playback
	Pause(ctx context.Context) error

	// PlayPause toggles between playing and paused
	PlayPause(ctx context.Context) error

	// Stop halts playback
	Stop(ctx context.Context) error

	// Next skips to the next track
	Next(ctx context.Context) error

	// Previous skips to the previous track
	Previous(ctx context.Context) error

	// OpenURI asks the player to open and play the given URI
	OpenURI(ctx context.Context, uri string) error

	// Position returns the current playback position
	Position(ctx context.Context) (int64, error)

	// Seek moves the position by a relative offset, negative to rewind
	Seek(ctx context.Context, offset int64) error

	// SetPosition jumps to an absolute position on the current track
	SetPosition(ctx context.Context, position int64) error

	// Volume returns the current volume on a 0.0 to 1.0 scale
	Volume(ctx context.Context) (float64, error)

	// SetVolume changes the volume
	SetVolume(ctx context.Context, level float64) error

	// Status returns the current playback status
	Status(ctx context.Context) (PlayerStatus, error)

	// Metadata returns the current track's metadata keyed by the raw MPRIS
	// names (e.g. "xesam:title", "mpris:length")
	Metadata(ctx context.Context) (map[string]template.Value, error)

	// Can reports whether the player currently advertises the capability
	Can(ctx context.Context, c Capability) (bool, error)
}

// Source discovers running players and opens control handles to them
type Source interface {
	// List returns the short names of every running player, sorted
	List(ctx context.Context) ([]string, error)

	// Connect returns a Player for the named instance
	Connect(ctx context.Context, name string) (Player, error)
}
