package mpris

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/godbus/dbus/v5"

	"github.com/pliske/mprisctl/internal/domain"
	"github.com/pliske/mprisctl/internal/template"
)

// Player drives one running MPRIS player instance. It implements
// domain.Player; every method is a thin translation onto the player's
// D-Bus methods and properties.
type Player struct {
	name string
	dest string
	conn BusClient
}

// NewPlayer wraps a bus connection into a handle for the named instance
func NewPlayer(name string, conn BusClient) *Player {
	return &Player{
		name: name,
		dest: BusPrefix + name,
		conn: conn,
	}
}

// Name returns the short instance name
func (p *Player) Name() string {
	return p.name
}

// Play resumes playback
func (p *Player) Play(ctx context.Context) error {
	return p.call(ctx, "Play")
}

// Pause pauses playback
func (p *Player) Pause(ctx context.Context) error {
	return p.call(ctx, "Pause")
}

// PlayPause toggles between playing and paused
func (p *Player) PlayPause(ctx context.Context) error {
	return p.call(ctx, "PlayPause")
}

// Stop halts playback
func (p *Player) Stop(ctx context.Context) error {
	return p.call(ctx, "Stop")
}

// Next skips to the next track
func (p *Player) Next(ctx context.Context) error {
	return p.call(ctx, "Next")
}

// Previous skips to the previous track
func (p *Player) Previous(ctx context.Context) error {
	return p.call(ctx, "Previous")
}

// OpenURI asks the player to open and play the given URI
func (p *Player) OpenURI(ctx context.Context, uri string) error {
	return p.call(ctx, "OpenUri", uri)
}

// Position returns the playback position in microseconds
func (p *Player) Position(ctx context.Context) (int64, error) {
	variant, err := p.property("Position")
	if err != nil {
		return 0, fmt.Errorf("failed to get position: %w", err)
	}
	pos, ok := variant.Value().(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected position type %T", variant.Value())
	}
	return pos, nil
}

// Seek moves the position by a relative offset in microseconds
func (p *Player) Seek(ctx context.Context, offset int64) error {
	return p.call(ctx, "Seek", offset)
}

// SetPosition jumps to an absolute position on the current track. MPRIS
// requires the track id of the current track alongside the position, so a
// player without one cannot seek absolutely.
func (p *Player) SetPosition(ctx context.Context, position int64) error {
	meta, err := p.metadataVariants()
	if err != nil {
		return err
	}
	trackVariant, ok := meta["mpris:trackid"]
	if !ok {
		return errors.New("no track is currently playing")
	}

	var trackID dbus.ObjectPath
	switch v := trackVariant.Value().(type) {
	case dbus.ObjectPath:
		trackID = v
	case string:
		// some players report the track id as a plain string
		trackID = dbus.ObjectPath(v)
	default:
		return fmt.Errorf("unexpected track id type %T", trackVariant.Value())
	}

	return p.call(ctx, "SetPosition", trackID, position)
}

// Volume returns the current volume on a 0.0 to 1.0 scale
func (p *Player) Volume(ctx context.Context) (float64, error) {
	variant, err := p.property("Volume")
	if err != nil {
		return 0, fmt.Errorf("failed to get volume: %w", err)
	}
	level, ok := variant.Value().(float64)
	if !ok {
		return 0, fmt.Errorf("unexpected volume type %T", variant.Value())
	}
	return level, nil
}

// SetVolume changes the volume
func (p *Player) SetVolume(ctx context.Context, level float64) error {
	return p.conn.SetProperty(p.dest, objectPath, playerInterface+".Volume", level)
}

// Status returns the current playback status
func (p *Player) Status(ctx context.Context) (domain.PlayerStatus, error) {
	variant, err := p.property("PlaybackStatus")
	if err != nil {
		return "", fmt.Errorf("failed to get playback status: %w", err)
	}
	status, ok := variant.Value().(string)
	if !ok {
		return "", fmt.Errorf("unexpected playback status type %T", variant.Value())
	}
	return domain.PlayerStatus(status), nil
}

// Metadata returns the current track's metadata keyed by the raw MPRIS names
func (p *Player) Metadata(ctx context.Context) (map[string]template.Value, error) {
	raw, err := p.metadataVariants()
	if err != nil {
		return nil, err
	}
	values := make(map[string]template.Value, len(raw))
	for key, variant := range raw {
		values[key] = valueFromVariant(variant)
	}
	return values, nil
}

// Can reports whether the player currently advertises the capability
func (p *Player) Can(ctx context.Context, c domain.Capability) (bool, error) {
	variant, err := p.property(string(c))
	if err != nil {
		return false, fmt.Errorf("failed to get %s: %w", c, err)
	}
	allowed, ok := variant.Value().(bool)
	if !ok {
		return false, fmt.Errorf("unexpected %s type %T", c, variant.Value())
	}
	return allowed, nil
}

func (p *Player) call(ctx context.Context, method string, args ...any) error {
	return p.conn.Call(ctx, p.dest, objectPath, playerInterface+"."+method, args...)
}

func (p *Player) property(prop string) (dbus.Variant, error) {
	return p.conn.GetProperty(p.dest, objectPath, playerInterface+"."+prop)
}

// metadataVariants reads the raw Metadata property. Players with no current
// track may expose a value that is not a map; that reads as empty metadata
// rather than an error.
func (p *Player) metadataVariants() (map[string]dbus.Variant, error) {
	variant, err := p.property("Metadata")
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata: %w", err)
	}
	raw, ok := variant.Value().(map[string]dbus.Variant)
	if !ok {
		return nil, nil
	}
	return raw, nil
}

// valueFromVariant maps a D-Bus value onto the template value model. Strings
// and object paths stay strings, string arrays keep their elements, every
// integer width widens to int64 and doubles stay float64. Anything else
// falls back to its printed representation.
func valueFromVariant(variant dbus.Variant) template.Value {
	switch v := variant.Value().(type) {
	case string:
		return template.StringValue(v)
	case dbus.ObjectPath:
		return template.StringValue(string(v))
	case []string:
		return template.StringListValue(v...)
	case bool:
		return template.StringValue(strconv.FormatBool(v))
	case uint8:
		return template.IntValue(int64(v))
	case int16:
		return template.IntValue(int64(v))
	case uint16:
		return template.IntValue(int64(v))
	case int32:
		return template.IntValue(int64(v))
	case uint32:
		return template.IntValue(int64(v))
	case int64:
		return template.IntValue(v)
	case uint64:
		return template.IntValue(int64(v))
	case float64:
		return template.FloatValue(v)
	default:
		return template.StringValue(fmt.Sprintf("%v", v))
	}
}
