package mpris

import (
	"context"

	"github.com/godbus/dbus/v5"
)

// Bus layout shared by every MPRIS player.
const (
	// BusPrefix starts every player's well-known bus name; the short
	// instance name follows it (e.g. "org.mpris.MediaPlayer2.spotify")
	BusPrefix = "org.mpris.MediaPlayer2."
	// objectPath is the one object every player exports
	objectPath = "/org/mpris/MediaPlayer2"
	// playerInterface carries the playback methods and properties
	playerInterface = "org.mpris.MediaPlayer2.Player"
)

// BusClient defines the interface for D-Bus operations.
// This abstraction allows us to mock D-Bus interactions in tests.
//
//go:generate mockgen -destination=mocks/bus_client_mock.go -package=mocks github.com/pliske/mprisctl/internal/mpris BusClient
type BusClient interface {
	// Close closes the D-Bus connection
	Close() error

	// ListNames returns all names on the bus
	ListNames() ([]string, error)

	// GetProperty retrieves a property from a D-Bus object
	// dest: the bus name (e.g., "org.mpris.MediaPlayer2.spotify")
	// path: the object path (e.g., "/org/mpris/MediaPlayer2")
	// prop: the qualified property name (e.g., "org.mpris.MediaPlayer2.Player.Metadata")
	GetProperty(dest, path, prop string) (dbus.Variant, error)

	// SetProperty writes a property on a D-Bus object
	SetProperty(dest, path, prop string, value any) error

	// Call invokes a method on a D-Bus object and discards the reply
	Call(ctx context.Context, dest, path, method string, args ...any) error
}

// StdBusClient is the real implementation using godbus
type StdBusClient struct {
	conn *dbus.Conn
}

// NewStdBusClient creates a real D-Bus client connected to the session bus
func NewStdBusClient() (*StdBusClient, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, err
	}
	return &StdBusClient{conn: conn}, nil
}

// Close closes the D-Bus connection
func (c *StdBusClient) Close() error {
	return c.conn.Close()
}

// ListNames returns all names on the bus
func (c *StdBusClient) ListNames() ([]string, error) {
	var names []string
	err := c.conn.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names)
	return names, err
}

// GetProperty retrieves a property from a D-Bus object
func (c *StdBusClient) GetProperty(dest, path, prop string) (dbus.Variant, error) {
	obj := c.conn.Object(dest, dbus.ObjectPath(path))
	return obj.GetProperty(prop)
}

// SetProperty writes a property on a D-Bus object
func (c *StdBusClient) SetProperty(dest, path, prop string, value any) error {
	obj := c.conn.Object(dest, dbus.ObjectPath(path))
	return obj.SetProperty(prop, value)
}

// Call invokes a method on a D-Bus object and discards the reply
func (c *StdBusClient) Call(ctx context.Context, dest, path, method string, args ...any) error {
	obj := c.conn.Object(dest, dbus.ObjectPath(path))
	return obj.CallWithContext(ctx, method, 0, args...).Err
}
