package power

import (
	"github.com/godbus/dbus/v5"
)

// caller is the subset of [dbus.BusObject] accessed by [Client].
type caller interface {
	Call(method string, flags dbus.Flags, args ...any) *dbus.Call
}

// A Client calls the power service over the message bus.
type Client struct{ obj caller }

// NewClient returns a Client calling the power service on conn.
func NewClient(conn *dbus.Conn) *Client { return &Client{conn.Object(BusName, BusPath)} }

func (c *Client) call(method string, args ...any) *dbus.Call {
	return c.obj.Call(BusInterface+"."+method, 0, args...)
}

// IsModeSupported reports whether the power service supports mode.
func (c *Client) IsModeSupported(mode Mode) (bool, error) {
	var supported bool
	err := c.call("IsModeSupported", uint32(mode)).Store(&supported)
	return supported, err
}

// SetMode applies mode through the power service, reporting whether the
// service handled it.
func (c *Client) SetMode(mode Mode, enabled bool) (bool, error) {
	var ok bool
	err := c.call("SetMode", uint32(mode), enabled).Store(&ok)
	return ok, err
}
