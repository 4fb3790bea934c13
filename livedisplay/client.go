package livedisplay

import (
	"github.com/godbus/dbus/v5"
)

// caller is the subset of [dbus.BusObject] accessed by [Client].
type caller interface {
	Call(method string, flags dbus.Flags, args ...any) *dbus.Call
}

// A Client calls the LiveDisplay service over the message bus.
type Client struct{ obj caller }

// NewClient returns a Client calling the LiveDisplay service on conn.
func NewClient(conn *dbus.Conn) *Client { return &Client{conn.Object(BusName, BusPath)} }

func (c *Client) call(method string, args ...any) *dbus.Call {
	return c.obj.Call(BusInterface+"."+method, 0, args...)
}

// Ranges returns the valid adjustment ranges of the primary panel.
func (c *Client) Ranges() (HSICRanges, error) {
	var ranges HSICRanges
	err := c.call("GetPictureAdjustmentRanges").Store(&ranges)
	return ranges, err
}

// Current returns the adjustment currently applied to the primary panel.
func (c *Client) Current() (HSIC, error) {
	var config HSIC
	err := c.call("GetPictureAdjustment").Store(&config)
	return config, err
}

// Default returns the adjustment captured when the service started.
func (c *Client) Default() (HSIC, error) {
	var config HSIC
	err := c.call("GetDefaultPictureAdjustment").Store(&config)
	return config, err
}

// Set applies config to the primary panel, reporting whether the vendor
// backend accepted it.
func (c *Client) Set(config HSIC) (bool, error) {
	var ok bool
	err := c.call("SetPictureAdjustment", config).Store(&ok)
	return ok, err
}
