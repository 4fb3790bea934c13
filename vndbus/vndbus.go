// Package vndbus connects services to the vendor message bus.
package vndbus

import (
	"fmt"
	"os"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	// AddressEnv optionally overrides the vendor bus address.
	AddressEnv = "VENDOR_BUS_ADDRESS"
	// FallbackAddress is the vendor bus address used when [AddressEnv] is unset.
	FallbackAddress = "unix:path=/run/dbus/vendor_bus_socket"
)

var (
	address     string
	addressOnce sync.Once
)

// Address returns the address of the vendor bus. The address is resolved once
// and does not follow later environment changes.
func Address() string {
	addressOnce.Do(func() { address = resolveAddress() })
	return address
}

func resolveAddress() string {
	if addr, ok := os.LookupEnv(AddressEnv); ok && addr != "" {
		return addr
	}
	return FallbackAddress
}

// Connect opens a private connection to the vendor bus.
func Connect() (*dbus.Conn, error) { return ConnectAddress(Address()) }

// ConnectAddress opens a private connection to the bus at address.
func ConnectAddress(address string) (*dbus.Conn, error) { return dbus.Connect(address) }

// A RegistrationError is returned when a well-known name cannot be acquired.
type RegistrationError struct {
	// Well-known name that was requested.
	Name string
	// Reply returned by the message bus.
	Reply dbus.RequestNameReply
}

func (e *RegistrationError) Error() string {
	switch e.Reply {
	case dbus.RequestNameReplyExists:
		return "name " + e.Name + " is owned by another connection"
	case dbus.RequestNameReplyInQueue:
		return "request for name " + e.Name + " was queued"
	case dbus.RequestNameReplyAlreadyOwner:
		return "name " + e.Name + " is already owned by this connection"
	default:
		return fmt.Sprintf("cannot acquire name %s (reply %d)", e.Name, e.Reply)
	}
}

func (e *RegistrationError) Is(err error) bool {
	if e == nil {
		return err == nil
	}
	ef, ok := err.(*RegistrationError)
	return ok && *e == *ef
}

// Request acquires the well-known name on conn without queueing, failing
// unless conn becomes the primary owner of name.
func Request(conn *dbus.Conn, name string) error {
	reply, err := conn.RequestName(name, dbus.NameFlagDoNotQueue)
	if err != nil {
		return err
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return &RegistrationError{name, reply}
	}
	return nil
}

// NameHasOwner reports whether any connection on conn's bus owns name.
func NameHasOwner(conn *dbus.Conn, name string) (bool, error) {
	var owned bool
	err := conn.BusObject().Call("org.freedesktop.DBus.NameHasOwner", 0, name).Store(&owned)
	return owned, err
}
