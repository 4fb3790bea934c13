package power

import (
	"github.com/godbus/dbus/v5"
)

const (
	// BusName is the well-known name of the power service.
	BusName = "app.oncd.Power"
	// BusPath is the object path of the power service.
	BusPath dbus.ObjectPath = "/app/oncd/Power"
	// BusInterface is the interface name of the power service.
	BusInterface = "app.oncd.Power"
)

// dispatchQueue executes bus handlers in submission order.
type dispatchQueue interface{ Do(f func()) error }

// Export exports h at [BusPath] on conn, dispatching method calls through queue.
func Export(conn *dbus.Conn, h *Handler, queue dispatchQueue) error {
	return conn.Export(&busExport{h, queue}, BusPath, BusInterface)
}

// busExport adapts [Handler] to the message bus.
type busExport struct {
	h     *Handler
	queue dispatchQueue
}

func (e *busExport) IsModeSupported(mode uint32) (bool, *dbus.Error) {
	var supported bool
	if err := e.queue.Do(func() { supported, _ = e.h.SupportsMode(Mode(mode)) }); err != nil {
		return false, dbus.MakeFailedError(err)
	}
	return supported, nil
}

func (e *busExport) SetMode(mode uint32, enabled bool) (bool, *dbus.Error) {
	var ok bool
	var err error
	if qerr := e.queue.Do(func() { ok, err = e.h.SetMode(Mode(mode), enabled) }); qerr != nil {
		return false, dbus.MakeFailedError(qerr)
	}
	if err != nil {
		return false, dbus.MakeFailedError(err)
	}
	return ok, nil
}
