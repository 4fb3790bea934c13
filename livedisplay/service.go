package livedisplay

import (
	"github.com/godbus/dbus/v5"

	"oncd.app/sdm"
)

const (
	// BusName is the well-known name of the LiveDisplay service.
	BusName = "app.oncd.LiveDisplay"
	// BusPath is the object path of the LiveDisplay service.
	BusPath dbus.ObjectPath = "/app/oncd/LiveDisplay"
	// BusInterface is the interface name of the LiveDisplay service.
	BusInterface = "app.oncd.LiveDisplay"
)

// dispatchQueue executes bus handlers in submission order. The vendor library
// is not assumed reentrant, so every method dispatches through it.
type dispatchQueue interface{ Do(f func()) error }

// Export exports a at [BusPath] on conn, dispatching method calls through queue.
func Export(conn *dbus.Conn, a *PictureAdjustment, queue dispatchQueue) error {
	return conn.Export(&busExport{a, queue}, BusPath, BusInterface)
}

// busExport adapts [PictureAdjustment] to the message bus.
type busExport struct {
	a     *PictureAdjustment
	queue dispatchQueue
}

func (e *busExport) GetPictureAdjustmentRanges() (HSICRanges, *dbus.Error) {
	var ranges sdm.HSICRanges
	var err error
	if qerr := e.queue.Do(func() { ranges, err = e.a.Ranges() }); qerr != nil {
		return HSICRanges{}, dbus.MakeFailedError(qerr)
	}
	if err != nil {
		return HSICRanges{}, dbus.MakeFailedError(err)
	}
	return rangesFromSDM(ranges), nil
}

func (e *busExport) GetPictureAdjustment() (HSIC, *dbus.Error) {
	var config sdm.HSIC
	var err error
	if qerr := e.queue.Do(func() { config, err = e.a.Current() }); qerr != nil {
		return HSIC{}, dbus.MakeFailedError(qerr)
	}
	if err != nil {
		return HSIC{}, dbus.MakeFailedError(err)
	}
	return fromSDM(config), nil
}

func (e *busExport) GetDefaultPictureAdjustment() (HSIC, *dbus.Error) {
	var config sdm.HSIC
	var err error
	if qerr := e.queue.Do(func() { config, err = e.a.Default() }); qerr != nil {
		return HSIC{}, dbus.MakeFailedError(qerr)
	}
	if err != nil {
		return HSIC{}, dbus.MakeFailedError(err)
	}
	return fromSDM(config), nil
}

func (e *busExport) SetPictureAdjustment(config HSIC) (bool, *dbus.Error) {
	var err error
	if qerr := e.queue.Do(func() { err = e.a.Set(config.toSDM()) }); qerr != nil {
		return false, dbus.MakeFailedError(qerr)
	}
	// the vendor status maps to the reply value rather than a bus error
	return err == nil, nil
}
