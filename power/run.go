package power

import (
	"log"

	"github.com/godbus/dbus/v5"

	"oncd.app/internal/doze"
	"oncd.app/internal/omsg"
	"oncd.app/vndbus"
)

// Config configures the power service process.
type Config struct {
	// Device is the path of the wakeup gesture input device.
	Device string
	// Prefs is the path of the persisted wake preference file.
	Prefs string
	// BusAddress is the vendor bus address to register on.
	BusAddress string
	// PoolSize is the worker pool size, counting the serving goroutine.
	PoolSize int
}

// registry is the bus connection the service registers on.
type registry interface {
	export(h *Handler, queue dispatchQueue) error
	request() error
	Close() error
}

// joinPool is the worker pool the serving goroutine joins.
type joinPool interface {
	Do(f func()) error
	Serve()
	Close()
}

// dispatcher provides methods that acquire service resources as part of their
// behaviour. dispatcher methods must all be called from the same goroutine.
type dispatcher interface {
	// newHandler returns a Handler against the input device at path.
	newHandler(path string) *Handler
	// loadSettings reads persisted wake preferences from path.
	loadSettings(path string) (doze.Settings, error)
	// connect opens a connection to the bus at address.
	connect(address string) (registry, error)
	// newPool returns a worker pool of size workers.
	newPool(size int) joinPool

	logf(format string, v ...any)
	verbosef(format string, v ...any)
}

// Run starts the service and returns its exit status.
// Run does not return while the service is healthy.
func Run(config Config) int { return run(direct{}, config) }

func run(d dispatcher, config Config) int {
	h := d.newHandler(config.Device)

	// an unreadable preference file must not hold back the service
	settings, err := d.loadSettings(config.Prefs)
	if err != nil {
		d.logf("cannot load wake preferences: %v", err)
	}
	if settings.WakeGesture {
		if _, err = h.SetMode(DoubleTapToWake, true); err != nil {
			d.logf("cannot restore wakeup gesture: %v", err)
		} else {
			d.verbosef("restored wakeup gesture")
		}
	}

	pool := d.newPool(config.PoolSize)
	defer pool.Close()

	r, err := d.connect(config.BusAddress)
	if err != nil {
		d.logf("cannot connect to vendor bus: %v", err)
		return 1
	}
	defer func() {
		if err := r.Close(); err != nil {
			d.logf("cannot close bus connection: %v", err)
		}
	}()

	if err = r.export(h, pool); err != nil {
		d.logf("cannot export service: %v", err)
		return 1
	}
	if err = r.request(); err != nil {
		d.logf("cannot register service: %v", err)
		return 1
	}

	d.verbosef("serving %s", BusName)
	pool.Serve()
	d.logf("stopped serving")
	return 1
}

func (direct) newHandler(path string) *Handler { return New(path) }

func (direct) loadSettings(path string) (doze.Settings, error) {
	return doze.NewStore(path).Load()
}

func (direct) connect(address string) (registry, error) {
	if conn, err := vndbus.ConnectAddress(address); err != nil {
		return nil, err
	} else {
		return &busRegistry{conn}, nil
	}
}

func (direct) newPool(size int) joinPool { return vndbus.NewPool(size) }

func (direct) logf(format string, v ...any)     { log.Printf(format, v...) }
func (direct) verbosef(format string, v ...any) { omsg.Verbosef(format, v...) }

// busRegistry implements registry on a bus connection.
type busRegistry struct{ conn *dbus.Conn }

func (r *busRegistry) export(h *Handler, queue dispatchQueue) error {
	return Export(r.conn, h, queue)
}

func (r *busRegistry) request() error { return vndbus.Request(r.conn, BusName) }

func (r *busRegistry) Close() error { return r.conn.Close() }
