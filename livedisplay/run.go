package livedisplay

import (
	"debug/elf"
	"errors"
	"log"
	"strings"

	"github.com/godbus/dbus/v5"

	"oncd.app/blob"
	"oncd.app/internal/omsg"
	"oncd.app/sdm"
	"oncd.app/vndbus"
)

// Config configures the LiveDisplay service process.
type Config struct {
	// Library is the name of the vendor display library.
	Library string
	// BusAddress is the vendor bus address to register on.
	BusAddress string
	// PoolSize is the worker pool size, counting the serving goroutine.
	PoolSize int
}

// session is the vendor backend resource held by the service process.
type session interface {
	backend
	Close() error
}

// registry is the bus connection the service registers on.
type registry interface {
	export(a *PictureAdjustment, queue dispatchQueue) error
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
	// openSession establishes a session against the vendor library name.
	openSession(name string) (session, error)
	// connect opens a connection to the bus at address.
	connect(address string) (registry, error)
	// newPool returns a worker pool of size workers.
	newPool(size int) joinPool
	// diagnose reports the dependency state of the vendor library name.
	diagnose(name string)

	logf(format string, v ...any)
	verbosef(format string, v ...any)
}

// Run starts the service and returns its exit status.
// Run does not return while the service is healthy.
func Run(config Config) int { return run(direct{}, config) }

func run(d dispatcher, config Config) int {
	s, err := d.openSession(config.Library)
	if err != nil {
		d.logf("cannot open vendor session: %v", err)
		var loadErr *sdm.LoadError
		if errors.As(err, &loadErr) {
			d.diagnose(loadErr.Name)
		}
		return 1
	}
	defer func() {
		if err := s.Close(); err != nil {
			d.logf("cannot close vendor session: %v", err)
		}
	}()

	a := New(s)
	if !a.Supported() {
		// not an error: the supervisor restarts the service once the panel is ready
		d.logf("picture adjustment is not supported on this panel")
		return 1
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

	if err = r.export(a, pool); err != nil {
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

// direct implements dispatcher on the current system.
type direct struct{}

func (direct) openSession(name string) (session, error) {
	if s, err := sdm.Open(name); err != nil {
		return nil, err
	} else {
		return s, nil
	}
}

func (direct) connect(address string) (registry, error) {
	if conn, err := vndbus.ConnectAddress(address); err != nil {
		return nil, err
	} else {
		return &busRegistry{conn}, nil
	}
}

func (direct) newPool(size int) joinPool { return vndbus.NewPool(size) }

func (direct) diagnose(name string) {
	if !omsg.Load() {
		return
	}

	dirs := append(blob.LibDirs(elf.ELFCLASS64), blob.LibDirs(elf.ELFCLASS32)...)
	path, err := blob.Locate(name, dirs)
	if err != nil {
		omsg.Verbosef("%s is not present in any library directory", name)
		return
	}
	report, err := blob.Check(path, nil)
	if err != nil {
		omsg.Verbosef("cannot inspect %s: %v", path, err)
		return
	}
	if len(report.Missing) != 0 {
		omsg.Verbosef("%s is missing dependencies: %s", path, strings.Join(report.Missing, ", "))
	} else {
		omsg.Verbosef("%s resolves all %d dependencies", path, len(report.Needed))
	}
}

func (direct) logf(format string, v ...any)     { log.Printf(format, v...) }
func (direct) verbosef(format string, v ...any) { omsg.Verbosef(format, v...) }

// busRegistry implements registry on a bus connection.
type busRegistry struct{ conn *dbus.Conn }

func (r *busRegistry) export(a *PictureAdjustment, queue dispatchQueue) error {
	return Export(r.conn, a, queue)
}

func (r *busRegistry) request() error { return vndbus.Request(r.conn, BusName) }

func (r *busRegistry) Close() error { return r.conn.Close() }
