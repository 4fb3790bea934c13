package livedisplay

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/godbus/dbus/v5"

	"oncd.app/sdm"
	"oncd.app/vndbus"
)

func TestRun(t *testing.T) {
	config := Config{Library: sdm.Library, BusAddress: "unix:path=/tmp/test_bus", PoolSize: 1}

	supported := func() *stubBackend {
		return &stubBackend{version: sdm.FeatureVersion{Major: 1}, ranges: testRanges}
	}

	testCases := []struct {
		name string
		d    *stubRunDispatcher
		want []string
	}{
		{"load failure", &stubRunDispatcher{openErr: &sdm.LoadError{Name: sdm.Library, Detail: "not found"}},
			[]string{
				"open:" + sdm.Library,
				"diagnose:" + sdm.Library,
			}},

		{"symbol failure", &stubRunDispatcher{openErr: &sdm.SymbolError{Symbol: "disp_api_init", Detail: "undefined symbol"}},
			[]string{
				"open:" + sdm.Library,
			}},

		{"init failure", &stubRunDispatcher{openErr: &sdm.CallError{Func: "disp_api_init", Status: 22}},
			[]string{
				"open:" + sdm.Library,
			}},

		{"unsupported", &stubRunDispatcher{session: &stubBackend{ranges: testRanges}},
			[]string{
				"open:" + sdm.Library,
				"get_pa",
				"feature_version",
				"close session",
			}},

		{"degenerate ranges", &stubRunDispatcher{session: &stubBackend{version: sdm.FeatureVersion{Major: 1}}},
			[]string{
				"open:" + sdm.Library,
				"get_pa",
				"feature_version",
				"pa_range",
				"close session",
			}},

		{"connect failure", &stubRunDispatcher{session: supported(), connectErr: fmt.Errorf("no such socket")},
			[]string{
				"open:" + sdm.Library,
				"get_pa",
				"feature_version",
				"pa_range",
				"pool:1",
				"connect:" + "unix:path=/tmp/test_bus",
				"close pool",
				"close session",
			}},

		{"export failure", &stubRunDispatcher{session: supported(), exportErr: fmt.Errorf("connection closed")},
			[]string{
				"open:" + sdm.Library,
				"get_pa",
				"feature_version",
				"pa_range",
				"pool:1",
				"connect:" + "unix:path=/tmp/test_bus",
				"export",
				"close bus",
				"close pool",
				"close session",
			}},

		{"request failure", &stubRunDispatcher{session: supported(),
			requestErr: &vndbus.RegistrationError{Name: BusName, Reply: dbus.RequestNameReplyExists}},
			[]string{
				"open:" + sdm.Library,
				"get_pa",
				"feature_version",
				"pa_range",
				"pool:1",
				"connect:" + "unix:path=/tmp/test_bus",
				"export",
				"request",
				"close bus",
				"close pool",
				"close session",
			}},

		{"serve", &stubRunDispatcher{session: supported()},
			[]string{
				"open:" + sdm.Library,
				"get_pa",
				"feature_version",
				"pa_range",
				"pool:1",
				"connect:" + "unix:path=/tmp/test_bus",
				"export",
				"request",
				"serve",
				"close bus",
				"close pool",
				"close session",
			}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if ret := run(tc.d, config); ret != 1 {
				t.Errorf("run: %d, want 1", ret)
			}
			if !reflect.DeepEqual(tc.d.calls, tc.want) {
				t.Errorf("run: calls = %q, want %q", tc.d.calls, tc.want)
			}
		})
	}
}

// stubRunDispatcher implements dispatcher in-process and records resource
// acquisition order.
type stubRunDispatcher struct {
	calls []string
	logs  []string

	openErr error
	session *stubBackend

	connectErr error
	exportErr  error
	requestErr error
}

func (d *stubRunDispatcher) openSession(name string) (session, error) {
	d.calls = append(d.calls, "open:"+name)
	if d.openErr != nil {
		return nil, d.openErr
	}
	d.session.calls = &d.calls
	return d.session, nil
}

func (d *stubRunDispatcher) connect(address string) (registry, error) {
	d.calls = append(d.calls, "connect:"+address)
	if d.connectErr != nil {
		return nil, d.connectErr
	}
	return &stubRegistry{d}, nil
}

func (d *stubRunDispatcher) newPool(size int) joinPool {
	d.calls = append(d.calls, fmt.Sprintf("pool:%d", size))
	return &stubPool{d}
}

func (d *stubRunDispatcher) diagnose(name string) {
	d.calls = append(d.calls, "diagnose:"+name)
}

func (d *stubRunDispatcher) logf(format string, v ...any) {
	d.logs = append(d.logs, fmt.Sprintf(format, v...))
}

func (d *stubRunDispatcher) verbosef(format string, v ...any) {}

// stubRegistry implements registry in-process.
type stubRegistry struct{ d *stubRunDispatcher }

func (r *stubRegistry) export(a *PictureAdjustment, queue dispatchQueue) error {
	r.d.calls = append(r.d.calls, "export")
	return r.d.exportErr
}

func (r *stubRegistry) request() error {
	r.d.calls = append(r.d.calls, "request")
	return r.d.requestErr
}

func (r *stubRegistry) Close() error {
	r.d.calls = append(r.d.calls, "close bus")
	return nil
}

// stubPool implements joinPool by calling f inline.
type stubPool struct{ d *stubRunDispatcher }

func (p *stubPool) Do(f func()) error { f(); return nil }
func (p *stubPool) Serve()            { p.d.calls = append(p.d.calls, "serve") }
func (p *stubPool) Close()            { p.d.calls = append(p.d.calls, "close pool") }
