package livedisplay

import (
	"errors"
	"reflect"
	"testing"

	"github.com/godbus/dbus/v5"

	"oncd.app/sdm"
)

var testRanges = sdm.HSICRanges{
	Hue:                 sdm.IntRange{Max: 180, Min: -180, Step: 1},
	Saturation:          sdm.FloatRange{Max: 1, Min: -1, Step: 0.5},
	Intensity:           sdm.FloatRange{Max: 1, Min: -1, Step: 0.5},
	Contrast:            sdm.FloatRange{Max: 1, Min: -1, Step: 0.5},
	SaturationThreshold: sdm.FloatRange{Max: 1, Min: 0, Step: 0.25},
}

func TestSupported(t *testing.T) {
	testCases := []struct {
		name string
		s    *stubBackend
		want bool
	}{
		{"zero version", &stubBackend{ranges: testRanges}, false},
		{"version error", &stubBackend{
			versionErr: &sdm.CallError{Func: "disp_api_get_feature_version", Status: 2},
			ranges:     testRanges}, false},
		{"ranges error", &stubBackend{
			version:   sdm.FeatureVersion{Major: 1},
			rangesErr: &sdm.CallError{Func: "disp_api_get_global_pa_range", Status: 2}}, false},
		{"degenerate hue", &stubBackend{
			version: sdm.FeatureVersion{Major: 1},
			ranges:  sdm.HSICRanges{Saturation: sdm.FloatRange{Max: 1, Min: -1}}}, false},
		{"supported", &stubBackend{
			version: sdm.FeatureVersion{Major: 1},
			ranges:  testRanges}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := New(tc.s).Supported(); got != tc.want {
				t.Errorf("Supported: %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	t.Run("captured", func(t *testing.T) {
		s := &stubBackend{config: sdm.HSIC{Hue: 10}}
		a := New(s)

		// the default must not follow the current adjustment
		s.config = sdm.HSIC{Hue: 99}
		def, err := a.Default()
		if err != nil {
			t.Fatalf("Default: error = %v", err)
		}
		if def.Hue != 10 {
			t.Errorf("Default: hue = %d, want 10", def.Hue)
		}
	})

	t.Run("deferred", func(t *testing.T) {
		s := &stubBackend{configErr: errors.New("backend not ready")}
		a := New(s)

		if _, err := a.Default(); err == nil {
			t.Error("Default: no error while backend not ready")
		}

		s.configErr = nil
		s.config = sdm.HSIC{Hue: 4}
		def, err := a.Default()
		if err != nil {
			t.Fatalf("Default: error = %v", err)
		}
		if def.Hue != 4 {
			t.Errorf("Default: hue = %d, want 4", def.Hue)
		}

		s.config = sdm.HSIC{Hue: 77}
		if def, _ = a.Default(); def.Hue != 4 {
			t.Errorf("Default: hue = %d, want 4", def.Hue)
		}
	})
}

func TestAdjustment(t *testing.T) {
	config := sdm.HSIC{Hue: 15, Saturation: 0.5, Intensity: -0.25, Contrast: 1, SaturationThreshold: 0.75}
	s := &stubBackend{enabled: true, config: config, ranges: testRanges}
	a := New(s)

	if got, err := a.Ranges(); err != nil || !reflect.DeepEqual(got, testRanges) {
		t.Errorf("Ranges: %#v, %v", got, err)
	}
	if got, err := a.Current(); err != nil || got != config {
		t.Errorf("Current: %#v, %v", got, err)
	}

	if err := a.Set(config); err != nil {
		t.Fatalf("Set: error = %v", err)
	}
	if s.setDisp != primaryDisplay || !s.setEnable || s.setConfig != config {
		t.Errorf("Set: passed %d, %v, %#v", s.setDisp, s.setEnable, s.setConfig)
	}

	s.setErr = &sdm.CallError{Func: "disp_api_set_global_pa_config", Status: 1}
	if err := a.Set(config); !errors.Is(err, s.setErr) {
		t.Errorf("Set: error = %v, want %v", err, s.setErr)
	}
}

func TestBusExport(t *testing.T) {
	t.Run("ranges", func(t *testing.T) {
		e := &busExport{New(&stubBackend{ranges: testRanges}), queueStub{}}

		got, dbusErr := e.GetPictureAdjustmentRanges()
		if dbusErr != nil {
			t.Fatalf("GetPictureAdjustmentRanges: error = %v", dbusErr)
		}
		want := HSICRanges{
			Hue:                 IntRange{Max: 180, Min: -180, Step: 1},
			Saturation:          FloatRange{Max: 1, Min: -1, Step: 0.5},
			Intensity:           FloatRange{Max: 1, Min: -1, Step: 0.5},
			Contrast:            FloatRange{Max: 1, Min: -1, Step: 0.5},
			SaturationThreshold: FloatRange{Max: 1, Min: 0, Step: 0.25},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("GetPictureAdjustmentRanges: %#v, want %#v", got, want)
		}
	})

	t.Run("ranges failure", func(t *testing.T) {
		rangesErr := &sdm.CallError{Func: "disp_api_get_global_pa_range", Status: 3}
		e := &busExport{New(&stubBackend{rangesErr: rangesErr}), queueStub{}}

		_, dbusErr := e.GetPictureAdjustmentRanges()
		if want := dbus.MakeFailedError(rangesErr); !reflect.DeepEqual(dbusErr, want) {
			t.Errorf("GetPictureAdjustmentRanges: error = %#v, want %#v", dbusErr, want)
		}
	})

	t.Run("current and default", func(t *testing.T) {
		s := &stubBackend{config: sdm.HSIC{Hue: 30, Saturation: 0.5}}
		e := &busExport{New(s), queueStub{}}
		s.config = sdm.HSIC{Hue: -30, Saturation: 0.25}

		got, dbusErr := e.GetPictureAdjustment()
		if dbusErr != nil {
			t.Fatalf("GetPictureAdjustment: error = %v", dbusErr)
		}
		if want := (HSIC{Hue: -30, Saturation: 0.25}); got != want {
			t.Errorf("GetPictureAdjustment: %#v, want %#v", got, want)
		}

		def, dbusErr := e.GetDefaultPictureAdjustment()
		if dbusErr != nil {
			t.Fatalf("GetDefaultPictureAdjustment: error = %v", dbusErr)
		}
		if want := (HSIC{Hue: 30, Saturation: 0.5}); def != want {
			t.Errorf("GetDefaultPictureAdjustment: %#v, want %#v", def, want)
		}
	})

	t.Run("set", func(t *testing.T) {
		s := &stubBackend{}
		e := &busExport{New(s), queueStub{}}

		ok, dbusErr := e.SetPictureAdjustment(HSIC{Hue: 15, Saturation: 0.5})
		if !ok || dbusErr != nil {
			t.Fatalf("SetPictureAdjustment: %v, %v; want true, nil", ok, dbusErr)
		}
		if want := (sdm.HSIC{Hue: 15, Saturation: 0.5}); s.setConfig != want || !s.setEnable {
			t.Errorf("SetPictureAdjustment: passed %#v, %v", s.setConfig, s.setEnable)
		}

		// a vendor failure is a false reply, not a bus error
		s.setErr = &sdm.CallError{Func: "disp_api_set_global_pa_config", Status: 1}
		if ok, dbusErr = e.SetPictureAdjustment(HSIC{}); ok || dbusErr != nil {
			t.Errorf("SetPictureAdjustment: %v, %v; want false, nil", ok, dbusErr)
		}
	})

	t.Run("queue failure", func(t *testing.T) {
		queueErr := errors.New("pool closed")
		e := &busExport{New(&stubBackend{}), queueStub{queueErr}}

		want := dbus.MakeFailedError(queueErr)
		if _, dbusErr := e.GetPictureAdjustment(); !reflect.DeepEqual(dbusErr, want) {
			t.Errorf("GetPictureAdjustment: error = %#v, want %#v", dbusErr, want)
		}
		if _, dbusErr := e.SetPictureAdjustment(HSIC{}); !reflect.DeepEqual(dbusErr, want) {
			t.Errorf("SetPictureAdjustment: error = %#v, want %#v", dbusErr, want)
		}
	})
}

// stubBackend implements the vendor backend in-process.
type stubBackend struct {
	calls *[]string

	version    sdm.FeatureVersion
	versionErr error

	ranges    sdm.HSICRanges
	rangesErr error

	enabled   bool
	config    sdm.HSIC
	configErr error

	setErr    error
	setDisp   uint32
	setEnable bool
	setConfig sdm.HSIC

	closeErr error
	closed   bool
}

func (s *stubBackend) record(name string) {
	if s.calls != nil {
		*s.calls = append(*s.calls, name)
	}
}

func (s *stubBackend) FeatureVersion(feature uint32) (sdm.FeatureVersion, uint32, error) {
	s.record("feature_version")
	if s.versionErr != nil {
		return sdm.FeatureVersion{}, 0, s.versionErr
	}
	return s.version, 0, nil
}

func (s *stubBackend) GlobalPARange(disp uint32) (sdm.HSICRanges, error) {
	s.record("pa_range")
	if s.rangesErr != nil {
		return sdm.HSICRanges{}, s.rangesErr
	}
	return s.ranges, nil
}

func (s *stubBackend) GlobalPAConfig(disp uint32) (bool, sdm.HSIC, error) {
	s.record("get_pa")
	if s.configErr != nil {
		return false, sdm.HSIC{}, s.configErr
	}
	return s.enabled, s.config, nil
}

func (s *stubBackend) SetGlobalPAConfig(disp uint32, enable bool, config sdm.HSIC) error {
	s.record("set_pa")
	s.setDisp, s.setEnable, s.setConfig = disp, enable, config
	return s.setErr
}

func (s *stubBackend) Close() error {
	s.record("close session")
	s.closed = true
	return s.closeErr
}

// queueStub implements dispatchQueue by calling f inline.
type queueStub struct{ err error }

func (q queueStub) Do(f func()) error {
	if q.err != nil {
		return q.err
	}
	f()
	return nil
}
