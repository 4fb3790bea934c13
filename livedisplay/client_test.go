package livedisplay

import (
	"errors"
	"reflect"
	"testing"

	"github.com/godbus/dbus/v5"
)

func TestClient(t *testing.T) {
	t.Run("ranges", func(t *testing.T) {
		obj := &stubCaller{call: &dbus.Call{Body: []any{[]any{
			[]any{int32(180), int32(-180), uint32(1)},
			[]any{1.0, -1.0, 0.05},
			[]any{1.0, -1.0, 0.05},
			[]any{1.0, -1.0, 0.05},
			[]any{1.0, 0.0, 0.1},
		}}}}

		got, err := (&Client{obj}).Ranges()
		if err != nil {
			t.Fatalf("Ranges: error = %v", err)
		}
		want := HSICRanges{
			Hue:                 IntRange{Max: 180, Min: -180, Step: 1},
			Saturation:          FloatRange{Max: 1, Min: -1, Step: 0.05},
			Intensity:           FloatRange{Max: 1, Min: -1, Step: 0.05},
			Contrast:            FloatRange{Max: 1, Min: -1, Step: 0.05},
			SaturationThreshold: FloatRange{Max: 1, Min: 0, Step: 0.1},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Ranges: %#v, want %#v", got, want)
		}
		if obj.method != BusInterface+".GetPictureAdjustmentRanges" {
			t.Errorf("Ranges: called %q", obj.method)
		}
	})

	t.Run("current", func(t *testing.T) {
		obj := &stubCaller{call: &dbus.Call{Body: []any{
			[]any{int32(30), 0.5, 0.25, -0.5, 0.75},
		}}}

		got, err := (&Client{obj}).Current()
		if err != nil {
			t.Fatalf("Current: error = %v", err)
		}
		want := HSIC{Hue: 30, Saturation: 0.5, Intensity: 0.25, Contrast: -0.5, SaturationThreshold: 0.75}
		if got != want {
			t.Errorf("Current: %#v, want %#v", got, want)
		}
		if obj.method != BusInterface+".GetPictureAdjustment" {
			t.Errorf("Current: called %q", obj.method)
		}
	})

	t.Run("default", func(t *testing.T) {
		obj := &stubCaller{call: &dbus.Call{Body: []any{
			[]any{int32(0), 0.0, 0.0, 0.0, 0.0},
		}}}

		if _, err := (&Client{obj}).Default(); err != nil {
			t.Fatalf("Default: error = %v", err)
		}
		if obj.method != BusInterface+".GetDefaultPictureAdjustment" {
			t.Errorf("Default: called %q", obj.method)
		}
	})

	t.Run("set", func(t *testing.T) {
		obj := &stubCaller{call: &dbus.Call{Body: []any{true}}}
		config := HSIC{Hue: 15, Saturation: 0.5}

		ok, err := (&Client{obj}).Set(config)
		if err != nil {
			t.Fatalf("Set: error = %v", err)
		}
		if !ok {
			t.Error("Set: false, want true")
		}
		if obj.method != BusInterface+".SetPictureAdjustment" {
			t.Errorf("Set: called %q", obj.method)
		}
		if !reflect.DeepEqual(obj.args, []any{config}) {
			t.Errorf("Set: passed %#v", obj.args)
		}
	})

	t.Run("call failure", func(t *testing.T) {
		callErr := dbus.MakeFailedError(errors.New("vendor backend failure"))
		obj := &stubCaller{call: &dbus.Call{Err: callErr}}

		if _, err := (&Client{obj}).Current(); !errors.Is(err, callErr) {
			t.Errorf("Current: error = %v, want %v", err, callErr)
		}
		if _, err := (&Client{obj}).Set(HSIC{}); !errors.Is(err, callErr) {
			t.Errorf("Set: error = %v, want %v", err, callErr)
		}
	})
}

// stubCaller implements caller in-process.
type stubCaller struct {
	call *dbus.Call

	method string
	args   []any
}

func (c *stubCaller) Call(method string, flags dbus.Flags, args ...any) *dbus.Call {
	c.method = method
	c.args = args
	return c.call
}
