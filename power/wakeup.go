package power

import (
	"errors"

	"github.com/holoplot/go-evdev"
)

// WakeupDevice is the input device configured for wakeup gestures.
const WakeupDevice = "/dev/input/event2"

// Wakeup gesture states delivered to the input device as configuration events.
const (
	wakeupModeOff int32 = 4
	wakeupModeOn  int32 = 5
)

// inputDevice is the subset of [evdev.InputDevice] accessed by [Handler].
type inputDevice interface {
	WriteOne(ev *evdev.InputEvent) error
	Close() error
}

// deviceDispatcher provides methods that access input device nodes as part of
// their behaviour.
// deviceDispatcher is embedded in [Handler], so all methods must be unexported.
type deviceDispatcher interface {
	// open opens the input device node at path.
	open(path string) (inputDevice, error)
}

// direct implements deviceDispatcher on the current kernel.
type direct struct{}

func (direct) open(path string) (inputDevice, error) { return evdev.Open(path) }

// A Handler applies power mode hints to the device.
type Handler struct {
	deviceDispatcher
	device string
}

// New returns a Handler writing wakeup gesture state to the input device at path.
func New(path string) *Handler { return &Handler{direct{}, path} }

// SupportsMode reports whether mode is supported. A mode this handler does not
// implement reports ok == false.
func (h *Handler) SupportsMode(mode Mode) (supported, ok bool) {
	switch mode {
	case DoubleTapToWake:
		return true, true
	default:
		return false, false
	}
}

// SetMode applies mode to the device. A mode this handler does not implement
// reports ok == false and has no side effects.
func (h *Handler) SetMode(mode Mode, enabled bool) (ok bool, err error) {
	switch mode {
	case DoubleTapToWake:
		return true, h.setWakeGesture(enabled)
	default:
		return false, nil
	}
}

// setWakeGesture delivers the wakeup gesture state to the input device as a
// configuration event.
func (h *Handler) setWakeGesture(enabled bool) error {
	dev, err := h.open(h.device)
	if err != nil {
		return err
	}

	value := wakeupModeOff
	if enabled {
		value = wakeupModeOn
	}
	err = dev.WriteOne(&evdev.InputEvent{
		Type:  evdev.EV_SYN,
		Code:  evdev.SYN_CONFIG,
		Value: value,
	})
	return errors.Join(err, dev.Close())
}
