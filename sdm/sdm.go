// Package sdm loads the proprietary display services library and calls into
// its colour management interface.
package sdm

import (
	"errors"
	"fmt"
	"unsafe"
)

// Library is the soname of the vendor display services library.
const Library = "libsdm-disp-vndapis.so"

// FeaturePictureAdjustment identifies the global picture adjustment feature.
const FeaturePictureAdjustment uint32 = 4

const (
	symInit              = "disp_api_init"
	symDeinit            = "disp_api_deinit"
	symGetFeatureVersion = "disp_api_get_feature_version"
	symGetGlobalPARange  = "disp_api_get_global_pa_range"
	symGetGlobalPAConfig = "disp_api_get_global_pa_config"
	symSetGlobalPAConfig = "disp_api_set_global_pa_config"
)

// FeatureVersion is the version of a display feature reported by the vendor library.
type FeatureVersion struct {
	Major uint32 `json:"major"`
	Minor uint32 `json:"minor"`
	Patch uint32 `json:"patch"`
}

// IsZero reports whether v holds no version information.
func (v FeatureVersion) IsZero() bool { return v == FeatureVersion{} }

func (v FeatureVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// HSIC is a global picture adjustment configuration.
type HSIC struct {
	Hue                 int32   `json:"hue"`
	Saturation          float32 `json:"saturation"`
	Intensity           float32 `json:"intensity"`
	Contrast            float32 `json:"contrast"`
	SaturationThreshold float32 `json:"saturation_threshold"`
}

// IntRange is the valid range of an integer adjustment value.
type IntRange struct {
	Max  int32  `json:"max"`
	Min  int32  `json:"min"`
	Step uint32 `json:"step"`
}

// Valid reports whether the range can hold more than one value.
func (r IntRange) Valid() bool { return r.Max > r.Min }

// FloatRange is the valid range of a floating point adjustment value.
type FloatRange struct {
	Max  float32 `json:"max"`
	Min  float32 `json:"min"`
	Step float32 `json:"step"`
}

// Valid reports whether the range can hold more than one value.
func (r FloatRange) Valid() bool { return r.Max > r.Min }

// HSICRanges is the valid range of every [HSIC] field.
type HSICRanges struct {
	Hue                 IntRange   `json:"hue"`
	Saturation          FloatRange `json:"saturation"`
	Intensity           FloatRange `json:"intensity"`
	Contrast            FloatRange `json:"contrast"`
	SaturationThreshold FloatRange `json:"saturation_threshold"`
}

// Valid reports whether every field of HSICRanges holds a usable range.
func (r HSICRanges) Valid() bool {
	return r.Hue.Valid() &&
		r.Saturation.Valid() &&
		r.Intensity.Valid() &&
		r.Contrast.Valid() &&
		r.SaturationThreshold.Valid()
}

// vendorDispatcher provides methods that call into the dynamic loader and the
// vendor display library as part of their behaviour.
// vendorDispatcher is embedded in [Session], so all methods must be unexported.
type vendorDispatcher interface {
	// dlopen loads the shared object name with immediate symbol binding.
	dlopen(name string) (unsafe.Pointer, error)
	// dlsym resolves name in the shared object referred to by handle.
	dlsym(handle unsafe.Pointer, name string) (unsafe.Pointer, error)
	// dlclose unloads the shared object referred to by handle.
	dlclose(handle unsafe.Pointer) error

	// callInit establishes a vendor session and returns its cookie.
	callInit(fn unsafe.Pointer, flags uint32) (int64, int32)
	// callDeinit releases the vendor session identified by cookie.
	callDeinit(fn unsafe.Pointer, cookie int64, flags uint32) int32
	// callFeatureVersion returns the version and flags of a display feature.
	callFeatureVersion(fn unsafe.Pointer, cookie int64, feature uint32) (FeatureVersion, uint32, int32)
	// callPARange returns the valid picture adjustment ranges of a display.
	callPARange(fn unsafe.Pointer, cookie int64, disp uint32) (HSICRanges, int32)
	// callPAConfig returns the current picture adjustment state of a display.
	callPAConfig(fn unsafe.Pointer, cookie int64, disp uint32) (bool, HSIC, int32)
	// callSetPAConfig applies a picture adjustment configuration to a display.
	callSetPAConfig(fn unsafe.Pointer, cookie int64, disp uint32, enable bool, config HSIC) int32
}

// A Session is an initialised connection to the vendor display services library.
// Methods on Session must not be called concurrently.
type Session struct {
	vendorDispatcher

	name   string
	handle unsafe.Pointer
	cookie int64

	deinitFn unsafe.Pointer
	syms     map[string]unsafe.Pointer

	closed bool
}

// Open loads the shared object name and establishes a vendor session against it.
// On failure the library is never left loaded.
func Open(name string) (*Session, error) { return open(direct{}, name) }

func open(k vendorDispatcher, name string) (*Session, error) {
	s := &Session{vendorDispatcher: k, name: name, syms: make(map[string]unsafe.Pointer)}

	var err error
	if s.handle, err = k.dlopen(name); err != nil {
		return nil, err
	}

	var initFn unsafe.Pointer
	if initFn, err = k.dlsym(s.handle, symInit); err != nil {
		return nil, errors.Join(err, k.dlclose(s.handle))
	}
	if s.deinitFn, err = k.dlsym(s.handle, symDeinit); err != nil {
		return nil, errors.Join(err, k.dlclose(s.handle))
	}

	if cookie, r := k.callInit(initFn, 0); r != 0 {
		// the session never became valid, so it must not be released
		return nil, errors.Join(&CallError{symInit, r}, k.dlclose(s.handle))
	} else {
		s.cookie = cookie
	}
	return s, nil
}

// Name returns the shared object name the session was opened against.
func (s *Session) Name() string { return s.name }

// Close releases the vendor session and unloads the library, in that order.
// Close must be called exactly once; a second call panics.
func (s *Session) Close() error {
	if s.closed {
		panic("session closed twice")
	}
	s.closed = true

	var deinitErr error
	if r := s.callDeinit(s.deinitFn, s.cookie, 0); r != 0 {
		deinitErr = &CallError{symDeinit, r}
	}
	return errors.Join(deinitErr, s.dlclose(s.handle))
}

// symbol resolves name in the loaded library, caching the result.
func (s *Session) symbol(name string) (unsafe.Pointer, error) {
	if fn, ok := s.syms[name]; ok {
		return fn, nil
	}
	fn, err := s.dlsym(s.handle, name)
	if err == nil {
		s.syms[name] = fn
	}
	return fn, err
}

// FeatureVersion returns the version and flags of the display feature identified
// by feature.
func (s *Session) FeatureVersion(feature uint32) (FeatureVersion, uint32, error) {
	fn, err := s.symbol(symGetFeatureVersion)
	if err != nil {
		return FeatureVersion{}, 0, err
	}
	v, flags, r := s.callFeatureVersion(fn, s.cookie, feature)
	if r != 0 {
		return FeatureVersion{}, 0, &CallError{symGetFeatureVersion, r}
	}
	return v, flags, nil
}

// GlobalPARange returns the valid picture adjustment ranges of the display
// identified by disp.
func (s *Session) GlobalPARange(disp uint32) (HSICRanges, error) {
	fn, err := s.symbol(symGetGlobalPARange)
	if err != nil {
		return HSICRanges{}, err
	}
	ranges, r := s.callPARange(fn, s.cookie, disp)
	if r != 0 {
		return HSICRanges{}, &CallError{symGetGlobalPARange, r}
	}
	return ranges, nil
}

// GlobalPAConfig returns the current picture adjustment state of the display
// identified by disp.
func (s *Session) GlobalPAConfig(disp uint32) (bool, HSIC, error) {
	fn, err := s.symbol(symGetGlobalPAConfig)
	if err != nil {
		return false, HSIC{}, err
	}
	enable, config, r := s.callPAConfig(fn, s.cookie, disp)
	if r != 0 {
		return false, HSIC{}, &CallError{symGetGlobalPAConfig, r}
	}
	return enable, config, nil
}

// SetGlobalPAConfig applies a picture adjustment configuration to the display
// identified by disp.
func (s *Session) SetGlobalPAConfig(disp uint32, enable bool, config HSIC) error {
	fn, err := s.symbol(symSetGlobalPAConfig)
	if err != nil {
		return err
	}
	if r := s.callSetPAConfig(fn, s.cookie, disp, enable, config); r != 0 {
		return &CallError{symSetGlobalPAConfig, r}
	}
	return nil
}
