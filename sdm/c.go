package sdm

/*
#cgo linux LDFLAGS: -ldl

#include <stdint.h>
#include <stdlib.h>
#include <dlfcn.h>

struct sdm_feature_version {
  uint32_t major;
  uint32_t minor;
  uint32_t patch;
};

struct sdm_pa_range {
  int32_t max;
  int32_t min;
  uint32_t step;
};

struct sdm_pa_range_float {
  float max;
  float min;
  float step;
};

struct sdm_pa_ranges {
  uint32_t flags;
  struct sdm_pa_range hue;
  struct sdm_pa_range_float saturation;
  struct sdm_pa_range_float intensity;
  struct sdm_pa_range_float contrast;
  struct sdm_pa_range_float saturation_threshold;
};

struct sdm_pa_data {
  int32_t hue;
  float saturation;
  float intensity;
  float contrast;
  float saturation_threshold;
};

struct sdm_pa_config {
  uint32_t flags;
  struct sdm_pa_data data;
};

typedef int32_t (*sdm_init_fn)(int64_t *, uint32_t);
typedef int32_t (*sdm_deinit_fn)(int64_t, uint32_t);
typedef int32_t (*sdm_feature_version_fn)(int64_t, uint32_t, struct sdm_feature_version *, uint32_t *);
typedef int32_t (*sdm_pa_range_fn)(int64_t, uint32_t, struct sdm_pa_ranges *);
typedef int32_t (*sdm_get_pa_fn)(int64_t, uint32_t, uint32_t *, struct sdm_pa_config *);
typedef int32_t (*sdm_set_pa_fn)(int64_t, uint32_t, uint32_t, struct sdm_pa_config *);

static int32_t sdm_call_init(void *fn, int64_t *cookie, uint32_t flags) {
  return ((sdm_init_fn)fn)(cookie, flags);
}

static int32_t sdm_call_deinit(void *fn, int64_t cookie, uint32_t flags) {
  return ((sdm_deinit_fn)fn)(cookie, flags);
}

static int32_t sdm_call_feature_version(void *fn, int64_t cookie, uint32_t feature,
                                        struct sdm_feature_version *version, uint32_t *flags) {
  return ((sdm_feature_version_fn)fn)(cookie, feature, version, flags);
}

static int32_t sdm_call_pa_range(void *fn, int64_t cookie, uint32_t disp,
                                 struct sdm_pa_ranges *ranges) {
  return ((sdm_pa_range_fn)fn)(cookie, disp, ranges);
}

static int32_t sdm_call_get_pa(void *fn, int64_t cookie, uint32_t disp,
                               uint32_t *enable, struct sdm_pa_config *config) {
  return ((sdm_get_pa_fn)fn)(cookie, disp, enable, config);
}

static int32_t sdm_call_set_pa(void *fn, int64_t cookie, uint32_t disp,
                               uint32_t enable, struct sdm_pa_config *config) {
  return ((sdm_set_pa_fn)fn)(cookie, disp, enable, config);
}
*/
import "C"
import "unsafe"

// direct implements vendorDispatcher on the current process.
type direct struct{}

// dlerr returns the pending dlerror message.
func dlerr() string {
	if s := C.dlerror(); s != nil {
		return C.GoString(s)
	}
	return "unknown error"
}

func (direct) dlopen(name string) (unsafe.Pointer, error) {
	n := C.CString(name)
	defer C.free(unsafe.Pointer(n))
	if handle := C.dlopen(n, C.RTLD_NOW); handle != nil {
		return handle, nil
	}
	return nil, &LoadError{name, dlerr()}
}

func (direct) dlsym(handle unsafe.Pointer, name string) (unsafe.Pointer, error) {
	n := C.CString(name)
	defer C.free(unsafe.Pointer(n))
	C.dlerror() // clear any pending message
	if fn := C.dlsym(handle, n); fn != nil {
		return fn, nil
	}
	return nil, &SymbolError{name, dlerr()}
}

func (direct) dlclose(handle unsafe.Pointer) error {
	if C.dlclose(handle) != 0 {
		return &UnloadError{dlerr()}
	}
	return nil
}

func (direct) callInit(fn unsafe.Pointer, flags uint32) (int64, int32) {
	var cookie C.int64_t
	r := C.sdm_call_init(fn, &cookie, C.uint32_t(flags))
	return int64(cookie), int32(r)
}

func (direct) callDeinit(fn unsafe.Pointer, cookie int64, flags uint32) int32 {
	return int32(C.sdm_call_deinit(fn, C.int64_t(cookie), C.uint32_t(flags)))
}

func (direct) callFeatureVersion(fn unsafe.Pointer, cookie int64, feature uint32) (FeatureVersion, uint32, int32) {
	var version C.struct_sdm_feature_version
	var flags C.uint32_t
	r := C.sdm_call_feature_version(fn, C.int64_t(cookie), C.uint32_t(feature), &version, &flags)
	return FeatureVersion{
		Major: uint32(version.major),
		Minor: uint32(version.minor),
		Patch: uint32(version.patch),
	}, uint32(flags), int32(r)
}

func (direct) callPARange(fn unsafe.Pointer, cookie int64, disp uint32) (HSICRanges, int32) {
	var ranges C.struct_sdm_pa_ranges
	r := C.sdm_call_pa_range(fn, C.int64_t(cookie), C.uint32_t(disp), &ranges)
	return HSICRanges{
		Hue: IntRange{
			Max:  int32(ranges.hue.max),
			Min:  int32(ranges.hue.min),
			Step: uint32(ranges.hue.step),
		},
		Saturation:          floatRange(ranges.saturation),
		Intensity:           floatRange(ranges.intensity),
		Contrast:            floatRange(ranges.contrast),
		SaturationThreshold: floatRange(ranges.saturation_threshold),
	}, int32(r)
}

func floatRange(r C.struct_sdm_pa_range_float) FloatRange {
	return FloatRange{
		Max:  float32(r.max),
		Min:  float32(r.min),
		Step: float32(r.step),
	}
}

func (direct) callPAConfig(fn unsafe.Pointer, cookie int64, disp uint32) (bool, HSIC, int32) {
	var enable C.uint32_t
	var config C.struct_sdm_pa_config
	r := C.sdm_call_get_pa(fn, C.int64_t(cookie), C.uint32_t(disp), &enable, &config)
	return enable != 0, HSIC{
		Hue:                 int32(config.data.hue),
		Saturation:          float32(config.data.saturation),
		Intensity:           float32(config.data.intensity),
		Contrast:            float32(config.data.contrast),
		SaturationThreshold: float32(config.data.saturation_threshold),
	}, int32(r)
}

func (direct) callSetPAConfig(fn unsafe.Pointer, cookie int64, disp uint32, enable bool, config HSIC) int32 {
	var c C.struct_sdm_pa_config
	c.data.hue = C.int32_t(config.Hue)
	c.data.saturation = C.float(config.Saturation)
	c.data.intensity = C.float(config.Intensity)
	c.data.contrast = C.float(config.Contrast)
	c.data.saturation_threshold = C.float(config.SaturationThreshold)

	var e C.uint32_t
	if enable {
		e = 1
	}
	return int32(C.sdm_call_set_pa(fn, C.int64_t(cookie), C.uint32_t(disp), e, &c))
}
