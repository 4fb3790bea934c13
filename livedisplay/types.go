package livedisplay

import "oncd.app/sdm"

// HSIC is a picture adjustment configuration as carried on the message bus,
// which has no single precision floating point type.
type HSIC struct {
	Hue                 int32   `json:"hue"`
	Saturation          float64 `json:"saturation"`
	Intensity           float64 `json:"intensity"`
	Contrast            float64 `json:"contrast"`
	SaturationThreshold float64 `json:"saturation_threshold"`
}

// IntRange is the valid range of an integer adjustment value.
type IntRange struct {
	Max  int32  `json:"max"`
	Min  int32  `json:"min"`
	Step uint32 `json:"step"`
}

// FloatRange is the valid range of a floating point adjustment value.
type FloatRange struct {
	Max  float64 `json:"max"`
	Min  float64 `json:"min"`
	Step float64 `json:"step"`
}

// HSICRanges is the valid range of every [HSIC] field.
type HSICRanges struct {
	Hue                 IntRange   `json:"hue"`
	Saturation          FloatRange `json:"saturation"`
	Intensity           FloatRange `json:"intensity"`
	Contrast            FloatRange `json:"contrast"`
	SaturationThreshold FloatRange `json:"saturation_threshold"`
}

func fromSDM(config sdm.HSIC) HSIC {
	return HSIC{
		Hue:                 config.Hue,
		Saturation:          float64(config.Saturation),
		Intensity:           float64(config.Intensity),
		Contrast:            float64(config.Contrast),
		SaturationThreshold: float64(config.SaturationThreshold),
	}
}

func (c HSIC) toSDM() sdm.HSIC {
	return sdm.HSIC{
		Hue:                 c.Hue,
		Saturation:          float32(c.Saturation),
		Intensity:           float32(c.Intensity),
		Contrast:            float32(c.Contrast),
		SaturationThreshold: float32(c.SaturationThreshold),
	}
}

func floatRangeFromSDM(r sdm.FloatRange) FloatRange {
	return FloatRange{
		Max:  float64(r.Max),
		Min:  float64(r.Min),
		Step: float64(r.Step),
	}
}

func rangesFromSDM(ranges sdm.HSICRanges) HSICRanges {
	return HSICRanges{
		Hue: IntRange{
			Max:  ranges.Hue.Max,
			Min:  ranges.Hue.Min,
			Step: ranges.Hue.Step,
		},
		Saturation:          floatRangeFromSDM(ranges.Saturation),
		Intensity:           floatRangeFromSDM(ranges.Intensity),
		Contrast:            floatRangeFromSDM(ranges.Contrast),
		SaturationThreshold: floatRangeFromSDM(ranges.SaturationThreshold),
	}
}
