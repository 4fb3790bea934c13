// Package livedisplay exposes the vendor picture adjustment feature on the
// vendor message bus.
package livedisplay

import (
	"oncd.app/sdm"
)

// primaryDisplay is the display id of the primary panel.
const primaryDisplay uint32 = 0

// backend is the subset of [sdm.Session] the adapter dispatches into.
type backend interface {
	FeatureVersion(feature uint32) (sdm.FeatureVersion, uint32, error)
	GlobalPARange(disp uint32) (sdm.HSICRanges, error)
	GlobalPAConfig(disp uint32) (bool, sdm.HSIC, error)
	SetGlobalPAConfig(disp uint32, enable bool, config sdm.HSIC) error
}

// A PictureAdjustment adapts the global picture adjustment feature of a vendor
// backend. Methods on PictureAdjustment must not be called concurrently.
type PictureAdjustment struct {
	s backend

	def     sdm.HSIC
	haveDef bool
}

// New returns a PictureAdjustment dispatching into s, capturing the current
// adjustment as the default.
func New(s backend) *PictureAdjustment {
	a := &PictureAdjustment{s: s}
	if _, config, err := s.GlobalPAConfig(primaryDisplay); err == nil {
		a.def, a.haveDef = config, true
	}
	return a
}

// Supported reports whether the backend implements a usable picture adjustment
// feature on the primary panel. Supported is a pure query and may be called
// repeatedly.
func (a *PictureAdjustment) Supported() bool {
	version, _, err := a.s.FeatureVersion(sdm.FeaturePictureAdjustment)
	if err != nil || version.IsZero() {
		return false
	}
	ranges, err := a.s.GlobalPARange(primaryDisplay)
	if err != nil {
		return false
	}
	return ranges.Hue.Valid()
}

// Ranges returns the valid adjustment ranges of the primary panel.
func (a *PictureAdjustment) Ranges() (sdm.HSICRanges, error) {
	return a.s.GlobalPARange(primaryDisplay)
}

// Current returns the adjustment currently applied to the primary panel.
func (a *PictureAdjustment) Current() (sdm.HSIC, error) {
	_, config, err := a.s.GlobalPAConfig(primaryDisplay)
	return config, err
}

// Default returns the adjustment captured when the adapter was constructed,
// capturing it now if construction found the backend unready.
func (a *PictureAdjustment) Default() (sdm.HSIC, error) {
	if !a.haveDef {
		_, config, err := a.s.GlobalPAConfig(primaryDisplay)
		if err != nil {
			return sdm.HSIC{}, err
		}
		a.def, a.haveDef = config, true
	}
	return a.def, nil
}

// Set enables global picture adjustment on the primary panel with config.
func (a *PictureAdjustment) Set(config sdm.HSIC) error {
	return a.s.SetGlobalPAConfig(primaryDisplay, true, config)
}
