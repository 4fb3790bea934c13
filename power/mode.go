// Package power applies platform power mode hints to the device.
package power

// Mode is a platform power mode hint.
type Mode uint32

const (
	DoubleTapToWake Mode = iota
	LowPower
	SustainedPerformance
	FixedPerformance
	VR
	Launch
	ExpensiveRendering
	Interactive
	DeviceIdle
	DisplayInactive
	AudioStreamingLowLatency
	CameraStreamingSecure
	CameraStreamingLow
	CameraStreamingMid
	CameraStreamingHigh
	Game
	GameLoading
)

var modeString = [...]string{
	DoubleTapToWake:          "DOUBLE_TAP_TO_WAKE",
	LowPower:                 "LOW_POWER",
	SustainedPerformance:     "SUSTAINED_PERFORMANCE",
	FixedPerformance:         "FIXED_PERFORMANCE",
	VR:                       "VR",
	Launch:                   "LAUNCH",
	ExpensiveRendering:       "EXPENSIVE_RENDERING",
	Interactive:              "INTERACTIVE",
	DeviceIdle:               "DEVICE_IDLE",
	DisplayInactive:          "DISPLAY_INACTIVE",
	AudioStreamingLowLatency: "AUDIO_STREAMING_LOW_LATENCY",
	CameraStreamingSecure:    "CAMERA_STREAMING_SECURE",
	CameraStreamingLow:       "CAMERA_STREAMING_LOW",
	CameraStreamingMid:       "CAMERA_STREAMING_MID",
	CameraStreamingHigh:      "CAMERA_STREAMING_HIGH",
	Game:                     "GAME",
	GameLoading:              "GAME_LOADING",
}

const modeLen = len(modeString)

func (m Mode) String() string {
	if int(m) >= modeLen {
		return "<invalid mode>"
	}
	return modeString[m]
}

// ParseMode returns the Mode named by name.
func ParseMode(name string) (Mode, bool) {
	for i, s := range modeString {
		if s == name {
			return Mode(i), true
		}
	}
	return 0, false
}
