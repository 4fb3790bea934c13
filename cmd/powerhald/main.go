// Powerhald applies power mode hints on behalf of the platform and restores
// the persisted wakeup gesture state on startup.
package main

import (
	"flag"
	"os"

	"oncd.app/internal/doze"
	"oncd.app/internal/omsg"
	"oncd.app/power"
	"oncd.app/vndbus"
)

var (
	flagVerbose bool
	flagDevice  string
	flagPrefs   string
	flagPool    int
)

func init() {
	flag.BoolVar(&flagVerbose, "v", false, "Print debug messages to the console")
	flag.StringVar(&flagDevice, "device", power.WakeupDevice, "Path to the wakeup gesture input device")
	flag.StringVar(&flagPrefs, "prefs", doze.DefaultPath, "Path to the wake preference file")
	flag.IntVar(&flagPool, "pool", 1, "Worker pool size")
}

func main() {
	omsg.Prepare("powerhald")
	flag.Parse()
	omsg.Store(flagVerbose)

	os.Exit(power.Run(power.Config{
		Device:     flagDevice,
		Prefs:      flagPrefs,
		BusAddress: vndbus.Address(),
		PoolSize:   flagPool,
	}))
}
