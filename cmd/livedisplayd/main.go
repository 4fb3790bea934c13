// Livedisplayd exposes the vendor display picture adjustment feature on the
// vendor message bus.
package main

import (
	"flag"
	"os"

	"oncd.app/internal/omsg"
	"oncd.app/livedisplay"
	"oncd.app/sdm"
	"oncd.app/vndbus"
)

var (
	flagVerbose bool
	flagLibrary string
	flagPool    int
)

func init() {
	flag.BoolVar(&flagVerbose, "v", false, "Print debug messages to the console")
	flag.StringVar(&flagLibrary, "lib", sdm.Library, "Name of the vendor display library")
	flag.IntVar(&flagPool, "pool", 1, "Worker pool size")
}

func main() {
	omsg.Prepare("livedisplayd")
	flag.Parse()
	omsg.Store(flagVerbose)

	os.Exit(livedisplay.Run(livedisplay.Config{
		Library:    flagLibrary,
		BusAddress: vndbus.Address(),
		PoolSize:   flagPool,
	}))
}
