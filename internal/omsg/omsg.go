// Package omsg provides output messages shared by the oncd daemons and tools.
package omsg

import (
	"log"
	"sync/atomic"
)

var verbose = new(atomic.Bool)

// Prepare configures the default logger for daemon output.
func Prepare(prefix string) {
	log.SetPrefix(prefix + ": ")
	log.SetFlags(0)
}

func Load() bool   { return verbose.Load() }
func Store(v bool) { verbose.Store(v) }

func Verbosef(format string, v ...any) {
	if verbose.Load() {
		log.Printf(format, v...)
	}
}

func Verbose(v ...any) {
	if verbose.Load() {
		log.Println(v...)
	}
}
