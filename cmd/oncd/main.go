// Oncd inspects and controls the oncd vendor services.
package main

// this works around go:embed '..' limitation
//go:generate cp ../../LICENSE .

import (
	_ "embed"
	"errors"
	"os"

	"oncd.app/internal/omsg"
)

var (
	errSuccess = errors.New("success")

	//go:embed LICENSE
	license string
)

func main() {
	omsg.Prepare("oncd")

	buildCommand(os.Stderr).MustParse(os.Args[1:], func(err error) {
		omsg.Verbosef("command returned %v", err)
		if errors.Is(err, errSuccess) {
			os.Exit(0)
		}
		omsg.PrintBaseError(err, "cannot run command:")
		os.Exit(1)
	})
	// MustParse returns after writing a help message; all other outcomes
	// terminate in the handler
}
