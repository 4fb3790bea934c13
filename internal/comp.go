// Package internal carries values set at build time.
package internal

// compPoison is the placeholder value of variables the linker is expected to set.
const compPoison = "INVALIDINVALIDINVALIDINVALIDINVALID"

// version is set by the linker.
var version = compPoison

// Version returns the version string embedded during linking, or a fixed
// placeholder for an incorrectly built binary.
func Version() string {
	if version != compPoison && version != "" {
		return version
	}
	return "impure"
}
