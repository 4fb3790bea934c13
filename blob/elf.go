package blob

import (
	"debug/elf"
	"io/fs"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// LibDirs returns the conventional vendor library directories for class,
// in resolution order.
func LibDirs(class elf.Class) []string {
	if class == elf.ELFCLASS32 {
		return []string{"/odm/lib", "/vendor/lib", "/system/lib"}
	}
	return []string{"/odm/lib64", "/vendor/lib64", "/system/lib64"}
}

// Needed returns the dynamic dependencies and class of the ELF object at name.
func Needed(name string) ([]string, elf.Class, error) {
	f, err := elf.Open(name)
	if err != nil {
		return nil, elf.ELFCLASSNONE, err
	}
	defer func() { _ = f.Close() }()

	libs, err := f.ImportedLibraries()
	return libs, f.Class, err
}

// Locate returns the first path in dirs referring to a readable file with name.
func Locate(name string, dirs []string) (string, error) {
	for _, dir := range dirs {
		p := filepath.Join(dir, name)
		if err := unix.Access(p, unix.R_OK); err == nil {
			return p, nil
		}
	}
	return "", &fs.PathError{Op: "locate", Path: name, Err: fs.ErrNotExist}
}

// Resolve partitions needed between libraries reachable in dirs and missing ones.
func Resolve(needed, dirs []string) (found, missing []string) {
	for _, name := range needed {
		if _, err := Locate(name, dirs); err != nil {
			missing = append(missing, name)
		} else {
			found = append(found, name)
		}
	}
	return
}

// A Report describes the dependency state of one shared object.
type Report struct {
	// Path of the object the report describes.
	Path string `json:"path"`
	// Class is the ELF class of the object.
	Class elf.Class `json:"class"`
	// Needed lists the dynamic dependencies of the object.
	Needed []string `json:"needed"`
	// Missing lists entries of Needed not reachable via the search path.
	Missing []string `json:"missing,omitempty"`
}

// Check reports the dependency state of the shared object at path, resolving
// against dirs, or the conventional directories for the object's class when
// dirs is nil.
func Check(path string, dirs []string) (*Report, error) {
	needed, class, err := Needed(path)
	if err != nil {
		return nil, err
	}
	if dirs == nil {
		dirs = LibDirs(class)
	}
	_, missing := Resolve(needed, dirs)
	return &Report{Path: path, Class: class, Needed: needed, Missing: missing}, nil
}
