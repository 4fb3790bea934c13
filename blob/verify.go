package blob

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// ErrChecksumMismatch is returned when a pinned entry hashes to an unexpected value.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// A Problem pairs a manifest entry with the error affecting it.
type Problem struct {
	Entry *Entry
	Err   error
}

func (p *Problem) Error() string { return p.Entry.Source + ": " + p.Err.Error() }
func (p *Problem) Unwrap() error { return p.Err }

// Verify checks each entry against the vendor tree rooted at root and
// returns a problem for every entry that is absent or fails its pin.
func Verify(root string, entries []*Entry) []*Problem {
	var problems []*Problem
	for _, e := range entries {
		if err := verifyEntry(root, e); err != nil {
			problems = append(problems, &Problem{e, err})
		}
	}
	return problems
}

func verifyEntry(root string, e *Entry) error {
	p := filepath.Join(root, e.Source)
	if e.SHA1 == "" {
		if err := unix.Access(p, unix.R_OK); err != nil {
			return &fs.PathError{Op: "access", Path: p, Err: err}
		}
		return nil
	}

	sum, err := hashFile(p)
	if err != nil {
		return err
	}
	if sum != e.SHA1 {
		return ErrChecksumMismatch
	}
	return nil
}

func hashFile(name string) (string, error) {
	f, err := os.Open(name)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha1.New()
	if _, err = io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
