// Package blob describes proprietary vendor files and their runtime dependencies.
package blob

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

var (
	// ErrEmptyEntry is returned for an entry with a zero length source path.
	ErrEmptyEntry = errors.New("empty entry")
	// ErrBadChecksum is returned for a pinned checksum that is not valid hex of the right length.
	ErrBadChecksum = errors.New("bad checksum format")
)

// EntryBadArgumentError is returned for a malformed argument clause.
type EntryBadArgumentError string

func (e EntryBadArgumentError) Error() string {
	return fmt.Sprintf("bad argument clause %q", string(e))
}

// LineError wraps an error with the manifest line it occurred on.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }
func (e *LineError) Unwrap() error { return e.Err }

// An Entry represents one line of a proprietary files manifest.
//
// The line format is [-]source[:target][;key[=value]...][|sha1] where a
// leading dash marks an entry built as a package rather than copied.
type Entry struct {
	// Source is the path of the file relative to the vendor tree root.
	Source string `json:"source"`
	// Target overrides the installed path when not empty.
	Target string `json:"target,omitempty"`
	// SHA1 is the expected content hash in hex when not empty.
	SHA1 string `json:"sha1,omitempty"`
	// Args holds extraction argument clauses.
	Args map[string]string `json:"args,omitempty"`
	// Package marks an entry built as a package rather than copied.
	Package bool `json:"package,omitempty"`
}

// Installed returns the path the entry is installed at, relative to the tree root.
func (e *Entry) Installed() string {
	if e.Target != "" {
		return e.Target
	}
	return e.Source
}

// UnmarshalText parses a manifest line and saves it to [Entry].
func (e *Entry) UnmarshalText(data []byte) error {
	s := string(data)
	*e = Entry{}

	if strings.HasPrefix(s, "-") {
		e.Package = true
		s = s[1:]
	}
	if i := strings.IndexByte(s, '|'); i >= 0 {
		e.SHA1 = s[i+1:]
		s = s[:i]
		if !validChecksum(e.SHA1) {
			return ErrBadChecksum
		}
	}
	clauses := strings.Split(s, ";")
	for _, clause := range clauses[1:] {
		key, value, _ := strings.Cut(clause, "=")
		if key == "" {
			return EntryBadArgumentError(clause)
		}
		if e.Args == nil {
			e.Args = make(map[string]string)
		}
		e.Args[key] = value
	}
	e.Source, e.Target, _ = strings.Cut(clauses[0], ":")
	if e.Source == "" {
		return ErrEmptyEntry
	}
	return nil
}

func (e *Entry) String() string {
	b := new(strings.Builder)
	if e.Package {
		b.WriteByte('-')
	}
	b.WriteString(e.Source)
	if e.Target != "" {
		b.WriteByte(':')
		b.WriteString(e.Target)
	}
	keys := make([]string, 0, len(e.Args))
	for key := range e.Args {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		b.WriteByte(';')
		b.WriteString(key)
		if value := e.Args[key]; value != "" {
			b.WriteByte('=')
			b.WriteString(value)
		}
	}
	if e.SHA1 != "" {
		b.WriteByte('|')
		b.WriteString(e.SHA1)
	}
	return b.String()
}

func validChecksum(s string) bool {
	if len(s) != 2*sha1.Size {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		default:
			return false
		}
	}
	return true
}

// A Decoder reads and decodes [Entry] values from a manifest stream.
//
// The zero value is not safe for use.
type Decoder struct {
	s *bufio.Scanner

	// line number of the most recent token
	line int
	// whether s has no more tokens
	depleted bool
	// holds onto the first error encountered while decoding
	err error
}

// NewDecoder returns a new decoder that reads from r.
//
// The decoder introduces its own buffering and may read
// data from r beyond the [Entry] values requested.
func NewDecoder(r io.Reader) *Decoder { return &Decoder{s: bufio.NewScanner(r)} }

// Scan advances the [Decoder] to the next [Entry] and stores the result
// in the value pointed to by v. Blank lines and comments are skipped.
func (d *Decoder) Scan(v *Entry) bool {
	if d.s == nil || d.err != nil || d.depleted {
		return false
	}
	for d.s.Scan() {
		d.line++
		data := bytes.TrimSpace(d.s.Bytes())
		if len(data) == 0 || data[0] == '#' {
			continue
		}
		if err := v.UnmarshalText(data); err != nil {
			d.err = &LineError{d.line, err}
			return false
		}
		return true
	}
	d.depleted = true
	return false
}

// Err returns the first error that was encountered by the
// underlying [bufio.Scanner] or [Entry].
func (d *Decoder) Err() error {
	if d.err != nil || d.s == nil {
		return d.err
	}
	return d.s.Err()
}

// Decode reads from the input stream until there are no more entries
// and returns the results in a slice.
func (d *Decoder) Decode() ([]*Entry, error) {
	var entries []*Entry

	e := new(Entry)
	for d.Scan(e) {
		entries = append(entries, e)
		e = new(Entry)
	}
	return entries, d.Err()
}

// Parse returns a slice of addresses to [Entry] decoded from p.
func Parse(p []byte) ([]*Entry, error) { return NewDecoder(bytes.NewReader(p)).Decode() }
