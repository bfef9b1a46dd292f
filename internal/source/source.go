// Package source names the places gi can take output bytes from when it
// decides what to print after the wrapped command exits.
package source

import (
	"errors"
	"fmt"
	"strings"
)

// Source selects the bytes written to one of gi's output streams.
type Source string

const (
	// None writes nothing.
	None Source = "none"
	// Stdout is the wrapped command's captured standard output.
	Stdout Source = "stdout"
	// Stderr is the wrapped command's captured standard error.
	Stderr Source = "stderr"
	// Stdin is the input gi itself received.
	Stdin Source = "stdin"
	// StdinFile is the temporary file gi wrote its input to (--stdin-file),
	// read back after the command exits.
	StdinFile Source = "stdin-file"
	// File is the caller-supplied --file path, read back after the command exits.
	File Source = "file"
)

// ErrUnknown indicates a source name gi does not recognize.
var ErrUnknown = errors.New("unknown output source")

var all = []Source{None, Stdout, Stderr, Stdin, StdinFile, File}

// All lists every source in the order shown to users.
func All() []Source {
	out := make([]Source, len(all))
	copy(out, all)
	return out
}

// Names returns the comma separated list of valid source names.
func Names() string {
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// Parse converts a user supplied name into a Source. Matching ignores case and
// accepts underscores in place of hyphens.
func Parse(name string) (Source, error) {
	norm := strings.ToLower(strings.TrimSpace(name))
	norm = strings.ReplaceAll(norm, "_", "-")
	for _, s := range all {
		if string(s) == norm {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w %q (want one of: %s)", ErrUnknown, name, Names())
}

// FileBacked reports whether the source is read from disk at routing time.
func (s Source) FileBacked() bool {
	return s == StdinFile || s == File
}

func (s Source) String() string {
	return string(s)
}

// Set implements pflag.Value.
func (s *Source) Set(value string) error {
	parsed, err := Parse(value)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Type implements pflag.Value.
func (s *Source) Type() string {
	return "source"
}

// UnmarshalText lets config files name sources directly.
func (s *Source) UnmarshalText(text []byte) error {
	return s.Set(string(text))
}

// MarshalText writes the canonical source name.
func (s Source) MarshalText() ([]byte, error) {
	return []byte(s), nil
}
