// Package input captures gi's own standard input before the wrapped command
// starts, and optionally materializes it as a temporary file.
package input

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Stdin is the buffered input captured at startup. It is never modified after
// Read returns.
type Stdin struct {
	Data  []byte
	Piped bool
}

// Len reports the number of captured bytes.
func (s Stdin) Len() int {
	return len(s.Data)
}

// IsTerminal reports whether r is an interactive terminal. Readers that are not
// files (pipes in tests, bytes.Reader, ...) are never terminals.
var IsTerminal = func(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Read buffers all of r unless r is nil or an interactive terminal, in which
// case it returns an empty, unpiped Stdin without touching r.
func Read(r io.Reader) (Stdin, error) {
	if r == nil || IsTerminal(r) {
		return Stdin{}, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Stdin{}, fmt.Errorf("read stdin: %w", err)
	}
	return Stdin{Data: data, Piped: true}, nil
}
