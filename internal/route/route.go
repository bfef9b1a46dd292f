// Package route decides which captured bytes gi prints once the wrapped
// command has exited.
package route

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/brandonbloom/gi/internal/source"
)

// Policy maps each of gi's output streams to the source that feeds it.
type Policy struct {
	Stdout source.Source
	Stderr source.Source
}

// Plan holds one policy per exit status branch.
type Plan struct {
	Success Policy
	Failure Policy
}

// DefaultPlan passes the command's streams through on success and prints
// nothing on failure.
func DefaultPlan() Plan {
	return Plan{
		Success: Policy{Stdout: source.Stdout, Stderr: source.Stderr},
		Failure: Policy{Stdout: source.None, Stderr: source.None},
	}
}

// For returns the policy governing the given exit code.
func (p Plan) For(code int) Policy {
	if code == 0 {
		return p.Success
	}
	return p.Failure
}

// Inputs are the byte sources available after the command exits. File-backed
// sources are read lazily because the command may have rewritten them.
type Inputs struct {
	ChildStdout []byte
	ChildStderr []byte
	Stdin       []byte
	StdinFile   string
	File        string
}

// Resolve fetches the bytes for src. A file-backed source with no path, or
// whose file no longer exists, yields no bytes and no error.
func (in Inputs) Resolve(src source.Source) ([]byte, error) {
	switch src {
	case source.None, "":
		return nil, nil
	case source.Stdout:
		return in.ChildStdout, nil
	case source.Stderr:
		return in.ChildStderr, nil
	case source.Stdin:
		return in.Stdin, nil
	case source.StdinFile:
		return readOptional(in.StdinFile)
	case source.File:
		return readOptional(in.File)
	default:
		return nil, fmt.Errorf("%w %q", source.ErrUnknown, string(src))
	}
}

func readOptional(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// Write resolves the stdout slot and writes it, then does the same for the
// stderr slot. Each slot is emitted with a single Write call.
func Write(stdout, stderr io.Writer, p Policy, in Inputs) error {
	if err := writeSlot(stdout, "stdout", p.Stdout, in); err != nil {
		return err
	}
	return writeSlot(stderr, "stderr", p.Stderr, in)
}

func writeSlot(w io.Writer, name string, src source.Source, in Inputs) error {
	data, err := in.Resolve(src)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if len(data) == 0 {
		return nil
	}
	n, err := w.Write(data)
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if n != len(data) {
		return fmt.Errorf("write %s: %w", name, io.ErrShortWrite)
	}
	return nil
}
