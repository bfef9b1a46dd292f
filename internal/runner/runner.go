// Package runner executes the wrapped command with fully captured stdio.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os/exec"

	"golang.org/x/sync/errgroup"
)

// FallbackExitCode is reported when the child's status has no numeric exit
// code, e.g. because it was killed by a signal.
const FallbackExitCode = 1

// ErrEmptyCommand indicates that no executable was given.
var ErrEmptyCommand = errors.New("empty command")

// Result holds the outcome of a completed child process.
type Result struct {
	ExitCode int    // child exit code, or FallbackExitCode
	Stdout   []byte // everything the child wrote to stdout
	Stderr   []byte // everything the child wrote to stderr
	Signal   string // terminating signal name, if any
}

// SpawnError reports that the child could not be started at all.
type SpawnError struct {
	Name string   // executable as given
	Args []string // full command line
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("start %s: %v", e.Name, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// Run starts argv[0] with argv[1:] and waits for it to exit.
//
// When feed is true, stdin is written to the child's standard input by a
// single worker goroutine that closes the pipe when done. The child's stdout
// and stderr are drained concurrently by os/exec from the moment it starts, so
// a child that fills its output pipe before consuming all input cannot
// deadlock gi. Failures writing stdin are logged and otherwise ignored: the
// child's exit code decides success. When feed is false the child reads from
// the null device.
func Run(ctx context.Context, argv []string, stdin []byte, feed bool) (*Result, error) {
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	var pipe io.WriteCloser
	if feed {
		p, err := cmd.StdinPipe()
		if err != nil {
			return nil, fmt.Errorf("stdin pipe: %w", err)
		}
		pipe = p
	}

	if err := cmd.Start(); err != nil {
		return nil, &SpawnError{Name: argv[0], Args: argv, Err: err}
	}

	if pipe != nil {
		var g errgroup.Group
		g.Go(func() error {
			return feedStdin(pipe, stdin)
		})
		if err := g.Wait(); err != nil {
			log.Printf("writing stdin to %s: %v (ignored)", argv[0], err)
		}
	}

	waitErr := cmd.Wait()
	res := &Result{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return nil, fmt.Errorf("wait for %s: %w", argv[0], waitErr)
		}
	}
	res.ExitCode, res.Signal = exitStatus(cmd)
	return res, nil
}

func feedStdin(w io.WriteCloser, data []byte) error {
	_, writeErr := w.Write(data)
	closeErr := w.Close()
	if writeErr != nil {
		return writeErr
	}
	if closeErr != nil && !errors.Is(closeErr, io.ErrClosedPipe) {
		return closeErr
	}
	return nil
}

func exitStatus(cmd *exec.Cmd) (int, string) {
	state := cmd.ProcessState
	if state == nil {
		return FallbackExitCode, ""
	}
	code := state.ExitCode()
	if code < 0 {
		return FallbackExitCode, signalName(state)
	}
	return code, ""
}
