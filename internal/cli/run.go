package cli

import (
	"context"
	"io"
	"log"

	"github.com/brandonbloom/gi/internal/input"
	"github.com/brandonbloom/gi/internal/placeholder"
	"github.com/brandonbloom/gi/internal/route"
	"github.com/brandonbloom/gi/internal/runner"
)

type options struct {
	plan            route.Plan
	stdinFile       bool
	stdinFileSuffix string
	file            string
}

// pipesStdin reports whether the command receives gi's input on its stdin.
// Both file modes hand the input over as a path instead.
func (o options) pipesStdin() bool {
	return !o.stdinFile && o.file == ""
}

// runWrapped executes argv and routes its output, returning the command's
// exit code. A non-nil error means gi itself failed.
func runWrapped(ctx context.Context, opts options, argv []string, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	in, err := withPhase(ctx, "read stdin", func() (input.Stdin, error) {
		return input.Read(stdin)
	})
	if err != nil {
		return exitFailure, err
	}
	log.Printf("stdin: %d bytes (piped: %t)", in.Len(), in.Piped)

	values := make(map[string]string)
	var tmp *input.TempFile
	if opts.stdinFile {
		tmp, err = withPhase(ctx, "materialize stdin", func() (*input.TempFile, error) {
			return input.Materialize(in.Data, opts.stdinFileSuffix)
		})
		if err != nil {
			return exitFailure, err
		}
		defer func() {
			if err := tmp.Remove(); err != nil {
				log.Printf("removing %s: %v", tmp.Path(), err)
			}
		}()
		values[placeholder.StdinFile] = tmp.Path()
		log.Printf("stdin file: %s", tmp.Path())
	}
	if opts.file != "" {
		values[placeholder.File] = opts.file
	}
	argv = placeholder.Expand(argv, values)

	feed := in.Piped && opts.pipesStdin()
	log.Printf("running %q (feed stdin: %t)", argv, feed)
	res, err := withPhase(ctx, "run command", func() (*runner.Result, error) {
		return runner.Run(ctx, argv, in.Data, feed)
	})
	if err != nil {
		return exitFailure, err
	}
	if res.Signal != "" {
		log.Printf("command terminated by %s; exiting %d", res.Signal, res.ExitCode)
	}
	log.Printf("exit %d: %d bytes stdout, %d bytes stderr", res.ExitCode, len(res.Stdout), len(res.Stderr))

	policy := opts.plan.For(res.ExitCode)
	inputs := route.Inputs{
		ChildStdout: res.Stdout,
		ChildStderr: res.Stderr,
		Stdin:       in.Data,
		StdinFile:   tmp.Path(),
		File:        opts.file,
	}
	log.Printf("routing stdout<-%s stderr<-%s", policy.Stdout, policy.Stderr)
	err = withPhaseErr(ctx, "route output", func() error {
		return route.Write(stdout, stderr, policy, inputs)
	})
	if err != nil {
		return exitFailure, err
	}
	return res.ExitCode, nil
}
