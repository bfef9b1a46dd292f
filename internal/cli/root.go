package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/trace"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/brandonbloom/gi/internal/config"
	"github.com/brandonbloom/gi/internal/route"
	"github.com/brandonbloom/gi/internal/source"
	"github.com/brandonbloom/gi/internal/version"
)

const (
	flagOnSuccessStdout = "on-success-stdout"
	flagOnSuccessStderr = "on-success-stderr"
	flagOnFailureStdout = "on-failure-stdout"
	flagOnFailureStderr = "on-failure-stderr"
	flagStdinFile       = "stdin-file"
	flagStdinFileSuffix = "stdin-file-suffix"
	flagFile            = "file"
)

// Execute runs gi against the process's own arguments and stdio.
func Execute() error {
	return newRootCommand().ExecuteContext(context.Background())
}

type rootFlags struct {
	plan            route.Plan
	stdinFile       bool
	stdinFileSuffix string
	file            string
	verbose         bool
	tracePath       string
}

func newRootCommand() *cobra.Command {
	flags := rootFlags{plan: route.DefaultPlan()}

	cmd := &cobra.Command{
		Use:   "gi [flags] [--] command [args...]",
		Short: "A linter/formatter wrapper for `jj fix`",
		Long: `gi runs a command with its standard input, captures everything the command
writes, and then decides what to print based on the command's exit code.

Each output flag selects a source: ` + source.Names() + `.
stdin is gi's own input; stdin-file and file are read back from disk after the
command exits, so tools that rewrite files in place work.

With --stdin-file, gi copies its input into a temporary file and replaces
{stdin_file} in the command's arguments with its path. With --file PATH, {file}
is replaced by PATH. In both modes the command's stdin is left empty.

gi exits with the command's exit code.`,
		Example: `  gi -- rustfmt --emit stdout
  gi --stdin-file --on-success-stdout=stdin-file -- prettier --write {stdin_file}
  gi --on-failure-stdout=stderr -- ./lint.sh`,
		Version:       version.String(),
		Args:          requireCommand,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, &flags, args)
		},
	}

	fs := cmd.Flags()
	fs.SetInterspersed(false)
	fs.Var(&flags.plan.Success.Stdout, flagOnSuccessStdout, "source printed to stdout when the command succeeds")
	fs.Var(&flags.plan.Success.Stderr, flagOnSuccessStderr, "source printed to stderr when the command succeeds")
	fs.Var(&flags.plan.Failure.Stdout, flagOnFailureStdout, "source printed to stdout when the command fails")
	fs.Var(&flags.plan.Failure.Stderr, flagOnFailureStderr, "source printed to stderr when the command fails")
	fs.BoolVar(&flags.stdinFile, flagStdinFile, false, "write stdin to a temporary file substituted for {stdin_file}")
	fs.StringVar(&flags.stdinFileSuffix, flagStdinFileSuffix, "", "file name suffix for the --stdin-file copy, e.g. .ts")
	fs.StringVar(&flags.file, flagFile, "", "file path substituted for {file}; disables piping stdin to the command")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "log what gi is doing to stderr")
	fs.StringVar(&flags.tracePath, "trace", "", "write a runtime trace to `FILE`")
	_ = fs.MarkHidden("trace")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	return cmd
}

func requireCommand(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return usageErrorf("missing command to run")
	}
	return nil
}

func runRoot(cmd *cobra.Command, flags *rootFlags, args []string) error {
	if flags.stdinFile && flags.file != "" {
		return usageErrorf("--%s and --%s cannot be used together", flagStdinFile, flagFile)
	}

	if flags.verbose {
		log.SetOutput(cmd.ErrOrStderr())
	} else {
		log.SetOutput(io.Discard)
	}

	if flags.tracePath != "" {
		stop, err := startTrace(flags.tracePath)
		if err != nil {
			return err
		}
		defer stop()
	}

	cfgPath := config.Path()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	opts := resolveOptions(cmd.Flags(), flags, cfg)

	code, err := runWrapped(cmd.Context(), opts, args, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}

// resolveOptions layers explicitly set flags over the config file, which in
// turn already carries the built-in defaults.
func resolveOptions(fs *pflag.FlagSet, flags *rootFlags, cfg config.Config) options {
	plan := cfg.Plan()
	pick := func(name string, flagValue source.Source, dst *source.Source) {
		if fs.Changed(name) {
			*dst = flagValue
		}
	}
	pick(flagOnSuccessStdout, flags.plan.Success.Stdout, &plan.Success.Stdout)
	pick(flagOnSuccessStderr, flags.plan.Success.Stderr, &plan.Success.Stderr)
	pick(flagOnFailureStdout, flags.plan.Failure.Stdout, &plan.Failure.Stdout)
	pick(flagOnFailureStderr, flags.plan.Failure.Stderr, &plan.Failure.Stderr)

	suffix := cfg.StdinFile.Suffix
	if fs.Changed(flagStdinFileSuffix) {
		suffix = flags.stdinFileSuffix
	}

	return options{
		plan:            plan,
		stdinFile:       flags.stdinFile,
		stdinFileSuffix: suffix,
		file:            flags.file,
	}
}

func startTrace(path string) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create trace file: %w", err)
	}
	if err := trace.Start(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("start trace: %w", err)
	}
	return func() {
		trace.Stop()
		_ = f.Close()
	}, nil
}
