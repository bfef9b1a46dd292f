package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/brandonbloom/gi/internal/runner"
)

const defaultWidth = 80

// ReportError prints err to w unless it merely carries the wrapped command's
// exit code, and returns the status gi should exit with.
func ReportError(w io.Writer, err error) int {
	code := ExitCode(err)
	var exitErr *ExitError
	if err == nil || errors.As(err, &exitErr) {
		return code
	}

	label := errorLabel(w)
	fmt.Fprintf(w, "%s %v\n", label("gi:"), err)

	var spawnErr *runner.SpawnError
	if errors.As(err, &spawnErr) && len(spawnErr.Args) > 0 {
		const prefix = "  command: "
		fmt.Fprintf(w, "%s%s\n", prefix, displayCommand(spawnErr.Args, terminalWidth(w)-len(prefix)))
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		fmt.Fprintln(w, "Run 'gi --help' for usage.")
	}
	return code
}

func errorLabel(w io.Writer) func(a ...any) string {
	c := color.New(color.FgRed, color.Bold)
	if writerIsTerminal(w) && os.Getenv("NO_COLOR") == "" {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintFunc()
}

// displayCommand renders argv as a shell-like line that fits in width cells.
func displayCommand(argv []string, width int) string {
	parts := make([]string, len(argv))
	for i, arg := range argv {
		if arg == "" || strings.ContainsAny(arg, " \t\n'\"\\$`|&;<>()*?") {
			arg = strconv.Quote(arg)
		}
		parts[i] = arg
	}
	line := strings.Join(parts, " ")
	if width <= 0 {
		width = defaultWidth
	}
	return runewidth.Truncate(line, width, "…")
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultWidth
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
