package source

import (
	"errors"
	"io"
	"testing"

	"github.com/spf13/pflag"
)

var _ pflag.Value = (*Source)(nil)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Source
	}{
		{in: "stdout", want: Stdout},
		{in: "stderr", want: Stderr},
		{in: "stdin", want: Stdin},
		{in: "stdin-file", want: StdinFile},
		{in: "stdin_file", want: StdinFile},
		{in: "FILE", want: File},
		{in: " none ", want: None},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseRejectsUnknown(t *testing.T) {
	_, err := Parse("stdbork")
	if !errors.Is(err, ErrUnknown) {
		t.Fatalf("expected ErrUnknown, got %v", err)
	}
}

func TestFlagSetAcceptsSource(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	src := Stdout
	fs.Var(&src, "on-success-stdout", "")

	if err := fs.Parse([]string{"--on-success-stdout=stdin-file"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if src != StdinFile {
		t.Fatalf("got %q, want %q", src, StdinFile)
	}
	if err := fs.Parse([]string{"--on-success-stdout=nope"}); err == nil {
		t.Fatalf("expected error for unknown source")
	}
}

func TestFileBacked(t *testing.T) {
	for _, s := range All() {
		want := s == StdinFile || s == File
		if got := s.FileBacked(); got != want {
			t.Fatalf("%s: FileBacked() = %v, want %v", s, got, want)
		}
	}
}

func TestUnmarshalText(t *testing.T) {
	var s Source
	if err := s.UnmarshalText([]byte("stderr")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != Stderr {
		t.Fatalf("got %q, want %q", s, Stderr)
	}
}
