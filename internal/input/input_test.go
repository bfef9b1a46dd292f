package input

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("boom")
}

func TestReadBuffersPipedInput(t *testing.T) {
	in, err := Read(strings.NewReader("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !in.Piped {
		t.Fatalf("expected Piped")
	}
	if string(in.Data) != "test" {
		t.Fatalf("Data = %q, want %q", in.Data, "test")
	}
}

func TestReadNilReader(t *testing.T) {
	in, err := Read(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Piped || in.Len() != 0 {
		t.Fatalf("expected empty unpiped input, got %+v", in)
	}
}

func TestReadSkipsTerminal(t *testing.T) {
	orig := IsTerminal
	t.Cleanup(func() { IsTerminal = orig })
	IsTerminal = func(io.Reader) bool { return true }

	in, err := Read(failingReader{})
	if err != nil {
		t.Fatalf("terminal input must not be read: %v", err)
	}
	if in.Piped || in.Len() != 0 {
		t.Fatalf("expected empty unpiped input, got %+v", in)
	}
}

func TestReadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in")
	if err := os.WriteFile(path, []byte("from file"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	in, err := Read(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !in.Piped || string(in.Data) != "from file" {
		t.Fatalf("unexpected input %+v", in)
	}
}

func TestReadError(t *testing.T) {
	_, err := Read(failingReader{})
	if err == nil || !strings.Contains(err.Error(), "read stdin") {
		t.Fatalf("expected read stdin error, got %v", err)
	}
}

func TestMaterialize(t *testing.T) {
	tmp, err := Materialize([]byte("package main\n"), ".go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = tmp.Remove() })

	if !strings.HasSuffix(tmp.Path(), ".go") {
		t.Fatalf("path %q missing suffix", tmp.Path())
	}
	if !strings.HasPrefix(filepath.Base(tmp.Path()), "gi-") {
		t.Fatalf("path %q missing gi- prefix", tmp.Path())
	}
	data, err := os.ReadFile(tmp.Path())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, []byte("package main\n")) {
		t.Fatalf("content = %q", data)
	}

	if err := tmp.Remove(); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(tmp.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected file removed, stat err = %v", err)
	}
	if err := tmp.Remove(); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}

func TestMaterializeToleratesExternalDelete(t *testing.T) {
	tmp, err := Materialize(nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := os.Remove(tmp.Path()); err != nil {
		t.Fatal(err)
	}
	if err := tmp.Remove(); err != nil {
		t.Fatalf("remove after external delete: %v", err)
	}
}

func TestMaterializeRejectsSeparatorInSuffix(t *testing.T) {
	if _, err := Materialize(nil, "/etc"); err == nil {
		t.Fatalf("expected error")
	}
}
