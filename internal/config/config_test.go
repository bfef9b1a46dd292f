package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brandonbloom/gi/internal/route"
	"github.com/brandonbloom/gi/internal/source"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Plan() != route.DefaultPlan() {
		t.Fatalf("plan = %+v, want default", cfg.Plan())
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Plan() != route.DefaultPlan() {
		t.Fatalf("plan = %+v, want default", cfg.Plan())
	}
}

func TestLoadPartialAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[on_success]
stderr = "stdout"

[on_failure]
stdout = "stderr"

[stdin_file]
suffix = ".ts"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := route.Plan{
		Success: route.Policy{Stdout: source.Stdout, Stderr: source.Stdout},
		Failure: route.Policy{Stdout: source.Stderr, Stderr: source.None},
	}
	if cfg.Plan() != want {
		t.Fatalf("plan = %+v, want %+v", cfg.Plan(), want)
	}
	if cfg.StdinFile.Suffix != ".ts" {
		t.Fatalf("suffix = %q", cfg.StdinFile.Suffix)
	}
}

func TestLoadRejectsUnknownSource(t *testing.T) {
	path := writeConfig(t, `
[on_success]
stdout = "printer"
`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "printer") {
		t.Fatalf("expected unknown source error, got %v", err)
	}
}

func TestLoadRejectsSuffixWithSeparator(t *testing.T) {
	path := writeConfig(t, `
[stdin_file]
suffix = "../x"
`)
	_, err := Load(path)
	if !errors.Is(err, ErrInvalidSuffix) {
		t.Fatalf("expected ErrInvalidSuffix, got %v", err)
	}
}

func TestPathHonorsEnv(t *testing.T) {
	t.Setenv(EnvPath, "/somewhere/gi.toml")
	if got := Path(); got != "/somewhere/gi.toml" {
		t.Fatalf("Path() = %q", got)
	}
}
