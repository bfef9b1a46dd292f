package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/brandonbloom/gi/internal/route"
	"github.com/brandonbloom/gi/internal/source"
)

// EnvPath names the environment variable that overrides the config location.
const EnvPath = "GI_CONFIG"

// Config captures the user editable defaults stored in config.toml.
type Config struct {
	OnSuccess StreamBlock    `toml:"on_success"`
	OnFailure StreamBlock    `toml:"on_failure"`
	StdinFile StdinFileBlock `toml:"stdin_file"`
}

// StreamBlock picks a source for each of gi's output streams.
type StreamBlock struct {
	Stdout source.Source `toml:"stdout"`
	Stderr source.Source `toml:"stderr"`
}

// StdinFileBlock governs the temporary file written for --stdin-file.
type StdinFileBlock struct {
	Suffix string `toml:"suffix"`
}

func (b *StreamBlock) applyDefaults(def route.Policy) {
	if b.Stdout == "" {
		b.Stdout = def.Stdout
	}
	if b.Stderr == "" {
		b.Stderr = def.Stderr
	}
}

// Policy converts the block into a routing policy.
func (b StreamBlock) Policy() route.Policy {
	return route.Policy{Stdout: b.Stdout, Stderr: b.Stderr}
}

var (
	// ErrInvalidSuffix indicates the stdin file suffix would escape the temp dir.
	ErrInvalidSuffix = errors.New("config.stdin_file.suffix must not contain a path separator")
)

// Default returns the built-in configuration.
func Default() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	plan := route.DefaultPlan()
	c.OnSuccess.applyDefaults(plan.Success)
	c.OnFailure.applyDefaults(plan.Failure)
}

// Validate ensures the configuration can guide gi's behavior.
func (c Config) Validate() error {
	for _, src := range []source.Source{c.OnSuccess.Stdout, c.OnSuccess.Stderr, c.OnFailure.Stdout, c.OnFailure.Stderr} {
		if _, err := source.Parse(string(src)); err != nil {
			return err
		}
	}
	if strings.ContainsAny(c.StdinFile.Suffix, `/\`) {
		return ErrInvalidSuffix
	}
	return nil
}

// Plan converts the config into routing policies for both exit branches.
func (c Config) Plan() route.Plan {
	return route.Plan{
		Success: c.OnSuccess.Policy(),
		Failure: c.OnFailure.Policy(),
	}
}

// Path reports where gi looks for its config file. An empty result means no
// location could be determined and only built-in defaults apply.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gi", "config.toml")
}

// Load reads configuration from disk. Missing files return a default config.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}
