// Package project locates and loads quantgen.toml.
package project

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// Config is the content of quantgen.toml.
type Config struct {
	Project     ProjectSection     `toml:"project"`
	Input       InputSection       `toml:"input"`
	Output      OutputSection      `toml:"output"`
	Diagnostics DiagnosticsSection `toml:"diagnostics"`
	Run         RunSection         `toml:"run"`
}

type ProjectSection struct {
	Name string `toml:"name" validate:"required"`
}

type InputSection struct {
	// Files are glob patterns relative to the project root.
	Files []string `toml:"files" validate:"required,min=1,dive,required"`
}

type OutputSection struct {
	Format string `toml:"format" validate:"oneof=json msgpack toml"`
	// Path is relative to the project root; empty means standard output.
	Path string `toml:"path"`
}

type DiagnosticsSection struct {
	Max              int  `toml:"max" validate:"gte=0,lte=65535"`
	WarningsAsErrors bool `toml:"warnings_as_errors"`
}

type RunSection struct {
	Jobs     int    `toml:"jobs" validate:"gte=0"`
	LogLevel string `toml:"log_level" validate:"oneof=debug info warn error"`
}

// Project is a loaded configuration and where it was found.
type Project struct {
	Path   string
	Root   string
	Config Config
}

var validate = validator.New()

// Default returns the configuration written by "quantgen init".
func Default(name string) Config {
	return Config{
		Project:     ProjectSection{Name: name},
		Input:       InputSection{Files: []string{"units/*.yaml"}},
		Output:      OutputSection{Format: "json"},
		Diagnostics: DiagnosticsSection{Max: 100},
		Run:         RunSection{LogLevel: "warn"},
	}
}

// Load finds quantgen.toml from startDir upwards and loads it. ok is false
// when no configuration exists.
func Load(startDir string) (*Project, bool, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Project{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// LoadConfig decodes and validates one configuration file. Unset values
// take their defaults; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := Default("")
	cfg.Input.Files = nil
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := validate.Struct(&cfg); err != nil {
		return Config{}, fmt.Errorf("%s: invalid configuration: %w", path, err)
	}
	return cfg, nil
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// InputFiles expands the input globs against the project root. The result is
// sorted and free of duplicates.
func (p *Project) InputFiles() ([]string, error) {
	var out []string
	for _, pattern := range p.Config.Input.Files {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(p.Root, filepath.FromSlash(pattern))
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("%s: bad input pattern %q: %w", p.Path, pattern, err)
		}
		out = append(out, matches...)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// OutputPath is where the plan is written, or "" for standard output.
func (p *Project) OutputPath() string {
	if p.Config.Output.Path == "" {
		return ""
	}
	return filepath.Join(p.Root, filepath.FromSlash(p.Config.Output.Path))
}

// WriteDefault creates quantgen.toml in dir and refuses to overwrite one.
func WriteDefault(dir, name string) (string, error) {
	path := filepath.Join(dir, ConfigName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}
	data, err := Encode(Default(name))
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
