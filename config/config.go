// Package config loads filament-swatches settings.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/gmlewis/filament-swatches/errs"
	"gopkg.in/yaml.v3"
)

// Defaults, relative to the base directory.
const (
	DefaultInput     = "samples.csv"
	DefaultOutputDir = "stl"
	DefaultScadFile  = "FilamentSamples.scad"
)

// Config holds the settings of one run. Relative paths are resolved
// against BaseDir.
type Config struct {
	Input      string `yaml:"input"`
	OutputDir  string `yaml:"output_dir"`
	ScadFile   string `yaml:"scad_file"`
	OpenSCAD   string `yaml:"openscad"` // skips executable resolution when set
	SkipHeader bool   `yaml:"skip_header"`
	DryRun     bool   `yaml:"dry_run"`
	Inspect    bool   `yaml:"inspect"`
	Zip        bool   `yaml:"zip"`
	Verbose    bool   `yaml:"verbose"`

	BaseDir string `yaml:"-"`
}

// Default returns the default settings anchored at baseDir.
func Default(baseDir string) *Config {
	return &Config{
		Input:      DefaultInput,
		OutputDir:  DefaultOutputDir,
		ScadFile:   DefaultScadFile,
		SkipHeader: true,
		BaseDir:    baseDir,
	}
}

// Load reads a YAML config file over the defaults. Unknown keys are
// rejected.
func Load(filename, baseDir string) (*Config, error) {
	c := Default(baseDir)

	buf, err := os.ReadFile(filename)
	if err != nil {
		return nil, errs.NewNotFoundError(filename, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, errs.NewInvalidConfigError(filename, "unable to parse YAML", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that every path setting is present.
func (c *Config) Validate() error {
	switch {
	case c.Input == "":
		return errs.NewInvalidConfigError("input", "input is required", nil)
	case c.OutputDir == "":
		return errs.NewInvalidConfigError("output_dir", "output_dir is required", nil)
	case c.ScadFile == "":
		return errs.NewInvalidConfigError("scad_file", "scad_file is required", nil)
	}
	return nil
}

// Path resolves p against BaseDir unless it is absolute.
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// InputPath returns the CSV input location.
func (c *Config) InputPath() string { return c.Path(c.Input) }

// OutputPath returns the model output directory.
func (c *Config) OutputPath() string { return c.Path(c.OutputDir) }

// ScadPath returns the swatch model description location.
func (c *Config) ScadPath() string { return c.Path(c.ScadFile) }

// ProgramDir returns the directory holding the running executable.
func ProgramDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
