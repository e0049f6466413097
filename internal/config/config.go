// Package config holds the compiler options.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Version is the current turbo-katana version.
// Set at build time via -ldflags or by writing to this file.
var Version = "1.2.0"

// Options are the knobs of one compilation run. They can be loaded from a
// YAML file and overridden by driver flags.
type Options struct {
	// Output is the path of the emitted VM program; empty means stdout.
	Output string `yaml:"output"`

	// EmitComments keeps the banner and section comments in the output.
	// Instruction emission is unaffected, so output stays deterministic
	// per configuration.
	EmitComments bool `yaml:"emitComments"`

	// LogLevel is a logrus level name (panic..trace).
	LogLevel string `yaml:"logLevel"`
}

// Default returns the options used when no file or flags are given.
func Default() *Options {
	return &Options{
		EmitComments: true,
		LogLevel:     "warning",
	}
}

// Load reads options from a YAML file, filling unset fields with defaults.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading options file: %w", err)
	}
	opts := Default()
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("parsing options file %s: %w", path, err)
	}
	if opts.LogLevel == "" {
		opts.LogLevel = Default().LogLevel
	}
	return opts, nil
}
