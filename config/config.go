// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the optional TOML file shared by the collperf
// commands. A file looks like:
//
//	algorithms = ["Baseline", "Bruck", "Circulant"]
//	extension = ".out"
//	output = "parsed_benchmark_results.csv"
//
//	[plot]
//	msgsize = "m=10"
//	type = 2
//	format = "pdf"
//
// Keys that are left out keep their default values.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/collperf/reportfmt"
)

// Config holds settings for the collperf commands.
type Config struct {
	// Algorithms is the order of algorithm blocks in a report.
	Algorithms []string `toml:"algorithms"`
	// Extension selects the report files in a directory.
	Extension string `toml:"extension"`
	// Output is the CSV file written by reportcsv.
	Output string `toml:"output"`

	Plot PlotConfig `toml:"plot"`
}

// PlotConfig holds settings for reportplot.
type PlotConfig struct {
	// MessageSize is the size label compared across message types.
	MessageSize string `toml:"msgsize"`
	// Type is the message type of the runtime and scaling grids.
	Type int `toml:"type"`
	// Format is the image format: "pdf", "png" or "svg".
	Format string `toml:"format"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Algorithms: append([]string(nil), reportfmt.DefaultAlgorithms...),
		Extension:  reportfmt.DefaultExt,
		Output:     "parsed_benchmark_results.csv",
		Plot: PlotConfig{
			MessageSize: "m=10",
			Type:        2,
			Format:      "pdf",
		},
	}
}

// Load reads the TOML file at path on top of the defaults and
// validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, keys[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ValidationError is a problem with one setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks c for unusable settings. It returns a ValidateErrors
// listing every problem, or nil.
func (c *Config) Validate() error {
	var errs ValidateErrors
	bad := func(field, format string, args ...interface{}) {
		errs = append(errs, ValidationError{field, fmt.Sprintf(format, args...)})
	}

	if len(c.Algorithms) == 0 {
		bad("algorithms", "must name at least one algorithm")
	}
	seen := make(map[string]bool)
	for _, a := range c.Algorithms {
		if strings.TrimSpace(a) == "" {
			bad("algorithms", "empty algorithm name")
		} else if seen[a] {
			bad("algorithms", "duplicate algorithm %q", a)
		}
		seen[a] = true
	}

	if !strings.HasPrefix(c.Extension, ".") || len(c.Extension) < 2 || strings.ContainsRune(c.Extension, filepath.Separator) || strings.Contains(c.Extension, "/") {
		bad("extension", "invalid extension %q, want a suffix like .out", c.Extension)
	}
	if c.Output == "" {
		bad("output", "must not be empty")
	}

	if SizeIndex(c.Plot.MessageSize) < 0 {
		bad("plot.msgsize", "unknown message size %q, must be one of %s", c.Plot.MessageSize, strings.Join(reportfmt.SizeLabels[:], ", "))
	}
	if c.Plot.Type < 0 || c.Plot.Type >= reportfmt.NumTypes {
		bad("plot.type", "invalid message type %d, must be in [0, %d)", c.Plot.Type, reportfmt.NumTypes)
	}
	switch c.Plot.Format {
	case "pdf", "png", "svg":
	default:
		bad("plot.format", "invalid format %q, must be one of: pdf, png, svg", c.Plot.Format)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// SizeIndex returns the index in reportfmt.SizeLabels of label,
// or -1 if there is none.
func SizeIndex(label string) int {
	for i, l := range reportfmt.SizeLabels {
		if l == label {
			return i
		}
	}
	return -1
}
