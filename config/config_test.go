// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "collperf.toml")
	if err := os.WriteFile(path, []byte(data), 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	// Default must not alias the package-level algorithm list.
	c.Algorithms[0] = "changed"
	if Default().Algorithms[0] != "Baseline" {
		t.Errorf("Default shares its algorithm slice")
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
algorithms = ["Bruck", "Baseline"]
extension = ".txt"

[plot]
type = 0
format = "svg"
`)
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.Algorithms = []string{"Bruck", "Baseline"}
	want.Extension = ".txt"
	want.Plot.Type = 0
	want.Plot.Format = "svg"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config differs (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	for _, test := range []struct {
		name, data, want string
	}{
		{"syntax", `algorithms = [`, "decoding"},
		{"unknown", `colour = "red"`, `unknown key "colour"`},
		{"invalid", "algorithms = []\n[plot]\nmsgsize = \"m=2\"", "algorithms: must name at least one algorithm; plot.msgsize: unknown message size"},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, test.data))
			if err == nil || !strings.Contains(err.Error(), test.want) {
				t.Errorf("Load error = %v, want it to contain %q", err, test.want)
			}
		})
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load of a missing file = %v, want a not-exist error", err)
	}
}

func TestValidate(t *testing.T) {
	for _, test := range []struct {
		edit  func(*Config)
		field string
	}{
		{func(c *Config) { c.Algorithms = nil }, "algorithms"},
		{func(c *Config) { c.Algorithms = []string{"A", " "} }, "algorithms"},
		{func(c *Config) { c.Algorithms = []string{"A", "A"} }, "algorithms"},
		{func(c *Config) { c.Extension = "out" }, "extension"},
		{func(c *Config) { c.Extension = "." }, "extension"},
		{func(c *Config) { c.Extension = "./x" }, "extension"},
		{func(c *Config) { c.Output = "" }, "output"},
		{func(c *Config) { c.Plot.MessageSize = "10" }, "plot.msgsize"},
		{func(c *Config) { c.Plot.Type = 3 }, "plot.type"},
		{func(c *Config) { c.Plot.Format = "gif" }, "plot.format"},
	} {
		c := Default()
		test.edit(c)
		var errs ValidateErrors
		if err := c.Validate(); !errors.As(err, &errs) || len(errs) != 1 || errs[0].Field != test.field {
			t.Errorf("Validate() = %v, want one error for %s", err, test.field)
		}
	}
}

func TestSizeIndex(t *testing.T) {
	if got := SizeIndex("m=1000"); got != 3 {
		t.Errorf("SizeIndex(m=1000) = %d, want 3", got)
	}
	if got := SizeIndex("m=3"); got != -1 {
		t.Errorf("SizeIndex(m=3) = %d, want -1", got)
	}
}
