// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Reportplot draws charts from the CSV table written by reportcsv.
//
// Usage:
//
//	reportplot [flags] [results.csv]
//
// The table defaults to parsed_benchmark_results.csv. Reportplot writes
// three grids of plots to the directory given by -d:
//
//	m_types.pdf              runtime of each algorithm and message type
//	                         at the -msgsize message size, for every
//	                         combination of tasks (rows) and nodes (columns)
//	runtime_grid_logy.pdf    log-log runtime against message size for
//	                         message type -type, on the same grid
//	weak_scaling_grid.pdf    runtime against tasks for message type -type,
//	                         one row per message size and one column per
//	                         node count
//
// The -format flag selects pdf (the default), png, or svg output.
// Settings can also be read from a TOML file with -config.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/collperf/chart"
	"golang.org/x/collperf/config"
	"golang.org/x/collperf/reportfmt"
)

func main() {
	log.SetPrefix("reportplot: ")
	log.SetFlags(0)
	if err := reportplot(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if errors.As(err, new(usageError)) {
			// Already reported.
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

// A usageError is a problem with the command line. It has been
// reported by the time it is returned.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func reportplot(stdout, stderr io.Writer, args []string) error {
	def := config.Default()
	flags := flag.NewFlagSet("reportplot", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage: reportplot [flags] [results.csv]\n\n")
		flags.PrintDefaults()
	}
	usagef := func(format string, args ...interface{}) error {
		err := fmt.Errorf(format, args...)
		fmt.Fprintf(stderr, "reportplot: %s\n", err)
		flags.Usage()
		return usageError{err}
	}
	flagSize := flags.String("msgsize", def.Plot.MessageSize, "compare message types at message size `label`")
	flagType := flags.Int("type", def.Plot.Type, "plot message type `n` in the runtime and scaling grids")
	flagFormat := flags.String("format", def.Plot.Format, "image `format`: pdf, png, or svg")
	flagDir := flags.String("d", ".", "write images to `directory`")
	flagConfig := flags.String("config", "", "read settings from TOML `file`")
	flagV := flags.Bool("v", false, "print the name of each image written")
	if err := flags.Parse(args); err != nil {
		return usageError{err}
	}
	if flags.NArg() > 1 {
		return usagef("too many arguments")
	}

	cfg := def
	if *flagConfig != "" {
		var err error
		if cfg, err = config.Load(*flagConfig); err != nil {
			return err
		}
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "msgsize":
			cfg.Plot.MessageSize = *flagSize
		case "type":
			cfg.Plot.Type = *flagType
		case "format":
			cfg.Plot.Format = *flagFormat
		}
	})
	if err := cfg.Validate(); err != nil {
		return usagef("%w", err)
	}
	input := cfg.Output
	if flags.NArg() == 1 {
		input = flags.Arg(0)
	}

	f, err := os.Open(input)
	if err != nil {
		return err
	}
	rows, err := reportfmt.ReadRows(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%s: no rows to plot", input)
	}

	size := reportfmt.MessageSizes[config.SizeIndex(cfg.Plot.MessageSize)]
	for _, c := range []struct {
		name string
		build func() (*chart.Grid, error)
	}{
		{"m_types", func() (*chart.Grid, error) { return chart.MessageTypes(rows, size) }},
		{"runtime_grid_logy", func() (*chart.Grid, error) { return chart.RuntimeByMessageSize(rows, cfg.Plot.Type) }},
		{"weak_scaling_grid", func() (*chart.Grid, error) { return chart.WeakScaling(rows, cfg.Plot.Type) }},
	} {
		g, err := c.build()
		if err != nil {
			return fmt.Errorf("%s: %w", c.name, err)
		}
		path := filepath.Join(*flagDir, c.name+"."+cfg.Plot.Format)
		if err := g.Save(path); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if *flagV {
			fmt.Fprintln(stdout, path)
		}
	}
	return nil
}
