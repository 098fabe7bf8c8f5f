// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Reportcsv collects the timing tables of collective benchmark reports
// into a single CSV table.
//
// Usage:
//
//	reportcsv [flags] [dir]
//
// Reportcsv reads every report file in dir (default "results") whose
// name ends in the report extension (default ".out"), in lexicographic
// order. A report named "<nodes>x<tasks>_<anything>.out" holds one
// algorithm block per algorithm, in the order given by -algorithms,
// each with one LaTeX table row per message type:
//
//	Baseline & 0 & 0.00012 & 0.00015 & 0.00031 & 0.0012 & 0.0094 & 0.089 \\
//
// The third through eighth columns are runtimes in seconds for message
// sizes 1 through 100000. Reportcsv writes one CSV row per table row:
//
//	Nodes,Tasks,Algorithm,Type,m=1,m=10,m=100,m=1000,m=10000,m=100000
//	2,4,Baseline,0,0.00012,0.00015,0.00031,0.0012,0.0094,0.089
//
// Files whose names do not encode a run are skipped, as are table rows
// that cannot be parsed. The -v flag reports both on standard error,
// followed by a summary comparing the number of rows found with the
// number a complete set of reports would have produced.
//
// The -format flag selects the output format: "csv" (the default),
// "text" for an aligned table with scaled runtimes, or "html". Without
// -o, the table is written to parsed_benchmark_results.csv, or to
// parsed_benchmark_results.txt or .html for the other formats.
//
// With -db driver:dsn, the rows are also stored in a SQL database as a
// new import. The sqlite3 and mysql drivers are supported.
//
// Settings can also be read from a TOML file with -config; flags given
// on the command line take precedence. See package
// golang.org/x/collperf/config for the file format.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"golang.org/x/collperf/config"
	"golang.org/x/collperf/reportfmt"
	"golang.org/x/collperf/resulttab"
	"golang.org/x/collperf/store"
	_ "golang.org/x/collperf/store/sqlite3"
)

func main() {
	log.SetPrefix("reportcsv: ")
	log.SetFlags(0)
	if err := reportcsv(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
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

func reportcsv(stdout, stderr io.Writer, args []string) error {
	def := config.Default()
	flags := flag.NewFlagSet("reportcsv", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage: reportcsv [flags] [dir]\n\n")
		flags.PrintDefaults()
	}
	usagef := func(format string, args ...interface{}) error {
		err := fmt.Errorf(format, args...)
		fmt.Fprintf(stderr, "reportcsv: %s\n", err)
		flags.Usage()
		return usageError{err}
	}
	flagExt := flags.String("ext", def.Extension, "read report files ending in `extension`")
	flagAlgs := flags.String("algorithms", strings.Join(def.Algorithms, ","), "comma-separated `list` of algorithms in report order")
	flagOut := flags.String("o", def.Output, "write the table to `file` (- for standard output)")
	flagFormat := flags.String("format", "csv", "output `format`: csv, text, or html")
	flagDB := flags.String("db", "", "also store the rows in the database `driver:dsn`")
	flagConfig := flags.String("config", "", "read settings from TOML `file`")
	flagV := flags.Bool("v", false, "report skipped files and rejected lines")
	if err := flags.Parse(args); err != nil {
		return usageError{err}
	}
	if flags.NArg() > 1 {
		return usagef("too many arguments")
	}
	dir := "results"
	if flags.NArg() == 1 {
		dir = flags.Arg(0)
	}

	cfg := def
	if *flagConfig != "" {
		var err error
		if cfg, err = config.Load(*flagConfig); err != nil {
			return err
		}
	}
	outSet := false
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "ext":
			cfg.Extension = *flagExt
		case "algorithms":
			cfg.Algorithms = splitList(*flagAlgs)
		case "o":
			cfg.Output = *flagOut
			outSet = true
		}
	})
	if err := cfg.Validate(); err != nil {
		return usagef("%w", err)
	}

	var format func(io.Writer, []reportfmt.Row) error
	var ext string
	switch *flagFormat {
	case "csv":
		format, ext = writeCSV, ".csv"
	case "text":
		format, ext = resulttab.FormatText, ".txt"
	case "html":
		format, ext = writeHTML, ".html"
	default:
		return usagef("unknown format %q", *flagFormat)
	}
	if base := config.Default().Output; !outSet && cfg.Output == base {
		// Name the default output after its format.
		cfg.Output = strings.TrimSuffix(base, filepath.Ext(base)) + ext
	}

	var driver, dsn string
	if *flagDB != "" {
		var ok bool
		if driver, dsn, ok = strings.Cut(*flagDB, ":"); !ok || driver == "" {
			return usagef("-db must have the form driver:dsn")
		}
	}

	// Collect the rows of every report.
	files := &reportfmt.Files{Dir: dir, Ext: cfg.Extension, Algorithms: cfg.Algorithms}
	var rows []reportfmt.Row
	for files.Scan() {
		switch rec := files.Result().(type) {
		case *reportfmt.Row:
			rows = append(rows, *rec)
		case *reportfmt.SyntaxError, *reportfmt.NameError:
			// Non-fatal. Warn but keep going.
			if *flagV {
				fmt.Fprintln(stderr, rec)
			}
		}
	}
	if err := files.Err(); err != nil {
		return err
	}
	if *flagV {
		st := files.Stats()
		fmt.Fprintf(stderr, "%d rows from %d files (%d expected), %d skipped, %d incomplete, %d lines rejected\n",
			st.Rows, st.Files, st.Expected(len(cfg.Algorithms)), st.Skipped, st.Files-st.Complete, st.Rejected)
	}

	if err := writeOutput(stdout, cfg.Output, rows, format); err != nil {
		return err
	}

	if driver != "" {
		id, err := storeRows(driver, dsn, rows)
		if err != nil {
			return fmt.Errorf("storing rows: %w", err)
		}
		if *flagV {
			fmt.Fprintf(stderr, "stored %d rows as import %d\n", len(rows), id)
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// writeOutput formats rows to path, or to stdout if path is "-".
func writeOutput(stdout io.Writer, path string, rows []reportfmt.Row, format func(io.Writer, []reportfmt.Row) error) error {
	if path == "-" {
		return format(stdout, rows)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := format(f, rows); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func writeCSV(w io.Writer, rows []reportfmt.Row) error {
	cw := reportfmt.NewWriter(w)
	for i := range rows {
		if err := cw.Write(&rows[i]); err != nil {
			return err
		}
	}
	return cw.Flush()
}

func writeHTML(w io.Writer, rows []reportfmt.Row) error {
	if _, err := io.WriteString(w, htmlHeader); err != nil {
		return err
	}
	if err := resulttab.FormatHTML(w, rows); err != nil {
		return err
	}
	_, err := io.WriteString(w, htmlFooter)
	return err
}

func storeRows(driver, dsn string, rows []reportfmt.Row) (int64, error) {
	db, err := store.OpenSQL(driver, dsn)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	ctx := context.Background()
	im, err := db.NewImport(ctx)
	if err != nil {
		return 0, err
	}
	if err := im.InsertRows(ctx, rows); err != nil {
		return 0, err
	}
	return im.ID, nil
}

var htmlHeader = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Collective Benchmark Results</title>
<style>
.collperf { border-collapse: collapse; margin-bottom: 1em; }
.collperf caption { text-align: left; font-weight: bold; }
.collperf th { border-bottom: 1px solid #666; }
.collperf td:nth-child(1n+3) { text-align: right; padding: 0em 1em; }
</style>
</head>
<body>
`
var htmlFooter = `</body>
</html>
`
