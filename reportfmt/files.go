// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reportfmt

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExt is the extension of report files written by the benchmark
// job scripts.
const DefaultExt = ".out"

// A Files reads rows from every report in a directory.
//
// Reports are read one at a time in lexicographic order of their file
// names, so the sequence of records is stable across runs. Each report's
// RunID is taken from its file name (see ParseRunID). A report whose
// name does not encode a RunID produces a single *NameError record and
// no rows.
type Files struct {
	// Dir is the directory containing the reports.
	Dir string

	// Ext is the extension of report files. Other files are
	// ignored. If Ext is "", DefaultExt is used.
	Ext string

	// Algorithms is the order of the algorithm blocks in each
	// report. If nil, DefaultAlgorithms is used.
	Algorithms []string

	// names is the sequence of remaining report names, or nil if
	// this Files has not started yet.
	names []string

	reader Reader
	file   *os.File
	rec    Record // pending record not produced by reader
	stats  Stats
	err    error
}

// Stats summarizes what a Files has read so far.
type Stats struct {
	Files    int // reports opened
	Skipped  int // reports skipped for their name
	Complete int // reports whose last algorithm block was closed
	Rows     int // rows produced
	Rejected int // candidate data lines rejected
}

// Expected returns the number of rows that well-formed copies of the
// opened reports would have produced.
func (s Stats) Expected(algorithms int) int {
	return s.Files * algorithms * NumTypes
}

// init does first-use initialization of f.
func (f *Files) init() {
	// Set f.names to a non-nil slice to indicate initialization
	// has happened.
	f.names = []string{}
	if f.Ext == "" {
		f.Ext = DefaultExt
	}
	if f.Algorithms == nil {
		f.Algorithms = DefaultAlgorithms
	}
	f.reader.Algorithms = f.Algorithms

	ents, err := os.ReadDir(f.Dir)
	if err != nil {
		f.err = err
		return
	}
	for _, ent := range ents {
		if ent.IsDir() || !strings.HasSuffix(ent.Name(), f.Ext) {
			continue
		}
		f.names = append(f.names, ent.Name())
	}
	// ReadDir already sorts by name, but the order is part of
	// the contract of Files.
	sort.Strings(f.names)
}

// Scan advances to the next record in the sequence of reports and
// reports whether a record was read. The caller should use the Result
// method to get the record. If Scan reaches the end of the last report,
// or if an I/O error occurs, it returns false. In this case, the caller
// should use the Err method to check for errors.
func (f *Files) Scan() bool {
	if f.names == nil && f.err == nil {
		f.init()
	}
	if f.err != nil {
		return false
	}
	f.rec = nil

	for {
		if f.file == nil {
			// Open the next report.
			if len(f.names) == 0 {
				return false
			}
			name := f.names[0]
			f.names = f.names[1:]
			path := filepath.Join(f.Dir, name)

			run, err := ParseRunID(name)
			if err != nil {
				nerr := err.(*NameError)
				nerr.FileName = path
				f.stats.Skipped++
				f.rec = nerr
				return true
			}

			file, err := os.Open(path)
			if err != nil {
				f.err = err
				return false
			}
			f.file = file
			f.stats.Files++
			f.reader.Reset(file, path, run)
		}

		if f.reader.Scan() {
			switch f.reader.Result().(type) {
			case *Row:
				f.stats.Rows++
			case *SyntaxError:
				f.stats.Rejected++
			}
			return true
		}
		if f.reader.Complete() {
			f.stats.Complete++
		}
		f.file.Close()
		f.file = nil
		if err := f.reader.Err(); err != nil {
			f.err = err
			return false
		}
	}
}

// Result returns the record that was just read by Scan. This is a
// *Row, a *SyntaxError, or a *NameError. Both error records are
// non-fatal.
func (f *Files) Result() Record {
	if f.rec != nil {
		return f.rec
	}
	return f.reader.Result()
}

// Err returns the I/O error that stopped Scan, if any.
// If Scan stopped because it read each report to completion,
// or if Scan has not yet returned false, Err returns nil.
func (f *Files) Err() error {
	return f.err
}

// Stats returns the counts accumulated so far.
func (f *Files) Stats() Stats {
	return f.stats
}
