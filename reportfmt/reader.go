// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reportfmt

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"
)

// A Reader reads the rows of a single report.
//
// Its API is modeled on bufio.Scanner. Unlike a Scanner, a Reader never
// stops on malformed content: lines it cannot make sense of are either
// skipped or reported as *SyntaxError records, and scanning continues.
//
// To construct a new Reader, either call NewReader, or call Reset on
// a Reader with Algorithms set.
type Reader struct {
	// Algorithms is the order of the algorithm blocks in the report.
	Algorithms []string

	s   *bufio.Scanner
	err error // current I/O error

	fileName string
	line     int
	run      RunID
	state    scanState

	rec Record
}

var noResult = &SyntaxError{"", 0, "Reader.Scan has not been called"}

// NewReader constructs a reader for the report in r. fileName is used
// in positions and error messages; run is stamped on every Row.
func NewReader(r io.Reader, fileName string, run RunID, algorithms []string) *Reader {
	reader := &Reader{Algorithms: algorithms}
	reader.Reset(r, fileName, run)
	return reader
}

// Reset resets the reader to begin reading a new report. The scan
// starts over at the first algorithm block.
func (r *Reader) Reset(ior io.Reader, fileName string, run RunID) {
	r.s = bufio.NewScanner(ior)
	// Long comment lines are content, not I/O errors.
	r.s.Buffer(nil, math.MaxInt)
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.err = nil
	r.fileName = fileName
	r.line = 0
	r.run = run
	r.state = scanState{}
	r.rec = nil
}

// Scan advances the reader to the next record and reports whether a
// record was read. The caller should use the Result method to get it.
// If Scan reaches EOF, or the last algorithm block is complete, or an
// I/O error occurs, it returns false, in which case the caller should
// use the Err method to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	r.rec = nil
	nalg := len(r.Algorithms)
	for !r.state.done(nalg) && r.s.Scan() {
		r.line++
		line := strings.TrimSpace(r.s.Text())
		if line == "" {
			continue
		}
		cur := r.state
		next, res, vals, msg := cur.step(line, nalg)
		r.state = next
		switch res {
		case stepRow:
			r.rec = &Row{
				Run:       r.run,
				Algorithm: r.Algorithms[cur.alg],
				Type:      cur.typ,
				Values:    vals,
				fileName:  r.fileName,
				line:      r.line,
			}
			return true
		case stepReject:
			r.rec = &SyntaxError{r.fileName, r.line, msg}
			return true
		}
	}

	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line, err)
	}
	return false
}

// Result returns the record that was just read by Scan. This is either
// a *Row or a *SyntaxError indicating a rejected data line. Syntax
// errors are non-fatal, so the caller can continue to call Scan.
func (r *Reader) Result() Record {
	if r.rec == nil {
		return noResult
	}
	return r.rec
}

// Err returns the first non-EOF I/O error that was encountered by the
// Reader.
func (r *Reader) Err() error {
	return r.err
}

// Complete reports whether the reader has consumed every algorithm
// block of the report, including the final separator.
func (r *Reader) Complete() bool {
	return r.state.done(len(r.Algorithms))
}
