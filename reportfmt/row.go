// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reportfmt reads the LaTeX-style benchmark reports written by
// the allgather-merge benchmark driver and normalizes them into flat
// measurement rows.
//
// A report holds one block per algorithm. Each algorithm block holds
// three message-type sub-blocks, and each sub-block carries exactly one
// table row of six runtimes, one per message size:
//
//	Baseline, type 0
//	n & p & 0.01 & 0.02 & 0.03 & 0.04 & 0.05 & 0.06 \\
//	...
//	\hline
//
// Everything other than the data lines and the closing separator is
// commentary and is skipped. The reader is tolerant: a line that looks
// like a data line but cannot be parsed is reported as a non-fatal
// *SyntaxError and scanning continues, so a malformed or truncated
// report simply yields fewer rows.
package reportfmt

import "fmt"

// NumTypes is the number of message-type sub-blocks in each algorithm
// block.
const NumTypes = 3

// MessageSizes are the message sizes, in elements per process, that the
// six values of a Row correspond to.
var MessageSizes = [NumSizes]int{1, 10, 100, 1000, 10000, 100000}

// NumSizes is the number of values in every Row.
const NumSizes = 6

// SizeLabels are the table column labels of MessageSizes.
var SizeLabels = [NumSizes]string{"m=1", "m=10", "m=100", "m=1000", "m=10000", "m=100000"}

// DefaultAlgorithms is the block order written by the benchmark driver.
var DefaultAlgorithms = []string{"Baseline", "Bruck", "Circulant"}

// A RunID identifies the run configuration a report was produced by.
type RunID struct {
	Nodes int // number of nodes
	Tasks int // tasks per node
}

func (id RunID) String() string {
	return fmt.Sprintf("%dx%d", id.Nodes, id.Tasks)
}

// A Row is one measured sub-block: the runtimes of one algorithm for one
// message type at every message size.
type Row struct {
	Run       RunID
	Algorithm string
	Type      int

	// Values[i] is the runtime, in seconds, at MessageSizes[i].
	Values [NumSizes]float64

	// fileName and line record where the data line was read from.
	fileName string
	line     int
}

// Pos returns the file name and 1-based line number of the data line
// this Row was read from. For Rows that were not read from a file, it
// returns "", 0.
func (r *Row) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// A Record is a single record produced while reading reports. It may be
// a *Row, a *SyntaxError, or a *NameError.
type Record interface {
	// Pos returns the position of this record as a file name and a
	// 1-based line number within that file. Records that do not
	// refer to a line return line 0.
	Pos() (fileName string, line int)
}

var _ Record = (*Row)(nil)
var _ Record = (*SyntaxError)(nil)
var _ Record = (*NameError)(nil)

// A SyntaxError reports a candidate data line that could not be parsed.
// It is not fatal: the reader keeps looking for the sub-block's data line
// past it.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// A NameError reports a report file whose name does not encode a RunID.
// Such files are skipped entirely.
type NameError struct {
	FileName string
	Msg      string
}

func (e *NameError) Pos() (fileName string, line int) {
	return e.FileName, 0
}

func (e *NameError) Error() string {
	return fmt.Sprintf("%s: skipping file: %s", e.FileName, e.Msg)
}
