// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reportfmt

import (
	"strconv"
	"strings"
)

const (
	// fieldSep separates table columns.
	fieldSep = "&"
	// rowEnd marks the end of a table row ("\\" in the report).
	rowEnd = `\`
	// blockSep starts the line that closes an algorithm block.
	blockSep = `\hline`

	// A data line has at least minFields columns. The measurements
	// are columns [firstValue, firstValue+NumSizes).
	minFields  = 8
	firstValue = 2
)

// isDataLine reports whether line is a candidate data line. This is
// only a heuristic; candidates still have to pass parseDataLine.
func isDataLine(line string) bool {
	return strings.Contains(line, fieldSep) && strings.Contains(line, rowEnd)
}

// parseDataLine extracts the six measurements from a candidate data
// line. On failure it returns a message describing why the line was
// rejected.
func parseDataLine(line string) (vals [NumSizes]float64, msg string) {
	fields := strings.Split(line, fieldSep)
	if len(fields) < minFields {
		return vals, "data line has " + strconv.Itoa(len(fields)) + " columns, want at least " + strconv.Itoa(minFields)
	}
	for i, f := range fields[firstValue : firstValue+NumSizes] {
		f = strings.TrimSpace(strings.ReplaceAll(f, rowEnd, ""))
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return vals, "parsing measurement " + SizeLabels[i] + ": " + strconv.Quote(f) + " is not a number"
		}
		vals[i] = v
	}
	return vals, ""
}

// scanState is the position of the scan within the block structure of
// one report. The zero scanState expects the first message type of the
// first algorithm.
type scanState struct {
	alg int // index of the current algorithm block
	typ int // next message type; NumTypes means looking for blockSep
}

// done reports whether every one of nalg algorithm blocks has been
// consumed.
func (s scanState) done(nalg int) bool {
	return s.alg >= nalg
}

// A stepResult says what a single step did with its line.
type stepResult int

const (
	stepSkip   stepResult = iota // line ignored
	stepRow                      // line accepted as the data line
	stepReject                   // candidate data line rejected
)

// step feeds one trimmed, non-empty line to the scan. It returns the
// new state and what happened to the line. When step returns stepRow,
// vals holds the measurements for message type s.typ of algorithm
// s.alg; for stepReject, msg holds the reason.
//
// Once the state is done, every further line is skipped.
func (s scanState) step(line string, nalg int) (next scanState, res stepResult, vals [NumSizes]float64, msg string) {
	if s.done(nalg) {
		return s, stepSkip, vals, ""
	}
	if s.typ >= NumTypes {
		// Skip the rest of the block, including the separator.
		if strings.HasPrefix(line, blockSep) {
			s.alg++
			s.typ = 0
		}
		return s, stepSkip, vals, ""
	}
	if !isDataLine(line) {
		return s, stepSkip, vals, ""
	}
	vals, msg = parseDataLine(line)
	if msg != "" {
		return s, stepReject, vals, msg
	}
	s.typ++
	return s, stepRow, vals, ""
}

// Parse parses the lines of one report and returns its rows in
// algorithm-then-type order. Lines are trimmed and blank lines are
// ignored. Every row is stamped with run.
//
// Parse never fails. Rejected candidate lines are skipped; if the
// report is truncated or malformed, Parse returns the rows read before
// the structure stopped matching.
func Parse(run RunID, lines []string, algorithms []string) []Row {
	var rows []Row
	var s scanState
	for _, line := range lines {
		if s.done(len(algorithms)) {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cur := s
		next, res, vals, _ := s.step(line, len(algorithms))
		if res == stepRow {
			rows = append(rows, Row{Run: run, Algorithm: algorithms[cur.alg], Type: cur.typ, Values: vals})
		}
		s = next
	}
	return rows
}
