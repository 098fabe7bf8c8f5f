// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reportfmt

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Header is the first record of the CSV table written by Writer.
var Header = append([]string{"Nodes", "Tasks", "Algorithm", "Type"}, SizeLabels[:]...)

// A Writer writes rows as a CSV table with a fixed Header.
type Writer struct {
	w      *csv.Writer
	header bool // header written
	rec    []string
}

// NewWriter returns a writer that writes a row table to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: csv.NewWriter(w), rec: make([]string, len(Header))}
}

// Write writes rec to the table if it is a *Row. Other records are
// ignored. The header is written before the first row.
func (w *Writer) Write(rec Record) error {
	row, ok := rec.(*Row)
	if !ok {
		return nil
	}
	if err := w.writeHeader(); err != nil {
		return err
	}
	w.rec[0] = strconv.Itoa(row.Run.Nodes)
	w.rec[1] = strconv.Itoa(row.Run.Tasks)
	w.rec[2] = row.Algorithm
	w.rec[3] = strconv.Itoa(row.Type)
	for i, v := range row.Values {
		w.rec[4+i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return w.w.Write(w.rec)
}

func (w *Writer) writeHeader() error {
	if w.header {
		return nil
	}
	w.header = true
	return w.w.Write(Header)
}

// Flush writes any buffered data to the underlying writer. A table with
// no rows still gets its header.
func (w *Writer) Flush() error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	w.w.Flush()
	return w.w.Error()
}

// ReadRows reads a table written by Writer.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)
	cr.TrimLeadingSpace = true
	hdr, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("missing header")
	} else if err != nil {
		return nil, err
	}
	for i, h := range hdr {
		if h != Header[i] {
			return nil, fmt.Errorf("column %d is %q, want %q", i+1, h, Header[i])
		}
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		} else if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		row, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
}

func parseRecord(rec []string) (Row, error) {
	var row Row
	var err error
	if row.Run.Nodes, err = strconv.Atoi(rec[0]); err != nil {
		return row, fmt.Errorf("parsing Nodes: %w", err)
	}
	if row.Run.Tasks, err = strconv.Atoi(rec[1]); err != nil {
		return row, fmt.Errorf("parsing Tasks: %w", err)
	}
	row.Algorithm = rec[2]
	if row.Type, err = strconv.Atoi(rec[3]); err != nil {
		return row, fmt.Errorf("parsing Type: %w", err)
	}
	for i := range row.Values {
		if row.Values[i], err = strconv.ParseFloat(rec[4+i], 64); err != nil {
			return row, fmt.Errorf("parsing %s: %w", SizeLabels[i], err)
		}
	}
	return row, nil
}
