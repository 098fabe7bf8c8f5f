// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reportfmt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
)

// readAll returns a printed form of every record in r.
func readAll(t *testing.T, r *Reader) []string {
	t.Helper()
	var out []string
	for r.Scan() {
		out = append(out, printRecord(r.Result()))
	}
	if err := r.Err(); err != nil {
		t.Fatal("reading failed: ", err)
	}
	return out
}

func printRecord(rec Record) string {
	var buf bytes.Buffer
	switch rec := rec.(type) {
	case *Row:
		file, line := rec.Pos()
		fmt.Fprintf(&buf, "%s:%d: %s %s/%d", file, line, rec.Run, rec.Algorithm, rec.Type)
		for _, v := range rec.Values {
			fmt.Fprintf(&buf, " %v", v)
		}
	case *SyntaxError:
		fmt.Fprintf(&buf, "SyntaxError: %s", rec)
	case *NameError:
		fmt.Fprintf(&buf, "NameError: %s", rec)
	default:
		panic(fmt.Sprintf("unknown record type %T", rec))
	}
	return buf.String()
}

func TestReader(t *testing.T) {
	r := NewReader(strings.NewReader(report(DefaultAlgorithms)), "4x8_bench.out", RunID{4, 8}, DefaultAlgorithms)
	got := readAll(t, r)
	want := []string{
		`SyntaxError: 4x8_bench.out:3: parsing measurement m=1: "m=1" is not a number`,
		"4x8_bench.out:7: 4x8 Baseline/0 0.001 0.002 0.003 0.004 0.005 0.006",
		"4x8_bench.out:10: 4x8 Baseline/1 0.011 0.012 0.013 0.014 0.015 0.016",
		"4x8_bench.out:13: 4x8 Baseline/2 0.021 0.022 0.023 0.024 0.025 0.026",
		"4x8_bench.out:17: 4x8 Bruck/0 0.101 0.102 0.103 0.104 0.105 0.106",
		"4x8_bench.out:20: 4x8 Bruck/1 0.111 0.112 0.113 0.114 0.115 0.116",
		"4x8_bench.out:23: 4x8 Bruck/2 0.121 0.122 0.123 0.124 0.125 0.126",
		"4x8_bench.out:27: 4x8 Circulant/0 0.201 0.202 0.203 0.204 0.205 0.206",
		"4x8_bench.out:30: 4x8 Circulant/1 0.211 0.212 0.213 0.214 0.215 0.216",
		"4x8_bench.out:33: 4x8 Circulant/2 0.221 0.222 0.223 0.224 0.225 0.226",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records differ (-want +got):\n%s", diff)
	}
	if !r.Complete() {
		t.Errorf("Complete() = false after a well-formed report")
	}
}

func TestReaderMatchesParse(t *testing.T) {
	// The streaming reader and Parse agree on every prefix of a
	// report.
	all := lines(report(DefaultAlgorithms))
	for n := 0; n <= len(all); n++ {
		in := strings.Join(all[:n], "\n")
		want := Parse(RunID{1, 2}, all[:n], DefaultAlgorithms)

		var got []Row
		r := NewReader(strings.NewReader(in), "", RunID{1, 2}, DefaultAlgorithms)
		for r.Scan() {
			if row, ok := r.Result().(*Row); ok {
				got = append(got, *row)
			}
		}
		if err := r.Err(); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(want, got, cmpopts()); diff != "" {
			t.Fatalf("%d lines: (-Parse +Reader):\n%s", n, diff)
		}
	}
}

func TestReaderReset(t *testing.T) {
	r := NewReader(strings.NewReader(report(DefaultAlgorithms)), "a", RunID{1, 1}, DefaultAlgorithms)
	// Consume only part of the first report.
	for i := 0; i < 3; i++ {
		if !r.Scan() {
			t.Fatal("unexpected end of report")
		}
	}
	r.Reset(strings.NewReader(report(DefaultAlgorithms)), "b", RunID{2, 2})
	got := readAll(t, r)
	if len(got) != 10 {
		t.Fatalf("got %d records after Reset, want 10", len(got))
	}
	if want := "b:7: 2x2 Baseline/0 0.001 0.002 0.003 0.004 0.005 0.006"; got[1] != want {
		t.Errorf("got %q, want %q", got[1], want)
	}
}

func TestReaderNoScan(t *testing.T) {
	r := NewReader(strings.NewReader(""), "", RunID{}, DefaultAlgorithms)
	if rec, ok := r.Result().(*SyntaxError); !ok || rec != noResult {
		t.Errorf("Result before Scan = %v, want noResult", r.Result())
	}
	if r.Scan() {
		t.Errorf("Scan of empty input returned true")
	}
	if r.Complete() {
		t.Errorf("Complete() = true for empty input")
	}
}

func TestReaderIOError(t *testing.T) {
	boom := errors.New("boom")
	in := io.MultiReader(strings.NewReader("x & x & 1 & 2 & 3 & 4 & 5 & 6 \\\\\n"), iotest.ErrReader(boom))
	r := NewReader(in, "io.out", RunID{1, 1}, DefaultAlgorithms)
	if !r.Scan() {
		t.Fatal("expected a row before the I/O error")
	}
	if r.Scan() {
		t.Fatal("expected Scan to stop at the I/O error")
	}
	err := r.Err()
	if !errors.Is(err, boom) {
		t.Fatalf("Err() = %v, want %v", err, boom)
	}
	if want := "io.out:1: boom"; err.Error() != want {
		t.Errorf("Err() = %q, want %q", err, want)
	}
}
