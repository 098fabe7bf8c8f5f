// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"math"
	"testing"
)

func TestSeconds(t *testing.T) {
	for _, test := range []struct {
		val  float64
		want string
	}{
		{0, "0.000s"},
		{123, "123.0s"},
		{12.34, "12.34s"},
		{1.5, "1.500s"},
		{0.0123, "12.30ms"},
		{0.25, "250.0ms"},
		{4.56e-5, "45.60µs"},
		{2e-9, "2.000ns"},
		{2e-12, "0.002000ns"},
		{-0.0123, "-12.30ms"},
	} {
		if got := Seconds(test.val); got != test.want {
			t.Errorf("Seconds(%v) = %q, want %q", test.val, got, test.want)
		}
	}
}

func TestCommon(t *testing.T) {
	s := Common([]float64{0.5, 0.001, 0, math.NaN(), math.Inf(1)})
	if want := (Scaler{3, 1e-3, "m"}); s != want {
		t.Fatalf("Common = %+v, want %+v", s, want)
	}
	if got, want := s.Format(0.5, "s"), "500.000ms"; got != want {
		t.Errorf("Format(0.5) = %q, want %q", got, want)
	}
	if got := Common(nil); got != (Scaler{3, 1, ""}) {
		t.Errorf("Common(nil) = %+v", got)
	}
}

func TestExact(t *testing.T) {
	for val, want := range map[float64]string{
		0.01:    "0.01",
		1e-6:    "0.000001",
		1234.5:  "1234.5",
		100000:  "100000",
		0.00025: "0.00025",
	} {
		if got := Exact.Format(val, ""); got != want {
			t.Errorf("Exact.Format(%v) = %q, want %q", val, got, want)
		}
	}
}
