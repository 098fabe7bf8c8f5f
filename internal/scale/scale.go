// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scale formats runtimes with SI prefixes so that a column of
// values can be read at a glance.
package scale

import (
	"fmt"
	"math"
	"strconv"
)

// A Scaler formats values in a common scale.
type Scaler struct {
	Prec   int     // digits after the decimal point
	Factor float64 // value of one Prefix unit (e.g., 1e-6 for µ)
	Prefix string  // SI prefix ("m", "µ", ...)
}

// Format formats val in the scale of s followed by the prefix and unit,
// for example "12.3µs".
func (s Scaler) Format(val float64, unit string) string {
	buf := make([]byte, 0, 20)
	buf = strconv.AppendFloat(buf, val/s.Factor, 'f', s.Prec, 64)
	buf = append(buf, s.Prefix...)
	buf = append(buf, unit...)
	return string(buf)
}

// Exact is a Scaler that prints values with as many digits as needed to
// reproduce them and no prefix. It is used for machine-read output.
var Exact = Scaler{-1, 1, ""}

type factor struct {
	factor float64
	prefix string
	// Smallest values printed with 1, 2, and 3 decimals.
	t100, t10, t1 float64
}

var factors = mkFactors()

func mkFactors() []factor {
	// Build the thresholds from printed representations so that they
	// round exactly the way printing does.
	var fs []factor
	exp := 9
	for _, p := range []string{"G", "M", "k", "", "m", "µ", "n"} {
		t100, _ := strconv.ParseFloat(fmt.Sprintf("99.995e%d", exp), 64)
		t10, _ := strconv.ParseFloat(fmt.Sprintf("9.9995e%d", exp), 64)
		t1, _ := strconv.ParseFloat(fmt.Sprintf(".99995e%d", exp), 64)
		fs = append(fs, factor{math.Pow(10, float64(exp)), p, t100, t10, t1})
		exp -= 3
	}
	return fs
}

// Common returns a Scaler that shows at least three significant digits
// for every value in vals. The scale is chosen by the non-zero value
// closest to zero.
func Common(vals []float64) Scaler {
	var min float64
	for _, v := range vals {
		v = math.Abs(v)
		if v != 0 && !math.IsInf(v, 0) && !math.IsNaN(v) && (min == 0 || v < min) {
			min = v
		}
	}
	if min == 0 {
		return Scaler{3, 1, ""}
	}
	for _, f := range factors {
		switch {
		case min >= f.t100:
			return Scaler{1, f.factor, f.prefix}
		case min >= f.t10:
			return Scaler{2, f.factor, f.prefix}
		case min >= f.t1:
			return Scaler{3, f.factor, f.prefix}
		}
	}
	// Below the smallest prefix: add digits instead.
	f := factors[len(factors)-1]
	prec := 3
	for v := min / f.factor; v < .99995 && prec < 10; v *= 10 {
		prec++
	}
	return Scaler{prec, f.factor, f.prefix}
}

// Seconds formats a single runtime in seconds, such as "4.56ms".
func Seconds(val float64) string {
	return Common([]float64{val}).Format(val, "s")
}
