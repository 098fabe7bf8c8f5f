// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reportfmt

import (
	"path/filepath"
	"strconv"
	"strings"
)

// ParseRunID derives the run configuration from a report file name of
// the form "<nodes>x<tasks>_...", for example "4x8_bench.out". The
// letter x may be upper or lower case. Any directory part of fileName is
// ignored.
//
// If the name does not encode exactly two integers, ParseRunID returns
// a *NameError.
func ParseRunID(fileName string) (RunID, error) {
	base := filepath.Base(fileName)
	head, _, _ := strings.Cut(base, "_")
	parts := strings.Split(strings.ToLower(head), "x")
	if len(parts) != 2 {
		return RunID{}, &NameError{fileName, "name must start with <nodes>x<tasks>_"}
	}
	nodes, err := strconv.Atoi(parts[0])
	if err != nil {
		return RunID{}, &NameError{fileName, "bad node count " + strconv.Quote(parts[0])}
	}
	tasks, err := strconv.Atoi(parts[1])
	if err != nil {
		return RunID{}, &NameError{fileName, "bad task count " + strconv.Quote(parts[1])}
	}
	return RunID{nodes, tasks}, nil
}
