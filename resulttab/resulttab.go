// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resulttab arranges parsed report rows as go-gg tables.
//
// The wide form produced by FromRows has one row per (run, algorithm,
// message type) and one float64 column per message size, mirroring the
// CSV layout. Long unpivots those columns so that each table row holds
// a single measurement, which is the shape the plotting code consumes.
package resulttab

import (
	"strconv"
	"strings"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"golang.org/x/collperf/reportfmt"
)

// Column names.
const (
	Nodes       = "Nodes"
	Tasks       = "Tasks"
	Algorithm   = "Algorithm"
	Type        = "Type"
	Size        = "Size"        // size label, such as "m=10", in long form
	MessageSize = "MessageSize" // integer message size in long form
	Runtime     = "Runtime"     // measured runtime in long form
)

// FromRows returns the wide table of rows. Row order is preserved.
func FromRows(rows []reportfmt.Row) *table.Table {
	n := len(rows)
	nodes, tasks, types := make([]int, n), make([]int, n), make([]int, n)
	algs := make([]string, n)
	vals := make([][]float64, reportfmt.NumSizes)
	for i := range vals {
		vals[i] = make([]float64, n)
	}
	for i, r := range rows {
		nodes[i], tasks[i], types[i] = r.Run.Nodes, r.Run.Tasks, r.Type
		algs[i] = r.Algorithm
		for j, v := range r.Values {
			vals[j][i] = v
		}
	}

	b := new(table.Builder).Add(Nodes, nodes).Add(Tasks, tasks).Add(Algorithm, algs).Add(Type, types)
	for j, label := range reportfmt.SizeLabels {
		b.Add(label, vals[j])
	}
	return b.Done()
}

// Long converts a wide grouping into long form: the per-size columns
// are replaced by Size, Runtime and MessageSize.
func Long(g table.Grouping) table.Grouping {
	g = table.Unpivot(g, Size, Runtime, reportfmt.SizeLabels[:]...)
	return table.MapCols(g, func(labels []string, sizes []int) {
		for i, l := range labels {
			sizes[i] = sizeOf(l)
		}
	}, Size)(MessageSize)
}

// sizeOf returns the message size named by a label like "m=100",
// or -1 if the label is malformed.
func sizeOf(label string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(label, "m="))
	if err != nil || !strings.HasPrefix(label, "m=") {
		return -1
	}
	return n
}

// OfType keeps the rows of g with message type typ.
func OfType(g table.Grouping, typ int) table.Grouping {
	return table.FilterEq(g, Type, typ)
}

// OfSize keeps the rows of a long-form g with the given message size.
func OfSize(g table.Grouping, size int) table.Grouping {
	return table.FilterEq(g, MessageSize, size)
}

// Ints returns the distinct values of the int column col across all
// groups of g in increasing order.
func Ints(g table.Grouping, col string) []int {
	var cols []slice.T
	for _, gid := range g.Tables() {
		if c := g.Table(gid).Column(col); c != nil {
			cols = append(cols, c)
		}
	}
	if len(cols) == 0 {
		return nil
	}
	vals := slice.Nub(slice.Concat(cols...)).([]int)
	slice.Sort(vals)
	return vals
}

// Strings returns the distinct values of the string column col across
// all groups of g in order of first appearance.
func Strings(g table.Grouping, col string) []string {
	var cols []slice.T
	for _, gid := range g.Tables() {
		if c := g.Table(gid).Column(col); c != nil {
			cols = append(cols, c)
		}
	}
	if len(cols) == 0 {
		return nil
	}
	return slice.Nub(slice.Concat(cols...)).([]string)
}
