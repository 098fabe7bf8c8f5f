// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resulttab

import (
	"fmt"
	"io"

	"github.com/aclements/go-gg/table"
	"github.com/google/safehtml/template"
	"golang.org/x/collperf/internal/scale"
	"golang.org/x/collperf/reportfmt"
)

// FormatText writes rows to w as an aligned text table. Each message
// size column is scaled to a common SI prefix, shown in its header.
func FormatText(w io.Writer, rows []reportfmt.Row) error {
	t := FromRows(rows)
	b := new(table.Builder)
	formats := []string{"%d", "%d", "%s", "%d"}
	for _, col := range []string{Nodes, Tasks, Algorithm, Type} {
		b.Add(col, t.MustColumn(col))
	}
	for _, label := range reportfmt.SizeLabels {
		vals := t.MustColumn(label).([]float64)
		s := scale.Common(vals)
		scaled := make([]float64, len(vals))
		for i, v := range vals {
			scaled[i] = v / s.Factor
		}
		b.Add(fmt.Sprintf("%s (%ss)", label, s.Prefix), scaled)
		formats = append(formats, fmt.Sprintf("%%.%df", s.Prec))
	}
	return table.Fprint(w, b.Done(), formats...)
}

var htmlTemplate = template.Must(template.New("").Parse(`
{{- range . -}}
<table class='collperf'>
<caption>{{.Run}}</caption>
<tr><th>Algorithm<th>Type{{range .Sizes}}<th>{{.}}{{end}}
{{range .Rows -}}
<tr><td>{{.Algorithm}}<td>{{.Type}}{{range .Cells}}<td>{{.}}{{end}}
{{end -}}
</table>
{{end -}}
`))

type htmlRun struct {
	Run   string
	Sizes []string
	Rows  []htmlRow
}

type htmlRow struct {
	Algorithm string
	Type      int
	Cells     []string
}

// FormatHTML writes rows to w as one HTML table per run, in order of
// first appearance. Runtimes within a run share a scale.
func FormatHTML(w io.Writer, rows []reportfmt.Row) error {
	var runs []htmlRun
	g := table.GroupBy(FromRows(rows), Nodes, Tasks)
	for _, gid := range g.Tables() {
		t := g.Table(gid)
		nodes, _ := t.Const(Nodes)
		tasks, _ := t.Const(Tasks)
		run := htmlRun{
			Run:   reportfmt.RunID{Nodes: nodes.(int), Tasks: tasks.(int)}.String(),
			Sizes: reportfmt.SizeLabels[:],
		}

		var all []float64
		for _, label := range reportfmt.SizeLabels {
			all = append(all, t.MustColumn(label).([]float64)...)
		}
		s := scale.Common(all)

		algs := t.MustColumn(Algorithm).([]string)
		types := t.MustColumn(Type).([]int)
		for i := range algs {
			row := htmlRow{Algorithm: algs[i], Type: types[i]}
			for _, label := range reportfmt.SizeLabels {
				row.Cells = append(row.Cells, s.Format(t.MustColumn(label).([]float64)[i], "s"))
			}
			run.Rows = append(run.Rows, row)
		}
		runs = append(runs, run)
	}
	return htmlTemplate.Execute(w, runs)
}
