// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"golang.org/x/collperf/reportfmt"
	"golang.org/x/collperf/resulttab"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// meanRuntime is the column added by averaging Runtime.
const meanRuntime = "mean " + resulttab.Runtime

const barWidth = 10 // points

// MessageTypes returns a grid with one row per task count and one
// column per node count. Each cell shows, for one message size, a bar
// per algorithm and message type.
func MessageTypes(rows []reportfmt.Row, size int) (*Grid, error) {
	long := resulttab.OfSize(resulttab.Long(resulttab.FromRows(rows)), size)
	tasks := resulttab.Ints(long, resulttab.Tasks)
	nodes := resulttab.Ints(long, resulttab.Nodes)
	algs := resulttab.Strings(long, resulttab.Algorithm)
	grid := newGrid("tasks", tasks, "nodes", nodes)

	w := vg.Points(barWidth)
	cells := table.GroupBy(long, resulttab.Tasks, resulttab.Nodes)
	for _, gid := range cells.Tables() {
		t := cells.Table(gid)
		i, j := cellOf(t, resulttab.Tasks, tasks), cellOf(t, resulttab.Nodes, nodes)

		at := mean(t, resulttab.Type, resulttab.Algorithm)
		types := at.MustColumn(resulttab.Type).([]int)
		names := at.MustColumn(resulttab.Algorithm).([]string)
		means := at.MustColumn(meanRuntime).([]float64)
		vals := make([]plotter.Values, reportfmt.NumTypes)
		for typ := range vals {
			vals[typ] = make(plotter.Values, len(algs))
		}
		for k, typ := range types {
			if typ < 0 || typ >= reportfmt.NumTypes || !finite(means[k]) {
				// A missing bar is drawn as zero.
				continue
			}
			vals[typ][indexOf(algs, names[k])] = means[k]
		}

		p := newPlot(grid, i, j)
		p.X.Label.Text = "algorithm"
		p.Y.Label.Text = fmt.Sprintf("runtime (s), m=%d", size)
		for typ, v := range vals {
			bc, err := plotter.NewBarChart(v, w)
			if err != nil {
				return nil, fmt.Errorf("%s, %s: %w", grid.Rows[i], grid.Cols[j], err)
			}
			bc.Color = plotutil.Color(typ)
			bc.LineStyle.Width = 0
			bc.Offset = vg.Length(typ-reportfmt.NumTypes/2) * w
			p.Add(bc)
		}
		p.NominalX(algs...)
		grid.Plots[i][j] = p
	}

	grid.legend(typeNames(), func(k int) plot.Thumbnailer {
		return &plotter.BarChart{Color: plotutil.Color(k)}
	})
	return grid, nil
}

// RuntimeByMessageSize returns a grid with one row per task count and
// one column per node count. Each cell plots, on log-log axes, the
// runtime of every algorithm against message size for message type typ.
func RuntimeByMessageSize(rows []reportfmt.Row, typ int) (*Grid, error) {
	long := resulttab.OfType(resulttab.Long(resulttab.FromRows(rows)), typ)
	tasks := resulttab.Ints(long, resulttab.Tasks)
	nodes := resulttab.Ints(long, resulttab.Nodes)
	algs := resulttab.Strings(long, resulttab.Algorithm)
	grid := newGrid("tasks", tasks, "nodes", nodes)

	cells := table.GroupBy(long, resulttab.Tasks, resulttab.Nodes)
	for _, gid := range cells.Tables() {
		t := cells.Table(gid)
		i, j := cellOf(t, resulttab.Tasks, tasks), cellOf(t, resulttab.Nodes, nodes)
		series := lines(t, algs, resulttab.MessageSize, true)
		if series == nil {
			// A log axis cannot show an empty or non-positive range.
			continue
		}

		p := newPlot(grid, i, j)
		p.X.Label.Text = "message size"
		p.Y.Label.Text = "runtime (s)"
		p.X.Scale, p.Y.Scale = plot.LogScale{}, plot.LogScale{}
		p.X.Tick.Marker, p.Y.Tick.Marker = plot.LogTicks{}, plot.LogTicks{}
		if err := addLines(p, series); err != nil {
			return nil, fmt.Errorf("%s, %s: %w", grid.Rows[i], grid.Cols[j], err)
		}
		for _, ax := range []*plot.Axis{&p.X, &p.Y} {
			if ax.Min == ax.Max {
				// Widen a single value without crossing zero.
				ax.Min, ax.Max = ax.Min/2, ax.Max*2
			}
		}
		grid.Plots[i][j] = p
	}

	grid.legend(algs, lineThumb)
	return grid, nil
}

// WeakScaling returns a grid with one row per message size and one
// column per node count. Each cell plots the runtime of every
// algorithm against the task count for message type typ.
func WeakScaling(rows []reportfmt.Row, typ int) (*Grid, error) {
	long := resulttab.OfType(resulttab.Long(resulttab.FromRows(rows)), typ)
	sizes := resulttab.Ints(long, resulttab.MessageSize)
	nodes := resulttab.Ints(long, resulttab.Nodes)
	algs := resulttab.Strings(long, resulttab.Algorithm)
	grid := newGrid("m", sizes, "nodes", nodes)

	cells := table.GroupBy(long, resulttab.MessageSize, resulttab.Nodes)
	for _, gid := range cells.Tables() {
		t := cells.Table(gid)
		i, j := cellOf(t, resulttab.MessageSize, sizes), cellOf(t, resulttab.Nodes, nodes)

		p := newPlot(grid, i, j)
		p.X.Label.Text = "tasks"
		p.Y.Label.Text = "runtime (s)"
		if err := addLines(p, lines(t, algs, resulttab.Tasks, false)); err != nil {
			return nil, fmt.Errorf("%s, %s: %w", grid.Rows[i], grid.Cols[j], err)
		}
		grid.Plots[i][j] = p
	}

	grid.legend(algs, lineThumb)
	return grid, nil
}

func newPlot(g *Grid, i, j int) *plot.Plot {
	p := plot.New()
	p.Title.Text = g.Rows[i] + ", " + g.Cols[j]
	p.Add(plotter.NewGrid())
	return p
}

// legend attaches a legend for names to the first non-empty cell.
func (g *Grid) legend(names []string, thumb func(k int) plot.Thumbnailer) {
	for _, row := range g.Plots {
		for _, p := range row {
			if p == nil {
				continue
			}
			for k, name := range names {
				p.Legend.Add(name, thumb(k))
			}
			p.Legend.Top = true
			return
		}
	}
}

func lineThumb(k int) plot.Thumbnailer {
	return &plotter.Line{LineStyle: draw.LineStyle{Color: plotutil.Color(k), Width: vg.Points(1)}}
}

func typeNames() []string {
	names := make([]string, reportfmt.NumTypes)
	for typ := range names {
		names[typ] = fmt.Sprintf("type %d", typ)
	}
	return names
}

// lines returns the mean runtime of each algorithm in t against the
// int column x, sorted by x. series[k] belongs to algs[k]. Points with
// a NaN or infinite mean are dropped. If positive is set, points with a
// non-positive coordinate are dropped too and nil is returned when no
// point remains.
func lines(t *table.Table, algs []string, x string, positive bool) []plotter.XYs {
	at := mean(t, resulttab.Algorithm, x)
	names := at.MustColumn(resulttab.Algorithm).([]string)
	xs := at.MustColumn(x).([]int)
	means := at.MustColumn(meanRuntime).([]float64)

	series := make([]plotter.XYs, len(algs))
	n := 0
	for k := range names {
		pt := plotter.XY{X: float64(xs[k]), Y: means[k]}
		if !finite(pt.Y) {
			continue
		}
		if positive && (pt.X <= 0 || pt.Y <= 0) {
			continue
		}
		a := indexOf(algs, names[k])
		series[a] = append(series[a], pt)
		n++
	}
	if positive && n == 0 {
		return nil
	}
	for _, s := range series {
		sort.Slice(s, func(i, j int) bool { return s[i].X < s[j].X })
	}
	return series
}

func addLines(p *plot.Plot, series []plotter.XYs) error {
	for k, xys := range series {
		if len(xys) == 0 {
			continue
		}
		l, pts, err := plotter.NewLinePoints(xys)
		if err != nil {
			return err
		}
		l.Color = plotutil.Color(k)
		pts.Color = plotutil.Color(k)
		pts.Shape = plotutil.Shape(k)
		p.Add(l, pts)
	}
	return nil
}

// mean averages Runtime over the rows of t that share hue and x.
func mean(t *table.Table, hue, x string) *table.Table {
	g := ggstat.Agg(hue, x)(ggstat.AggMean(resulttab.Runtime)).F(t)
	return g.Table(g.Tables()[0])
}

// cellOf returns the index in axis of the constant column col of t.
func cellOf(t *table.Table, col string, axis []int) int {
	v, _ := t.Const(col)
	return sort.SearchInts(axis, v.(int))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func indexOf(list []string, s string) int {
	for i, x := range list {
		if x == s {
			return i
		}
	}
	return -1
}
