// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart draws grids of runtime plots from parsed report rows.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Cell dimensions and resolution of raster output.
const (
	cellWidth  = 4 * vg.Inch
	cellHeight = 3 * vg.Inch
	dpi        = 96
)

// A Grid is a matrix of plots sharing row and column axes.
type Grid struct {
	// Rows and Cols label the grid axes, for example "tasks=8".
	Rows, Cols []string

	// Plots[i][j] is the plot at row i and column j, or nil if
	// there is no data for that cell.
	Plots [][]*plot.Plot
}

func newGrid(rowName string, rows []int, colName string, cols []int) *Grid {
	g := &Grid{Plots: make([][]*plot.Plot, len(rows))}
	for i, r := range rows {
		g.Rows = append(g.Rows, fmt.Sprintf("%s=%d", rowName, r))
		g.Plots[i] = make([]*plot.Plot, len(cols))
	}
	for _, c := range cols {
		g.Cols = append(g.Cols, fmt.Sprintf("%s=%d", colName, c))
	}
	return g
}

// Size returns the size of the whole grid.
func (g *Grid) Size() (w, h vg.Length) {
	return cellWidth * vg.Length(len(g.Cols)), cellHeight * vg.Length(len(g.Rows))
}

// Draw draws the non-empty cells of g onto dc.
func (g *Grid) Draw(dc draw.Canvas) {
	tiles := draw.Tiles{
		Rows:      len(g.Rows),
		Cols:      len(g.Cols),
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	for i, row := range g.Plots {
		for j, p := range row {
			if p != nil {
				p.Draw(tiles.At(dc, j, i))
			}
		}
	}
}

// Save renders g to path. The format is chosen by the file extension,
// which must be .png, .pdf or .svg.
func (g *Grid) Save(path string) error {
	if len(g.Rows) == 0 || len(g.Cols) == 0 {
		return errors.New("chart: nothing to plot")
	}
	w, h := g.Size()
	var c vg.CanvasWriterTo
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		c = vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(color.White))}
	case ".pdf":
		c = vgpdf.New(w, h)
	case ".svg":
		c = vgsvg.New(w, h)
	default:
		return fmt.Errorf("chart: unsupported image format %q", ext)
	}
	g.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
