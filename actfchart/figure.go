// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package actfchart draws charts of activation function benchmark
// runs.
package actfchart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"
)

// Formats lists the output formats supported by Figure.WriterTo.
var Formats = []string{"png", "svg", "pdf"}

// ErrNoRuns is returned when a chart is requested for zero runs.
var ErrNoRuns = errors.New("no benchmark runs to plot")

// A Figure is a grid of plots below a common title.
type Figure struct {
	Title      string
	Rows, Cols int

	// Plots holds Rows rows of Cols plots each. Nil plots leave
	// their tile empty.
	Plots [][]*plot.Plot
}

func newFigure(title string, rows, cols int) *Figure {
	f := &Figure{Title: title, Rows: rows, Cols: cols, Plots: make([][]*plot.Plot, rows)}
	for i := range f.Plots {
		f.Plots[i] = make([]*plot.Plot, cols)
	}
	return f
}

const (
	tileWidth  = 14 * vg.Centimeter
	tileHeight = 9 * vg.Centimeter
	titlePad   = 3 * vg.Millimeter
)

func titleStyle() text.Style {
	return text.Style{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, 14),
		XAlign:  draw.XCenter,
		YAlign:  draw.YTop,
		Handler: plot.DefaultTextHandler,
	}
}

// Size returns a size at which every tile of f is readable.
func (f *Figure) Size() (w, h vg.Length) {
	w = vg.Length(f.Cols) * tileWidth
	h = vg.Length(f.Rows) * tileHeight
	if f.Title != "" {
		h += titleStyle().Height(f.Title) + titlePad
	}
	return w, h
}

// Draw draws f to c.
func (f *Figure) Draw(c draw.Canvas) {
	c.SetColor(color.White)
	c.Fill(c.Rectangle.Path())

	if f.Title != "" {
		sty := titleStyle()
		c.FillText(sty, vg.Point{X: c.Center().X, Y: c.Max.Y}, f.Title)
		c = draw.Crop(c, 0, 0, 0, -(sty.Height(f.Title) + titlePad))
	}

	tiles := draw.Tiles{
		Rows:      f.Rows,
		Cols:      f.Cols,
		PadX:      8 * vg.Millimeter,
		PadY:      8 * vg.Millimeter,
		PadTop:    2 * vg.Millimeter,
		PadBottom: 2 * vg.Millimeter,
		PadLeft:   2 * vg.Millimeter,
		PadRight:  4 * vg.Millimeter,
	}
	canvases := plot.Align(f.Plots, tiles, c)
	for j, row := range f.Plots {
		for i, p := range row {
			if p != nil {
				p.Draw(canvases[j][i])
			}
		}
	}
}

// WriterTo returns an io.WriterTo that writes f in the given format
// (one of Formats) at size w×h.
func (f *Figure) WriterTo(w, h vg.Length, format string) (io.WriterTo, error) {
	c, err := draw.NewFormattedCanvas(w, h, format)
	if err != nil {
		return nil, err
	}
	f.Draw(draw.New(c))
	return c, nil
}

// Save writes f to the named file. The format is taken from the file
// extension.
func (f *Figure) Save(w, h vg.Length, path string) (err error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	wt, err := f.WriterTo(w, h, format)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if e := file.Close(); err == nil {
			err = e
		}
	}()
	_, err = wt.WriteTo(file)
	return err
}

func panelTitle(name, suffix, mode string) string {
	if mode == "" {
		return name + " " + suffix
	}
	return name + " " + suffix + ", " + mode + " function calls"
}
