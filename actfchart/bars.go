// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package actfchart

import (
	"image/color"
	"math"
	"strconv"

	"github.com/NNVMC/FeedForwardNeuralNetwork/actfstat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// percentBars draws one bar per defined percentage, with error
// whiskers. Unlike plotter.BarChart, bar thickness is given in axis
// units so that groups of bars line up with the category ticks.
type percentBars struct {
	values []actfstat.Percent
	// pos is the category axis position of each bar center.
	pos []float64
	// width is the bar thickness in category axis units.
	width float64

	horizontal bool

	color      color.Color
	lineStyle  draw.LineStyle
	errorStyle draw.LineStyle
	capWidth   vg.Length

	// If labels is set, the integer part of every value is
	// written at labelAt on the value axis.
	labels     bool
	labelAt    float64
	labelStyle text.Style
}

func newPercentBars(values []actfstat.Percent, pos []float64, width float64, clr color.Color) *percentBars {
	return &percentBars{
		values:     values,
		pos:        pos,
		width:      width,
		color:      clr,
		lineStyle:  draw.LineStyle{Color: color.Black, Width: vg.Points(0.5)},
		errorStyle: draw.LineStyle{Color: color.Black, Width: vg.Points(0.75)},
		capWidth:   vg.Points(4),
	}
}

// point maps a (category, value) pair to canvas coordinates.
func (b *percentBars) point(trX, trY func(float64) vg.Length, cat, val float64) vg.Point {
	if b.horizontal {
		return vg.Point{X: trX(val), Y: trY(cat)}
	}
	return vg.Point{X: trX(cat), Y: trY(val)}
}

// Plot implements plot.Plotter.
func (b *percentBars) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for i, v := range b.values {
		if !v.Defined() {
			continue
		}
		lo, hi := b.pos[i]-b.width/2, b.pos[i]+b.width/2
		pts := []vg.Point{
			b.point(trX, trY, lo, 0),
			b.point(trX, trY, lo, v.Value),
			b.point(trX, trY, hi, v.Value),
			b.point(trX, trY, hi, 0),
		}
		c.FillPolygon(b.color, c.ClipPolygonXY(pts))
		c.StrokeLines(b.lineStyle, c.ClipLinesXY(append(pts, pts[0]))...)

		if v.Err > 0 {
			low := b.point(trX, trY, b.pos[i], v.Value-v.Err)
			high := b.point(trX, trY, b.pos[i], v.Value+v.Err)
			half := b.capWidth / 2
			var caps [][]vg.Point
			if b.horizontal {
				caps = [][]vg.Point{
					{{X: low.X, Y: low.Y - half}, {X: low.X, Y: low.Y + half}},
					{{X: high.X, Y: high.Y - half}, {X: high.X, Y: high.Y + half}},
				}
			} else {
				caps = [][]vg.Point{
					{{X: low.X - half, Y: low.Y}, {X: low.X + half, Y: low.Y}},
					{{X: high.X - half, Y: high.Y}, {X: high.X + half, Y: high.Y}},
				}
			}
			c.StrokeLines(b.errorStyle, c.ClipLinesXY(append(caps, []vg.Point{low, high})...)...)
		}

		if b.labels {
			pt := b.point(trX, trY, b.pos[i], b.labelAt)
			if c.Contains(pt) {
				c.FillText(b.labelStyle, pt, strconv.Itoa(int(v.Value)))
			}
		}
	}
}

// DataRange implements plot.DataRanger.
func (b *percentBars) DataRange() (xmin, xmax, ymin, ymax float64) {
	catMin, catMax := math.Inf(1), math.Inf(-1)
	for _, p := range b.pos {
		catMin = math.Min(catMin, p-b.width/2)
		catMax = math.Max(catMax, p+b.width/2)
	}
	valMin, valMax := 0.0, 0.0
	for _, v := range b.values {
		if !v.Defined() {
			continue
		}
		valMin = math.Min(valMin, v.Value-math.Abs(v.Err))
		valMax = math.Max(valMax, v.Value+math.Abs(v.Err))
	}
	if b.horizontal {
		return valMin, valMax, catMin, catMax
	}
	return catMin, catMax, valMin, valMax
}

// Thumbnail implements plot.Thumbnailer.
func (b *percentBars) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(b.color, c.ClipPolygonY(pts))
	c.StrokeLines(b.lineStyle, c.ClipLinesY(append(pts, pts[0]))...)
}
