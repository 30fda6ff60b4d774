// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package actfchart

import (
	"errors"
	"image/color"

	"github.com/NNVMC/FeedForwardNeuralNetwork/actfstat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg/draw"
)

// ErrNoComparisons is returned by CompareRuns for a report without
// comparisons.
var ErrNoComparisons = errors.New("nothing to compare")

// CompareRuns returns a figure with one panel per function and
// evaluation mode of r. Each panel shows one group of bars per metric
// label and one bar per run, as a percentage of the baseline.
//
// A nil report, which Compare returns for fewer than two runs, yields
// actfstat.ErrNotEnoughRuns.
func CompareRuns(r *actfstat.Report, opts BarOptions) (*Figure, error) {
	if r == nil {
		return nil, actfstat.ErrNotEnoughRuns
	}
	if len(r.Comparisons) == 0 {
		return nil, ErrNoComparisons
	}

	// One row per function, one column per mode.
	modes := r.Format.Modes
	col := make(map[string]int, len(modes))
	for i, m := range modes {
		col[m] = i
	}
	var funcs []string
	row := make(map[string]int)
	for _, c := range r.Comparisons {
		if _, ok := row[c.Function]; !ok {
			row[c.Function] = len(funcs)
			funcs = append(funcs, c.Function)
		}
	}

	fig := newFigure(opts.Title, len(funcs), len(modes))
	for _, c := range r.Comparisons {
		j, i := row[c.Function], col[c.Mode]
		fig.Plots[j][i] = barPanel(c, opts, j == len(funcs)-1)
	}
	return fig, nil
}

// runColors returns n distinct fill colors.
func runColors(n int) []color.Color {
	if pal, err := brewer.GetPalette(brewer.TypeQualitative, "Set2", max(n, 3)); err == nil {
		return pal.Colors()[:n]
	}
	colors := make([]color.Color, n)
	for i := range colors {
		colors[i] = plotutil.Color(i)
	}
	return colors
}

func barPanel(c *actfstat.Comparison, opts BarOptions, last bool) *plot.Plot {
	p := plot.New()
	p.Title.Text = panelTitle(c.Function, "actf", c.Mode)
	p.Legend.Top = true

	n := len(c.Labels)
	nbars := len(c.Rows)
	bw := opts.Width / float64(max(nbars, 1))

	// Groups are centered on the category ticks. Horizontal charts
	// list the labels from top to bottom.
	center := func(k int) float64 {
		if opts.Horizontal {
			return float64(n - k)
		}
		return float64(k)
	}
	ticks := make([]plot.Tick, n)
	for k, l := range c.Labels {
		ticks[k] = plot.Tick{Value: center(k), Label: l}
	}

	cat, val := &p.X, &p.Y
	if opts.Horizontal {
		cat, val = &p.Y, &p.X
	}
	cat.Tick.Marker = plot.ConstantTicks(ticks)
	if !opts.Horizontal || last {
		val.Label.Text = opts.ValueLabel
	}

	labelStyle := p.Y.Tick.Label
	labelStyle.Font = font.From(plot.DefaultFont, 8)
	labelStyle.XAlign = draw.XLeft
	labelStyle.YAlign = draw.YCenter

	colors := runColors(nbars)
	for b, r := range c.Rows {
		// Offset of bar b from its group center.
		off := (float64(b) - float64(nbars-1)/2) * bw
		if opts.Horizontal {
			off = -off
		}
		pos := make([]float64, n)
		for k := range pos {
			pos[k] = center(k) + off
		}
		bars := newPercentBars(r.Values, pos, bw, colors[b])
		bars.horizontal = opts.Horizontal
		bars.labels = opts.Labels
		bars.labelAt = 1
		bars.labelStyle = labelStyle
		p.Add(bars)
		p.Legend.Add(r.Run, bars)
	}

	if opts.Max > opts.Min {
		val.Min, val.Max = opts.Min, opts.Max
	}
	return p
}
