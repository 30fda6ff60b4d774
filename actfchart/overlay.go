// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package actfchart

import (
	"math"

	"github.com/NNVMC/FeedForwardNeuralNetwork/actfmt"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// CompareFunctions returns a figure with one panel per run and
// evaluation mode. Each panel draws every function of the run as a
// dashed line with error bars over the metric labels.
func CompareFunctions(runs []*actfmt.Run, opts OverlayOptions) (*Figure, error) {
	if len(runs) == 0 {
		return nil, ErrNoRuns
	}
	modes := runs[0].Format.Modes
	labels := axisLabels(runs, modes, opts.Reference)

	fig := newFigure(opts.Title, len(runs), len(modes))
	for j, run := range runs {
		for i, mode := range modes {
			p, err := overlayPanel(run, mode, labels, opts)
			if err != nil {
				return nil, err
			}
			fig.Plots[j][i] = p
		}
	}
	return fig, nil
}

// axisLabels returns the metric labels of the reference function
// followed by any other label seen in runs, in first-seen order.
func axisLabels(runs []*actfmt.Run, modes []string, reference string) []string {
	var labels []string
	seen := make(map[string]bool)
	add := func(m *actfmt.Metrics) {
		if m == nil {
			return
		}
		for _, l := range m.Labels() {
			if !seen[l] {
				seen[l] = true
				labels = append(labels, l)
			}
		}
	}

	ref := runs[0].Function(reference)
	if ref == nil && len(runs[0].Functions()) > 0 {
		ref = runs[0].Functions()[0]
	}
	if ref != nil {
		for _, mode := range modes {
			add(ref.Lookup(mode))
		}
	}
	for _, run := range runs {
		for _, fn := range run.Functions() {
			for _, mode := range modes {
				add(fn.Lookup(mode))
			}
		}
	}
	return labels
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func overlayPanel(run *actfmt.Run, mode string, labels []string, opts OverlayOptions) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = panelTitle(run.Label, "version", mode)
	p.Y.Label.Text = opts.YLabel
	p.Legend.Top = true

	x := make(map[string]float64, len(labels))
	ticks := make([]plot.Tick, len(labels))
	for i, l := range labels {
		x[l] = float64(i)
		ticks[i] = plot.Tick{Value: float64(i), Label: l}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Min, p.X.Max = -0.5, float64(len(labels))-0.5

	lines := 0
	for k, fn := range run.Functions() {
		m := fn.Lookup(mode)
		if m == nil {
			continue
		}
		var pts struct {
			plotter.XYs
			plotter.YErrors
		}
		for _, l := range m.Labels() {
			v, _ := m.Get(l)
			if !finite(v.Value) || !finite(v.Err) || opts.LogY && v.Value <= 0 {
				continue
			}
			low := math.Abs(v.Err)
			if opts.LogY && v.Value-low <= 0 {
				low = v.Value / 2
			}
			pts.XYs = append(pts.XYs, plotter.XY{X: x[l], Y: v.Value})
			pts.YErrors = append(pts.YErrors, struct{ Low, High float64 }{low, math.Abs(v.Err)})
		}
		if len(pts.XYs) == 0 {
			continue
		}

		clr := plotutil.Color(k)
		line, scatter, err := plotter.NewLinePoints(pts.XYs)
		if err != nil {
			return nil, err
		}
		line.Color = clr
		line.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
		scatter.Color = clr
		scatter.Shape = draw.CircleGlyph{}
		scatter.Radius = vg.Points(2.5)
		bars, err := plotter.NewYErrorBars(pts)
		if err != nil {
			return nil, err
		}
		bars.Color = clr

		p.Add(line, scatter, bars)
		p.Legend.Add(fn.Name, line, scatter)
		lines++
	}

	if opts.LogY && lines > 0 {
		if p.Y.Min == p.Y.Max {
			p.Y.Min, p.Y.Max = p.Y.Min/2, p.Y.Max*2
		}
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	return p, nil
}
