// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package actfstat compares benchmark runs against a baseline run.
//
// Every measurement of a compared run is expressed as a percentage of
// the baseline measurement with the same function, evaluation mode and
// metric label, so the baseline itself is always 100%.
package actfstat

import (
	"errors"
	"fmt"
	"math"

	"github.com/NNVMC/FeedForwardNeuralNetwork/actfmt"
	"github.com/aclements/go-moremath/stats"
)

// ErrNotEnoughRuns is returned by Compare when fewer than two runs are
// given.
var ErrNotEnoughRuns = errors.New("not enough benchmarks for comparison")

// Scale returns the factor that maps baseline to 100.
func Scale(baseline float64) float64 {
	return 100 / baseline
}

// A Percent is a measurement normalized to a baseline. Undefined
// percentages are NaN.
type Percent struct {
	Value, Err float64
}

// Defined reports whether p has a value.
func (p Percent) Defined() bool {
	return !math.IsNaN(p.Value)
}

var undefined = Percent{math.NaN(), math.NaN()}

// Normalize returns the measurements of m as percentages of base, one
// per label of base in the same order. The result for a label is
// undefined if m lacks it or the baseline value is zero. m may be nil.
func Normalize(base, m *actfmt.Metrics) []Percent {
	out := make([]Percent, base.Len())
	for i, label := range base.Labels() {
		out[i] = undefined
		b, _ := base.Get(label)
		if b.Value == 0 || math.IsNaN(b.Value) || math.IsInf(b.Value, 0) {
			continue
		}
		if m == nil {
			continue
		}
		x, ok := m.Get(label)
		if !ok {
			continue
		}
		s := Scale(b.Value)
		out[i] = Percent{x.Value * s, x.Err * s}
	}
	return out
}

// A Row is one compared run within a Comparison.
type Row struct {
	Run    string
	Values []Percent

	// GeoMean is the geometric mean of the positive defined
	// values, or NaN if there are none.
	GeoMean float64
}

func newRow(run string, vals []Percent) Row {
	var xs []float64
	for _, v := range vals {
		if v.Defined() && v.Value > 0 {
			xs = append(xs, v.Value)
		}
	}
	gm := math.NaN()
	if len(xs) > 0 {
		gm = stats.GeoMean(xs)
	}
	return Row{Run: run, Values: vals, GeoMean: gm}
}

// A Comparison compares the metrics of one function and evaluation
// mode across runs.
type Comparison struct {
	Function string
	// Mode is empty for formats without evaluation modes.
	Mode string

	// Labels are the metric labels of the baseline, in log order.
	// Every Row has one value per label.
	Labels []string
	Rows   []Row
}

// Title returns a short description of c, such as "tans" or
// "tans [fad]".
func (c *Comparison) Title() string {
	return describe(c.Function, c.Mode)
}

func describe(function, mode string) string {
	if mode == "" {
		return function
	}
	return function + " [" + mode + "]"
}

// Options configures Compare.
type Options struct {
	// Functions selects and orders the compared functions. If nil,
	// all functions of the baseline are compared.
	Functions []string

	// Modes selects the evaluation modes. If nil, the modes of the
	// baseline's format are used.
	Modes []string

	// IncludeBaseline adds the baseline itself as the first row of
	// every comparison.
	IncludeBaseline bool
}

// A Report is the result of comparing runs to a baseline.
type Report struct {
	Baseline    string
	Format      *actfmt.Format
	Comparisons []*Comparison

	// Warnings describe functions or modes that could not be
	// compared.
	Warnings []string
}

func (r *Report) warn(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Compare compares runs[1:] against the baseline runs[0]. All runs
// must have the same format.
//
// Functions or modes the baseline lacks are skipped with a warning. A
// compared run lacking them gets a row of undefined values.
func Compare(runs []*actfmt.Run, opts Options) (*Report, error) {
	if len(runs) < 2 {
		return nil, ErrNotEnoughRuns
	}
	base := runs[0]
	for _, run := range runs[1:] {
		if run.Format != base.Format {
			return nil, fmt.Errorf("run %s has format %s, but baseline %s has format %s", run.Label, run.Format.Name, base.Label, base.Format.Name)
		}
	}

	names := opts.Functions
	if names == nil {
		names = base.Names()
	}
	modes := opts.Modes
	if modes == nil {
		modes = base.Format.Modes
	}
	compared := runs[1:]
	if opts.IncludeBaseline {
		compared = runs
	}

	r := &Report{Baseline: base.Label, Format: base.Format}
	for _, name := range names {
		bfn := base.Function(name)
		if bfn == nil {
			r.warn("baseline %s has no function %s", base.Label, name)
			continue
		}
		for _, mode := range modes {
			bm := bfn.Lookup(mode)
			if bm == nil {
				r.warn("baseline %s has no metrics for %s", base.Label, describe(name, mode))
				continue
			}
			c := &Comparison{
				Function: name,
				Mode:     mode,
				Labels:   append([]string(nil), bm.Labels()...),
			}
			for _, run := range compared {
				var m *actfmt.Metrics
				if fn := run.Function(name); fn != nil {
					m = fn.Lookup(mode)
				}
				if m == nil {
					r.warn("run %s has no metrics for %s", run.Label, describe(name, mode))
				}
				c.Rows = append(c.Rows, newRow(run.Label, Normalize(bm, m)))
			}
			r.Comparisons = append(r.Comparisons, c)
		}
	}
	return r, nil
}
