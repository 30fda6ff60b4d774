// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package actfchart

import (
	"github.com/NNVMC/FeedForwardNeuralNetwork/actfmt"
	"github.com/NNVMC/FeedForwardNeuralNetwork/actfstat"
)

// OverlayOptions configures CompareFunctions.
type OverlayOptions struct {
	Title  string
	YLabel string

	// Reference names the function whose metric labels order the
	// X axis. If empty or unknown, the first function of the first
	// run is used.
	Reference string

	// LogY selects a logarithmic Y axis. Values that are not
	// positive are left out.
	LogY bool
}

// DefaultOverlayOptions returns the options used for runs of format f.
func DefaultOverlayOptions(f *actfmt.Format) OverlayOptions {
	switch f {
	case actfmt.FFPropagate:
		return OverlayOptions{
			Title:     "FFPropagate benchmark, comparing all activation functions",
			YLabel:    "Time per propagation [μs]",
			Reference: "LGS",
			LogY:      true,
		}
	case actfmt.ActfDerivs:
		return OverlayOptions{
			Title:     "Actf derivative benchmark, comparing all actfs",
			YLabel:    "Time per eval [ns]",
			Reference: "lgs",
		}
	}
	return OverlayOptions{
		Title:  f.Name + " benchmark, comparing all activation functions",
		YLabel: "Time [" + f.Unit + "]",
	}
}

// BarOptions configures CompareRuns.
type BarOptions struct {
	Title      string
	ValueLabel string

	// Horizontal draws bars along the X axis, with metric labels
	// from top to bottom.
	Horizontal bool

	// Width is the width of one group of bars in axis units. The
	// bars of a group share it equally.
	Width float64

	// If Max > Min, the value axis is fixed to [Min, Max].
	Min, Max float64

	// Labels writes the integer part of every value next to the
	// value axis origin.
	Labels bool
}

// DefaultBarOptions returns the options used for report r.
func DefaultBarOptions(r *actfstat.Report) BarOptions {
	switch r.Format {
	case actfmt.FFPropagate:
		return BarOptions{
			Title:      "FFPropagate benchmark, comparing against " + r.Baseline + " version",
			ValueLabel: "Time per propagation [%]",
			Horizontal: true,
			Width:      0.8,
			Min:        0,
			Max:        200,
			Labels:     true,
		}
	case actfmt.ActfDerivs:
		return BarOptions{
			Title:      "Actf derivative benchmark, comparing versions for selected actfs",
			ValueLabel: "Time per eval (%)",
			Width:      0.75,
		}
	}
	return BarOptions{
		Title:      r.Format.Name + " benchmark, comparing against " + r.Baseline + " version",
		ValueLabel: "Time (%)",
		Width:      0.8,
	}
}
