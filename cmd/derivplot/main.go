// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Derivplot charts activation function derivative benchmark logs.
//
// Usage:
//
//	derivplot [flags] file...
//
// Each file holds the log of one ACTF derivative benchmark run, with
// one section per activation function and, within it, the timings of
// the "individual" and "fad" evaluation modes. Runs are labeled as by
// ffpropplot.
//
// Derivplot writes derivs_functions.png, with one panel per run and
// mode, and derivs_runs.png, which compares every run, the first one
// included, as a percentage of the first run.
//
// The -commit flag selects when the metrics of a mode are kept.
// "legacy" keeps the mode left when a fad section starts and keeps a
// fad section once its f+d1+d2+d3 line is read. "boundary" keeps every
// mode at the next mode line, section header or end of file.
//
// The remaining flags are those of ffpropplot.
package main

import (
	"errors"
	"log"
	"os"

	"github.com/NNVMC/FeedForwardNeuralNetwork/internal/actfplot"
)

var exit = os.Exit // replaced during testing

func main() {
	log.SetPrefix("derivplot: ")
	log.SetFlags(0)
	if err := actfplot.Main(actfplot.Derivs, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if errors.Is(err, actfplot.ErrUsage) {
			exit(2)
			return
		}
		log.Print(err)
		exit(1)
	}
}
