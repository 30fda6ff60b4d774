// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Ffpropplot charts FFPropagate benchmark logs.
//
// Usage:
//
//	ffpropplot [flags] file...
//
// Each file holds the log of one FFPropagate benchmark run, with one
// section per activation function. A run is labeled by the part of its
// file name between the first "_" and the following ".", so
// bench_v2.log is labeled v2. An argument of the form label=file sets
// the label explicitly. Files that cannot be opened are skipped with a
// warning.
//
// Ffpropplot writes two charts into the -o directory:
// ffprop_functions.png shows the propagation time of every activation
// function for every run, and ffprop_runs.png shows the runs as a
// percentage of the first one, for the functions selected with -actf.
// The second chart needs at least two runs.
//
// The -format flag selects png, svg or pdf output. The -table flag
// additionally prints the comparison as text, csv or html.
//
// With -db driver:dsn, every loaded run is archived in an SQL database
// (sqlite3 or mysql), and -baseline label compares against the latest
// archived run with that label.
//
// With -gcs bucket[/prefix], charts are uploaded to Cloud Storage
// instead, using the key in -gcs-credentials or the application
// default credentials.
package main

import (
	"errors"
	"log"
	"os"

	"github.com/NNVMC/FeedForwardNeuralNetwork/internal/actfplot"
)

var exit = os.Exit // replaced during testing

func main() {
	log.SetPrefix("ffpropplot: ")
	log.SetFlags(0)
	if err := actfplot.Main(actfplot.FFProp, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if errors.Is(err, actfplot.ErrUsage) {
			exit(2)
			return
		}
		log.Print(err)
		exit(1)
	}
}
