// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package actfmt

import "strings"

// A Format describes the line grammar of one benchmark log family.
//
// Log lines are split on white space into fields, numbered from 0.
// Lines with fewer than MinFields fields are ignored. The remaining
// lines are classified, in this order, as
//
//	header  fields[HeaderField] == Header; the section name is fields[NameField]
//	mode    len(fields) > ModeMarkerField and fields[ModeMarkerField] == ModeMarker;
//	        the mode name is fields[ModeField] (only if ModeMarker != "")
//	metric  fields[0] starts with one of MetricPrefixes; the metric label is
//	        fields[0] without its last character, the value is
//	        fields[ValueField] and its error is fields[ErrField]
//
// and anything else is ignored.
type Format struct {
	// Name identifies the format in stored runs and messages.
	Name string

	// Unit is the unit of measurement values, used for axis labels.
	Unit string

	MinFields int

	Header      string
	HeaderField int
	NameField   int

	// ModeMarker is empty for formats without evaluation modes.
	ModeMarker      string
	ModeMarkerField int
	ModeField       int

	MetricPrefixes []string
	ValueField     int
	ErrField       int

	// Sentinel is the field 0 of the metric line that closes the
	// SentinelMode section of a function.
	Sentinel     string
	SentinelMode string

	// Modes lists the evaluation modes charts and comparisons
	// iterate over, in display order. Formats without modes use
	// the single mode "".
	Modes []string
}

// Evaluation modes of the derivatives benchmark.
const (
	ModeIndividual = "individual"
	ModeFAD        = "fad"
)

// FFPropagate is the format of the forward-propagation benchmark:
//
//	FFPropagate f1 f2 f3 f4 f5 f6 f7 f8 NAME ...
//	f:    VALUE ± ERROR ...
//	f+d1: VALUE ± ERROR ...
var FFPropagate = &Format{
	Name:           "ffprop",
	Unit:           "μs",
	MinFields:      5,
	Header:         "FFPropagate",
	HeaderField:    0,
	NameField:      9,
	MetricPrefixes: []string{"f:", "f+"},
	ValueField:     1,
	ErrField:       3,
	Modes:          []string{""},
}

// ActfDerivs is the format of the activation function derivatives
// benchmark:
//
//	ACTF f1 f2 f3 f4 f5 f6 f7 f8 f9 NAME ...
//	f0 f1 f2 f3 MODE function ...
//	f:          VALUE ± ERROR ...
//	f+d1+d2+d3: VALUE ± ERROR ...
var ActfDerivs = &Format{
	Name:            "derivs",
	Unit:            "ns",
	MinFields:       5,
	Header:          "ACTF",
	HeaderField:     0,
	NameField:       10,
	ModeMarker:      "function",
	ModeMarkerField: 5,
	ModeField:       4,
	MetricPrefixes:  []string{"f:", "f+"},
	ValueField:      1,
	ErrField:        3,
	Sentinel:        "f+d1+d2+d3:",
	SentinelMode:    ModeFAD,
	Modes:           []string{ModeIndividual, ModeFAD},
}

// HasModes reports whether runs of this format group metrics by
// evaluation mode.
func (f *Format) HasModes() bool {
	return f.ModeMarker != ""
}

// LookupFormat returns the built-in format with the given name, or nil.
func LookupFormat(name string) *Format {
	for _, f := range []*Format{FFPropagate, ActfDerivs} {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func (f *Format) isMetric(field string) bool {
	for _, p := range f.MetricPrefixes {
		if strings.HasPrefix(field, p) {
			return true
		}
	}
	return false
}
