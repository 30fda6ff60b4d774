// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package actfmt

// A Measurement is a measured value and its error.
type Measurement struct {
	Value, Err float64
}

// Metrics maps metric labels to measurements. Labels are kept in the
// order they were first set.
type Metrics struct {
	labels []string
	vals   map[string]Measurement
}

// NewMetrics returns an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{vals: make(map[string]Measurement)}
}

// Set sets the measurement for label. Setting an existing label
// replaces its measurement but keeps its position.
func (m *Metrics) Set(label string, v Measurement) {
	if _, ok := m.vals[label]; !ok {
		m.labels = append(m.labels, label)
	}
	m.vals[label] = v
}

// Get returns the measurement for label.
func (m *Metrics) Get(label string) (Measurement, bool) {
	v, ok := m.vals[label]
	return v, ok
}

// Labels returns the metric labels in first-seen order.
// The caller must not modify the returned slice.
func (m *Metrics) Labels() []string {
	return m.labels
}

// Len returns the number of metric labels.
func (m *Metrics) Len() int {
	return len(m.labels)
}

// A Function holds the measurements of one activation function.
type Function struct {
	Name string

	// Metrics holds the measurements of formats without
	// evaluation modes. It is nil for formats with modes.
	Metrics *Metrics

	modes  []string
	byMode map[string]*Metrics
}

// NewFunction returns an empty function for runs of format f.
func NewFunction(name string, f *Format) *Function {
	fn := &Function{Name: name}
	if f.HasModes() {
		fn.byMode = make(map[string]*Metrics)
	} else {
		fn.Metrics = NewMetrics()
	}
	return fn
}

// SetMode commits the metrics of an evaluation mode. Committing the
// same mode again replaces it in place.
func (fn *Function) SetMode(mode string, m *Metrics) {
	if _, ok := fn.byMode[mode]; !ok {
		fn.modes = append(fn.modes, mode)
	}
	fn.byMode[mode] = m
}

// Modes returns the committed evaluation modes in the order they were
// first committed.
func (fn *Function) Modes() []string {
	return fn.modes
}

// Mode returns the metrics of the given evaluation mode, or nil.
func (fn *Function) Mode(mode string) *Metrics {
	return fn.byMode[mode]
}

// Lookup returns the metrics for mode. The empty mode selects the
// metrics of formats without evaluation modes.
func (fn *Function) Lookup(mode string) *Metrics {
	if mode == "" {
		return fn.Metrics
	}
	return fn.Mode(mode)
}

// A Run is the parsed content of one benchmark log.
type Run struct {
	// Label identifies the run, typically the version that was
	// benchmarked.
	Label  string
	Format *Format

	funcs  []*Function
	byName map[string]int
}

// NewRun returns an empty run.
func NewRun(label string, f *Format) *Run {
	return &Run{Label: label, Format: f, byName: make(map[string]int)}
}

// Add adds fn to r. A function with the same name as an earlier one
// replaces it in place.
func (r *Run) Add(fn *Function) {
	if i, ok := r.byName[fn.Name]; ok {
		r.funcs[i] = fn
		return
	}
	r.byName[fn.Name] = len(r.funcs)
	r.funcs = append(r.funcs, fn)
}

// Functions returns the functions of r in log order.
func (r *Run) Functions() []*Function {
	return r.funcs
}

// Function returns the function with the given name, or nil.
func (r *Run) Function(name string) *Function {
	if i, ok := r.byName[name]; ok {
		return r.funcs[i]
	}
	return nil
}

// Names returns the function names of r in log order.
func (r *Run) Names() []string {
	names := make([]string, len(r.funcs))
	for i, fn := range r.funcs {
		names[i] = fn.Name
	}
	return names
}
