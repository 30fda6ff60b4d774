// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package actfmt

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// A CommitPolicy decides when the metrics collected for an evaluation
// mode are committed to their function.
type CommitPolicy int

const (
	// CommitLegacy commits the mode being left when a "fad" mode
	// starts, and commits the "fad" mode when its sentinel metric
	// line is read. Committing publishes the live metrics, so later
	// lines of the same mode still land in them. Modes that are
	// never committed this way are dropped.
	CommitLegacy CommitPolicy = iota

	// CommitBoundary commits the open mode at every mode switch,
	// section header and at the end of the log. The sentinel line
	// is an ordinary metric.
	CommitBoundary
)

func (p CommitPolicy) String() string {
	switch p {
	case CommitLegacy:
		return "legacy"
	case CommitBoundary:
		return "boundary"
	}
	return fmt.Sprintf("CommitPolicy(%d)", int(p))
}

// ParseCommitPolicy parses the String form of a CommitPolicy.
func ParseCommitPolicy(s string) (CommitPolicy, error) {
	switch s {
	case "legacy":
		return CommitLegacy, nil
	case "boundary":
		return CommitBoundary, nil
	}
	return 0, fmt.Errorf("unknown commit policy %q (want legacy or boundary)", s)
}

// Options configures parsing. The zero value is ready to use.
type Options struct {
	Commit CommitPolicy
}

// ErrNoSections is returned for logs without any section header.
var ErrNoSections = errors.New("no benchmark sections")

// An accumulator folds the records of one log into a Run.
type accumulator interface {
	add(rec Record) error
	finalize() (*Run, error)
}

func newAccumulator(label string, f *Format, opts *Options) accumulator {
	if f.HasModes() {
		return &modeAccumulator{run: NewRun(label, f), policy: opts.Commit}
	}
	return &flatAccumulator{run: NewRun(label, f)}
}

// flatAccumulator builds runs of formats without evaluation modes.
type flatAccumulator struct {
	run *Run
	cur *Function
}

func (a *flatAccumulator) add(rec Record) error {
	switch rec := rec.(type) {
	case *Section:
		if a.cur != nil {
			a.run.Add(a.cur)
		}
		a.cur = NewFunction(rec.Name, a.run.Format)
	case *Metric:
		if a.cur == nil {
			return posError(rec, "metric %s before the first %s header", rec.Field, a.run.Format.Header)
		}
		a.cur.Metrics.Set(rec.Label, rec.Measurement)
	}
	return nil
}

func (a *flatAccumulator) finalize() (*Run, error) {
	if a.cur == nil {
		return nil, ErrNoSections
	}
	a.run.Add(a.cur)
	return a.run, nil
}

// modeAccumulator builds runs of formats with evaluation modes.
type modeAccumulator struct {
	run    *Run
	policy CommitPolicy

	fn   *Function
	mode string
	acc  *Metrics // nil until the first mode of fn starts
}

func (a *modeAccumulator) commit() {
	if a.acc != nil {
		a.fn.SetMode(a.mode, a.acc)
	}
}

func (a *modeAccumulator) add(rec Record) error {
	f := a.run.Format
	switch rec := rec.(type) {
	case *Section:
		if a.fn != nil {
			if a.policy == CommitBoundary {
				a.commit()
			}
			a.run.Add(a.fn)
		}
		a.fn = NewFunction(rec.Name, f)
		a.mode, a.acc = "", nil

	case *ModeSwitch:
		if a.fn == nil {
			return posError(rec, "mode %s before the first %s header", rec.Mode, f.Header)
		}
		switch a.policy {
		case CommitLegacy:
			if rec.Mode == f.SentinelMode {
				a.commit()
			}
		case CommitBoundary:
			a.commit()
		}
		a.mode, a.acc = rec.Mode, NewMetrics()

	case *Metric:
		if a.fn == nil {
			return posError(rec, "metric %s before the first %s header", rec.Field, f.Header)
		}
		if a.acc == nil {
			return posError(rec, "metric %s of %s before its first mode", rec.Field, a.fn.Name)
		}
		a.acc.Set(rec.Label, rec.Measurement)
		if a.policy == CommitLegacy && rec.Field == f.Sentinel && a.mode == f.SentinelMode {
			a.commit()
		}
	}
	return nil
}

func (a *modeAccumulator) finalize() (*Run, error) {
	if a.fn == nil {
		return nil, ErrNoSections
	}
	if a.policy == CommitBoundary {
		a.commit()
	}
	a.run.Add(a.fn)
	return a.run, nil
}

func posError(rec Record, format string, args ...interface{}) *SyntaxError {
	fileName, line := rec.Pos()
	return &SyntaxError{fileName, line, fmt.Sprintf(format, args...)}
}

// Parse reads a complete benchmark log in format f from r and returns
// the resulting run, labeled label. fileName is used in error
// messages. opts may be nil.
//
// The first syntax error stops parsing and is returned as a
// *SyntaxError.
func Parse(r io.Reader, fileName, label string, f *Format, opts *Options) (*Run, error) {
	if opts == nil {
		opts = &Options{}
	}
	rd := NewReader(r, fileName, f)
	acc := newAccumulator(label, f, opts)
	for rd.Scan() {
		rec := rd.Result()
		if err, ok := rec.(*SyntaxError); ok {
			return nil, err
		}
		if err := acc.add(rec); err != nil {
			return nil, err
		}
	}
	if err := rd.Err(); err != nil {
		return nil, err
	}
	run, err := acc.finalize()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	return run, nil
}

// ParseFile is like Parse, but reads the log from the named file.
func ParseFile(path, label string, f *Format, opts *Options) (*Run, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(file, path, label, f, opts)
}
