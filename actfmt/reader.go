// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package actfmt reads the text logs written by the activation
// function benchmarks and builds a Run from each log.
//
// Two log families are supported, described by the Formats
// FFPropagate and ActfDerivs. A log is a sequence of sections, one per
// activation function, each introduced by a header line and followed
// by metric lines of the form
//
//	f+d1: 12.5 ± 0.3 ...
//
// In the derivatives log, each section is further divided into
// evaluation modes ("individual" and "fad").
package actfmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// A Reader reads the records of a benchmark log.
//
// Its API is modeled on bufio.Scanner. Unlike benchmark Results in
// other formats, records are never reused, so callers may retain them.
type Reader struct {
	s      *bufio.Scanner
	format *Format
	err    error

	fileName string
	line     int

	rec Record
}

// A Record is a single record read from a benchmark log. It is a
// *Section, *ModeSwitch, *Metric, or *SyntaxError.
type Record interface {
	// Pos returns the position of this record as a file name and a
	// 1-based line number within that file.
	Pos() (fileName string, line int)
}

// A Section is a header line that starts the section of a new
// activation function.
type Section struct {
	Name string

	fileName string
	line     int
}

// A ModeSwitch is a line that starts a new evaluation mode within the
// current section.
type ModeSwitch struct {
	Mode string

	fileName string
	line     int
}

// A Metric is a single measurement line.
type Metric struct {
	// Field is the first field of the line, for example "f+d1:".
	Field string
	// Label is Field without its trailing separator.
	Label string

	Measurement

	fileName string
	line     int
}

// A SyntaxError represents a syntax error on a particular line of a
// benchmark log.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (s *Section) Pos() (string, int)    { return s.fileName, s.line }
func (m *ModeSwitch) Pos() (string, int) { return m.fileName, m.line }
func (m *Metric) Pos() (string, int)     { return m.fileName, m.line }

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

var _ Record = (*Section)(nil)
var _ Record = (*ModeSwitch)(nil)
var _ Record = (*Metric)(nil)
var _ Record = (*SyntaxError)(nil)

var noResult = &SyntaxError{"", 0, "Reader.Scan has not been called"}

// NewReader constructs a reader for logs in format f read from r.
// fileName is used in positions and error messages; it is purely
// diagnostic.
func NewReader(r io.Reader, fileName string, f *Format) *Reader {
	if fileName == "" {
		fileName = "<unknown>"
	}
	return &Reader{s: bufio.NewScanner(r), format: f, fileName: fileName}
}

func (r *Reader) newSyntaxError(format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{r.fileName, r.line, fmt.Sprintf(format, args...)}
}

// Scan advances the reader to the next record and reports whether a
// record was read. The caller should use the Result method to get the
// record. If Scan reaches EOF or an I/O error occurs, it returns false,
// in which case the caller should use the Err method to check for
// errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	for r.s.Scan() {
		r.line++
		if rec := r.parseLine(r.s.Text()); rec != nil {
			r.rec = rec
			return true
		}
	}
	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line, err)
	}
	return false
}

// parseLine classifies a single line. It returns nil for lines that
// carry no record.
func (r *Reader) parseLine(line string) Record {
	f := r.format
	fields := strings.Fields(line)
	if len(fields) < f.MinFields {
		return nil
	}

	if fields[f.HeaderField] == f.Header {
		if len(fields) <= f.NameField {
			return r.newSyntaxError("%s header has %d fields, want at least %d", f.Header, len(fields), f.NameField+1)
		}
		return &Section{Name: fields[f.NameField], fileName: r.fileName, line: r.line}
	}

	if f.HasModes() && len(fields) > f.ModeMarkerField && fields[f.ModeMarkerField] == f.ModeMarker {
		return &ModeSwitch{Mode: fields[f.ModeField], fileName: r.fileName, line: r.line}
	}

	if f.isMetric(fields[0]) {
		if len(fields) <= f.ErrField || len(fields) <= f.ValueField {
			return r.newSyntaxError("metric line has %d fields, want at least %d", len(fields), max(f.ErrField, f.ValueField)+1)
		}
		val, err := strconv.ParseFloat(fields[f.ValueField], 64)
		if err != nil {
			return r.newSyntaxError("parsing value: %v", err.(*strconv.NumError).Err)
		}
		verr, err := strconv.ParseFloat(fields[f.ErrField], 64)
		if err != nil {
			return r.newSyntaxError("parsing error: %v", err.(*strconv.NumError).Err)
		}
		label := fields[0][:len(fields[0])-1]
		return &Metric{
			Field:       fields[0],
			Label:       label,
			Measurement: Measurement{Value: val, Err: verr},
			fileName:    r.fileName,
			line:        r.line,
		}
	}

	return nil
}

// Result returns the record that was just read by Scan. This is a
// *Section, *ModeSwitch, *Metric, or a *SyntaxError indicating a
// parse error. Parse errors are non-fatal, so the caller can continue
// to call Scan.
func (r *Reader) Result() Record {
	if r.rec == nil {
		// This should only happen if Scan has never been called.
		return noResult
	}
	return r.rec
}

// Err returns the first non-EOF I/O error that was encountered by the
// Reader.
func (r *Reader) Err() error {
	return r.err
}
