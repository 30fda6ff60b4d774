// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package actfmt

import (
	"os"
	"path/filepath"
	"strings"
)

// A Files loads runs from a sequence of benchmark logs.
//
// Each run is labeled with Label(path), unless AllowLabels is set and
// the path has the form label=path.
type Files struct {
	// Paths is the list of log files to read.
	Paths []string

	// AllowLabels indicates that entries in Paths may be of the
	// form label=path.
	AllowLabels bool

	// Format is the format of all files.
	Format *Format

	Options Options

	// Warn, if non-nil, is called for every file that cannot be
	// opened. Such files are skipped.
	Warn func(format string, args ...interface{})
}

// Runs loads every file in f.Paths, in order. Files that cannot be
// opened are reported to f.Warn and skipped, so the result may hold
// fewer runs than paths, or none. A syntax error in any file stops
// loading and is returned.
func (f *Files) Runs() ([]*Run, error) {
	var runs []*Run
	for _, path := range f.Paths {
		label := ""
		if i := strings.Index(path, "="); f.AllowLabels && i >= 0 {
			label, path = path[:i], path[i+1:]
		} else {
			label = Label(path)
		}

		file, err := os.Open(path)
		if err != nil {
			if f.Warn != nil {
				f.Warn("couldn't load benchmark file %s: %v", path, err)
			}
			continue
		}
		run, err := Parse(file, path, label, f.Format, &f.Options)
		file.Close()
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// Label derives a run label from a log file name: the part of the
// base name between the first "_" and the following ".". For example,
// the label of "logs/bench_v2.log" is "v2". Names without "_" yield
// the base name without its extension.
func Label(path string) string {
	base := filepath.Base(path)
	i := strings.Index(base, "_")
	if i < 0 {
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	label := base[i+1:]
	if j := strings.Index(label, "."); j >= 0 {
		label = label[:j]
	}
	return label
}
