// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package actfmt

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestFiles(t *testing.T) {
	var warnings []string
	f := &Files{
		Paths:       []string{"testdata/bench_v1.log", "testdata/missing_v9.log", "new=testdata/bench_v2.log"},
		AllowLabels: true,
		Format:      FFPropagate,
		Warn: func(format string, args ...interface{}) {
			warnings = append(warnings, fmt.Sprintf(format, args...))
		},
	}
	runs, err := f.Runs()
	if err != nil {
		t.Fatal(err)
	}
	var labels []string
	for _, run := range runs {
		labels = append(labels, run.Label)
	}
	if got, want := strings.Join(labels, " "), "v1 new"; got != want {
		t.Errorf("got labels %q, want %q", got, want)
	}
	if len(warnings) != 1 || !strings.HasPrefix(warnings[0], "couldn't load benchmark file testdata/missing_v9.log: ") {
		t.Errorf("got warnings %q", warnings)
	}

	lgs := runs[1].Function("LGS")
	if lgs == nil {
		t.Fatalf("run %s has no LGS function", runs[1].Label)
	}
	if m, _ := lgs.Metrics.Get("f+d1+d2"); m != (Measurement{15.2, 0.8}) {
		t.Errorf("v2 LGS f+d1+d2 = %v, want {15.2 0.8}", m)
	}
}

func TestFilesNoLabels(t *testing.T) {
	f := &Files{
		Paths:  []string{"x=testdata/bench_v1.log"},
		Format: FFPropagate,
	}
	runs, err := f.Runs()
	if err != nil {
		t.Fatal(err)
	}
	// Without AllowLabels the whole argument is a path.
	if len(runs) != 0 {
		t.Errorf("got %d runs, want 0", len(runs))
	}
}

func TestFilesSyntaxError(t *testing.T) {
	f := &Files{
		Paths:  []string{"testdata/bench_v1.log", "testdata/bad_float.log"},
		Format: FFPropagate,
	}
	_, err := f.Runs()
	var serr *SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("got error %v, want *SyntaxError", err)
	}
	if want := "testdata/bad_float.log:2: parsing value: invalid syntax"; err.Error() != want {
		t.Errorf("got error %q, want %q", err, want)
	}
}

func TestFilesDerivs(t *testing.T) {
	f := &Files{
		Paths:   []string{"testdata/derivs_v1.log", "testdata/derivs_v2.log"},
		Format:  ActfDerivs,
		Options: Options{Commit: CommitBoundary},
	}
	runs, err := f.Runs()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	for _, run := range runs {
		for _, fn := range run.Functions() {
			if got := strings.Join(fn.Modes(), ","); got != "individual,fad" {
				t.Errorf("%s/%s: got modes %s, want individual,fad", run.Label, fn.Name, got)
			}
		}
	}
}

func TestLabel(t *testing.T) {
	for _, test := range []struct {
		path, want string
	}{
		{"bench_v1.log", "v1"},
		{"logs/bench_v2.log", "v2"},
		{"/tmp/derivs_after_fix.txt.gz", "after_fix"},
		{"bench.log", "bench"},
		{"run_", ""},
		{"plain", "plain"},
	} {
		if got := Label(test.path); got != test.want {
			t.Errorf("Label(%q) = %q, want %q", test.path, got, test.want)
		}
	}
}
