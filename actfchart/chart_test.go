// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package actfchart

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/NNVMC/FeedForwardNeuralNetwork/actfmt"
	"github.com/NNVMC/FeedForwardNeuralNetwork/actfstat"
)

func loadRuns(t *testing.T, f *actfmt.Format, names ...string) []*actfmt.Run {
	t.Helper()
	var runs []*actfmt.Run
	for _, name := range names {
		path := filepath.Join("..", "actfmt", "testdata", name)
		run, err := actfmt.ParseFile(path, actfmt.Label(path), f, nil)
		if err != nil {
			t.Fatal(err)
		}
		runs = append(runs, run)
	}
	return runs
}

func renderSVG(t *testing.T, fig *Figure) string {
	t.Helper()
	w, h := fig.Size()
	wt, err := fig.WriterTo(w, h, "svg")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func checkText(t *testing.T, svg string, texts ...string) {
	t.Helper()
	for _, s := range texts {
		if !strings.Contains(svg, ">"+s+"</text>") {
			t.Errorf("chart has no text %q", s)
		}
	}
}

func TestCompareFunctions(t *testing.T) {
	runs := loadRuns(t, actfmt.FFPropagate, "bench_v1.log", "bench_v2.log")
	fig, err := CompareFunctions(runs, DefaultOverlayOptions(actfmt.FFPropagate))
	if err != nil {
		t.Fatal(err)
	}
	if fig.Rows != 2 || fig.Cols != 1 {
		t.Fatalf("got %d×%d panels, want 2×1", fig.Rows, fig.Cols)
	}
	svg := renderSVG(t, fig)
	checkText(t, svg,
		"FFPropagate benchmark, comparing all activation functions",
		"v1 version", "v2 version",
		"f", "f+d1", "f+d1+d2",
		"LGS", "TANS",
	)
}

func TestCompareFunctionsModes(t *testing.T) {
	runs := loadRuns(t, actfmt.ActfDerivs, "derivs_v1.log")
	fig, err := CompareFunctions(runs, DefaultOverlayOptions(actfmt.ActfDerivs))
	if err != nil {
		t.Fatal(err)
	}
	if fig.Rows != 1 || fig.Cols != 2 {
		t.Fatalf("got %d×%d panels, want 1×2", fig.Rows, fig.Cols)
	}
	checkText(t, renderSVG(t, fig),
		"v1 version, individual function calls",
		"v1 version, fad function calls",
		"f+d1+d2+d3",
	)
}

func TestCompareFunctionsNoRuns(t *testing.T) {
	if _, err := CompareFunctions(nil, OverlayOptions{}); !errors.Is(err, ErrNoRuns) {
		t.Errorf("got %v, want ErrNoRuns", err)
	}
}

func TestCompareFunctionsLogNonPositive(t *testing.T) {
	run, err := actfmt.Parse(strings.NewReader(`
FFPropagate 1 2 3 4 5 6 7 8 A
f:    0    +- 1 us
f+d1: -1   +- 1 us
FFPropagate 1 2 3 4 5 6 7 8 B
f:    0.5  +- 2 us
FFPropagate 1 2 3 4 5 6 7 8 C
f:    NaN  +- 1 us
`), "log", "x", actfmt.FFPropagate, nil)
	if err != nil {
		t.Fatal(err)
	}
	fig, err := CompareFunctions([]*actfmt.Run{run}, OverlayOptions{LogY: true})
	if err != nil {
		t.Fatal(err)
	}
	// Must not panic on the log axis.
	renderSVG(t, fig)
}

func TestAxisLabels(t *testing.T) {
	a, err := actfmt.Parse(strings.NewReader(`
FFPropagate 1 2 3 4 5 6 7 8 A
f+d1: 1 +- 0 us
f+d2: 1 +- 0 us
FFPropagate 1 2 3 4 5 6 7 8 REF
f:    1 +- 0 us
f+d1: 1 +- 0 us
`), "log", "x", actfmt.FFPropagate, nil)
	if err != nil {
		t.Fatal(err)
	}
	runs := []*actfmt.Run{a}
	for _, test := range []struct {
		ref, want string
	}{
		{"REF", "f f+d1 f+d2"},
		{"missing", "f+d1 f+d2 f"},
		{"", "f+d1 f+d2 f"},
	} {
		if got := strings.Join(axisLabels(runs, []string{""}, test.ref), " "); got != test.want {
			t.Errorf("axisLabels(%q) = %s, want %s", test.ref, got, test.want)
		}
	}
}

func TestCompareRuns(t *testing.T) {
	runs := loadRuns(t, actfmt.FFPropagate, "bench_v1.log", "bench_v2.log")
	r, err := actfstat.Compare(runs, actfstat.Options{Functions: []string{"TANS", "LGS"}})
	if err != nil {
		t.Fatal(err)
	}
	fig, err := CompareRuns(r, DefaultBarOptions(r))
	if err != nil {
		t.Fatal(err)
	}
	if fig.Rows != 2 || fig.Cols != 1 {
		t.Fatalf("got %d×%d panels, want 2×1", fig.Rows, fig.Cols)
	}
	checkText(t, renderSVG(t, fig),
		"FFPropagate benchmark, comparing against v1 version",
		"TANS actf", "LGS actf",
		"Time per propagation [%]",
		"v2",
		// LGS f is 10/12.5 of the baseline.
		"80",
	)
}

func TestCompareRunsModes(t *testing.T) {
	runs := loadRuns(t, actfmt.ActfDerivs, "derivs_v1.log", "derivs_v2.log")
	r, err := actfstat.Compare(runs, actfstat.Options{IncludeBaseline: true})
	if err != nil {
		t.Fatal(err)
	}
	fig, err := CompareRuns(r, DefaultBarOptions(r))
	if err != nil {
		t.Fatal(err)
	}
	if fig.Rows != 2 || fig.Cols != 2 {
		t.Fatalf("got %d×%d panels, want 2×2", fig.Rows, fig.Cols)
	}
	checkText(t, renderSVG(t, fig),
		"lgs actf, individual function calls",
		"tans actf, fad function calls",
		"v1", "v2",
	)
}

func TestCompareRunsErrors(t *testing.T) {
	if _, err := CompareRuns(nil, BarOptions{}); !errors.Is(err, actfstat.ErrNotEnoughRuns) {
		t.Errorf("nil report: got %v, want ErrNotEnoughRuns", err)
	}
	r := &actfstat.Report{Format: actfmt.FFPropagate}
	if _, err := CompareRuns(r, BarOptions{}); !errors.Is(err, ErrNoComparisons) {
		t.Errorf("empty report: got %v, want ErrNoComparisons", err)
	}
}

func TestSave(t *testing.T) {
	runs := loadRuns(t, actfmt.FFPropagate, "bench_v1.log")
	fig, err := CompareFunctions(runs, DefaultOverlayOptions(actfmt.FFPropagate))
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	w, h := fig.Size()
	for _, format := range Formats {
		path := filepath.Join(dir, "overlay."+format)
		if err := fig.Save(w, h, path); err != nil {
			t.Fatal(err)
		}
		if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
			t.Errorf("%s: got %v, %v; want a non-empty file", path, fi, err)
		}
	}
	if err := fig.Save(w, h, filepath.Join(dir, "overlay.xyz")); err == nil {
		t.Errorf("saving in an unknown format succeeded")
	}
}
