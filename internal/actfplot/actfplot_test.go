// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package actfplot

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/NNVMC/FeedForwardNeuralNetwork/actfmt"
	"github.com/NNVMC/FeedForwardNeuralNetwork/actfstat"
	"github.com/NNVMC/FeedForwardNeuralNetwork/internal/diff"
	"github.com/NNVMC/FeedForwardNeuralNetwork/internal/publish"
)

func TestFFProp(t *testing.T) {
	golden(t, FFProp, "ffpropCSV", "-table", "csv", "bench_v1.log", "bench_v2.log")
	golden(t, FFProp, "ffpropOne", "bench_v1.log")
	golden(t, FFProp, "ffpropNone", "missing_v3.log")
}

func TestDerivs(t *testing.T) {
	golden(t, Derivs, "derivsText", "-format", "svg", "-commit", "boundary", "-actf", "lgs", "-table", "text", "derivs_v1.log", "derivs_v2.log")
}

// golden runs the command of v in testdata with charts written to a
// temporary directory, and compares its output to testdata/name.stdout.
// The directory appears as $OUT in the golden file.
func golden(t *testing.T, v *Variant, name string, args ...string) {
	t.Helper()
	out := t.TempDir()
	if err := os.Chdir("testdata"); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir("..")

	var got, gotErr bytes.Buffer
	t.Logf("%s %s", v.Name, strings.Join(args, " "))
	args = append([]string{"-o", out}, args...)
	if err := Main(v, &got, &gotErr, args); err != nil {
		t.Fatalf("%s: unexpected error: %s", name, err)
	}
	if gotErr.Len() != 0 {
		t.Errorf("%s: unexpected stderr:\n%s", name, gotErr.String())
	}

	want, err := os.ReadFile(name + ".stdout")
	if err != nil {
		t.Fatal(err)
	}
	gotOut := strings.ReplaceAll(got.String(), out, "$OUT")
	if d := diff.Diff(name+".stdout", string(want), "got", gotOut); d != "" {
		t.Errorf("%s: output differs:\n%s", name, d)
	}

	// Every chart that was reported must exist.
	for _, line := range strings.Split(got.String(), "\n") {
		if _, file, ok := strings.Cut(line, ": wrote "); ok {
			if st, err := os.Stat(file); err != nil || st.Size() == 0 {
				t.Errorf("%s: chart %s missing or empty", name, file)
			}
		}
	}
}

func TestUsage(t *testing.T) {
	for _, test := range []struct {
		name string
		v    *Variant
		args []string
		want string
	}{
		{"no files", FFProp, nil, "usage: ffpropplot [flags] file..."},
		{"bad format", FFProp, []string{"-format", "gif", "a.log"}, `unknown chart format "gif"`},
		{"bad table", Derivs, []string{"-table", "xml", "a.log"}, `unknown table format "xml"`},
		{"bad commit", Derivs, []string{"-commit", "eager", "a.log"}, `unknown commit policy "eager"`},
		{"no commit flag", FFProp, []string{"-commit", "boundary", "a.log"}, "flag provided but not defined: -commit"},
		{"baseline without db", FFProp, []string{"-baseline", "v1", "a.log"}, "-baseline requires -db"},
		{"bad db", FFProp, []string{"-db", "runs.db", "a.log"}, "-db must have the form driver:dsn"},
	} {
		t.Run(test.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := Main(test.v, &stdout, &stderr, test.args)
			if !errors.Is(err, ErrUsage) {
				t.Fatalf("got error %v, want ErrUsage", err)
			}
			if !strings.Contains(stderr.String(), test.want) {
				t.Errorf("stderr does not contain %q:\n%s", test.want, stderr.String())
			}
			if stdout.Len() != 0 {
				t.Errorf("unexpected stdout:\n%s", stdout.String())
			}
		})
	}
}

func TestSyntaxError(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bench_bad.log")
	if err := os.WriteFile(bad, []byte("FFPropagate benchmark, 1 hidden layer of 5 units, actf: LGS\nf: x +- 1 us\n"), 0666); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	err := Main(FFProp, &stdout, &stderr, []string{"-o", dir, bad})
	var serr *actfmt.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("got error %v, want *actfmt.SyntaxError", err)
	}
	if matches, _ := filepath.Glob(filepath.Join(dir, "*.png")); len(matches) != 0 {
		t.Errorf("charts written despite syntax error: %v", matches)
	}
}

func TestArchive(t *testing.T) {
	dir := t.TempDir()
	dsn := "sqlite3:" + filepath.Join(dir, "runs.db")

	var stdout, stderr bytes.Buffer
	if err := Main(FFProp, &stdout, &stderr, []string{"-o", dir, "-db", dsn, "testdata/bench_v1.log"}); err != nil {
		t.Fatal(err)
	}
	if want := "ffpropplot: saved run v1 (id 1)\n"; !strings.Contains(stdout.String(), want) {
		t.Errorf("first run: output does not contain %q:\n%s", want, stdout.String())
	}

	// Compare a new run against the archived one.
	stdout.Reset()
	if err := Main(FFProp, &stdout, &stderr, []string{"-o", dir, "-db", dsn, "-baseline", "v1", "-actf", "LGS", "-table", "csv", "testdata/bench_v2.log"}); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"ffpropplot: loaded baseline v1\n",
		"ffpropplot: saved run v2 (id 2)\n",
		"ffpropplot: wrote " + filepath.Join(dir, "ffprop_runs.png") + "\n",
		"LGS,,v1,v2,f,80.00,1.60\n",
	} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("second run: output does not contain %q:\n%s", want, stdout.String())
		}
	}
	if strings.Contains(stdout.String(), "saved run v1") {
		t.Errorf("baseline was archived again:\n%s", stdout.String())
	}

	// Unknown baselines are fatal.
	stdout.Reset()
	err := Main(FFProp, &stdout, &stderr, []string{"-o", dir, "-db", dsn, "-baseline", "v9", "testdata/bench_v2.log"})
	if err == nil || !strings.Contains(err.Error(), "run not found") {
		t.Errorf("got error %v, want run not found", err)
	}
}

func TestRender(t *testing.T) {
	cfg := &Config{Functions: []string{"TANS"}}
	one, err := Load(FFProp, cfg, []string{"testdata/bench_v1.log"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	c, err := Render(FFProp, cfg, one)
	if err != nil {
		t.Fatal(err)
	}
	if c.Functions == nil {
		t.Errorf("no overlay chart for one run")
	}
	if c.Runs != nil || c.Report != nil {
		t.Errorf("got comparison for one run")
	}
	if len(c.Messages) != 1 || !strings.Contains(c.Messages[0], "not enough benchmarks") {
		t.Errorf("got messages %q", c.Messages)
	}

	two, err := Load(FFProp, cfg, []string{"testdata/bench_v1.log", "testdata/bench_v2.log"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	c, err = Render(FFProp, cfg, two)
	if err != nil {
		t.Fatal(err)
	}
	if c.Runs == nil || c.Report == nil {
		t.Fatalf("no comparison for two runs")
	}
	if got := c.Report.Comparisons[0].Rows[0].Values[0]; got != (actfstat.Percent{Value: 80, Err: 2}) {
		t.Errorf("TANS f = %v, want 80 ± 2", got)
	}

	// Show writes nothing but the figures that exist.
	dir := t.TempDir()
	c.Runs = nil
	locs, err := Show(context.Background(), publish.Dir(dir), c, "x", "svg")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "x_functions.svg"); len(locs) != 1 || locs[0] != want {
		t.Errorf("Show wrote %q, want [%s]", locs, want)
	}
}
