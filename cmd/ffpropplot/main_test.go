// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"
)

// runMain runs main with args and returns the exit code, or 0 if
// main returned normally.
func runMain(t *testing.T, args ...string) (code int) {
	t.Helper()
	oldArgs, oldExit := os.Args, exit
	defer func() { os.Args, exit = oldArgs, oldExit }()

	os.Args = append([]string{"ffpropplot"}, args...)
	exit = func(c int) { code = c }
	main()
	return code
}

func TestExitCodes(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bench_bad.log")
	if err := os.WriteFile(bad, []byte("nothing to see here\n"), 0666); err != nil {
		t.Fatal(err)
	}

	for _, test := range []struct {
		name string
		args []string
		want int
	}{
		{"usage", nil, 2},
		{"bad flag", []string{"-format=gif", "x.log"}, 2},
		{"nothing loaded", []string{"-o", dir, filepath.Join(dir, "missing_v1.log")}, 0},
		{"no sections", []string{"-o", dir, bad}, 1},
	} {
		if got := runMain(t, test.args...); got != test.want {
			t.Errorf("%s: exit code %d, want %d", test.name, got, test.want)
		}
	}
}
