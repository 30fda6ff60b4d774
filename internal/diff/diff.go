// Copyright 2017 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff compares expected and actual test output.
package diff

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Diff returns a human-readable description of the differences between
// want and got, or "" if they are equal. If the "diff" command is
// available, the result is a unified diff labeled with the given
// names. Otherwise it lists the first line that differs.
func Diff(wantName, want, gotName, got string) string {
	if want == got {
		return ""
	}
	if _, err := exec.LookPath("diff"); err != nil {
		return firstDifference(wantName, want, gotName, got)
	}

	wantFile, err := writeTemp(want)
	if err != nil {
		return err.Error()
	}
	defer os.Remove(wantFile)
	gotFile, err := writeTemp(got)
	if err != nil {
		return err.Error()
	}
	defer os.Remove(gotFile)

	cmd := "diff"
	if runtime.GOOS == "plan9" {
		cmd = "/bin/ape/diff"
	}
	data, err := exec.Command(cmd, "-u", "--label", wantName, "--label", gotName, wantFile, gotFile).CombinedOutput()
	if len(data) > 0 {
		// diff exits with a non-zero status when the files don't match.
		err = nil
	}
	if err != nil {
		data = append(data, err.Error()...)
	}
	return string(data)
}

func writeTemp(s string) (string, error) {
	f, err := os.CreateTemp("", "actfplot_test")
	if err != nil {
		return "", err
	}
	_, err = f.WriteString(s)
	if err1 := f.Close(); err == nil {
		err = err1
	}
	if err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func firstDifference(wantName, want, gotName, got string) string {
	wl := strings.Split(want, "\n")
	gl := strings.Split(got, "\n")
	for i := 0; i < len(wl) || i < len(gl); i++ {
		var w, g string
		if i < len(wl) {
			w = wl[i]
		}
		if i < len(gl) {
			g = gl[i]
		}
		if w != g {
			return fmt.Sprintf("line %d:\n%s: %q\n%s: %q", i+1, wantName, w, gotName, g)
		}
	}
	return fmt.Sprintf("%s and %s differ in line endings", wantName, gotName)
}
