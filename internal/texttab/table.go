// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out fixed-width text tables.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Rows are added with Row and Rule. Many methods return the Table so
// callers can chain them.
type Table struct {
	rows  []row
	align []Align
	cols  int
}

type row struct {
	cells []string
	rule  bool
}

// An Align is the alignment of the cells of one column.
type Align int

const (
	Left Align = iota
	Right
	Center
)

func (a Align) pad(s string, w int) string {
	n := w - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	switch a {
	case Right:
		return strings.Repeat(" ", n) + s
	case Center:
		l := n / 2
		return strings.Repeat(" ", l) + s + strings.Repeat(" ", n-l)
	}
	return s + strings.Repeat(" ", n)
}

// SetAlign sets the alignment of column col. Columns are numbered
// starting at 0 and are left-aligned by default.
func (t *Table) SetAlign(col int, a Align) *Table {
	for len(t.align) <= col {
		t.align = append(t.align, Left)
	}
	t.align[col] = a
	return t
}

// Row adds a row of cells to t.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, row{cells: cells})
	if len(cells) > t.cols {
		t.cols = len(cells)
	}
	return t
}

// Rule adds a horizontal rule spanning the table width.
func (t *Table) Rule() *Table {
	t.rows = append(t.rows, row{rule: true})
	return t
}

// Len returns the number of rows in t, including rules.
func (t *Table) Len() int {
	return len(t.rows)
}

// Format lays out table t and writes it to w. Columns are separated
// by two spaces and trailing spaces are trimmed.
func (t *Table) Format(w io.Writer) error {
	const sep = "  "

	ws := make([]int, t.cols)
	for _, r := range t.rows {
		for i, c := range r.cells {
			ws[i] = max(ws[i], utf8.RuneCountInString(c))
		}
	}
	total := 0
	for i, cw := range ws {
		if i > 0 {
			total += len(sep)
		}
		total += cw
	}

	var line strings.Builder
	for _, r := range t.rows {
		line.Reset()
		if r.rule {
			line.WriteString(strings.Repeat("-", total))
		}
		for i, c := range r.cells {
			if i > 0 {
				line.WriteString(sep)
			}
			a := Left
			if i < len(t.align) {
				a = t.align[i]
			}
			line.WriteString(a.pad(c, ws[i]))
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}
