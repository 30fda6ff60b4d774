// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package actfstat

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/NNVMC/FeedForwardNeuralNetwork/internal/texttab"
)

func (p Percent) String() string {
	if !p.Defined() {
		return "-"
	}
	return fmt.Sprintf("%.2f ± %.2f", p.Value, p.Err)
}

func formatGeoMean(gm float64) string {
	if gm != gm {
		return "-"
	}
	return fmt.Sprintf("%.2f", gm)
}

func formatFloat(v float64) string {
	if v != v {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatText writes r as one text table per comparison.
func FormatText(w io.Writer, r *Report) error {
	if _, err := fmt.Fprintf(w, "%s: %% of baseline %s\n", r.Format.Name, r.Baseline); err != nil {
		return err
	}
	for _, c := range r.Comparisons {
		if _, err := fmt.Fprintf(w, "\n%s\n", c.Title()); err != nil {
			return err
		}
		var tab texttab.Table
		head := append([]string{"run"}, c.Labels...)
		head = append(head, "geomean")
		for i := 1; i < len(head); i++ {
			tab.SetAlign(i, texttab.Right)
		}
		tab.Row(head...).Rule()
		for _, row := range c.Rows {
			cells := []string{row.Run}
			for _, v := range row.Values {
				cells = append(cells, v.String())
			}
			cells = append(cells, formatGeoMean(row.GeoMean))
			tab.Row(cells...)
		}
		if err := tab.Format(w); err != nil {
			return err
		}
	}
	return nil
}

// FormatCSV writes r as CSV with one record per compared value. The
// geometric mean of each row is written with the metric "geomean".
// Undefined values are empty.
func FormatCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"function", "mode", "baseline", "run", "metric", "percent", "error"})
	for _, c := range r.Comparisons {
		for _, row := range c.Rows {
			for i, v := range row.Values {
				cw.Write([]string{c.Function, c.Mode, r.Baseline, row.Run, c.Labels[i], formatFloat(v.Value), formatFloat(v.Err)})
			}
			cw.Write([]string{c.Function, c.Mode, r.Baseline, row.Run, "geomean", formatFloat(row.GeoMean), ""})
		}
	}
	cw.Flush()
	return cw.Error()
}
