// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package actfstat

import (
	"io"

	"github.com/google/safehtml/template"
)

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Format}}: % of baseline {{.Baseline}}</title>
<style>
table { border-collapse: collapse; margin-bottom: 1em; }
th, td { padding: 0 0.5em; }
td.num { text-align: right; }
</style>
</head>
<body>
<h1>{{.Format}}: % of baseline {{.Baseline}}</h1>
{{range .Comparisons}}
<h2>{{.Title}}</h2>
<table>
<tr><th>run</th>{{range .Labels}}<th>{{.}}</th>{{end}}<th>geomean</th></tr>
{{range .Rows}}<tr><td>{{.Run}}</td>{{range .Cells}}<td class="num">{{.}}</td>{{end}}<td class="num">{{.GeoMean}}</td></tr>
{{end}}</table>
{{end}}{{with .Warnings}}<ul>
{{range .}}<li>{{.}}</li>
{{end}}</ul>
{{end}}</body>
</html>
`))

type htmlReport struct {
	Format, Baseline string
	Comparisons      []htmlComparison
	Warnings         []string
}

type htmlComparison struct {
	Title  string
	Labels []string
	Rows   []htmlRow
}

type htmlRow struct {
	Run     string
	Cells   []string
	GeoMean string
}

// FormatHTML writes r as an HTML page with one table per comparison.
func FormatHTML(w io.Writer, r *Report) error {
	data := htmlReport{Format: r.Format.Name, Baseline: r.Baseline, Warnings: r.Warnings}
	for _, c := range r.Comparisons {
		hc := htmlComparison{Title: c.Title(), Labels: c.Labels}
		for _, row := range c.Rows {
			hr := htmlRow{Run: row.Run, GeoMean: formatGeoMean(row.GeoMean)}
			for _, v := range row.Values {
				hr.Cells = append(hr.Cells, v.String())
			}
			hc.Rows = append(hc.Rows, hr)
		}
		data.Comparisons = append(data.Comparisons, hc)
	}
	return reportTemplate.Execute(w, data)
}
