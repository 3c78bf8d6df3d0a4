/*
Copyright © 2026 the fluxrs authors.
This file is part of fluxrs.

fluxrs is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

fluxrs is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with fluxrs.  If not, see <http://www.gnu.org/licenses/>.
*/

package fluxrs

import (
	"fmt"
	"html/template"
	"io"
	"sort"
)

// ReportRow is one cycle's entry in a day's HTML summary table.
type ReportRow struct {
	ChamberID   string
	StartRFC    string
	LagSeconds  float64
	R           float64
	IsValid     bool
	HasDiag     bool
	FluxUmolM2S float64
}

// rowStyle mirrors the original report's color coding: green for a clean
// valid cycle, yellow for a low-r cycle, salmon for one with diagnostic
// errors.
func (r ReportRow) rowStyle() string {
	if r.HasDiag {
		return "salmon"
	}
	if r.R < 0.99 {
		return "yellow"
	}
	if r.IsValid {
		return "greenyellow"
	}
	return "salmon"
}

var reportTemplate = template.Must(template.New("day").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>fluxrs cycles for {{.Date}}</title>
  <style>
    body { font-family: Arial, sans-serif; background-color: #121212; color: #e0e0e0; padding: 20px; }
    table { border-collapse: collapse; width: 60%; background-color: #1f1f1f; }
    th, td { border: 1px solid #333333; text-align: center; padding: 8px; }
    th { background-color: #2c2c2c; color: #f5f5f5; }
  </style>
</head>
<body>
  <h1>Cycles for {{.Date}}</h1>
  <table>
    <tr><th>Chamber</th><th>Start</th><th>Lag (s)</th><th>r</th><th>valid</th><th>flux (umol/m2/s)</th></tr>
{{range .Rows}}    <tr style="color:{{.Style}}"><td>{{.ChamberID}}</td><td>{{.StartRFC}}</td><td>{{printf "%.1f" .LagSeconds}}</td><td>{{printf "%.4f" .R}}</td><td>{{.IsValid}}</td><td>{{printf "%.4f" .FluxUmolM2S}}</td></tr>
{{end}}  </table>
</body>
</html>
`))

type reportRowView struct {
	ReportRow
	Style string
}

type reportDayView struct {
	Date string
	Rows []reportRowView
}

// WriteDayReport renders one day's cycles as an HTML table to w, in the
// layout the original single-chamber toolchain's html_report module used
// (one file per day, color-coded rows). Rows are written in the order
// given; callers sort by start time first.
func WriteDayReport(w io.Writer, date string, rows []ReportRow) error {
	view := reportDayView{Date: date}
	for _, r := range rows {
		view.Rows = append(view.Rows, reportRowView{ReportRow: r, Style: r.rowStyle()})
	}
	if err := reportTemplate.Execute(w, view); err != nil {
		return fmt.Errorf("fluxrs: rendering day report: %w", err)
	}
	return nil
}

// SummarizeRun produces a plain-text line per gas describing how many
// flux rows a processor or recalculator run touched, for the CLI to
// print or log after a run completes. Rendering failures here are never
// fatal to the pipeline (spec 4.L): callers log and continue.
func SummarizeRun(records []FluxRecord) string {
	counts := map[GasType]struct{ total, valid int }{}
	for _, r := range records {
		c := counts[r.Gas]
		c.total++
		if r.IsValid {
			c.valid++
		}
		counts[r.Gas] = c
	}
	gases := make([]GasType, 0, len(counts))
	for g := range counts {
		gases = append(gases, g)
	}
	sort.Slice(gases, func(i, j int) bool { return gases[i] < gases[j] })

	out := ""
	for _, g := range gases {
		c := counts[g]
		out += fmt.Sprintf("%s: %d cycles, %d valid\n", g, c.total, c.valid)
	}
	return out
}
