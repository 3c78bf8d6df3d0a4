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
	"bytes"
	"strings"
	"testing"
)

func TestWriteDayReportRendersRows(t *testing.T) {
	rows := []ReportRow{
		{ChamberID: "c1", StartRFC: "2026-07-31T00:00:00Z", LagSeconds: 5, R: 0.995, IsValid: true, FluxUmolM2S: 1.2345},
		{ChamberID: "c2", StartRFC: "2026-07-31T00:05:00Z", LagSeconds: 5, R: 0.5, IsValid: false, HasDiag: true, FluxUmolM2S: 0},
	}
	var buf bytes.Buffer
	if err := WriteDayReport(&buf, "2026-07-31", rows); err != nil {
		t.Fatalf("WriteDayReport: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "c1") || !strings.Contains(out, "c2") {
		t.Fatalf("expected both chambers in report, got:\n%s", out)
	}
	if !strings.Contains(out, "salmon") {
		t.Errorf("expected the diag row to be colored salmon")
	}
	if !strings.Contains(out, "greenyellow") {
		t.Errorf("expected the clean valid row to be colored greenyellow")
	}
}

func TestSummarizeRunCountsPerGas(t *testing.T) {
	records := []FluxRecord{
		{Gas: CH4, IsValid: true},
		{Gas: CH4, IsValid: false},
		{Gas: CO2, IsValid: true},
	}
	out := SummarizeRun(records)
	if !strings.Contains(out, "ch4: 2 cycles, 1 valid") {
		t.Errorf("unexpected ch4 summary line: %q", out)
	}
	if !strings.Contains(out, "co2: 1 cycles, 1 valid") {
		t.Errorf("unexpected co2 summary line: %q", out)
	}
}
