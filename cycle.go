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

// CycleTiming holds a cycle's start time and its offsets (seconds from
// start_time) for the close/open/end boundaries, plus per-role lag
// corrections applied to each.
type CycleTiming struct {
	StartTimeUTC int64

	CloseOffset float64
	OpenOffset  float64
	EndOffset   float64

	StartLag float64
	CloseLag float64
	OpenLag  float64
	EndLag   float64
}

// ClosedInterval returns the lag-corrected [close, open] span, in seconds
// from start_time, inside which the chamber is sealed.
func (t CycleTiming) ClosedInterval() (start, end float64) {
	return t.CloseOffset + t.CloseLag, t.OpenOffset + t.OpenLag
}

// Validate enforces close_offset <= open_offset <= end_offset.
func (t CycleTiming) Validate() error {
	if !(t.CloseOffset <= t.OpenOffset && t.OpenOffset <= t.EndOffset) {
		return ErrInvalidCycleTiming
	}
	return nil
}

// ErrInvalidCycleTiming is returned by CycleTiming.Validate.
var ErrInvalidCycleTiming = errInvalidCycleTiming{}

type errInvalidCycleTiming struct{}

func (errInvalidCycleTiming) Error() string {
	return "fluxrs: cycle timing violates close_offset <= open_offset <= end_offset"
}

// GasResult is one gas's complete evaluation result within a cycle: all
// four fitted models and the one chosen as best_by_AIC.
type GasResult struct {
	Gas    GasType
	Fits   [4]ModelFit
	Best   ModelFit
	HasAIC bool
}

// Cycle is the unit of work: one chamber closure event, its resolved
// environmental inputs snapshotted at evaluation time, and its per-gas
// fitted results.
type Cycle struct {
	ProjectName string
	ChamberID   string
	Timing      CycleTiming

	MainGas        GasType
	MainInstrument InstrumentModel

	// Snapshot inputs, frozen at evaluation time so a later chamber/meteo
	// edit never retroactively mutates historical flux (see 9, "Cyclic
	// references").
	Chamber Chamber
	Env     Environment

	Results map[GasKey]GasResult

	ErrorCode      ErrorMask
	ManualAdjusted bool
	ManualValid    bool
	IsValid        bool
}

// Identity returns the cycle's unique key: (project, chamber_id, start_time).
func (c Cycle) Identity() (project, chamberID string, startTime int64) {
	return c.ProjectName, c.ChamberID, c.Timing.StartTimeUTC
}
