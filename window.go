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
	"errors"
	"math"
)

// ErrWindowTooShort is returned when the closed interval, after deadband,
// cannot accommodate a window of the project's minimum calculation length.
var ErrWindowTooShort = errors.New("fluxrs: calculation window shorter than min_calc_len")

// ErrInvalidWindow is returned whenever a computed window would fail the
// range_start < range_end invariant.
var ErrInvalidWindow = errors.New("fluxrs: invalid calculation window: range_end <= range_start")

// CalcWindow is the sub-interval of a cycle's closed interval that is fed
// to regression, expressed as offsets in seconds from the cycle's
// start_time, after lag correction has already been applied.
type CalcWindow struct {
	Start float64
	End   float64
}

// Validate enforces the invariants from spec section 4.C/4.D: the window
// lies inside [closedStart, closedEnd], is non-empty, and is at least
// minCalcLen seconds long.
func (w CalcWindow) Validate(closedStart, closedEnd, minCalcLen float64) error {
	if w.End <= w.Start {
		return ErrInvalidWindow
	}
	if w.Start < closedStart || w.End > closedEnd {
		return ErrInvalidWindow
	}
	if w.End-w.Start < minCalcLen {
		return ErrWindowTooShort
	}
	return nil
}

// SelectWindow picks the calculation window for one gas's samples within a
// cycle. t and y are parallel sample vectors already clipped to
// [closedStart, closedEnd]; closedStart/closedEnd are close/open offsets
// (seconds from start_time) after lag correction.
//
// If manualAdjusted is true, the selector is skipped entirely and the
// persisted window is returned unchanged, or ErrInvalidWindow if its End
// is not after its Start.
func SelectWindow(mode WindowMode, t, y []float64, closedStart, closedEnd, deadband, minCalcLen float64, manualAdjusted bool, persisted CalcWindow) (CalcWindow, error) {
	if manualAdjusted {
		if persisted.End <= persisted.Start {
			return CalcWindow{}, ErrInvalidWindow
		}
		return persisted, nil
	}

	switch mode {
	case AfterDeadband:
		w := CalcWindow{Start: closedStart + deadband, End: closedEnd}
		if err := w.Validate(closedStart, closedEnd, minCalcLen); err != nil {
			return CalcWindow{}, err
		}
		return w, nil
	default:
		return selectBestPearsonWindow(t, y, closedStart, closedEnd, deadband, minCalcLen)
	}
}

// selectBestPearsonWindow slides a minCalcLen-second window in 1-second
// steps across [closedStart+deadband, closedEnd-minCalcLen], keeping the
// position that maximizes |Pearson(t,y)| over the samples it covers. Ties
// are broken by earliest start.
func selectBestPearsonWindow(t, y []float64, closedStart, closedEnd, deadband, minCalcLen float64) (CalcWindow, error) {
	searchStart := closedStart + deadband
	searchEnd := closedEnd - minCalcLen
	if searchEnd < searchStart {
		return CalcWindow{}, ErrWindowTooShort
	}

	bestStart := math.NaN()
	bestR := -1.0

	for pos := searchStart; pos <= searchEnd+1e-9; pos++ {
		wt, wy := sliceWindow(t, y, pos, pos+minCalcLen)
		r, ok := PearsonCorrelation(wt, wy)
		if !ok {
			continue
		}
		if r > bestR {
			bestR = r
			bestStart = pos
		}
	}

	if math.IsNaN(bestStart) {
		return CalcWindow{}, ErrWindowTooShort
	}
	w := CalcWindow{Start: bestStart, End: bestStart + minCalcLen}
	if err := w.Validate(closedStart, closedEnd, minCalcLen); err != nil {
		return CalcWindow{}, err
	}
	return w, nil
}

// sliceWindow returns the subset of (t,y) with t in [start, end].
func sliceWindow(t, y []float64, start, end float64) ([]float64, []float64) {
	var wt, wy []float64
	for i, ti := range t {
		if ti >= start && ti <= end {
			wt = append(wt, ti)
			wy = append(wy, y[i])
		}
	}
	return wt, wy
}

// PearsonCorrelation returns |r| for x,y, or ok=false if len(x) < 5,
// len(x) != len(y), or either side contains a non-finite value.
func PearsonCorrelation(x, y []float64) (r float64, ok bool) {
	if len(x) != len(y) || len(x) < 5 {
		return 0, false
	}
	for i := range x {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			return 0, false
		}
	}

	meanX, meanY := meanOf(x), meanOf(y)
	var sxy, sxx, syy float64
	for i := range x {
		dx, dy := x[i]-meanX, y[i]-meanY
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	denom := math.Sqrt(sxx * syy)
	if denom == 0 {
		return 0, false
	}
	return math.Abs(sxy / denom), true
}

func meanOf(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s / float64(len(v))
}
