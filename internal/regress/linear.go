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

package regress

import (
	"math"

	"github.com/GaryBoone/GoStats/stats"
)

// Linear is an ordinary-least-squares fit y = Intercept + Slope*x.
type Linear struct {
	Intercept float64
	Slope     float64
	Stats
}

// FitLinear fits y = a + b*x by OLS. It requires len(x)==len(y)>=2 and
// Var(x) > 0.
func FitLinear(x, y []float64) (Linear, error) {
	if len(x) != len(y) {
		return Linear{}, ErrLengthMismatch
	}
	if len(x) < 2 {
		return Linear{}, ErrNotEnoughPoints
	}
	if !hasVariance(x) {
		return Linear{}, ErrDegenerateX
	}

	slope, intercept, _, _, _, _ := stats.LinearRegression(x, y)

	yhat := make([]float64, len(y))
	for i, xi := range x {
		yhat[i] = intercept + slope*xi
	}
	st := computeStats(y, yhat, 1)

	se, ok := slopeStandardError(x, st.SSRes, len(x)-2)
	if ok {
		if p, ok := slopePValue(slope, se, len(x)-2); ok {
			st.PValue, st.HasPValue = p, true
		}
	}

	return Linear{Intercept: intercept, Slope: slope, Stats: st}, nil
}

// slopeStandardError computes SE(slope) = sqrt(sigma2/Sxx) for an OLS fit,
// where sigma2 = SSres/df.
func slopeStandardError(x []float64, ssRes float64, df int) (float64, bool) {
	if df <= 0 {
		return 0, false
	}
	mean := meanOf(x)
	var sxx float64
	for _, xi := range x {
		sxx += sq(xi - mean)
	}
	if sxx <= 0 {
		return 0, false
	}
	sigma2 := ssRes / float64(df)
	if sigma2 < 0 {
		sigma2 = 0
	}
	return math.Sqrt(sigma2 / sxx), true
}

func hasVariance(x []float64) bool {
	mean := meanOf(x)
	for _, xi := range x {
		if xi != mean {
			return true
		}
	}
	return false
}
