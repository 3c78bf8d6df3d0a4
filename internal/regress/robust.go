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
	"sort"
)

// Robust is an IRLS Huber-weighted linear fit, initialized from a
// trimmed-OLS starting point. The fit is computed against x shifted by
// x[0] (x_norm = x - x[0]); Intercept/Slope are reported back in terms of
// the caller's original x.
type Robust struct {
	Intercept float64
	Slope     float64
	Sigma     float64 // final MAD-derived residual scale
	Stats
}

// FitRobust runs IRLS with Huber weight constant k for up to maxIter
// iterations. It requires len(x)==len(y)>=3 and all values finite; with
// exactly two points the trimmed-OLS start fails and ErrDegenerateX is
// returned.
func FitRobust(x, y []float64, k float64, maxIter int) (Robust, error) {
	if len(x) != len(y) {
		return Robust{}, ErrLengthMismatch
	}
	if len(x) < 2 {
		return Robust{}, ErrNotEnoughPoints
	}
	if !allFinite(x, y) {
		return Robust{}, ErrNonFiniteSigma
	}

	x0 := x[0]
	xNorm := make([]float64, len(x))
	for i, xi := range x {
		xNorm[i] = xi - x0
	}

	intercept, slope, ok := trimmedOLS(xNorm, y, 0.1)
	if !ok {
		return Robust{}, ErrDegenerateX
	}

	weights := make([]float64, len(y))
	for i := range weights {
		weights[i] = 1
	}

	sigma := math.NaN()
	for iter := 0; iter < maxIter; iter++ {
		residuals := make([]float64, len(y))
		for i := range y {
			residuals[i] = y[i] - (intercept + slope*xNorm[i])
		}
		scale := mad(residuals)
		if scale <= 0 || math.IsNaN(scale) {
			return Robust{}, ErrNonFiniteSigma
		}
		sigma = scale
		for i, r := range residuals {
			weights[i] = weightHuber(r/scale, k)
		}

		newIntercept, newSlope, ok := weightedOLS(xNorm, y, weights)
		if !ok {
			return Robust{}, ErrDegenerateX
		}
		intercept, slope = newIntercept, newSlope
	}

	yhat := make([]float64, len(y))
	for i := range y {
		yhat[i] = intercept + slope*xNorm[i]
	}
	st := computeStats(y, yhat, 1)
	st.Sigma = sigma
	if mean := meanOf(y); mean != 0 {
		st.CV = sigma / math.Abs(mean)
	}

	se, ok := slopeStandardError(xNorm, st.SSRes, len(x)-2)
	if ok {
		if p, ok := slopePValue(slope, se, len(x)-2); ok {
			st.PValue, st.HasPValue = p, true
		}
	}

	// Report Intercept in terms of the caller's original x: y = intercept
	// + slope*(x - x0) = (intercept - slope*x0) + slope*x.
	return Robust{
		Intercept: intercept - slope*x0,
		Slope:     slope,
		Sigma:     sigma,
		Stats:     st,
	}, nil
}

// trimmedOLS fits OLS, then refits after discarding the trimFrac largest
// (by absolute residual) points from each tail. Requires len(x)>=3 and
// trimFrac in [0, 0.5).
func trimmedOLS(x, y []float64, trimFrac float64) (intercept, slope float64, ok bool) {
	n := len(x)
	if n < 3 || trimFrac < 0 || trimFrac >= 0.5 {
		return 0, 0, false
	}
	intercept, slope, ok = weightedOLS(x, y, nil)
	if !ok {
		return 0, 0, false
	}

	type resid struct {
		idx int
		abs float64
	}
	residuals := make([]resid, n)
	for i := range x {
		residuals[i] = resid{i, math.Abs(y[i] - (intercept + slope*x[i]))}
	}
	sort.Slice(residuals, func(i, j int) bool { return residuals[i].abs < residuals[j].abs })

	trimN := int(math.Floor(float64(n) * trimFrac))
	if trimN*2 >= n {
		return intercept, slope, true
	}
	kept := residuals[:len(residuals)-trimN]
	kept = kept[trimN:]
	if len(kept) < 2 {
		return intercept, slope, true
	}
	xs := make([]float64, len(kept))
	ys := make([]float64, len(kept))
	for i, r := range kept {
		xs[i] = x[r.idx]
		ys[i] = y[r.idx]
	}
	return weightedOLS(xs, ys, nil)
}

// weightedOLS fits a weighted simple linear regression. nil weights means
// unweighted.
func weightedOLS(x, y, w []float64) (intercept, slope float64, ok bool) {
	n := len(x)
	if n == 0 {
		return 0, 0, false
	}
	var sw, swx, swy, swxx, swxy float64
	for i := range x {
		wi := 1.0
		if w != nil {
			wi = w[i]
		}
		sw += wi
		swx += wi * x[i]
		swy += wi * y[i]
		swxx += wi * x[i] * x[i]
		swxy += wi * x[i] * y[i]
	}
	if sw == 0 {
		return 0, 0, false
	}
	meanX := swx / sw
	meanY := swy / sw
	sxxW := swxx - sw*meanX*meanX
	sxyW := swxy - sw*meanX*meanY
	if math.Abs(sxxW) < 1e-12 {
		return 0, 0, false
	}
	slope = sxyW / sxxW
	intercept = meanY - slope*meanX
	return intercept, slope, true
}

// weightHuber is the Huber weight function: 1 for |r|<=k, k/|r| beyond.
func weightHuber(r, k float64) float64 {
	a := math.Abs(r)
	if a <= k {
		return 1
	}
	return k / a
}

// mad is the median absolute deviation, scaled to be a consistent
// estimator of the standard deviation under normality, floored at 1e-12.
func mad(residuals []float64) float64 {
	m := median(residuals)
	devs := make([]float64, len(residuals))
	for i, r := range residuals {
		devs[i] = math.Abs(r - m)
	}
	d := median(devs) / 0.6745
	if d < 1e-12 {
		return 1e-12
	}
	return d
}

// median filters out non-finite values, then returns the middle value (or
// the average of the two middle values for an even count).
func median(data []float64) float64 {
	clean := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return math.NaN()
	}
	sort.Float64s(clean)
	n := len(clean)
	if n%2 == 1 {
		return clean[n/2]
	}
	return (clean[n/2-1] + clean[n/2]) / 2
}
