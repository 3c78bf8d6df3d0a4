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

// Package regress implements the four regression primitives used to turn
// a chamber cycle's concentration-vs-time samples into a fitted slope:
// ordinary least squares, Huber/IRLS robust linear, quadratic (normal
// equations), and exponential (log-linear).
package regress

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// FitError is a sentinel fit-precondition failure. Fit errors are data,
// never fatal: callers absorb them into a cycle's per-gas result.
type FitError string

func (e FitError) Error() string { return string(e) }

const (
	ErrLengthMismatch  FitError = "length mismatch between x and y"
	ErrNotEnoughPoints FitError = "not enough points"
	ErrDegenerateX     FitError = "degenerate x: zero variance"
	ErrNonPositiveY    FitError = "non-positive y value in exponential fit"
	ErrNonFiniteSigma  FitError = "non-finite residual scale"
	ErrNonFiniteSE     FitError = "non-finite standard error"
	ErrNonFiniteTStat  FitError = "non-finite t statistic"
)

// Stats holds the derived goodness-of-fit statistics common to every fit
// kind.
type Stats struct {
	N         int
	K         int // number of non-intercept parameters
	SSRes     float64
	R2        float64
	AdjR2     float64
	RMSE      float64
	AIC       float64
	Sigma     float64
	CV        float64
	PValue    float64
	HasPValue bool
}

// computeStats derives the shared statistics from observed y and fitted
// yhat, for a model with k non-intercept parameters.
func computeStats(y, yhat []float64, k int) Stats {
	n := len(y)
	mean := meanOf(y)
	var ssRes, ssTot float64
	for i := range y {
		ssRes += sq(y[i] - yhat[i])
		ssTot += sq(y[i] - mean)
	}
	r2 := math.NaN()
	if ssTot != 0 {
		r2 = 1 - ssRes/ssTot
	}
	adjR2 := r2
	if n > k+1 {
		adjR2 = 1 - (1-r2)*float64(n-1)/float64(n-k-1)
	}
	rmse := math.Sqrt(ssRes / float64(n))
	sigma := math.NaN()
	if n > k+1 {
		sigma = math.Sqrt(ssRes / float64(n-k-1))
	}
	cv := math.NaN()
	if mean != 0 {
		cv = sigma / math.Abs(mean)
	}
	return Stats{
		N:     n,
		K:     k,
		SSRes: ssRes,
		R2:    r2,
		AdjR2: adjR2,
		RMSE:  rmse,
		AIC:   aicFromRSS(ssRes, n, k),
		Sigma: sigma,
		CV:    cv,
	}
}

// aicFromRSS computes n*ln(RSS/n) + 2k, returning +Inf for degenerate
// inputs so that best_by_AIC selection never favors a broken fit.
func aicFromRSS(rss float64, n, k int) float64 {
	if rss <= 0 || n == 0 {
		return math.Inf(1)
	}
	return float64(n)*math.Log(rss/float64(n)) + 2*float64(k)
}

// slopePValue runs a two-sided t-test of the null hypothesis slope==0,
// given the slope's standard error and residual degrees of freedom.
func slopePValue(slope, se float64, df int) (float64, bool) {
	if df <= 0 || math.IsNaN(se) || math.IsInf(se, 0) || se == 0 {
		return math.NaN(), false
	}
	t := slope / se
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return math.NaN(), false
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	p := 2 * (1 - dist.CDF(math.Abs(t)))
	return p, true
}

func meanOf(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s / float64(len(v))
}

func sq(x float64) float64 { return x * x }

func allFinite(vs ...[]float64) bool {
	for _, v := range vs {
		for _, x := range v {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return false
			}
		}
	}
	return true
}
