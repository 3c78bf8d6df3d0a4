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
	"gonum.org/v1/gonum/mat"
)

// Quadratic is an OLS fit y = A0 + A1*x + A2*x^2, solved via the 3x3
// normal equations.
type Quadratic struct {
	A0, A1, A2 float64
	Stats
}

// FitQuadratic requires n >= 3 points.
func FitQuadratic(x, y []float64) (Quadratic, error) {
	if len(x) != len(y) {
		return Quadratic{}, ErrLengthMismatch
	}
	n := len(x)
	if n < 3 {
		return Quadratic{}, ErrNotEnoughPoints
	}

	var sx, sx2, sx3, sx4, sy, sxy, sx2y float64
	for i := range x {
		xi, yi := x[i], y[i]
		x2 := xi * xi
		sx += xi
		sx2 += x2
		sx3 += x2 * xi
		sx4 += x2 * x2
		sy += yi
		sxy += xi * yi
		sx2y += x2 * yi
	}
	fn := float64(n)

	a := mat.NewDense(3, 3, []float64{
		fn, sx, sx2,
		sx, sx2, sx3,
		sx2, sx3, sx4,
	})
	b := mat.NewDense(3, 1, []float64{sy, sxy, sx2y})

	var coef mat.Dense
	if err := coef.Solve(a, b); err != nil {
		return Quadratic{}, ErrDegenerateX
	}

	a0, a1, a2 := coef.At(0, 0), coef.At(1, 0), coef.At(2, 0)

	yhat := make([]float64, n)
	for i, xi := range x {
		yhat[i] = a0 + a1*xi + a2*xi*xi
	}
	st := computeStats(y, yhat, 2)

	return Quadratic{A0: a0, A1: a1, A2: a2, Stats: st}, nil
}
