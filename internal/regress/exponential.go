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

import "math"

// Exponential is a fit y = A*exp(B*x), obtained by linear regression on
// (x, ln y) and back-transforming the intercept.
type Exponential struct {
	A, B float64
	Stats
}

// FitExponential requires all y > 0.
func FitExponential(x, y []float64) (Exponential, error) {
	if len(x) != len(y) {
		return Exponential{}, ErrLengthMismatch
	}
	for _, yi := range y {
		if yi <= 0 {
			return Exponential{}, ErrNonPositiveY
		}
	}

	lnY := make([]float64, len(y))
	for i, yi := range y {
		lnY[i] = math.Log(yi)
	}

	lin, err := FitLinear(x, lnY)
	if err != nil {
		return Exponential{}, err
	}

	a := math.Exp(lin.Intercept)
	b := lin.Slope

	yhat := make([]float64, len(y))
	for i, xi := range x {
		yhat[i] = a * math.Exp(b*xi)
	}
	st := computeStats(y, yhat, 1)

	return Exponential{A: a, B: b, Stats: st}, nil
}
