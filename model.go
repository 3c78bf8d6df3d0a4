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
	"math"

	"github.com/kootepe/fluxrs-go/internal/regress"
)

// FluxModelKind identifies one of the four closed-form regression models a
// cycle is fitted against. It is a closed set: prefer a switch over this
// tag to a virtual-dispatch interface.
type FluxModelKind uint8

const (
	ModelLinear FluxModelKind = iota
	ModelRobLin
	ModelPoly
	ModelExp
)

func (k FluxModelKind) String() string {
	switch k {
	case ModelLinear:
		return "linear"
	case ModelRobLin:
		return "roblin"
	case ModelPoly:
		return "poly"
	case ModelExp:
		return "exp"
	default:
		return "unknown"
	}
}

// ModelFit is one model's fit for one gas on one cycle: the regression
// coefficients, its goodness-of-fit statistics, the window it was fitted
// over, and the derived flux. Err is non-nil when the fit could not be
// produced; the remaining fields are then zero-valued, never fatal to the
// surrounding cycle.
type ModelFit struct {
	Kind FluxModelKind
	Err  error

	// Coefficients. Linear/RobLin use Intercept/Slope; Poly uses A0..A2;
	// Exp uses A,B (y = A*exp(B*x)).
	Intercept float64
	Slope     float64
	A0, A1, A2 float64
	A, B       float64

	Stats regress.Stats

	Window CalcWindow

	FluxUmolM2S float64
	FluxMgM2S   float64
	FluxMgM2H   float64
	FluxNmolM2S float64
	FluxMmolM2S float64
}

// slopeForFlux returns the concentration-rate slope (d(conc)/dt at x=0,
// in native units per second) that feeds the physics conversion. x is
// seconds from the cycle's start_time, so x=0 is the cycle start, not the
// window start. Poly uses its linear term a1 as the instantaneous rate at
// x=0; Exp differentiates y=A*exp(B*x) at x=0, giving A*B.
func (m ModelFit) slopeForFlux() float64 {
	switch m.Kind {
	case ModelLinear, ModelRobLin:
		return m.Slope
	case ModelPoly:
		return m.A1
	case ModelExp:
		return m.A * m.B
	default:
		return 0
	}
}

// FitAllModels fits all four models against one gas's (t, y) series,
// restricted to window, and converts each to flux using env and chamber.
// A model that fails to fit yields a ModelFit with Err set and zero flux;
// it never prevents the other three from fitting.
func FitAllModels(t, y []float64, window CalcWindow, gas GasType, env Environment, chamber Chamber) [4]ModelFit {
	wt, wy := clipToWindow(t, y, window.Start, window.End)

	var out [4]ModelFit
	out[0] = fitLinearModel(wt, wy, window)
	out[1] = fitRobLinModel(wt, wy, window)
	out[2] = fitPolyModel(wt, wy, window)
	out[3] = fitExpModel(wt, wy, window)

	for i := range out {
		if out[i].Err != nil {
			continue
		}
		slopeNative := out[i].slopeForFlux()
		slopePPM := NativeSlopeToPPMPerSecond(slopeNative, gas)
		out[i].FluxUmolM2S = FluxUmolM2S(slopePPM, env.TemperatureC, env.PressureHPa, chamber)
		out[i].FluxMgM2S = FluxMgM2S(out[i].FluxUmolM2S, gas)
		out[i].FluxMgM2H = FluxMgM2H(out[i].FluxMgM2S)
		out[i].FluxNmolM2S = FluxNmolM2S(out[i].FluxUmolM2S)
		out[i].FluxMmolM2S = FluxMmolM2S(out[i].FluxUmolM2S)
	}
	return out
}

func clipToWindow(t, y []float64, start, end float64) (wt, wy []float64) {
	for i := range t {
		if t[i] >= start && t[i] <= end {
			wt = append(wt, t[i])
			wy = append(wy, y[i])
		}
	}
	return wt, wy
}

func fitLinearModel(t, y []float64, w CalcWindow) ModelFit {
	fit, err := regress.FitLinear(t, y)
	if err != nil {
		return ModelFit{Kind: ModelLinear, Err: err, Window: w}
	}
	return ModelFit{Kind: ModelLinear, Intercept: fit.Intercept, Slope: fit.Slope, Stats: fit.Stats, Window: w}
}

func fitRobLinModel(t, y []float64, w CalcWindow) ModelFit {
	const huberK = 1.345
	const maxIter = 10
	fit, err := regress.FitRobust(t, y, huberK, maxIter)
	if err != nil {
		return ModelFit{Kind: ModelRobLin, Err: err, Window: w}
	}
	return ModelFit{Kind: ModelRobLin, Intercept: fit.Intercept, Slope: fit.Slope, Stats: fit.Stats, Window: w}
}

func fitPolyModel(t, y []float64, w CalcWindow) ModelFit {
	fit, err := regress.FitQuadratic(t, y)
	if err != nil {
		return ModelFit{Kind: ModelPoly, Err: err, Window: w}
	}
	return ModelFit{Kind: ModelPoly, A0: fit.A0, A1: fit.A1, A2: fit.A2, Stats: fit.Stats, Window: w}
}

func fitExpModel(t, y []float64, w CalcWindow) ModelFit {
	fit, err := regress.FitExponential(t, y)
	if err != nil {
		return ModelFit{Kind: ModelExp, Err: err, Window: w}
	}
	return ModelFit{Kind: ModelExp, A: fit.A, B: fit.B, Stats: fit.Stats, Window: w}
}

// BestByAIC picks the fit with the minimum finite AIC among fits, ties
// broken in the order Linear < RobLin < Poly < Exp (i.e. array order).
// ok is false if every fit errored or has a non-finite AIC.
func BestByAIC(fits [4]ModelFit) (best ModelFit, ok bool) {
	bestAIC := math.Inf(1)
	for _, f := range fits {
		if f.Err != nil || math.IsInf(f.Stats.AIC, 0) || math.IsNaN(f.Stats.AIC) {
			continue
		}
		if f.Stats.AIC < bestAIC {
			bestAIC = f.Stats.AIC
			best = f
			ok = true
		}
	}
	return best, ok
}
