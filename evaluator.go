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

import "math"

// Validity thresholds applied to the main gas's best_by_AIC fit (spec
// 4.D step 7). Tunable by the UI in the reference implementation; the
// core only needs the computation, so these are plain constants here.
const (
	ValidityMinR2     = 0.90
	ValidityMaxRMSE   = 25.0
	ValidityMaxPValue = 0.05
	ValidityMaxT0Conc = 30000.0

	// nominalSampleHz is the assumed instrument sampling rate used to
	// derive the TOO_FEW/TOO_MANY sample-count bounds from a cycle's
	// closed interval.
	nominalSampleHz = 1.0
)

// CycleDef is an unevaluated cycle definition as ingested from storage or
// an upload: identity, timing, and any operator overrides.
type CycleDef struct {
	ProjectName string
	ChamberID   string
	Timing      CycleTiming

	ManualAdjusted   bool
	ManualValid      bool
	ManualValidValue bool
	PersistedWindows map[GasKey]CalcWindow
}

// EvaluatorInputs bundles the shared, read-only datasets a Cycle Evaluator
// run needs: gas samples for the day(s) the cycle spans, meteo and height
// datasets, and the chamber registry, all shared by reference across
// workers of the owning run.
type EvaluatorInputs struct {
	Gas     *GasDataSet
	Meteo   *MeteoDataSet
	Height  *HeightDataSet
	Chamber map[string]Chamber
}

// defaultChamber is substituted when a cycle's chamber_id has no known
// geometry; absence alone is not a hard error (spec 4.D step 1).
var defaultChamber = Chamber{ID: "default", Kind: ChamberBox, Width: 1, Length: 1, Height: 1}

// EvaluateCycle runs the Cycle Evaluator (spec 4.D) for one cycle: it
// resolves chamber/environment/height, validates the sample envelope,
// selects the calculation window per gas (unless manually adjusted),
// fits all four models, converts to flux, and classifies validity.
func EvaluateCycle(def CycleDef, project Project, in EvaluatorInputs) Cycle {
	c := Cycle{
		ProjectName:    def.ProjectName,
		ChamberID:      def.ChamberID,
		Timing:         def.Timing,
		MainGas:        project.MainGas,
		MainInstrument: project.MainInstrument,
		ManualAdjusted: def.ManualAdjusted,
		ManualValid:    def.ManualValid,
		Results:        make(map[GasKey]GasResult),
	}

	// Step 1: resolve chamber.
	chamber, chamberKnown := in.Chamber[def.ChamberID]
	if !chamberKnown {
		chamber = defaultChamber
	}

	// Step 2: resolve environmentals.
	c.Env = ResolveEnvironment(in.Meteo, def.Timing.StartTimeUTC)

	// Step 3: resolve height (nearest-previous for this chamber; retain
	// the chamber's own height if none exists).
	if in.Height != nil {
		if rec, ok := in.Height.NearestPreviousHeight(def.ChamberID, def.Timing.StartTimeUTC); ok {
			chamber = chamber.WithHeight(rec.HeightM)
		}
	}
	c.Chamber = chamber

	closedStart, closedEnd := def.Timing.ClosedInterval()

	samples := in.Gas.Day(def.Timing.StartTimeUTC)
	mask := evaluateSampleEnvelope(samples, def.Timing.StartTimeUTC, closedStart, closedEnd, project.MainGas)
	c.ErrorCode = mask

	for _, gas := range AllGasTypes() {
		key := GasKey{Gas: gas, InstrumentID: project.MainInstrumentID}
		t, y := SeriesFor(samples, key, def.Timing.StartTimeUTC)
		clippedT, clippedY := clipToWindow(t, y, closedStart, closedEnd)
		if len(clippedT) == 0 {
			continue
		}

		persisted := def.PersistedWindows[key]
		window, err := SelectWindow(project.Mode, clippedT, clippedY, closedStart, closedEnd, project.DeadbandSeconds, project.MinCalcLenSeconds, def.ManualAdjusted, persisted)
		if err != nil {
			c.ErrorCode = c.ErrorCode.Set(TooFewMeasurements)
			continue
		}

		fits := FitAllModels(clippedT, clippedY, window, gas, c.Env, chamber)
		best, hasAIC := BestByAIC(fits)
		c.Results[key] = GasResult{Gas: gas, Fits: fits, Best: best, HasAIC: hasAIC}
	}

	// Step 7: classify validity.
	if def.ManualValid {
		c.IsValid = def.ManualValidValue
		return c
	}

	mainKey := GasKey{Gas: project.MainGas, InstrumentID: project.MainInstrumentID}
	mainResult, haveMain := c.Results[mainKey]
	c.IsValid = c.ErrorCode.Empty() && haveMain && mainResult.HasAIC && passesValidityThresholds(mainResult.Best, samples, def.Timing.StartTimeUTC, mainKey)
	return c
}

// evaluateSampleEnvelope implements spec 4.D step 4: count samples inside
// the closed interval and classify the cycle's error flags accordingly.
func evaluateSampleEnvelope(samples []GasSample, startUnix int64, closedStart, closedEnd float64, mainGas GasType) ErrorMask {
	var mask ErrorMask
	var inWindow, diagFlagged int
	for _, s := range samples {
		rel := float64(s.TimestampUTC - startUnix)
		if rel < closedStart || rel > closedEnd {
			continue
		}
		inWindow++
		if s.Diag != 0 {
			diagFlagged++
		}
	}

	span := closedEnd - closedStart
	minExpected := int(math.Max(2, span*nominalSampleHz*0.5))
	maxExpected := int(span*nominalSampleHz*2) + 10

	if inWindow < minExpected {
		mask = mask.Set(TooFewMeasurements)
	}
	if inWindow > maxExpected {
		mask = mask.Set(TooManyMeasurements)
	}
	if inWindow > 0 && diagFlagged*2 >= inWindow {
		mask = mask.Set(MostlyDiagErrors)
	}
	if diagFlagged > 0 {
		mask = mask.Set(ErrorInMeasurement)
	}
	if badOpenClose(samples, startUnix, closedStart, closedEnd, mainGas) {
		mask = mask.Set(BadOpenClose)
	}
	return mask
}

// badOpenClose flags a cycle whose concentration does not rise (the
// expected sign for a respiration-type closed-chamber measurement) between
// the close boundary and the open boundary for the main gas.
func badOpenClose(samples []GasSample, startUnix int64, closedStart, closedEnd float64, mainGas GasType) bool {
	var firstVal, lastVal float64
	var haveFirst, haveLast bool
	for _, s := range samples {
		rel := float64(s.TimestampUTC - startUnix)
		if rel < closedStart || rel > closedEnd {
			continue
		}
		for k, v := range s.Values {
			if k.Gas != mainGas {
				continue
			}
			if !haveFirst {
				firstVal, haveFirst = v, true
			}
			lastVal, haveLast = v, true
		}
	}
	return haveFirst && haveLast && lastVal <= firstVal
}

// passesValidityThresholds applies the default threshold constants to the
// main gas's best fit.
func passesValidityThresholds(best ModelFit, samples []GasSample, startUnix int64, key GasKey) bool {
	if best.Stats.R2 < ValidityMinR2 {
		return false
	}
	if best.Stats.RMSE > ValidityMaxRMSE {
		return false
	}
	if best.Stats.HasPValue && best.Stats.PValue > ValidityMaxPValue {
		return false
	}
	if t0, ok := concentrationAt(samples, startUnix, key, best.Window.Start); ok && t0 > ValidityMaxT0Conc {
		return false
	}
	return true
}

func concentrationAt(samples []GasSample, startUnix int64, key GasKey, relSeconds float64) (float64, bool) {
	target := startUnix + int64(relSeconds)
	for _, s := range samples {
		if s.TimestampUTC != target {
			continue
		}
		if v, ok := s.Values[key]; ok {
			return v, true
		}
	}
	return 0, false
}
