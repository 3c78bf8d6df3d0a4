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
	"fmt"

	"github.com/sirupsen/logrus"
)

// Recalculator refreshes already-persisted cycles when chamber geometry,
// meteo, or height records change. Unlike the Processor, it never
// re-selects calculation windows: it reuses the ones stored on each
// cycle's flux rows (spec 4.F).
type Recalculator struct {
	Store *Store
	Bus   *Bus

	// Log receives structured progress/error entries. Defaults to
	// logrus.StandardLogger() when nil.
	Log logrus.FieldLogger
}

func (r *Recalculator) log() logrus.FieldLogger {
	if r.Log != nil {
		return r.Log
	}
	return logrus.StandardLogger()
}

// Run reloads persisted cycles for project within rng, refreshes their
// chamber/meteo/height inputs, recomputes flux without re-running window
// selection, and writes each updated row through update_fluxes (history
// then overwrite). manual_adjusted/manual_valid are carried over from the
// stored cycle definition and never altered here.
func (r *Recalculator) Run(project Project, rng TimeRange, archivedAtUTC int64) error {
	log := r.log().WithFields(logrus.Fields{"project": project.Name, "start": rng.StartUTC, "end": rng.EndUTC})
	log.Info("recalculator run starting")
	r.Bus.Send(Event{Kind: EventInitStarted})

	defs, instruments, err := r.Store.LoadCycles(project.Name, rng.StartUTC, rng.EndUTC)
	if err != nil {
		log.WithError(err).Error("loading cycles")
		r.Bus.SendDone(err)
		return fmt.Errorf("fluxrs: recalculator loading cycles: %w", err)
	}
	meteo, err := r.Store.LoadMeteo(project.Name, rng.StartUTC, rng.EndUTC)
	if err != nil {
		r.Bus.SendDone(err)
		return fmt.Errorf("fluxrs: recalculator loading meteo: %w", err)
	}
	height, err := r.Store.LoadHeight(project.Name)
	if err != nil {
		r.Bus.SendDone(err)
		return fmt.Errorf("fluxrs: recalculator loading height: %w", err)
	}
	chambers, err := r.Store.LoadChambers(project.Name)
	if err != nil {
		r.Bus.SendDone(err)
		return fmt.Errorf("fluxrs: recalculator loading chambers: %w", err)
	}

	r.Bus.Send(Event{Kind: EventQueryComplete})
	r.Bus.Send(Event{Kind: EventInitEnded})

	var updated []FluxRecord
	for i, def := range defs {
		instrument := instruments[i]

		samples, err := r.Store.LoadGasSamples(project.Name, instrument, def.Timing.StartTimeUTC, def.Timing.StartTimeUTC+int64(def.Timing.EndOffset)+1)
		if err != nil {
			log.WithFields(logrus.Fields{"chamber_id": def.ChamberID}).WithError(err).Error("loading gas samples")
			r.Bus.SendDone(err)
			return fmt.Errorf("fluxrs: recalculator loading gas samples: %w", err)
		}
		gasDS := NewGasDataSet(samples)

		def.PersistedWindows = make(map[GasKey]CalcWindow)
		for _, gas := range AllGasTypes() {
			key := GasKey{Gas: gas, InstrumentID: instrument}
			if w, ok, err := r.Store.ExistingWindow(project.Name, def.Timing.StartTimeUTC, instrument, gas); err == nil && ok {
				def.PersistedWindows[key] = w
			}
		}
		storedManualAdjusted := def.ManualAdjusted
		def.ManualAdjusted = true // never re-select windows on recalculation

		if def.ManualValid {
			if valid, err := r.Store.ExistingValidity(project.Name, def.Timing.StartTimeUTC, instrument, project.MainGas); err == nil {
				def.ManualValidValue = valid
			}
		}

		in := EvaluatorInputs{Gas: gasDS, Meteo: meteo, Height: height, Chamber: chambers}
		localProject := project
		localProject.MainInstrumentID = instrument
		cycle := EvaluateCycle(def, localProject, in)
		cycle.ManualAdjusted = storedManualAdjusted

		for key, res := range cycle.Results {
			if !res.HasAIC {
				continue
			}
			updated = append(updated, FluxRecordFromCycle(cycle, key.InstrumentID, key.Gas))
		}
		r.Bus.Send(Event{Kind: EventProgressRecalced, Done: i + 1, Total: len(defs)})
	}

	if err := r.Store.UpdateFluxes(updated, archivedAtUTC); err != nil {
		log.WithError(err).Error("writing fluxes")
		r.Bus.SendDone(err)
		return fmt.Errorf("fluxrs: recalculator writing fluxes: %w", err)
	}

	log.WithField("rows", len(updated)).Info("recalculator run complete")
	r.Bus.SendDone(nil)
	return nil
}
