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

// FluxModelColumns is one model's fitted outputs, flattened for storage
// as model-prefixed columns on a FluxRecord row.
type FluxModelColumns struct {
	Intercept float64
	Slope     float64
	A0, A1, A2 float64
	A, B       float64
	R2          float64
	AdjR2       float64
	Sigma       float64
	RMSE        float64
	CV          float64
	AIC         float64
	PValue      float64
	HasPValue   bool
	WindowStart float64
	WindowEnd   float64
	FluxUmolM2S float64
	FluxMgM2S   float64
	FluxMgM2H   float64
	Failed      bool
	FailReason  string
}

func columnsFromFit(f ModelFit) FluxModelColumns {
	if f.Err != nil {
		return FluxModelColumns{Failed: true, FailReason: f.Err.Error()}
	}
	return FluxModelColumns{
		Intercept:   f.Intercept,
		Slope:       f.Slope,
		A0:          f.A0,
		A1:          f.A1,
		A2:          f.A2,
		A:           f.A,
		B:           f.B,
		R2:          f.Stats.R2,
		AdjR2:       f.Stats.AdjR2,
		Sigma:       f.Stats.Sigma,
		RMSE:        f.Stats.RMSE,
		CV:          f.Stats.CV,
		AIC:         f.Stats.AIC,
		PValue:      f.Stats.PValue,
		HasPValue:   f.Stats.HasPValue,
		WindowStart: f.Window.Start,
		WindowEnd:   f.Window.End,
		FluxUmolM2S: f.FluxUmolM2S,
		FluxMgM2S:   f.FluxMgM2S,
		FluxMgM2H:   f.FluxMgM2H,
	}
}

// FluxRecord is the persisted row for one (cycle, gas): the four models'
// outputs flattened into model-prefixed columns, plus the environmental
// provenance and validity flags that travelled with the cycle. Unique on
// (InstrumentSerial, StartTimeUTC, ProjectName, Gas).
type FluxRecord struct {
	InstrumentSerial string
	StartTimeUTC     int64
	ProjectName      string
	ChamberID        string
	Gas              GasType

	WindowStart float64
	WindowEnd   float64

	Linear FluxModelColumns
	RobLin FluxModelColumns
	Poly   FluxModelColumns
	Exp    FluxModelColumns

	TemperatureC     float64
	TemperatureSrc   SourceTag
	PressureHPa      float64
	PressureSrc      SourceTag
	MeteoDistanceSec *int64

	ErrorCode      ErrorMask
	ManualAdjusted bool
	ManualValid    bool
	IsValid        bool
}

// FluxRecordFromCycle flattens one gas's evaluation result on a cycle into
// a persistable FluxRecord.
func FluxRecordFromCycle(c Cycle, instrumentSerial string, gas GasType) FluxRecord {
	res := c.Results[GasKey{Gas: gas, InstrumentID: instrumentSerial}]
	return FluxRecord{
		InstrumentSerial: instrumentSerial,
		StartTimeUTC:     c.Timing.StartTimeUTC,
		ProjectName:      c.ProjectName,
		ChamberID:        c.ChamberID,
		Gas:              gas,
		WindowStart:      res.Fits[ModelLinear].Window.Start,
		WindowEnd:        res.Fits[ModelLinear].Window.End,
		Linear:           columnsFromFit(res.Fits[ModelLinear]),
		RobLin:           columnsFromFit(res.Fits[ModelRobLin]),
		Poly:             columnsFromFit(res.Fits[ModelPoly]),
		Exp:              columnsFromFit(res.Fits[ModelExp]),
		TemperatureC:     c.Env.TemperatureC,
		TemperatureSrc:   c.Env.Source,
		PressureHPa:      c.Env.PressureHPa,
		PressureSrc:      c.Env.Source,
		MeteoDistanceSec: c.Env.DistanceSec,
		ErrorCode:        c.ErrorCode,
		ManualAdjusted:   c.ManualAdjusted,
		ManualValid:      c.ManualValid,
		IsValid:          c.IsValid,
	}
}

// FluxHistoryEntry is one archived FluxRecord, written whenever
// update_fluxes overwrites an existing row.
type FluxHistoryEntry struct {
	ArchivedAtUTC int64
	Record        FluxRecord
}
