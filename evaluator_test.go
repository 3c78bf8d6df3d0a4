package fluxrs

import (
	"math"
	"testing"
)

// TestEvaluateCycleLinearCH4Flux mirrors scenario E1: CH4 rising linearly
// from 2000 to 2060 ppb over a 120s closed interval.
func TestEvaluateCycleLinearCH4Flux(t *testing.T) {
	const instrument = "inst-1"
	start := int64(1_700_000_000)

	var samples []GasSample
	for sec := 0; sec < 120; sec++ {
		ch4 := 2000.0 + float64(sec)/120.0*60.0
		samples = append(samples, GasSample{
			TimestampUTC: start + int64(sec),
			Values:       map[GasKey]float64{{Gas: CH4, InstrumentID: instrument}: ch4},
		})
	}
	gasDS := NewGasDataSet(samples)
	chamber := NewBoxChamber("c1", 1, 1, 0.4)

	project := Project{
		Name:              "p1",
		MainGas:           CH4,
		MainInstrumentID:  instrument,
		DeadbandSeconds:   0,
		MinCalcLenSeconds: 60,
		Mode:              AfterDeadband,
	}

	def := CycleDef{
		ProjectName: "p1",
		ChamberID:   "c1",
		Timing: CycleTiming{
			StartTimeUTC: start,
			CloseOffset:  0,
			OpenOffset:   120,
			EndOffset:    120,
		},
	}

	in := EvaluatorInputs{
		Gas:     gasDS,
		Meteo:   NewMeteoDataSet([]MeteoRecord{{TimestampUTC: start, TemperatureC: 10, PressureHPa: 1013.25}}),
		Height:  NewHeightDataSet(nil),
		Chamber: map[string]Chamber{"c1": chamber},
	}

	cycle := EvaluateCycle(def, project, in)

	res, ok := cycle.Results[GasKey{Gas: CH4, InstrumentID: instrument}]
	if !ok {
		t.Fatal("expected a CH4 result")
	}
	lin := res.Fits[ModelLinear]
	if lin.Err != nil {
		t.Fatalf("linear fit failed: %v", lin.Err)
	}

	want := ((60.0 - 0.0) / 120.0) * 1e-6 * (101325.0 / (8.314 * 283.15)) * 0.4 / 1.0 * 1e6
	if math.Abs(lin.FluxUmolM2S-want)/math.Abs(want) > 0.001 {
		t.Errorf("FluxUmolM2S = %v, want ≈ %v (within 0.1%%)", lin.FluxUmolM2S, want)
	}
}
