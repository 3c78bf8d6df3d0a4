package fluxrs

import (
	"math"
	"testing"
)

func TestPearsonCorrelationPreconditions(t *testing.T) {
	if _, ok := PearsonCorrelation([]float64{1, 2, 3}, []float64{1, 2, 3}); ok {
		t.Error("expected ok=false for len<5")
	}
	if _, ok := PearsonCorrelation([]float64{1, 2, 3, 4, 5}, []float64{1, 2, 3}); ok {
		t.Error("expected ok=false for mismatched lengths")
	}
	if _, ok := PearsonCorrelation([]float64{1, 2, 3, 4, math.NaN()}, []float64{1, 2, 3, 4, 5}); ok {
		t.Error("expected ok=false for non-finite input")
	}

	x := []float64{1, 2, 3, 4, 5}
	pos := []float64{2, 4, 6, 8, 10}
	r, ok := PearsonCorrelation(x, pos)
	if !ok || math.Abs(r-1.0) > 1e-9 {
		t.Errorf("perfect positive correlation: r=%v, ok=%v", r, ok)
	}

	neg := []float64{10, 8, 6, 4, 2}
	r, ok = PearsonCorrelation(x, neg)
	if !ok || math.Abs(r-1.0) > 1e-9 {
		t.Errorf("perfect negative correlation should still report |r|=1: r=%v, ok=%v", r, ok)
	}
}

func TestSelectWindowAfterDeadband(t *testing.T) {
	w, err := SelectWindow(AfterDeadband, nil, nil, 10, 110, 5, 30, false, CalcWindow{})
	if err != nil {
		t.Fatalf("SelectWindow: %v", err)
	}
	if w.Start != 15 || w.End != 110 {
		t.Errorf("got %+v, want Start=15 End=110", w)
	}
}

func TestSelectWindowAfterDeadbandTooShort(t *testing.T) {
	_, err := SelectWindow(AfterDeadband, nil, nil, 10, 40, 5, 60, false, CalcWindow{})
	if err != ErrWindowTooShort {
		t.Errorf("expected ErrWindowTooShort, got %v", err)
	}
}

func TestSelectWindowManualAdjustedSkipsSelection(t *testing.T) {
	persisted := CalcWindow{Start: 42, End: 99}
	w, err := SelectWindow(BestPearsonsR, nil, nil, 10, 110, 5, 30, true, persisted)
	if err != nil {
		t.Fatalf("SelectWindow: %v", err)
	}
	if w != persisted {
		t.Errorf("got %+v, want persisted window %+v unchanged", w, persisted)
	}
}

// TestSelectWindowBestPearsonsR mirrors scenario E2: 300 samples at 1 Hz
// over the closed interval [30,270], flat until t=100, then rising
// linearly to t=200, flat after. The selector must land strictly inside
// [100,200].
func TestSelectWindowBestPearsonsR(t *testing.T) {
	closedStart, closedEnd := 30.0, 270.0
	deadband, minCalcLen := 10.0, 60.0

	var ts, ys []float64
	for sec := 0; sec < 300; sec++ {
		tt := float64(sec)
		var y float64
		switch {
		case tt < 100:
			y = 0
		case tt <= 200:
			y = tt - 100
		default:
			y = 100
		}
		ts = append(ts, tt)
		ys = append(ys, y)
	}

	w, err := SelectWindow(BestPearsonsR, ts, ys, closedStart, closedEnd, deadband, minCalcLen, false, CalcWindow{})
	if err != nil {
		t.Fatalf("SelectWindow: %v", err)
	}
	if w.Start < 100 || w.End > 200 {
		t.Errorf("window %+v is not strictly inside [100,200]", w)
	}
	if w.End-w.Start < minCalcLen {
		t.Errorf("window %+v shorter than min_calc_len %v", w, minCalcLen)
	}
}
