package regress

import (
	"math"
	"testing"
)

func TestFitLinearRecoversExactFit(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4, 5}
	a, b := 2.5, -1.3
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = a + b*xi
	}
	got, err := FitLinear(x, y)
	if err != nil {
		t.Fatalf("FitLinear: %v", err)
	}
	if math.Abs(got.Intercept-a) > 1e-9 {
		t.Errorf("Intercept = %v, want %v", got.Intercept, a)
	}
	if math.Abs(got.Slope-b) > 1e-9 {
		t.Errorf("Slope = %v, want %v", got.Slope, b)
	}
	if math.Abs(got.R2-1) > 1e-9 {
		t.Errorf("R2 = %v, want 1", got.R2)
	}
}

func TestFitLinearErrors(t *testing.T) {
	if _, err := FitLinear([]float64{1, 2}, []float64{1}); err != ErrLengthMismatch {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
	if _, err := FitLinear([]float64{1}, []float64{1}); err != ErrNotEnoughPoints {
		t.Errorf("expected ErrNotEnoughPoints, got %v", err)
	}
	if _, err := FitLinear([]float64{1, 1, 1}, []float64{1, 2, 3}); err != ErrDegenerateX {
		t.Errorf("expected ErrDegenerateX, got %v", err)
	}
}
