package regress

import (
	"math"
	"testing"
)

func TestFitQuadraticRecoversExactFit(t *testing.T) {
	a0, a1, a2 := 1.0, 2.0, -0.5
	x := []float64{-2, -1, 0, 1, 2, 3}
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = a0 + a1*xi + a2*xi*xi
	}
	got, err := FitQuadratic(x, y)
	if err != nil {
		t.Fatalf("FitQuadratic: %v", err)
	}
	if math.Abs(got.A0-a0) > 1e-7 || math.Abs(got.A1-a1) > 1e-7 || math.Abs(got.A2-a2) > 1e-7 {
		t.Errorf("got (%v,%v,%v), want (%v,%v,%v)", got.A0, got.A1, got.A2, a0, a1, a2)
	}
}

func TestFitQuadraticNotEnoughPoints(t *testing.T) {
	if _, err := FitQuadratic([]float64{0, 1}, []float64{0, 1}); err != ErrNotEnoughPoints {
		t.Errorf("expected ErrNotEnoughPoints, got %v", err)
	}
}
