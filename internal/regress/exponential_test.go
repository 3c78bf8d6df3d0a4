package regress

import (
	"math"
	"testing"
)

func TestFitExponentialRecoversExactFit(t *testing.T) {
	a, b := 2.0, 0.3
	x := []float64{0, 1, 2, 3, 4}
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = a * math.Exp(b*xi)
	}
	got, err := FitExponential(x, y)
	if err != nil {
		t.Fatalf("FitExponential: %v", err)
	}
	if math.Abs(got.A-a) > 1e-6 {
		t.Errorf("A = %v, want %v", got.A, a)
	}
	if math.Abs(got.B-b) > 1e-6 {
		t.Errorf("B = %v, want %v", got.B, b)
	}
}

func TestFitExponentialRejectsNonPositiveY(t *testing.T) {
	x := []float64{0, 1, 2}
	y := []float64{1, 0, 2}
	if _, err := FitExponential(x, y); err != ErrNonPositiveY {
		t.Errorf("expected ErrNonPositiveY, got %v", err)
	}
}
