package regress

import (
	"math"
	"testing"
)

func TestFitRobustBasicFit(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{1, 2, 3, 4} // y = x + 1
	got, err := FitRobust(x, y, 1.0, 10)
	if err != nil {
		t.Fatalf("FitRobust: %v", err)
	}
	if math.Abs(got.Slope-1.0) > 1e-6 {
		t.Errorf("Slope = %v, want ~1.0", got.Slope)
	}
	if math.Abs(got.Intercept-1.0) > 1e-6 {
		t.Errorf("Intercept = %v, want ~1.0", got.Intercept)
	}
}

// TestFitRobustToleratesOutlier mirrors testable property #3: 50 points on
// y=x plus one point (100,1000) should still recover a slope within 0.1 of
// 1.0 and an intercept within 1.0 of 0, while a plain OLS fit on the same
// data is dragged far off by the outlier.
func TestFitRobustToleratesOutlier(t *testing.T) {
	x := make([]float64, 0, 51)
	y := make([]float64, 0, 51)
	for i := 0; i < 50; i++ {
		xi := float64(i)
		x = append(x, xi)
		y = append(y, xi)
	}
	x = append(x, 100)
	y = append(y, 1000)

	robust, err := FitRobust(x, y, 0.1, 10)
	if err != nil {
		t.Fatalf("FitRobust: %v", err)
	}
	if math.Abs(robust.Slope-1.0) > 0.1 {
		t.Errorf("robust Slope = %v, want within 0.1 of 1.0", robust.Slope)
	}
	if math.Abs(robust.Intercept) > 1.0 {
		t.Errorf("robust Intercept = %v, want within 1.0 of 0", robust.Intercept)
	}

	ols, err := FitLinear(x, y)
	if err != nil {
		t.Fatalf("FitLinear: %v", err)
	}
	if math.Abs(ols.Slope-robust.Slope) < 0.1 {
		t.Errorf("expected OLS slope %v to be pulled well away from the robust slope %v by the outlier", ols.Slope, robust.Slope)
	}
}

func TestFitRobustRejectsNonFinite(t *testing.T) {
	x := []float64{0, 1, math.NaN()}
	y := []float64{0, 1, 2}
	if _, err := FitRobust(x, y, 1.0, 10); err == nil {
		t.Error("expected an error for non-finite input")
	}
}

func TestMAD(t *testing.T) {
	got := mad([]float64{1, 2, 3, 4, 5})
	want := 1.0 / 0.6745
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("mad = %v, want %v", got, want)
	}
}
