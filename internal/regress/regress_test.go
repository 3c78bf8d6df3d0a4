package regress

import (
	"math"
	"testing"
)

func TestAICMonotonicity(t *testing.T) {
	n, k := 100, 1
	aic1 := aicFromRSS(10, n, k)
	aic2 := aicFromRSS(20, n, k)
	if !(aic1 < aic2) {
		t.Errorf("AIC(rss=10)=%v should be less than AIC(rss=20)=%v", aic1, aic2)
	}
}

func TestAICDegenerate(t *testing.T) {
	if got := aicFromRSS(0, 10, 1); !math.IsInf(got, 1) {
		t.Errorf("aicFromRSS(0, ...) = %v, want +Inf", got)
	}
	if got := aicFromRSS(-1, 10, 1); !math.IsInf(got, 1) {
		t.Errorf("aicFromRSS(-1, ...) = %v, want +Inf", got)
	}
}

func TestMedian(t *testing.T) {
	cases := []struct {
		in   []float64
		want float64
	}{
		{[]float64{1, 2, 3}, 2},
		{[]float64{1, 2, 3, 4}, 2.5},
		{[]float64{5}, 5},
	}
	for _, c := range cases {
		if got := median(c.in); got != c.want {
			t.Errorf("median(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestWeightHuber(t *testing.T) {
	if got := weightHuber(0.5, 1.0); got != 1.0 {
		t.Errorf("weightHuber(0.5, 1.0) = %v, want 1.0", got)
	}
	if got := weightHuber(2.0, 1.0); got != 0.5 {
		t.Errorf("weightHuber(2.0, 1.0) = %v, want 0.5", got)
	}
}
