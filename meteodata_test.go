package fluxrs

import "testing"

// TestMeteoDataSetNearest mirrors testable property #9.
func TestMeteoDataSetNearest(t *testing.T) {
	ds := NewMeteoDataSet([]MeteoRecord{
		{TimestampUTC: 1000, TemperatureC: 5, PressureHPa: 1000},
		{TimestampUTC: 1100, TemperatureC: 15, PressureHPa: 1010},
	})

	rec, dist, ok := ds.Nearest(1030)
	if !ok {
		t.Fatal("expected a nearest record")
	}
	if rec.TemperatureC != 5 || rec.PressureHPa != 1000 {
		t.Errorf("got %+v, want the t=1000 record (closer, dist=30)", rec)
	}
	if dist != 30 {
		t.Errorf("dist = %v, want 30", dist)
	}

	_, _, ok = ds.Nearest(1000 - MaxMeteoDistanceSeconds - 1)
	if ok {
		t.Error("expected ok=false beyond MaxMeteoDistanceSeconds")
	}
}

func TestMeteoDataSetEmpty(t *testing.T) {
	ds := NewMeteoDataSet(nil)
	if _, _, ok := ds.Nearest(0); ok {
		t.Error("expected ok=false for an empty dataset")
	}
}
