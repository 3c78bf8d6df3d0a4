package fluxrs

import "testing"

func TestHeightDataSetNearestPrevious(t *testing.T) {
	ds := NewHeightDataSet([]HeightRecord{
		{ChamberID: "c1", TimestampUTC: 1000, HeightM: 0.3},
		{ChamberID: "c1", TimestampUTC: 2000, HeightM: 0.35},
		{ChamberID: "c2", TimestampUTC: 1500, HeightM: 0.5},
	})

	rec, ok := ds.NearestPreviousHeight("c1", 1999)
	if !ok || rec.HeightM != 0.3 {
		t.Errorf("got %+v ok=%v, want the t=1000 record", rec, ok)
	}

	rec, ok = ds.NearestPreviousHeight("c1", 2000)
	if !ok || rec.HeightM != 0.35 {
		t.Errorf("exact timestamp match should be eligible: got %+v ok=%v", rec, ok)
	}

	if _, ok = ds.NearestPreviousHeight("c1", 999); ok {
		t.Error("expected ok=false when target precedes all records")
	}

	if _, ok = ds.NearestPreviousHeight("missing", 5000); ok {
		t.Error("expected ok=false for unknown chamber")
	}
}

func TestHeightDataSetEmpty(t *testing.T) {
	ds := NewHeightDataSet(nil)
	if _, ok := ds.NearestPreviousHeight("c1", 0); ok {
		t.Error("expected ok=false for an empty dataset")
	}
}
