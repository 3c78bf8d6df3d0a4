package fluxrs

import "testing"

// TestProcessorRunInsertsAndIsIdempotent mirrors scenario E3: running the
// Processor twice over the same range yields zero new inserts the second
// time.
func TestProcessorRunInsertsAndIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	const instrument = "inst-1"
	const project = "p1"
	start := int64(1_700_000_000)

	_, err := s.db.Exec(`INSERT INTO chamber_metadata (chamber_id, shape, diameter, width, length, height, snow_height, project_link) VALUES (?,?,?,?,?,?,?,?)`,
		"c1", int(ChamberBox), 0.0, 1.0, 1.0, 0.4, 0.0, project)
	if err != nil {
		t.Fatalf("seeding chamber: %v", err)
	}
	_, err = s.db.Exec(`INSERT INTO meteo (datetime, temperature, pressure, project_link) VALUES (?,?,?,?)`,
		start, 10.0, 1013.25, project)
	if err != nil {
		t.Fatalf("seeding meteo: %v", err)
	}
	for sec := 0; sec < 120; sec++ {
		ch4 := 2000.0 + float64(sec)/120.0*60.0
		_, err = s.db.Exec(`INSERT INTO measurements (datetime, ch4, diag, instrument_link, project_link) VALUES (?,?,?,?,?)`,
			start+int64(sec), ch4, 0, instrument, project)
		if err != nil {
			t.Fatalf("seeding measurement: %v", err)
		}
	}

	proj := Project{
		Name:              project,
		MainGas:           CH4,
		MainInstrumentID:  instrument,
		DeadbandSeconds:   0,
		MinCalcLenSeconds: 60,
		Mode:              AfterDeadband,
	}
	defs := []CycleDef{{
		ProjectName: project,
		ChamberID:   "c1",
		Timing:      CycleTiming{StartTimeUTC: start, CloseOffset: 0, OpenOffset: 120, EndOffset: 120},
	}}

	bus := NewBus(16)
	go func() {
		for range bus.Events() {
		}
	}()
	proc := &Processor{Store: s, Bus: bus}

	if err := proc.Run(proj, defs, TimeRange{StartUTC: start, EndUTC: start + 120}); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM fluxes`).Scan(&count); err != nil {
		t.Fatalf("counting fluxes: %v", err)
	}
	if count == 0 {
		t.Fatal("expected at least one flux row after first run")
	}

	if err := proc.Run(proj, defs, TimeRange{StartUTC: start, EndUTC: start + 120}); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	var countAfter int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM fluxes`).Scan(&countAfter); err != nil {
		t.Fatalf("counting fluxes after rerun: %v", err)
	}
	if countAfter != count {
		t.Errorf("fluxes count changed on rerun: %d -> %d, want unchanged (idempotent)", count, countAfter)
	}
}
