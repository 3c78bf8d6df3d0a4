/*
Copyright © 2026 the fluxrs authors.
This file is part of fluxrs.

fluxrs is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

fluxrs is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with fluxrs.  If not, see <http://www.gnu.org/licenses/>.
*/

package fluxrs

import (
	"database/sql"
	"fmt"
)

// InsertOrIgnoreCycles inserts cycle definitions, silently skipping any
// whose (start_time, chamber_id, project_link) already exists.
func (s *Store) InsertOrIgnoreCycles(project string, defs []CycleDef, instrumentSerial string) (inserted, skipped int, err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("fluxrs: inserting cycles: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO cycles
		(chamber_id, start_time, close_offset, open_offset, end_offset, snow_depth, manual_adjusted, manual_valid, project_link, instrument_link)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, 0, fmt.Errorf("fluxrs: preparing cycle insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range defs {
		res, err := stmt.Exec(d.ChamberID, d.Timing.StartTimeUTC, d.Timing.CloseOffset, d.Timing.OpenOffset, d.Timing.EndOffset, 0.0, boolToInt(d.ManualAdjusted), boolToInt(d.ManualValid), project, instrumentSerial)
		if err != nil {
			return inserted, skipped, fmt.Errorf("fluxrs: inserting cycle: %w", err)
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			skipped++
		} else {
			inserted++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("fluxrs: committing cycle insert: %w", err)
	}
	return inserted, skipped, nil
}

// InsertFluxesIgnoreDuplicates persists fluxes for one chunk of evaluated
// cycles in a single transaction. Any (instrument_serial, start_time,
// project, gas) key that already exists is left unchanged (testable
// property #6: idempotent persistence).
func (s *Store) InsertFluxesIgnoreDuplicates(records []FluxRecord) (inserted, skipped int, err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("fluxrs: inserting fluxes: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertFluxesSQL("fluxes"))
	if err != nil {
		return 0, 0, fmt.Errorf("fluxrs: preparing flux insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		res, err := stmt.Exec(fluxRecordArgs(r)...)
		if err != nil {
			return inserted, skipped, fmt.Errorf("fluxrs: inserting flux row: %w", err)
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			skipped++
		} else {
			inserted++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("fluxrs: committing flux insert: %w", err)
	}
	return inserted, skipped, nil
}

// UpdateFluxes overwrites existing flux rows, archiving the prior value of
// each into flux_history with archivedAtUTC first. Both writes happen in
// one transaction: either both succeed or neither does (testable property
// #7: history on update).
func (s *Store) UpdateFluxes(records []FluxRecord, archivedAtUTC int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("fluxrs: updating fluxes: %w", err)
	}
	defer tx.Rollback()

	for _, r := range records {
		if err := archiveFluxRow(tx, r, archivedAtUTC); err != nil {
			return err
		}
		if err := overwriteFluxRow(tx, r); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("fluxrs: committing flux update: %w", err)
	}
	return nil
}

func archiveFluxRow(tx *sql.Tx, r FluxRecord, archivedAtUTC int64) error {
	row := tx.QueryRow(`SELECT COUNT(*) FROM fluxes WHERE instrument_serial = ? AND start_time = ? AND project_link = ? AND gas = ?`,
		r.InstrumentSerial, r.StartTimeUTC, r.ProjectName, r.Gas.AsInt())
	var n int
	if err := row.Scan(&n); err != nil {
		return fmt.Errorf("fluxrs: checking for existing flux row: %w", err)
	}
	if n == 0 {
		return nil
	}
	_, err := tx.Exec(`INSERT INTO flux_history (
			archived_at, instrument_serial, start_time, project_link, chamber_id, gas, window_start, window_end,
			lin_intercept, lin_slope, lin_r2, lin_adj_r2, lin_sigma, lin_rmse, lin_cv, lin_aic, lin_pvalue, lin_flux,
			roblin_intercept, roblin_slope, roblin_r2, roblin_adj_r2, roblin_sigma, roblin_rmse, roblin_cv, roblin_aic, roblin_pvalue, roblin_flux,
			poly_a0, poly_a1, poly_a2, poly_r2, poly_adj_r2, poly_sigma, poly_rmse, poly_cv, poly_aic, poly_flux,
			exp_a, exp_b, exp_r2, exp_adj_r2, exp_sigma, exp_rmse, exp_cv, exp_aic, exp_flux,
			temperature, temperature_source, pressure, pressure_source, meteo_distance,
			error_code, manual_adjusted, manual_valid, is_valid
		)
		SELECT ?, instrument_serial, start_time, project_link, chamber_id, gas, window_start, window_end,
			lin_intercept, lin_slope, lin_r2, lin_adj_r2, lin_sigma, lin_rmse, lin_cv, lin_aic, lin_pvalue, lin_flux,
			roblin_intercept, roblin_slope, roblin_r2, roblin_adj_r2, roblin_sigma, roblin_rmse, roblin_cv, roblin_aic, roblin_pvalue, roblin_flux,
			poly_a0, poly_a1, poly_a2, poly_r2, poly_adj_r2, poly_sigma, poly_rmse, poly_cv, poly_aic, poly_flux,
			exp_a, exp_b, exp_r2, exp_adj_r2, exp_sigma, exp_rmse, exp_cv, exp_aic, exp_flux,
			temperature, temperature_source, pressure, pressure_source, meteo_distance,
			error_code, manual_adjusted, manual_valid, is_valid
		FROM fluxes
		WHERE instrument_serial = ? AND start_time = ? AND project_link = ? AND gas = ?`,
		archivedAtUTC, r.InstrumentSerial, r.StartTimeUTC, r.ProjectName, r.Gas.AsInt())
	if err != nil {
		return fmt.Errorf("fluxrs: archiving prior flux row: %w", err)
	}
	return nil
}

func overwriteFluxRow(tx *sql.Tx, r FluxRecord) error {
	_, err := tx.Exec(`DELETE FROM fluxes WHERE instrument_serial = ? AND start_time = ? AND project_link = ? AND gas = ?`,
		r.InstrumentSerial, r.StartTimeUTC, r.ProjectName, r.Gas.AsInt())
	if err != nil {
		return fmt.Errorf("fluxrs: clearing prior flux row: %w", err)
	}
	_, err = tx.Exec(insertFluxesSQL("fluxes"), fluxRecordArgs(r)...)
	if err != nil {
		return fmt.Errorf("fluxrs: writing updated flux row: %w", err)
	}
	return nil
}

func insertFluxesSQL(table string) string {
	return fmt.Sprintf(`INSERT OR IGNORE INTO %s (
		instrument_serial, start_time, project_link, chamber_id, gas, window_start, window_end,
		lin_intercept, lin_slope, lin_r2, lin_adj_r2, lin_sigma, lin_rmse, lin_cv, lin_aic, lin_pvalue, lin_flux,
		roblin_intercept, roblin_slope, roblin_r2, roblin_adj_r2, roblin_sigma, roblin_rmse, roblin_cv, roblin_aic, roblin_pvalue, roblin_flux,
		poly_a0, poly_a1, poly_a2, poly_r2, poly_adj_r2, poly_sigma, poly_rmse, poly_cv, poly_aic, poly_flux,
		exp_a, exp_b, exp_r2, exp_adj_r2, exp_sigma, exp_rmse, exp_cv, exp_aic, exp_flux,
		temperature, temperature_source, pressure, pressure_source, meteo_distance,
		error_code, manual_adjusted, manual_valid, is_valid
	) VALUES (?,?,?,?,?,?,?, ?,?,?,?,?,?,?,?,?,?, ?,?,?,?,?,?,?,?,?,?, ?,?,?,?,?,?,?,?,?,?, ?,?,?,?,?,?,?,?,?, ?,?,?,?,?, ?,?,?,?)`, table)
}

func fluxRecordArgs(r FluxRecord) []interface{} {
	var dist interface{}
	if r.MeteoDistanceSec != nil {
		dist = *r.MeteoDistanceSec
	}
	return []interface{}{
		r.InstrumentSerial, r.StartTimeUTC, r.ProjectName, r.ChamberID, r.Gas.AsInt(), r.WindowStart, r.WindowEnd,
		r.Linear.Intercept, r.Linear.Slope, r.Linear.R2, r.Linear.AdjR2, r.Linear.Sigma, r.Linear.RMSE, r.Linear.CV, r.Linear.AIC, r.Linear.PValue, r.Linear.FluxUmolM2S,
		r.RobLin.Intercept, r.RobLin.Slope, r.RobLin.R2, r.RobLin.AdjR2, r.RobLin.Sigma, r.RobLin.RMSE, r.RobLin.CV, r.RobLin.AIC, r.RobLin.PValue, r.RobLin.FluxUmolM2S,
		r.Poly.A0, r.Poly.A1, r.Poly.A2, r.Poly.R2, r.Poly.AdjR2, r.Poly.Sigma, r.Poly.RMSE, r.Poly.CV, r.Poly.AIC, r.Poly.FluxUmolM2S,
		r.Exp.A, r.Exp.B, r.Exp.R2, r.Exp.AdjR2, r.Exp.Sigma, r.Exp.RMSE, r.Exp.CV, r.Exp.AIC, r.Exp.FluxUmolM2S,
		r.TemperatureC, int(r.TemperatureSrc), r.PressureHPa, int(r.PressureSrc), dist,
		int(r.ErrorCode.Uint16()), boolToInt(r.ManualAdjusted), boolToInt(r.ManualValid), boolToInt(r.IsValid),
	}
}

// CreateProject inserts a new project row. The name must be unique.
func (s *Store) CreateProject(p Project) error {
	_, err := s.db.Exec(`INSERT INTO projects (name, tz, deadband, min_calc_len, mode, main_instrument_link, main_gas) VALUES (?,?,?,?,?,?,?)`,
		p.Name, p.Timezone, p.DeadbandSeconds, p.MinCalcLenSeconds, p.Mode.AsInt(), p.MainInstrumentID, p.MainGas.AsInt())
	if err != nil {
		return fmt.Errorf("fluxrs: creating project %s: %w", p.Name, err)
	}
	return nil
}

// LoadProject reads a project's stored configuration by name.
func (s *Store) LoadProject(name string) (Project, error) {
	row := s.db.QueryRow(`SELECT name, tz, deadband, min_calc_len, mode, main_instrument_link, main_gas FROM projects WHERE name = ?`, name)
	var p Project
	var mode, gas int
	if err := row.Scan(&p.Name, &p.Timezone, &p.DeadbandSeconds, &p.MinCalcLenSeconds, &mode, &p.MainInstrumentID, &gas); err != nil {
		return Project{}, fmt.Errorf("fluxrs: loading project %s: %w", name, err)
	}
	var err error
	if p.Mode, err = WindowModeFromInt(mode); err != nil {
		return Project{}, err
	}
	if p.MainGas, err = GasTypeFromInt(gas); err != nil {
		return Project{}, err
	}
	return p, nil
}

// LoadChambers returns the chamber registry for a project, keyed by
// chamber_id.
func (s *Store) LoadChambers(project string) (map[string]Chamber, error) {
	rows, err := s.db.Query(`SELECT chamber_id, shape, diameter, width, length, height, snow_height FROM chamber_metadata WHERE project_link = ?`, project)
	if err != nil {
		return nil, fmt.Errorf("fluxrs: loading chambers: %w", err)
	}
	defer rows.Close()

	out := make(map[string]Chamber)
	for rows.Next() {
		var c Chamber
		var shape int
		if err := rows.Scan(&c.ID, &shape, &c.Diameter, &c.Width, &c.Length, &c.Height, &c.SnowHeight); err != nil {
			return nil, fmt.Errorf("fluxrs: scanning chamber row: %w", err)
		}
		c.Kind = ChamberShapeType(shape)
		out[c.ID] = c
	}
	return out, rows.Err()
}

// LoadMeteo returns every meteo record for a project within [startUnix,
// endUnix].
func (s *Store) LoadMeteo(project string, startUnix, endUnix int64) (*MeteoDataSet, error) {
	rows, err := s.db.Query(`SELECT datetime, temperature, pressure FROM meteo WHERE project_link = ? AND datetime BETWEEN ? AND ?`, project, startUnix, endUnix)
	if err != nil {
		return nil, fmt.Errorf("fluxrs: loading meteo: %w", err)
	}
	defer rows.Close()

	var recs []MeteoRecord
	for rows.Next() {
		var r MeteoRecord
		if err := rows.Scan(&r.TimestampUTC, &r.TemperatureC, &r.PressureHPa); err != nil {
			return nil, fmt.Errorf("fluxrs: scanning meteo row: %w", err)
		}
		recs = append(recs, r)
	}
	return NewMeteoDataSet(recs), rows.Err()
}

// LoadHeight returns every height record for a project.
func (s *Store) LoadHeight(project string) (*HeightDataSet, error) {
	rows, err := s.db.Query(`SELECT chamber_id, datetime, height FROM height WHERE project_link = ?`, project)
	if err != nil {
		return nil, fmt.Errorf("fluxrs: loading height: %w", err)
	}
	defer rows.Close()

	var recs []HeightRecord
	for rows.Next() {
		var r HeightRecord
		if err := rows.Scan(&r.ChamberID, &r.TimestampUTC, &r.HeightM); err != nil {
			return nil, fmt.Errorf("fluxrs: scanning height row: %w", err)
		}
		recs = append(recs, r)
	}
	return NewHeightDataSet(recs), rows.Err()
}

// LoadGasSamples returns every gas sample for a project's instrument
// within [startUnix, endUnix], suitable for NewGasDataSet.
func (s *Store) LoadGasSamples(project, instrument string, startUnix, endUnix int64) ([]GasSample, error) {
	rows, err := s.db.Query(`SELECT datetime, co2, ch4, h2o, n2o, diag FROM measurements
		WHERE project_link = ? AND instrument_link = ? AND datetime BETWEEN ? AND ?`, project, instrument, startUnix, endUnix)
	if err != nil {
		return nil, fmt.Errorf("fluxrs: loading gas samples: %w", err)
	}
	defer rows.Close()

	var out []GasSample
	for rows.Next() {
		var ts int64
		var co2, ch4, h2o, n2o sql.NullFloat64
		var diag int64
		if err := rows.Scan(&ts, &co2, &ch4, &h2o, &n2o, &diag); err != nil {
			return nil, fmt.Errorf("fluxrs: scanning measurement row: %w", err)
		}
		s := GasSample{TimestampUTC: ts, Diag: diag, Values: make(map[GasKey]float64)}
		addIfValid(s.Values, GasKey{Gas: CO2, InstrumentID: instrument}, co2)
		addIfValid(s.Values, GasKey{Gas: CH4, InstrumentID: instrument}, ch4)
		addIfValid(s.Values, GasKey{Gas: H2O, InstrumentID: instrument}, h2o)
		addIfValid(s.Values, GasKey{Gas: N2O, InstrumentID: instrument}, n2o)
		out = append(out, s)
	}
	return out, rows.Err()
}

func addIfValid(m map[GasKey]float64, key GasKey, v sql.NullFloat64) {
	if v.Valid {
		m[key] = v.Float64
	}
}

// LoadCycles returns every persisted cycle for a project within
// [startUnix, endUnix], along with the instrument serial each was
// evaluated against, for the Recalculator.
func (s *Store) LoadCycles(project string, startUnix, endUnix int64) ([]CycleDef, []string, error) {
	rows, err := s.db.Query(`SELECT chamber_id, start_time, close_offset, open_offset, end_offset, manual_adjusted, manual_valid, instrument_link
		FROM cycles WHERE project_link = ? AND start_time BETWEEN ? AND ?`, project, startUnix, endUnix)
	if err != nil {
		return nil, nil, fmt.Errorf("fluxrs: loading cycles: %w", err)
	}
	defer rows.Close()

	var defs []CycleDef
	var instruments []string
	for rows.Next() {
		var d CycleDef
		var manualAdjusted, manualValid int
		var instrument string
		if err := rows.Scan(&d.ChamberID, &d.Timing.StartTimeUTC, &d.Timing.CloseOffset, &d.Timing.OpenOffset, &d.Timing.EndOffset, &manualAdjusted, &manualValid, &instrument); err != nil {
			return nil, nil, fmt.Errorf("fluxrs: scanning cycle row: %w", err)
		}
		d.ProjectName = project
		d.ManualAdjusted = manualAdjusted != 0
		d.ManualValid = manualValid != 0
		defs = append(defs, d)
		instruments = append(instruments, instrument)
	}
	return defs, instruments, rows.Err()
}

// ExistingWindow returns the persisted calculation window for one
// (instrument, start_time, project, gas) flux row, used by the
// Recalculator to preserve windows across re-evaluation.
func (s *Store) ExistingWindow(project string, startUnix int64, instrument string, gas GasType) (CalcWindow, bool, error) {
	row := s.db.QueryRow(`SELECT window_start, window_end FROM fluxes WHERE project_link = ? AND start_time = ? AND instrument_serial = ? AND gas = ?`,
		project, startUnix, instrument, gas.AsInt())
	var start, end sql.NullFloat64
	if err := row.Scan(&start, &end); err != nil {
		if err == sql.ErrNoRows {
			return CalcWindow{}, false, nil
		}
		return CalcWindow{}, false, fmt.Errorf("fluxrs: loading existing flux row: %w", err)
	}
	if !start.Valid || !end.Valid {
		return CalcWindow{}, false, nil
	}
	return CalcWindow{Start: start.Float64, End: end.Float64}, true, nil
}

// ExistingValidity returns the persisted is_valid flag for a (project,
// start_time, instrument, gas) flux row, used by the Recalculator to
// preserve an operator's manual_valid override.
func (s *Store) ExistingValidity(project string, startUnix int64, instrument string, gas GasType) (bool, error) {
	row := s.db.QueryRow(`SELECT is_valid FROM fluxes WHERE project_link = ? AND start_time = ? AND instrument_serial = ? AND gas = ?`,
		project, startUnix, instrument, gas.AsInt())
	var valid int
	if err := row.Scan(&valid); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("fluxrs: loading existing validity: %w", err)
	}
	return valid != 0, nil
}

// LoadFluxSummary returns the (gas, is_valid) of every flux row in
// project within the range, for the reporting layer's per-gas counts
// (spec 4.L); it does not hydrate full FluxRecords since the summary
// only needs gas and validity.
func (s *Store) LoadFluxSummary(project string, startUnix, endUnix int64) ([]FluxRecord, error) {
	rows, err := s.db.Query(`SELECT gas, is_valid FROM fluxes WHERE project_link = ? AND start_time BETWEEN ? AND ?`,
		project, startUnix, endUnix)
	if err != nil {
		return nil, fmt.Errorf("fluxrs: loading flux summary: %w", err)
	}
	defer rows.Close()

	var out []FluxRecord
	for rows.Next() {
		var gasInt, valid int
		if err := rows.Scan(&gasInt, &valid); err != nil {
			return nil, fmt.Errorf("fluxrs: scanning flux summary row: %w", err)
		}
		gas, err := GasTypeFromInt(gasInt)
		if err != nil {
			return nil, fmt.Errorf("fluxrs: loading flux summary: %w", err)
		}
		out = append(out, FluxRecord{Gas: gas, IsValid: valid != 0})
	}
	return out, rows.Err()
}

// DeleteByFileLink removes every row across samples/meteo/height tied to
// fileID, cascading from a data_files deletion.
func (s *Store) DeleteByFileLink(fileID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("fluxrs: deleting by file link: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"measurements", "meteo", "height"} {
		if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE file_link = ?", table), fileID); err != nil {
			return fmt.Errorf("fluxrs: deleting from %s: %w", table, err)
		}
	}
	if _, err := tx.Exec(`DELETE FROM data_files WHERE id = ?`, fileID); err != nil {
		return fmt.Errorf("fluxrs: deleting data_files row: %w", err)
	}
	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
