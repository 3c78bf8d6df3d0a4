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

	// Register the sqlite driver.
	_ "github.com/mattn/go-sqlite3"
)

// schemaVersion is the current PRAGMA user_version this binary expects.
// Migrations run in order until the database's stored version reaches it.
const schemaVersion = 1

// Store owns the embedded relational database: schema, migrations, and
// the idempotent upsert/insert/update contracts the Processor and
// Recalculator rely on. Only the driver touches Store; workers never
// open their own connection (see SPEC_FULL.md 5, "Shared resources").
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if absent) the sqlite database at path and
// runs any pending migrations.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("fluxrs: opening store %s: %w", path, err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("fluxrs: reading schema version: %w", err)
	}
	if version >= schemaVersion {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("fluxrs: beginning migration: %w", err)
	}
	defer tx.Rollback()

	if version < 1 {
		if err := migrateV1(tx); err != nil {
			return fmt.Errorf("fluxrs: migration v1: %w", err)
		}
	}

	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("fluxrs: bumping schema version: %w", err)
	}
	return tx.Commit()
}

func migrateV1(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS projects (
			name TEXT PRIMARY KEY,
			tz TEXT NOT NULL DEFAULT 'UTC',
			deadband REAL NOT NULL DEFAULT 0,
			min_calc_len REAL NOT NULL DEFAULT 0,
			mode INTEGER NOT NULL DEFAULT 2,
			main_instrument_link TEXT,
			main_gas INTEGER NOT NULL DEFAULT 0,
			current INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS instruments (
			id TEXT NOT NULL,
			model TEXT NOT NULL,
			serial TEXT NOT NULL,
			project_link TEXT NOT NULL,
			UNIQUE (serial, project_link)
		)`,
		`CREATE TABLE IF NOT EXISTS chamber_metadata (
			chamber_id TEXT NOT NULL,
			shape INTEGER NOT NULL,
			diameter REAL NOT NULL DEFAULT 0,
			width REAL NOT NULL DEFAULT 0,
			length REAL NOT NULL DEFAULT 0,
			height REAL NOT NULL DEFAULT 0,
			snow_height REAL NOT NULL DEFAULT 0,
			project_link TEXT NOT NULL,
			PRIMARY KEY (chamber_id, project_link)
		)`,
		`CREATE TABLE IF NOT EXISTS data_files (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			file_name TEXT NOT NULL,
			data_type TEXT NOT NULL,
			project_link TEXT NOT NULL,
			uploaded_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS measurements (
			datetime INTEGER NOT NULL,
			co2 REAL, ch4 REAL, h2o REAL, n2o REAL,
			diag INTEGER NOT NULL DEFAULT 0,
			instrument_link TEXT NOT NULL,
			project_link TEXT NOT NULL,
			file_link INTEGER,
			UNIQUE (datetime, instrument_link, project_link)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_measurements_lookup
			ON measurements (project_link, datetime, instrument_link)`,
		`CREATE INDEX IF NOT EXISTS idx_measurements_instrument
			ON measurements (instrument_link)`,
		`CREATE TABLE IF NOT EXISTS meteo (
			datetime INTEGER NOT NULL,
			temperature REAL NOT NULL,
			pressure REAL NOT NULL,
			project_link TEXT NOT NULL,
			file_link INTEGER,
			UNIQUE (datetime, project_link)
		)`,
		`CREATE TABLE IF NOT EXISTS height (
			chamber_id TEXT NOT NULL,
			datetime INTEGER NOT NULL,
			height REAL NOT NULL,
			project_link TEXT NOT NULL,
			file_link INTEGER,
			UNIQUE (chamber_id, project_link, datetime)
		)`,
		`CREATE TABLE IF NOT EXISTS cycles (
			chamber_id TEXT NOT NULL,
			start_time INTEGER NOT NULL,
			close_offset REAL NOT NULL,
			open_offset REAL NOT NULL,
			end_offset REAL NOT NULL,
			snow_depth REAL NOT NULL DEFAULT 0,
			manual_adjusted INTEGER NOT NULL DEFAULT 0,
			manual_valid INTEGER NOT NULL DEFAULT 0,
			project_link TEXT NOT NULL,
			instrument_link TEXT NOT NULL,
			UNIQUE (start_time, chamber_id, project_link)
		)`,
		fluxesTableDDL("fluxes"),
		fluxHistoryTableDDL(),
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt, err)
		}
	}
	return nil
}

func fluxHistoryTableDDL() string {
	return `CREATE TABLE IF NOT EXISTS flux_history (
			archived_at INTEGER NOT NULL,
			instrument_serial TEXT NOT NULL,
			start_time INTEGER NOT NULL,
			project_link TEXT NOT NULL,
			chamber_id TEXT NOT NULL,
			gas INTEGER NOT NULL,
			window_start REAL, window_end REAL,
			lin_intercept REAL, lin_slope REAL, lin_r2 REAL, lin_adj_r2 REAL, lin_sigma REAL, lin_rmse REAL, lin_cv REAL, lin_aic REAL, lin_pvalue REAL, lin_flux REAL,
			roblin_intercept REAL, roblin_slope REAL, roblin_r2 REAL, roblin_adj_r2 REAL, roblin_sigma REAL, roblin_rmse REAL, roblin_cv REAL, roblin_aic REAL, roblin_pvalue REAL, roblin_flux REAL,
			poly_a0 REAL, poly_a1 REAL, poly_a2 REAL, poly_r2 REAL, poly_adj_r2 REAL, poly_sigma REAL, poly_rmse REAL, poly_cv REAL, poly_aic REAL, poly_flux REAL,
			exp_a REAL, exp_b REAL, exp_r2 REAL, exp_adj_r2 REAL, exp_sigma REAL, exp_rmse REAL, exp_cv REAL, exp_aic REAL, exp_flux REAL,
			temperature REAL, temperature_source INTEGER, pressure REAL, pressure_source INTEGER, meteo_distance INTEGER,
			error_code INTEGER NOT NULL DEFAULT 0,
			manual_adjusted INTEGER NOT NULL DEFAULT 0,
			manual_valid INTEGER NOT NULL DEFAULT 0,
			is_valid INTEGER NOT NULL DEFAULT 0
		)`
}

func fluxesTableDDL(name string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			instrument_serial TEXT NOT NULL,
			start_time INTEGER NOT NULL,
			project_link TEXT NOT NULL,
			chamber_id TEXT NOT NULL,
			gas INTEGER NOT NULL,
			window_start REAL, window_end REAL,
			lin_intercept REAL, lin_slope REAL, lin_r2 REAL, lin_adj_r2 REAL, lin_sigma REAL, lin_rmse REAL, lin_cv REAL, lin_aic REAL, lin_pvalue REAL, lin_flux REAL,
			roblin_intercept REAL, roblin_slope REAL, roblin_r2 REAL, roblin_adj_r2 REAL, roblin_sigma REAL, roblin_rmse REAL, roblin_cv REAL, roblin_aic REAL, roblin_pvalue REAL, roblin_flux REAL,
			poly_a0 REAL, poly_a1 REAL, poly_a2 REAL, poly_r2 REAL, poly_adj_r2 REAL, poly_sigma REAL, poly_rmse REAL, poly_cv REAL, poly_aic REAL, poly_flux REAL,
			exp_a REAL, exp_b REAL, exp_r2 REAL, exp_adj_r2 REAL, exp_sigma REAL, exp_rmse REAL, exp_cv REAL, exp_aic REAL, exp_flux REAL,
			temperature REAL, temperature_source INTEGER, pressure REAL, pressure_source INTEGER, meteo_distance INTEGER,
			error_code INTEGER NOT NULL DEFAULT 0,
			manual_adjusted INTEGER NOT NULL DEFAULT 0,
			manual_valid INTEGER NOT NULL DEFAULT 0,
			is_valid INTEGER NOT NULL DEFAULT 0,
			UNIQUE (instrument_serial, start_time, project_link, gas)
		)`, name)
}
