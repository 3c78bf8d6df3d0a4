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

package fluxrsutil

import (
	"fmt"

	"github.com/kootepe/fluxrs-go"
	"github.com/spf13/cobra"
)

func newProjectCreateCmd(cfg *Cfg) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "create",
		Short:             "Create a new project.",
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			modeStr, _ := cmd.Flags().GetString("mode")
			mode, err := fluxrs.ParseWindowMode(modeStr)
			if err != nil {
				return err
			}
			gasStr, _ := cmd.Flags().GetString("main-gas")
			gas, err := fluxrs.ParseGasType(gasStr)
			if err != nil {
				return err
			}
			instrumentName, _ := cmd.Flags().GetString("instrument")
			instrument, err := fluxrs.LookupInstrumentModel(instrumentName)
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("name")
			serial, _ := cmd.Flags().GetString("serial")
			deadband, _ := cmd.Flags().GetFloat64("deadband")
			minCalcLen, _ := cmd.Flags().GetFloat64("min-calc-len")
			tz, _ := cmd.Flags().GetString("tz")
			p := fluxrs.Project{
				Name:              name,
				MainInstrument:    instrument,
				MainInstrumentID:  serial,
				MainGas:           gas,
				DeadbandSeconds:   deadband,
				MinCalcLenSeconds: minCalcLen,
				Mode:              mode,
				Timezone:          tz,
			}

			store, err := openStoreFromFlags(cfg, cmd)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.CreateProject(p); err != nil {
				return err
			}
			cmd.Printf("created project %q\n", p.Name)
			return nil
		},
	}
	cmd.Flags().String("name", "", "project name")
	cmd.Flags().String("instrument", "", "main instrument model")
	cmd.Flags().String("serial", "", "main instrument serial/id")
	cmd.Flags().String("main-gas", "co2", "main gas (co2, ch4, h2o, n2o)")
	cmd.Flags().Float64("deadband", 0, "deadband in seconds")
	cmd.Flags().Float64("min-calc-len", 60, "minimum calculation window length in seconds")
	cmd.Flags().String("mode", "pearsons", "window selection mode (pearsons, deadband)")
	cmd.Flags().String("tz", "UTC", "display timezone")
	return cmd
}

func newUploadCmd(cfg *Cfg) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "upload <cycle|gas|height|meteo>",
		Short:             "Upload rows of a given kind into a project.",
		Args:              cobra.ExactArgs(1),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Parsing vendor CSV/DAT rows is outside the core (see
			// SPEC_FULL.md's non-goals); a real deployment would plug a
			// reader here that calls into the Store's insert_or_ignore
			// operations per spec 4.I/4.G.
			return fmt.Errorf("fluxrs: upload %s: no reader registered for this kind", args[0])
		},
	}
	cmd.Flags().String("project", "", "project name")
	cmd.Flags().StringSlice("inputs", nil, "input file globs")
	cmd.Flags().Bool("newest", false, "only ingest files newer than the last upload")
	cmd.Flags().String("tz", "", "timezone to parse local timestamps in")
	return cmd
}

func newRunCmd(cfg *Cfg) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "run",
		Short:             "Run the cycle processor over a project's pending cycles.",
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStoreFromFlags(cfg, cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			projectName, _ := cmd.Flags().GetString("project")
			project, err := store.LoadProject(projectName)
			if err != nil {
				return err
			}
			start, _ := cmd.Flags().GetInt64("start")
			end, _ := cmd.Flags().GetInt64("end")
			rng := fluxrs.TimeRange{StartUTC: start, EndUTC: end}
			defs, _, err := store.LoadCycles(project.Name, rng.StartUTC, rng.EndUTC)
			if err != nil {
				return err
			}

			bus := fluxrs.NewBus(64)
			go logEvents(cmd, bus)
			proc := &fluxrs.Processor{Store: store, Bus: bus}
			if err := proc.Run(project, defs, rng); err != nil {
				return err
			}
			return printSummary(cmd, store, project.Name, rng)
		},
	}
	cmd.Flags().String("project", "", "project name")
	cmd.Flags().String("instrument", "", "instrument id (not read by run: cycles are evaluated against the project's main instrument)")
	cmd.Flags().Int64P("start", "s", 0, "start of time range (unix seconds)")
	cmd.Flags().Int64P("end", "e", 0, "end of time range (unix seconds)")
	cmd.Flags().Bool("newest", false, "not read by run: the cycles processed are those in --start/--end")
	return cmd
}

func newRecalcCmd(cfg *Cfg) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "recalc",
		Short:             "Recompute fluxes for already-persisted cycles.",
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStoreFromFlags(cfg, cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			projectName, _ := cmd.Flags().GetString("project")
			project, err := store.LoadProject(projectName)
			if err != nil {
				return err
			}
			start, _ := cmd.Flags().GetInt64("start")
			end, _ := cmd.Flags().GetInt64("end")
			archivedAt, _ := cmd.Flags().GetInt64("archived-at")
			rng := fluxrs.TimeRange{StartUTC: start, EndUTC: end}

			bus := fluxrs.NewBus(64)
			go logEvents(cmd, bus)
			recalc := &fluxrs.Recalculator{Store: store, Bus: bus}
			if err := recalc.Run(project, rng, archivedAt); err != nil {
				return err
			}
			return printSummary(cmd, store, project.Name, rng)
		},
	}
	cmd.Flags().String("project", "", "project name")
	cmd.Flags().Int64P("start", "s", 0, "start of time range (unix seconds)")
	cmd.Flags().Int64P("end", "e", 0, "end of time range (unix seconds)")
	cmd.Flags().Int64("archived-at", 0, "archival timestamp recorded on history rows (unix seconds)")
	return cmd
}

// printSummary renders the spec 4.L per-gas counts after a run or recalc
// completes. A failure here is logged, not returned: reporting never
// blocks the pipeline.
func printSummary(cmd *cobra.Command, store *fluxrs.Store, project string, rng fluxrs.TimeRange) error {
	records, err := store.LoadFluxSummary(project, rng.StartUTC, rng.EndUTC)
	if err != nil {
		cmd.PrintErrf("fluxrs: summarizing run: %v\n", err)
		return nil
	}
	cmd.Print(fluxrs.SummarizeRun(records))
	return nil
}

// openStoreFromFlags opens the sqlite store at the persistent --db flag,
// which is bound once on the root command and inherited by every
// subcommand (unlike the other, per-command flags, it is safe to read
// through Viper since only one copy of it ever exists).
func openStoreFromFlags(cfg *Cfg, cmd *cobra.Command) (*fluxrs.Store, error) {
	return fluxrs.OpenStore(cfg.GetString("db"))
}

// logEvents drains bus and prints a line per event until Done arrives.
func logEvents(cmd *cobra.Command, bus *fluxrs.Bus) {
	for e := range bus.Events() {
		switch e.Kind {
		case fluxrs.EventDone:
			return
		case fluxrs.EventDBFail, fluxrs.EventDataFail, fluxrs.EventRowFail, fluxrs.EventInsertFail:
			cmd.PrintErrf("fluxrs: %s: %v\n", e.Message, e.Err)
		case fluxrs.EventProgressRows, fluxrs.EventProgressRecalced, fluxrs.EventProgressDay, fluxrs.EventProgressGeneric:
			cmd.Printf("%s (%d/%d)\n", e.Message, e.Done, e.Total)
		default:
			if e.Message != "" {
				cmd.Println(e.Message)
			}
		}
	}
}
