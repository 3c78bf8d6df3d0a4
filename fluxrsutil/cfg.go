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

// Package fluxrsutil wires up the fluxrs CLI: flag/config plumbing around
// the core flux computation pipeline. None of the flux math lives here;
// this package only parses flags, resolves a Store, and calls into the
// fluxrs package.
package fluxrsutil

import (
	"fmt"

	"github.com/lnashier/viper"
	"github.com/spf13/cobra"
)

// Cfg holds the CLI's configuration state: a Viper instance plus the
// cobra command tree built around it.
type Cfg struct {
	*viper.Viper

	Root, versionCmd, projectCmd, projectCreateCmd *cobra.Command
	uploadCmd, runCmd, recalcCmd                   *cobra.Command
}

// InitializeConfig builds the command tree and binds the root's
// persistent --config and --db flags to the shared Viper instance.
// Subcommand flags are not bound to Viper; they are read from each
// command's own flag set.
func InitializeConfig() *Cfg {
	cfg := &Cfg{Viper: viper.New()}

	cfg.Root = &cobra.Command{
		Use:   "fluxrs",
		Short: "Compute closed-chamber gas-exchange fluxes.",
		Long: `fluxrs ingests time-series gas-concentration data from closed-chamber
flux measurements and computes gas-exchange fluxes per chamber cycle.
Use the subcommands specified below to manage projects, ingest data, and
run (or re-run) flux computation.

Configuration can be changed with a configuration file (--config), command
line flags, or FLUXRS_-prefixed environment variables.`,
		DisableAutoGenTag: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return setConfig(cfg)
		},
	}

	cfg.versionCmd = &cobra.Command{
		Use:               "version",
		Short:             "Print the version number",
		DisableAutoGenTag: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("fluxrs v" + Version)
		},
	}

	cfg.projectCmd = &cobra.Command{
		Use:               "project",
		Short:             "Manage projects.",
		DisableAutoGenTag: true,
	}
	cfg.projectCreateCmd = newProjectCreateCmd(cfg)
	cfg.uploadCmd = newUploadCmd(cfg)
	cfg.runCmd = newRunCmd(cfg)
	cfg.recalcCmd = newRecalcCmd(cfg)

	cfg.Root.AddCommand(cfg.versionCmd)
	cfg.Root.AddCommand(cfg.projectCmd)
	cfg.projectCmd.AddCommand(cfg.projectCreateCmd)
	cfg.Root.AddCommand(cfg.uploadCmd)
	cfg.Root.AddCommand(cfg.runCmd)
	cfg.Root.AddCommand(cfg.recalcCmd)

	cfg.Root.PersistentFlags().String("config", "", "path to a configuration file")
	cfg.Root.PersistentFlags().String("db", "fluxrs.db", "path to the fluxrs sqlite database")
	cfg.BindPFlag("config", cfg.Root.PersistentFlags().Lookup("config"))
	cfg.BindPFlag("db", cfg.Root.PersistentFlags().Lookup("db"))

	// Layer in FLUXRS_-prefixed environment variables below flags and
	// above the config file and defaults, matching the teacher's prefix
	// convention.
	cfg.SetEnvPrefix("FLUXRS")
	cfg.AutomaticEnv()

	return cfg
}

// setConfig reads in the configuration file named by --config, if any.
func setConfig(cfg *Cfg) error {
	if cfgpath := cfg.GetString("config"); cfgpath != "" {
		cfg.SetConfigFile(cfgpath)
		if err := cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("fluxrs: reading configuration file: %w", err)
		}
	}
	return nil
}
