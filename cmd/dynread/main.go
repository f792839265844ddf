/*
 * main.go, part of gophon
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License  as published by
 * the Free Software Foundation; either version 2.1 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program; if not, write to the Free Software
 * Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston,
 * MA 02110-1301, USA.
 */

// dynread reads ph.x dynamical-matrix files, stores them and plots them.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

// app holds the settings shared by all the commands.
type app struct {
	cfgFile string
	cfg     *Config
	verbose bool
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: DefaultConfig()}
	rootCmd := &cobra.Command{
		Use:   "dynread",
		Short: "Read Quantum ESPRESSO dynamical-matrix files",
		Long: `dynread reads the dynamical-matrix (dyn) files written by ph.x.
It can print their contents, keep them in a SQLite database and plot
the phonon branches of a series of q-points.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log.SetFlags(0)
			log.SetPrefix("dynread: ")
			log.SetOutput(cmd.ErrOrStderr())
			return a.loadConfig(cmd)
		},
	}
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "TOML configuration file")
	pf.Float64Var(&a.cfg.ZeroTol, "zero-tol", a.cfg.ZeroTol, "Tolerance to consider a q-point Gamma")
	pf.IntVar(&a.cfg.Workers, "workers", a.cfg.Workers, "Files read at the same time")
	pf.StringVar(&a.cfg.DB, "db", a.cfg.DB, "Database file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Report each file read")

	rootCmd.AddCommand(a.parseCmd())
	rootCmd.AddCommand(a.storeCmd())
	rootCmd.AddCommand(a.listCmd())
	rootCmd.AddCommand(a.showCmd())
	rootCmd.AddCommand(a.deleteCmd())
	rootCmd.AddCommand(a.plotCmd())
	rootCmd.AddCommand(a.dosCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
