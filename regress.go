// This file is part of Gatesim.
//
// Gatesim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gatesim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gatesim.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"github.com/jetsetilly/gatesim/hardware/clocks"
	"github.com/jetsetilly/gatesim/profiles"
	"github.com/jetsetilly/gatesim/regression"
	"github.com/spf13/cobra"
)

func regressCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "regress",
		Short: "Manage and run the regression database",
		Long: `The regression database records the output digests of a profile run for a
fixed time budget. Running the database repeats each run and compares the
digests with the recorded digests.`,
	}

	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the regression database (default in the config directory)")

	db := func() (string, error) {
		if dbPath != "" {
			return dbPath, nil
		}
		return regression.DefaultDBPath()
	}

	cmd.AddCommand(regressAddCmd(db))
	cmd.AddCommand(regressListCmd(db))
	cmd.AddCommand(regressDeleteCmd(db))
	cmd.AddCommand(regressRunCmd(db))

	return cmd
}

func regressAddCmd(db func() (string, error)) *cobra.Command {
	var overrides string
	var budget uint64
	var mode string
	var notes string

	cmd := &cobra.Command{
		Use:   "add [profile]",
		Short: "Run a profile and add the result to the regression database",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pth, err := db()
			if err != nil {
				return err
			}

			m, err := regression.ParseDigestMode(mode)
			if err != nil {
				return err
			}

			reg := &regression.RunRegression{
				Profile:   profiles.Default,
				Overrides: overrides,
				Budget:    clocks.Time(budget),
				Mode:      m,
				Notes:     notes,
			}
			if len(args) > 0 {
				reg.Profile = args[0]
			}

			return regression.RegressAdd(cmd.OutOrStdout(), pth, reg)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&overrides, "overrides", "o", "", "TOML file of profile overrides")
	fl.Uint64VarP(&budget, "budget", "b", 0, "simulated time budget (0 = profile default)")
	fl.StringVarP(&mode, "mode", "m", "all", "digests to compare (video, serial, audio, all)")
	fl.StringVar(&notes, "notes", "", "notes for the entry")

	return cmd
}

func regressListCmd(db func() (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the entries in the regression database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pth, err := db()
			if err != nil {
				return err
			}
			return regression.RegressList(cmd.OutOrStdout(), pth)
		},
	}
}

func regressDeleteCmd(db func() (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "delete key",
		Short: "Delete an entry from the regression database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pth, err := db()
			if err != nil {
				return err
			}
			return regression.RegressDelete(cmd.OutOrStdout(), cmd.InOrStdin(), pth, args[0])
		},
	}
}

func regressRunCmd(db func() (string, error)) *cobra.Command {
	var verbose bool
	var failOnError bool

	cmd := &cobra.Command{
		Use:   "run [key...]",
		Short: "Run the entries in the regression database",
		RunE: func(cmd *cobra.Command, args []string) error {
			pth, err := db()
			if err != nil {
				return err
			}
			return regression.RegressRun(cmd.OutOrStdout(), pth, verbose, failOnError, args)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print the reason for failures and errors")
	cmd.Flags().BoolVar(&failOnError, "fail-on-error", false, "stop at the first error")

	return cmd
}
