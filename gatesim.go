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
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/jetsetilly/gatesim/debugger"
	"github.com/jetsetilly/gatesim/debugger/govern"
	"github.com/jetsetilly/gatesim/debugger/terminal"
	"github.com/jetsetilly/gatesim/hardware"
	"github.com/jetsetilly/gatesim/hardware/core"
	"github.com/jetsetilly/gatesim/logger"
	"github.com/jetsetilly/gatesim/performance"
	"github.com/jetsetilly/gatesim/profiles"
	"github.com/jetsetilly/gatesim/statsview"
	"github.com/jetsetilly/gatesim/version"
	"github.com/spf13/cobra"
)

const logTag = "gatesim"

func main() {
	if err := rootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "* %v\n", err)
		os.Exit(1)
	}
}

func rootCmd(input io.Reader, output io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gatesim",
		Short: "Clock accurate co-simulation harness for multi-clock-domain designs",
		Long: `Gatesim drives a core through simulated time, emulating the burst memory,
audio codec, display, firmware flash and UART that the core expects, and
captures the output for verification.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetIn(input)
	cmd.SetOut(output)

	cmd.AddCommand(runCmd())
	cmd.AddCommand(debugCmd())
	cmd.AddCommand(perfCmd())
	cmd.AddCommand(regressCmd())
	cmd.AddCommand(profilesCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

func profilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the deployment profiles",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, p := range profiles.List() {
				def := ""
				if p.Name == profiles.Default {
					def = " (default)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s%s\n", p.Name, p.Description, def)
			}
		},
	}
}

func runCmd() *cobra.Command {
	var hf harnessFlags

	cmd := &cobra.Command{
		Use:   "run [profile]",
		Short: "Run a profile to completion",
		Long: `Run the harness until the time budget is exhausted or the core reports that
it has finished. Serial output is written to stdout as it is captured. A
report is printed at the end of the run.

Examples:
  # run the default profile
  gatesim run

  # capture frames of the small test profile as PNG files
  gatesim run selftest --frames out --image-format png

  # replay a recording into the first injection channel and record the stimulus
  gatesim run dsp --replay tone.wav --wav stimulus.wav`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := hf.build(cmd.OutOrStdout(), args, govern.ModeBatch)
			if err != nil {
				return err
			}
			defer s.close()

			if err := batch(s.harness); err != nil {
				return s.abandon(err)
			}
			return s.report(cmd.OutOrStdout())
		},
	}

	hf.register(cmd)

	return cmd
}

// batch runs the harness until it is done or an interrupt signal is
// received. faults are logged and the run continues.
func batch(h *hardware.Harness) error {
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	performanceBrake := 0
	interrupted := false

	continueCheck := func() (govern.State, error) {
		performanceBrake++
		if performanceBrake >= hardware.PerformanceBrake {
			performanceBrake = 0
			select {
			case <-intChan:
				interrupted = true
				return govern.Ending, nil
			default:
			}
		}
		return govern.Running, nil
	}

	for {
		err := h.Run(continueCheck)
		if err == nil {
			break
		}
		var f core.Fault
		if !errors.As(err, &f) {
			return err
		}
		logger.Logf(h.Env(), logTag, "%v", err)
	}

	if interrupted {
		logger.Logf(h.Env(), logTag, "interrupted at %d", h.Scheduler.Now())
	}

	return nil
}

func debugCmd() *cobra.Command {
	var hf harnessFlags

	cmd := &cobra.Command{
		Use:   "debug [profile]",
		Short: "Run a profile under the control of the debugging console",
		Long: `Start the harness paused and read commands from stdin. Type HELP for the list
of commands. While the simulation is running any key pauses it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// the console writes to the output while the serial capture of
			// the running harness is also writing to it
			out := terminal.NewSyncWriter(cmd.OutOrStdout())

			s, err := hf.build(out, args, govern.ModeDebugger)
			if err != nil {
				return err
			}
			defer s.close()

			agent := debugger.NewAgent(s.harness)
			driven := make(chan error, 1)
			go func() {
				driven <- agent.Drive()
			}()

			con := terminal.NewConsole(agent, cmd.InOrStdin(), out)
			if f, ok := cmd.InOrStdin().(*os.File); ok {
				if err := con.AttachTerminal(f); err != nil {
					logger.Logf(s.env, logTag, "console: %v", err)
				}
			}

			serveErr := con.Serve()
			if serveErr != nil {
				logger.Logf(s.env, logTag, "console: %v", serveErr)
			}
			if err := <-driven; err != nil {
				return s.abandon(err)
			}

			return s.report(out)
		},
	}

	hf.register(cmd)

	return cmd
}

func perfCmd() *cobra.Command {
	var hf harnessFlags
	var duration time.Duration
	var profile string

	cmd := &cobra.Command{
		Use:   "perf [profile]",
		Short: "Measure the speed of the harness",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := performance.ParseProfile(profile)
			if err != nil {
				return err
			}

			s, err := hf.build(io.Discard, args, govern.ModeBatch)
			if err != nil {
				return err
			}
			defer s.close()

			_, err = performance.Check(cmd.OutOrStdout(), s.harness, p, duration)
			if err != nil {
				return s.abandon(err)
			}
			return s.report(io.Discard)
		},
	}

	hf.register(cmd)
	cmd.Flags().DurationVarP(&duration, "duration", "d", 5*time.Second, "wall clock duration of the measurement")
	cmd.Flags().StringVar(&profile, "profile", "none", "profiles to create (cpu, mem, trace, all, none)")

	return cmd
}

// launch the stats server if the address is not empty.
func launchStats(output io.Writer, addr string) {
	if addr != "" {
		statsview.Launch(output, addr)
	}
}
