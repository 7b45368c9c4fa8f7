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

package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/gatesim/debugger/govern"
	"github.com/jetsetilly/gatesim/hardware"
	"github.com/jetsetilly/gatesim/hardware/clocks"
	"github.com/jetsetilly/gatesim/paths"
)

// Result of a performance check.
type Result struct {
	// wall clock duration of the measurement
	Duration time.Duration

	// number of ticks and the simulated time covered by the measurement
	Ticks     uint64
	Simulated clocks.Time

	Resolution clocks.Resolution
}

// TicksPerSecond is the number of ticks simulated every wall clock second.
func (r Result) TicksPerSecond() float64 {
	return float64(r.Ticks) / r.Duration.Seconds()
}

// Slowdown is how many times slower than real time the simulation runs.
func (r Result) Slowdown() float64 {
	sim := r.Resolution.Seconds(r.Simulated)
	if sim == 0 {
		return 0
	}
	return r.Duration.Seconds() / sim
}

func (r Result) String() string {
	return fmt.Sprintf("%.0f ticks/s (%d ticks in %.2f seconds) %.0fx slower than real time",
		r.TicksPerSecond(), r.Ticks, r.Duration.Seconds(), r.Slowdown())
}

// Check the performance of the harness. The harness will run for the
// specified duration of wall clock time, or until it is done, and will create
// a cpu, memory profile, a trace (or a combination of those) as defined by
// the Profile argument.
func Check(output io.Writer, h *hardware.Harness, profile Profile, duration time.Duration) (Result, error) {
	var r Result

	if h.State() == govern.Reset {
		if err := h.Reset(); err != nil {
			return r, err
		}
	}

	startTime := h.Scheduler.Now()
	var ticks uint64

	runner := func() error {
		timesUp := time.After(duration)

		// only check for end of measurement period every PerformanceBrake
		// ticks. checking the channel is relatively expensive
		performanceBrake := 0

		start := time.Now()
		defer func() {
			r.Duration = time.Since(start)
		}()

		return h.Run(func() (govern.State, error) {
			ticks++
			performanceBrake++
			if performanceBrake >= hardware.PerformanceBrake {
				performanceBrake = 0
				select {
				case <-timesUp:
					return govern.Ending, nil
				default:
				}
			}
			return govern.Running, nil
		})
	}

	name := ""
	if env := h.Env(); env != nil {
		name = env.Profile
	}

	if err := RunProfiler(profile, paths.UniqueFilename("perf", name), runner); err != nil {
		return r, err
	}

	r.Ticks = ticks
	r.Simulated = h.Scheduler.Now() - startTime
	r.Resolution = h.Scheduler.Resolution()

	if output != nil {
		fmt.Fprintln(output, r.String())
	}

	return r, nil
}
