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

package performance_test

import (
	"strings"
	"testing"
	"time"

	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/environment"
	"github.com/jetsetilly/gatesim/hardware"
	"github.com/jetsetilly/gatesim/hardware/clocks"
	"github.com/jetsetilly/gatesim/hardware/core"
	"github.com/jetsetilly/gatesim/performance"
	"github.com/jetsetilly/gatesim/test"
)

func TestParseProfile(t *testing.T) {
	p, err := performance.ParseProfile("cpu,mem")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU|performance.ProfileMem)

	p, err = performance.ParseProfile("all")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU|performance.ProfileMem|performance.ProfileTrace)

	p, err = performance.ParseProfile("")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileNone)

	_, err = performance.ParseProfile("cpu,disk")
	test.ExpectSuccess(t, curated.Is(err, performance.UnknownProfile))
}

func TestCheck(t *testing.T) {
	env := environment.NewEnvironment("test", "test")
	env.Quiet = true

	h, err := hardware.NewHarness(env, hardware.Config{
		Budget: 20000,
		Domains: []clocks.Spec{
			{Name: "sync", Freq: clocks.MHz, Clock: "clk_sync"},
		},
	}, core.NewPassive(nil, "clk_sync"), hardware.Sinks{})
	test.DemandSuccess(t, err)

	// the budget is reached long before the duration has elapsed
	w := &strings.Builder{}
	r, err := performance.Check(w, h, performance.ProfileNone, time.Minute)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, r.Ticks, uint64(20000))
	test.ExpectEquality(t, r.Simulated, clocks.Time(20000))
	test.ExpectSuccess(t, strings.Contains(w.String(), "ticks/s"))
}
