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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/debugger/govern"
	"github.com/jetsetilly/gatesim/profiles"
	"github.com/jetsetilly/gatesim/test"
)

func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	output := &strings.Builder{}
	cmd := rootCmd(strings.NewReader(input), output)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return output.String(), err
}

func TestProfilesCommand(t *testing.T) {
	out, err := execute(t, "", "profiles")
	test.DemandSuccess(t, err)
	for _, p := range profiles.List() {
		test.ExpectSuccess(t, strings.Contains(out, p.Name), p.Name)
	}
	test.ExpectSuccess(t, strings.Contains(out, "(default)"))
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.HasPrefix(out, "Gatesim "))
}

func TestUnknownProfile(t *testing.T) {
	_, err := execute(t, "", "run", "atari")
	test.ExpectSuccess(t, curated.Is(err, profiles.UnknownProfile))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	wav := filepath.Join(dir, "stimulus.wav")

	out, err := execute(t, "", "run", "selftest",
		"--frames", dir, "--image-format", "png", "--wav", wav)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(out, "frames: 2\n"))
	test.ExpectSuccess(t, strings.Contains(out, "RAM bandwidth: "))

	for _, fn := range []string{"frame00.png", "frame01.png", "stimulus.wav"} {
		_, err := os.Stat(filepath.Join(dir, fn))
		test.ExpectSuccess(t, err, fn)
	}
}

func TestRunTrace(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "trace.txt")

	out, err := execute(t, "", "run", "selftest", "--budget", "5000", "--trace", fn)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(out, "time: 5000ns"))

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.HasPrefix(string(data), "#1 "))
}

func TestOverridesFlag(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "overrides.toml")
	test.DemandSuccess(t, os.WriteFile(fn, []byte("budget = 2000\n"), 0o644))

	out, err := execute(t, "", "run", "selftest", "--overrides", fn)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(out, "time: 2000ns"))
}

func TestDebug(t *testing.T) {
	out, err := execute(t, "step 100\nstatus\nquit\n", "debug", "selftest")
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(out, "time: 100 (Paused)\n"))
	test.ExpectSuccess(t, strings.Contains(out, "time: 100ns"))
}

func TestRegressCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "regressionDB")

	out, err := execute(t, "", "regress", "add", "selftest", "--db", db, "--budget", "2000", "--mode", "video")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, out, "added: 000 [run] selftest budget=2000 [video]\n")

	out, err = execute(t, "", "regress", "run", "--db", db)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, strings.HasSuffix(out, "regression tests: 1 succeed, 0 fail\n"))

	_, err = execute(t, "", "regress", "add", "--db", db, "--mode", "both")
	test.ExpectFailure(t, err)

	out, err = execute(t, "y\n", "regress", "delete", "0", "--db", db)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, strings.HasSuffix(out, "deleted test #0 from regression database\n"))

	out, err = execute(t, "", "regress", "list", "--db", db)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, out, "database is empty\n")
}

// the sinks are flushed when a run ends with an error
func TestAbandon(t *testing.T) {
	trace := filepath.Join(t.TempDir(), "trace.txt")
	hf := harnessFlags{trace: trace, budget: 1000}

	s, err := hf.build(&strings.Builder{}, []string{"selftest"}, govern.ModeBatch)
	test.DemandSuccess(t, err)
	defer s.close()

	test.DemandSuccess(t, s.harness.Reset())
	for i := 0; i < 10; i++ {
		test.DemandSuccess(t, s.harness.Step())
	}

	stop := curated.Errorf("stopped")
	err = s.abandon(stop)
	test.ExpectSuccess(t, curated.Is(err, "stopped"))
	test.ExpectEquality(t, s.harness.State(), govern.Finished)

	b, err := os.ReadFile(trace)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.HasPrefix(string(b), "#1 "))
}
