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

package terminal_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/jetsetilly/gatesim/debugger/terminal"
	"github.com/jetsetilly/gatesim/test"
)

func TestSyncWriter(t *testing.T) {
	b := &strings.Builder{}
	w := terminal.NewSyncWriter(b)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				n, err := w.Write([]byte("abc\n"))
				test.ExpectSuccess(t, err)
				test.ExpectEquality(t, n, 4)
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	test.ExpectEquality(t, len(lines), 800)
	for _, l := range lines {
		test.ExpectEquality(t, l, "abc")
	}
}
