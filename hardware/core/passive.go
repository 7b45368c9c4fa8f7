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

package core

// Passive is an implementation of the Core interface with no logic of its
// own. Signal values only change when they are Set(), either by the harness or
// by the optional OnEvaluate function.
//
// Useful for testing peripherals in isolation and for building very simple
// cores.
type Passive struct {
	*Bank

	// called on every Evaluate(). can be nil
	OnEvaluate func() error

	// the number of times Evaluate() has been called
	Evaluations int

	// value returned by Finished()
	Done bool
}

// NewPassive creates a Passive core with the named signals. All signals are 32
// bits wide unless the name is listed in the widths map.
func NewPassive(widths map[string]int, names ...string) *Passive {
	p := &Passive{Bank: NewBank()}
	for _, n := range names {
		w, ok := widths[n]
		if !ok {
			w = 32
		}
		p.Define(n, w)
	}
	return p
}

// Evaluate implements the Core interface.
func (p *Passive) Evaluate() error {
	p.Evaluations++
	if p.OnEvaluate != nil {
		return p.OnEvaluate()
	}
	return nil
}

// Finished implements the Core interface.
func (p *Passive) Finished() bool {
	return p.Done
}

// MustLookup is the same as Lookup() but panics if the signal does not exist.
// Intended for tests.
func (p *Passive) MustLookup(name string) Signal {
	s, err := p.Lookup(name)
	if err != nil {
		panic(err)
	}
	return s
}
