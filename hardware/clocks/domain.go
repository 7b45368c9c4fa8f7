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

package clocks

import (
	"github.com/jetsetilly/gatesim/hardware/core"
)

// Edge is a clock transition.
type Edge int

// List of valid Edge values.
const (
	Rising Edge = iota
	Falling
)

func (e Edge) String() string {
	switch e {
	case Rising:
		return "rising"
	case Falling:
		return "falling"
	}
	return "unknown edge"
}

// Spec is the configuration of a clock domain.
type Spec struct {
	Name string
	Freq Freq

	// the edge on which peripherals attached to the domain are serviced.
	// the default is the Rising edge.
	ActiveEdge Edge

	// names of the clock and reset signals in the core. the reset signal is
	// optional
	Clock string
	Reset string
}

// Domain is a clock domain of the core.
type Domain struct {
	Spec

	// half period in time units
	HalfPeriod Time

	level   bool
	toggles uint64

	clk core.Signal
	rst core.Signal

	handlers []Handler
}

// Level returns the current level of the domain's clock line.
func (d *Domain) Level() bool {
	return d.level
}

// Toggles returns the number of times the clock has toggled.
func (d *Domain) Toggles() uint64 {
	return d.toggles
}

// Cycles returns the number of complete clock cycles.
func (d *Domain) Cycles() uint64 {
	return d.toggles / 2
}

// Transition describes a change in the clock level of a domain.
type Transition struct {
	Domain *Domain
	Edge   Edge
	Time   Time
}

// Active returns true if the transition is on the domain's active edge.
func (tr Transition) Active() bool {
	return tr.Edge == tr.Domain.ActiveEdge
}

// Handler is called on the active edge of a domain. The core has been
// evaluated with the new clock level by the time the handler is called.
type Handler func(tr Transition) error

// TickHandler is called on every tick, before any clock domain is toggled.
type TickHandler func(now Time) error
