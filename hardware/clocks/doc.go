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

// Package clocks advances the clock domains of the simulated core in a single
// global time base.
//
// Simulated time is an integer count of time units since the start of the
// simulation. The number of time units per second is the Resolution (usually
// one unit per nanosecond). Time advances in fixed sized ticks.
//
// Each domain toggles its clock line every half period, where the half period
// is the resolution divided by twice the domain frequency, truncated to a
// whole number of time units. A domain toggles at time T when T is an exact
// multiple of its half period. The test is made against the global timestamp
// every tick, so domains with unrelated frequencies never drift relative to one
// another however long the simulation runs.
//
// The tick must divide every half period exactly. A tick that doesn't is
// rejected by AddDomain() because otherwise the toggle boundary would never be
// hit.
//
// Every domain has an active edge (rising or falling). Handlers attached to a
// domain are called on the active edge only, after the core has been evaluated
// with the new clock level.
package clocks
