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

// Package govern defines the types that describe the current condition of
// the harness. The two conditions are Mode and State.
//
// State is also the return value of the continue check function that is
// passed to the harness's Run() function. In that context it is a request:
// Running and Stepping ask for another tick, Paused asks the harness to
// consult the continue check again without advancing time and Ending asks
// for the run to stop.
package govern
