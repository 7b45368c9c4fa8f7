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
	"github.com/jetsetilly/gatesim/curated"
	"github.com/jetsetilly/gatesim/hardware/core"
)

// Sentinal error patterns. Configuration errors are reported by AddDomain().
const (
	ZeroFrequency     = "clocks: zero frequency for domain (%s)"
	FrequencyTooHigh  = "clocks: frequency of domain (%s) is too high for resolution (%v)"
	TickMisaligned    = "clocks: tick (%d) does not divide half period (%d) of domain (%s)"
	DuplicateDomain   = "clocks: domain (%s) already exists"
	UnknownDomain     = "clocks: unknown domain (%s)"
	ZeroTick          = "clocks: tick must be greater than zero"
	NoClockSignal     = "clocks: domain (%s) has no clock signal"
	DomainSignalError = "clocks: domain (%s): %v"
)

// Scheduler advances simulated time and toggles the clock lines of the core.
type Scheduler struct {
	core core.Core

	resolution Resolution
	tick       Time
	now        Time

	domains   []*Domain
	byName    map[string]*Domain
	everyTick []TickHandler

	// reused for every call to Step()
	transitions []Transition
}

// NewScheduler is the preferred method of initialisation for the Scheduler
// type.
func NewScheduler(c core.Core, resolution Resolution, tick Time) (*Scheduler, error) {
	if tick == 0 {
		return nil, curated.Errorf(ZeroTick)
	}
	return &Scheduler{
		core:       c,
		resolution: resolution,
		tick:       tick,
		byName:     make(map[string]*Domain),
	}, nil
}

// AddDomain creates a new clock domain. Domains are toggled in the order they
// are added.
func (s *Scheduler) AddDomain(spec Spec) (*Domain, error) {
	if _, ok := s.byName[spec.Name]; ok {
		return nil, curated.Errorf(DuplicateDomain, spec.Name)
	}
	if spec.Freq == 0 {
		return nil, curated.Errorf(ZeroFrequency, spec.Name)
	}
	if spec.Clock == "" {
		return nil, curated.Errorf(NoClockSignal, spec.Name)
	}

	d := &Domain{
		Spec:       spec,
		HalfPeriod: HalfPeriod(s.resolution, spec.Freq),
	}

	if d.HalfPeriod == 0 {
		return nil, curated.Errorf(FrequencyTooHigh, spec.Name, s.resolution)
	}

	// the residue must be exactly zero otherwise the toggle boundary of the
	// domain will never coincide with a tick
	if d.HalfPeriod%s.tick != 0 {
		return nil, curated.Errorf(TickMisaligned, s.tick, d.HalfPeriod, spec.Name)
	}

	sigs, err := core.Resolve(s.core, spec.Clock, spec.Reset)
	if err != nil {
		return nil, curated.Errorf(DomainSignalError, spec.Name, err)
	}
	d.clk = sigs[0]
	d.rst = sigs[1]

	s.domains = append(s.domains, d)
	s.byName[spec.Name] = d

	return d, nil
}

// Domain returns the named domain.
func (s *Scheduler) Domain(name string) (*Domain, error) {
	if d, ok := s.byName[name]; ok {
		return d, nil
	}
	return nil, curated.Errorf(UnknownDomain, name)
}

// Domains returns every domain in the order they were added.
func (s *Scheduler) Domains() []*Domain {
	return s.domains
}

// Attach a handler to the active edge of the named domain. Handlers for the
// same domain are called in the order they were attached.
func (s *Scheduler) Attach(domain string, h Handler) error {
	d, err := s.Domain(domain)
	if err != nil {
		return err
	}
	d.handlers = append(d.handlers, h)
	return nil
}

// AttachEveryTick adds a handler that is called on every tick, regardless of
// clock activity. Used for peripherals that are not edge gated.
func (s *Scheduler) AttachEveryTick(h TickHandler) {
	s.everyTick = append(s.everyTick, h)
}

// Now returns the current simulated time.
func (s *Scheduler) Now() Time {
	return s.now
}

// Tick returns the size of a tick in time units.
func (s *Scheduler) Tick() Time {
	return s.tick
}

// Resolution returns the number of time units per second.
func (s *Scheduler) Resolution() Resolution {
	return s.resolution
}

// Transitions returns the list of transitions that happen at time t. The
// function does not depend on the state of the scheduler so it can be used to
// predict clock activity.
func (s *Scheduler) Transitions(t Time) []Transition {
	var trs []Transition
	for _, d := range s.domains {
		if t == 0 || t%d.HalfPeriod != 0 {
			continue
		}

		// every clock starts low so an odd numbered toggle is a rising edge
		e := Falling
		if (t/d.HalfPeriod)%2 == 1 {
			e = Rising
		}
		trs = append(trs, Transition{Domain: d, Edge: e, Time: t})
	}
	return trs
}

// Step advances simulated time by one tick and toggles every domain whose
// half period boundary has been reached. The core is evaluated after each
// toggle and the handlers of a domain are called if the toggle is the active
// edge. The core is evaluated once more at the end of the tick.
//
// An error from a handler does not end the tick early. Every domain is still
// toggled and every handler is still called, so that a fault in one
// peripheral cannot knock a domain out of phase. The first handler error is
// returned once the tick is complete. An error from the core ends the tick
// immediately.
//
// The returned slice is only valid until the next call to Step().
func (s *Scheduler) Step() ([]Transition, error) {
	s.now += s.tick
	s.transitions = s.transitions[:0]

	var handlerErr error

	for _, h := range s.everyTick {
		if err := h(s.now); err != nil && handlerErr == nil {
			handlerErr = err
		}
	}

	for _, d := range s.domains {
		if s.now%d.HalfPeriod != 0 {
			continue
		}

		d.level = !d.level
		d.toggles++
		core.SetBool(s.core, d.clk, d.level)
		if err := core.Evaluate(s.core); err != nil {
			return s.transitions, err
		}

		tr := Transition{Domain: d, Edge: Falling, Time: s.now}
		if d.level {
			tr.Edge = Rising
		}
		s.transitions = append(s.transitions, tr)

		if tr.Active() {
			for _, h := range d.handlers {
				if err := h(tr); err != nil && handlerErr == nil {
					handlerErr = err
				}
			}
		}
	}

	if err := core.Evaluate(s.core); err != nil {
		return s.transitions, err
	}

	return s.transitions, handlerErr
}

// SetResets sets the reset line of every domain that has one. The core is not
// evaluated.
func (s *Scheduler) SetResets(asserted bool) {
	for _, d := range s.domains {
		core.SetBool(s.core, d.rst, asserted)
	}
}

// Pulse toggles the clock of the named domain twice, evaluating the core after
// each toggle. Simulated time does not advance, and the toggles are not
// counted. Used to clock a domain while reset is held.
func (s *Scheduler) Pulse(domain string) error {
	d, err := s.Domain(domain)
	if err != nil {
		return err
	}
	for i := 0; i < 2; i++ {
		core.SetBool(s.core, d.clk, !core.GetBool(s.core, d.clk))
		if err := core.Evaluate(s.core); err != nil {
			return err
		}
	}
	return nil
}
