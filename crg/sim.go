// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package crg

import (
	"strconv"

	"github.com/db47h/socsim"
	"github.com/db47h/socsim/hwlib"
	"github.com/pkg/errors"
)

// SyncStages is the number of flip-flops in the reset synchronizer, i.e. the
// number of sys clock edges between the end of the power-on count and the
// release of the sys domain reset.
//
const SyncStages = 2

// steps per clock cycle. The only combinational logic between clocked parts
// is a single inverter.
const simSPC = 4

// Sim runs a CRG in a circuit simulation, one oscillator cycle at a time.
//
type Sim struct {
	crg      *CRG
	c        *socsim.Circuit
	sysRst   bool
	porDone  bool
	count    uint64
	released uint64
}

// Simulate returns a new simulation of the CRG, in its power-up state. See
// socsim.NewCircuit for the meaning of workers.
//
// Callers must call Dispose once the simulation is no longer needed.
//
func (c *CRG) Simulate(workers int) (*Sim, error) {
	s := &Sim{crg: c, sysRst: true, count: c.HoldCycles()}
	bus := PinPORCount + "[0.." + strconv.Itoa(c.bits-1) + "]"
	cc, err := socsim.NewCircuit(workers, simSPC, socsim.Parts{
		c.Chip()(PinSysRst + "=sys_rst, " + PinPORDone + "=por_done, " + bus + "=" + bus),
		hwlib.Output(func(b bool) { s.sysRst = b })("in=sys_rst"),
		hwlib.Output(func(b bool) { s.porDone = b })("in=por_done"),
		hwlib.OutputN(c.bits, func(v uint64) { s.count = v })("in[0.." + strconv.Itoa(c.bits-1) + "]=" + bus),
	})
	if err != nil {
		return nil, errors.Wrap(err, "crg simulation")
	}
	s.c = cc
	return s, nil
}

// ReleaseCycle returns the oscillator cycle at which the sys domain reset is
// released.
//
func (c *CRG) ReleaseCycle() uint64 {
	return c.HoldCycles() + SyncStages
}

// Cycle runs the simulation for one oscillator cycle.
//
func (s *Sim) Cycle() {
	s.c.TickTock()
	if !s.sysRst && s.released == 0 {
		s.released = uint64(s.c.Cycles())
	}
}

// Cycles returns the number of oscillator cycles run so far.
//
func (s *Sim) Cycles() uint64 { return uint64(s.c.Cycles()) }

// Reset returns the state of the sys domain reset.
//
func (s *Sim) Reset() bool { return s.sysRst }

// Count returns the value of the power-on counter.
//
func (s *Sim) Count() uint64 { return s.count }

// PORDone returns the done output of the power-on counter.
//
func (s *Sim) PORDone() bool { return s.porDone }

// State returns the state of the power-on counter.
//
func (s *Sim) State() hwlib.ResetState {
	if s.porDone {
		return hwlib.Released
	}
	return hwlib.Holding
}

// Released returns the cycle at which the sys domain reset was released, and
// whether it has been released yet.
//
func (s *Sim) Released() (uint64, bool) {
	return s.released, s.released != 0
}

// RunUntilReleased runs the simulation until the sys domain reset is released
// and returns the release cycle. It fails if the reset is still asserted after
// max cycles.
//
func (s *Sim) RunUntilReleased(max uint64) (uint64, error) {
	for s.released == 0 {
		if s.Cycles() >= max {
			return 0, errors.Errorf("sys reset still asserted after %d cycles", max)
		}
		s.Cycle()
	}
	return s.released, nil
}

// Dispose releases the resources used by the simulation.
//
func (s *Sim) Dispose() {
	s.c.Dispose()
}
