// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/socsim"
)

// MaxCounterBits is the maximum width of a PowerOnCounter.
//
const MaxCounterBits = 63

// ResetState is the state of a power-on reset counter.
//
type ResetState int

// Power-on reset states. Released is terminal for a power cycle.
//
const (
	Holding ResetState = iota
	Released
)

func (s ResetState) String() string {
	switch s {
	case Holding:
		return "HOLDING"
	case Released:
		return "RELEASED"
	}
	return "ResetState(" + strconv.Itoa(int(s)) + ")"
}

// PowerOnCounter is a saturating down counter. It starts at its maximum value
// 2^width-1, is decremented once per clock tick while non-zero and then stays
// at zero until the next power cycle.
//
type PowerOnCounter struct {
	width uint
	v     uint64
}

// NewPowerOnCounter returns a new counter of the given bit width in its
// power-up state. It panics if width is 0 or greater than MaxCounterBits.
//
func NewPowerOnCounter(width uint) *PowerOnCounter {
	if width == 0 || width > MaxCounterBits {
		panic("invalid power-on counter width " + strconv.Itoa(int(width)))
	}
	return &PowerOnCounter{width: width, v: 1<<width - 1}
}

// Width returns the counter width in bits.
func (p *PowerOnCounter) Width() uint { return p.width }

// Value returns the current counter value.
func (p *PowerOnCounter) Value() uint64 { return p.v }

// Tick advances the counter by one clock tick.
//
func (p *PowerOnCounter) Tick() {
	if p.v != 0 {
		p.v--
	}
}

// Done returns true once the counter has reached zero.
func (p *PowerOnCounter) Done() bool { return p.v == 0 }

// State returns Holding while the counter is non-zero, Released afterwards.
//
func (p *PowerOnCounter) State() ResetState {
	if p.v == 0 {
		return Released
	}
	return Holding
}

// POR returns a power-on reset counter of the given width, clocked by clk.
//
//	Outputs: done, count[bits]
//	Function: count = max(count(t-1) - 1, 0), count(0) = 2^bits-1
//	          done = count == 0
//
// Once done is high, it stays high until the circuit is rebuilt.
//
func POR(bits int) socsim.NewPartFn {
	if bits <= 0 || bits > MaxCounterBits {
		panic("invalid POR width " + strconv.Itoa(bits))
	}
	return (&socsim.PartSpec{
		Name:    "POR" + strconv.Itoa(bits),
		Outputs: append(socsim.Outputs{pDone}, bus(bits, pCount)...),
		Mount: func(s *socsim.Socket) []socsim.Component {
			done, count := s.Pin(pDone), s.Bus(pCount, bits)
			for i := range count {
				s.Preset(socsim.BusPinName(pCount, i), true)
			}
			cnt := NewPowerOnCounter(uint(bits))
			return []socsim.Component{
				func(c *socsim.Circuit) {
					if c.AtTick() {
						cnt.Tick()
					}
					c.Set(done, cnt.Done())
					SetUint64(c, count, cnt.Value())
				}}
		}}).NewPart
}

// ResetSync returns an asynchronous reset synchronizer: two flip-flops in the
// clk domain, both set while in is high. out goes high as soon as in does, and
// goes low only on a rising edge of clk, two edges after in went low. It powers
// up with out high.
//
//	Inputs: in
//	Outputs: out
//
// This is equivalent to two DFFS in series:
//
//	DFFS("in=false, set=in, out=meta")
//	DFFS("in=meta, set=in, out=out")
//
func ResetSync(w string) socsim.Part {
	return resetSync.NewPart(w)
}

var resetSync = socsim.PartSpec{
	Name:    "ResetSync",
	Inputs:  socsim.Inputs{pIn},
	Outputs: socsim.Outputs{pOut},
	Mount: func(s *socsim.Socket) []socsim.Component {
		in, out := s.Pin(pIn), s.Pin(pOut)
		s.Preset(pOut, true)
		meta, rst := true, true
		return []socsim.Component{
			func(c *socsim.Circuit) {
				switch {
				case c.Get(in):
					meta, rst = true, true
				case c.AtTick():
					rst, meta = meta, false
				}
				c.Set(out, rst)
			}}
	},
}
