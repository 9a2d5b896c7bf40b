// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/socsim"
)

// Uint64 returns the pins as an uint64. Pin 0 is lsb.
//
func Uint64(c *socsim.Circuit, pins []int) uint64 {
	var out uint64
	for bit := range pins {
		if c.Get(pins[bit]) {
			out |= 1 << uint(bit)
		}
	}
	return out
}

// SetUint64 sets the pins to the given uint64 value.
//
func SetUint64(c *socsim.Circuit, pins []int, v uint64) {
	for bit := range pins {
		c.Set(pins[bit], v&(1<<uint(bit)) != 0)
	}
}

// Input creates a function based input.
//
//	Outputs: out
//	Function: out = f()
//
func Input(f func() bool) socsim.NewPartFn {
	p := &socsim.PartSpec{
		Name:    "Input",
		Outputs: socsim.Outputs{pOut},
		Mount: func(s *socsim.Socket) []socsim.Component {
			pin := s.Pin(pOut)
			return []socsim.Component{
				func(c *socsim.Circuit) {
					c.Set(pin, f())
				},
			}
		},
	}
	return p.NewPart
}

// Output creates an output part. The fn function is
// called with the named pin state on every circuit update.
//
//	Inputs: in
//	Function: f(in)
//
func Output(f func(bool)) socsim.NewPartFn {
	p := &socsim.PartSpec{
		Name:   "Output",
		Inputs: socsim.Inputs{pIn},
		Mount: func(s *socsim.Socket) []socsim.Component {
			in := s.Pin(pIn)
			return []socsim.Component{
				func(c *socsim.Circuit) { f(c.Get(in)) },
			}
		},
	}
	return p.NewPart
}

// OutputN creates an output bus of the given bits size.
//
//	Inputs: in[bits]
//	Function: f(in)
//
func OutputN(bits int, f func(uint64)) socsim.NewPartFn {
	return (&socsim.PartSpec{
		Name:   "OUTPUT" + strconv.Itoa(bits),
		Inputs: bus(bits, pIn),
		Mount: func(s *socsim.Socket) []socsim.Component {
			pins := s.Bus(pIn, bits)
			return []socsim.Component{func(c *socsim.Circuit) {
				f(Uint64(c, pins))
			}}
		}}).NewPart
}
