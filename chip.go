// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package socsim

import (
	"github.com/pkg/errors"
)

type chip struct {
	PartSpec
	parts Parts
}

func (c *chip) mount(s *Socket) []Component {
	var updaters []Component

	for _, p := range c.parts {
		// each part gets its own namespace. Wires are resolved in the chip's
		// namespace, allocating internal wires on first use.
		sub := newSocket(s.c)
		for _, k := range p.Inputs {
			if w, ok := p.Conns[k]; ok {
				sub.m[k] = s.PinOrNew(w)
			} else {
				// unconnected inputs are wired to False.
				sub.m[k] = cstFalse
			}
		}
		for _, k := range p.Outputs {
			if w, ok := p.Conns[k]; ok {
				sub.m[k] = s.PinOrNew(w)
			} else {
				sub.m[k] = s.c.allocPin()
			}
		}
		updaters = append(updaters, p.Mount(sub)...)
	}
	return updaters
}

// Chip composes existing parts into a new part packaged into a chip.
// The pin names specified as inputs and outputs will be the inputs
// and outputs of the chip.
//
// An Xor gate could be created like this:
//
//	xor, err := Chip(
//		"XOR",
//		In("a, b"),
//		Out("out"),
//		Parts{
//			Nand("a=a, b=b, out=nandAB"),
//			Nand("a=a, b=nandAB, out=w0"),
//			Nand("a=b, b=nandAB, out=w1"),
//			Nand("a=w0, b=w1, out=out"),
//		})
//
// The returned value is a NewPartFn that can be used to compose the new part
// with others into other chips.
//
// Chip checks that every wire has exactly one driver (a chip input, a constant
// or a part output), that every chip output is driven and that no part output
// is left dangling on an internal wire. Unused chip inputs are allowed.
//
func Chip(name string, inputs Inputs, outputs Outputs, parts Parts) (NewPartFn, error) {
	// drivers maps a wire to the part pin driving it. Chip inputs and
	// constants have an empty driver.
	drivers := map[string]string{False: "", True: "", Clk: ""}
	for _, i := range inputs {
		drivers[i] = ""
	}

	var consumed []string
	seen := make(map[string]bool)
	consume := func(w string) {
		if !seen[w] {
			seen[w] = true
			consumed = append(consumed, w)
		}
	}

	for _, p := range parts {
		for k := range p.Conns {
			if !p.isInput(k) && !p.isOutput(k) {
				return nil, errors.New("invalid pin name " + k + " for part " + p.Name)
			}
		}
		for _, k := range p.Inputs {
			if w, ok := p.Conns[k]; ok {
				consume(w)
			}
		}
		for _, k := range p.Outputs {
			w, ok := p.Conns[k]
			if !ok {
				continue
			}
			pn := p.Name + "." + k + ":" + w
			switch w {
			case True, False:
				return nil, errors.Wrap(errors.New("output pin connected to constant "+w+" input"), pn)
			case Clk:
				return nil, errors.Wrap(errors.New("output pin connected to clock signal"), pn)
			}
			if d, ok := drivers[w]; ok {
				if d == "" {
					return nil, errors.Wrap(errors.New("chip input pin used as output"), pn)
				}
				return nil, errors.Wrap(errors.New("output pin already used as output"), pn)
			}
			drivers[w] = p.Name + "." + k
		}
	}
	for _, o := range outputs {
		consume(o)
	}

	for _, w := range consumed {
		if _, ok := drivers[w]; !ok {
			return nil, errors.New("pin " + w + " not connected to any output")
		}
	}
	for _, p := range parts {
		for _, k := range p.Outputs {
			if w, ok := p.Conns[k]; ok && !seen[w] {
				return nil, errors.New("pin " + w + " not connected to any input")
			}
		}
	}

	c := &chip{
		PartSpec{
			Name:    name,
			Inputs:  inputs,
			Outputs: outputs,
		},
		parts,
	}
	c.PartSpec.Mount = c.mount
	return c.PartSpec.NewPart, nil
}
