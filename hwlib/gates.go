// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides the parts of the reset path for socsim: inverter,
// settable flip-flop, power-on reset counter, reset synchronizer and function
// based inputs and outputs.
//
package hwlib

import (
	"strconv"

	"github.com/db47h/socsim"
)

// common pin names
const (
	pIn    = "in"
	pSet   = "set"
	pOut   = "out"
	pDone  = "done"
	pCount = "count"
)

// make a bus name
func bus(bits int, names ...string) []string {
	b := make([]string, len(names)*bits)
	for i, n := range names {
		for j := 0; j < bits; j++ {
			b[i*bits+j] = n + "[" + strconv.Itoa(j) + "]"
		}
	}
	return b
}

var notGate = socsim.PartSpec{
	Name:    "NOT",
	Inputs:  socsim.Inputs{pIn},
	Outputs: socsim.Outputs{pOut},
	Mount: func(s *socsim.Socket) []socsim.Component {
		in, out := s.Pin(pIn), s.Pin(pOut)
		return []socsim.Component{
			func(c *socsim.Circuit) { c.Set(out, !c.Get(in)) },
		}
	},
}

// Not returns a NOT gate.
//
//	Inputs: in
//	Outputs: out
//	Function: out = !in
//
func Not(w string) socsim.Part {
	return notGate.NewPart(w)
}
