// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import "github.com/db47h/socsim"

// DFFS returns a clocked data flip flop with an asynchronous set input. It
// powers up set.
//
//	Inputs: in, set
//	Outputs: out
//	Function: if set { out = 1 } else { out(t) = in(t-1) }
//
// The set input takes effect immediately, regardless of the clock.
//
func DFFS(w string) socsim.Part {
	return dffs.NewPart(w)
}

var dffs = socsim.PartSpec{
	Name:    "DFFS",
	Inputs:  socsim.Inputs{pIn, pSet},
	Outputs: socsim.Outputs{pOut},
	Mount: func(s *socsim.Socket) []socsim.Component {
		in, set, out := s.Pin(pIn), s.Pin(pSet), s.Pin(pOut)
		s.Preset(pOut, true)
		curOut := true
		return []socsim.Component{
			func(c *socsim.Circuit) {
				switch {
				case c.Get(set):
					curOut = true
				case c.AtTick():
					curOut = c.Get(in)
				}
				c.Set(out, curOut)
			}}
	},
}
