// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package socsim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Inputs is a list of input pin names.
//
type Inputs []string

// Outputs is a list of output pin names.
//
type Outputs []string

// W is a set of wires, connecting a part's I/O pins (the map key) to pins in its container.
//
type W map[string]string

// BusPinName returns the pin name for the n-th bit of the named bus.
//
func BusPinName(bus string, n int) string {
	return bus + "[" + strconv.Itoa(n) + "]"
}

// IO expands a pin specification string to individual pin names. Pins are
// separated by commas, and bus declarations are expanded:
//
//	IO("a, b, bus[2]") // returns []string{"a", "b", "bus[0]", "bus[1]"}
//
// IO panics if the specification is not valid.
//
func IO(spec string) []string {
	out, err := parseIOSpec(spec)
	if err != nil {
		panic(err)
	}
	return out
}

// In is a shorthand for Inputs(IO(spec)).
//
func In(spec string) Inputs { return Inputs(IO(spec)) }

// Out is a shorthand for Outputs(IO(spec)).
//
func Out(spec string) Outputs { return Outputs(IO(spec)) }

func parseIOSpec(spec string) ([]string, error) {
	var out []string
	for _, f := range strings.Split(spec, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		i := strings.IndexByte(f, '[')
		if i < 0 {
			if err := checkIdent(f); err != nil {
				return nil, errors.Wrapf(err, "in %q", spec)
			}
			out = append(out, f)
			continue
		}
		name := f[:i]
		if err := checkIdent(name); err != nil {
			return nil, errors.Wrapf(err, "in %q", spec)
		}
		if !strings.HasSuffix(f, "]") {
			return nil, errors.Errorf("in %q: missing close bracket", spec)
		}
		n, err := strconv.Atoi(f[i+1 : len(f)-1])
		if err != nil || n <= 0 {
			return nil, errors.Errorf("in %q: invalid bus size for %s", spec, name)
		}
		for b := 0; b < n; b++ {
			out = append(out, BusPinName(name, b))
		}
	}
	return out, nil
}

func checkIdent(name string) error {
	if name == "" {
		return errors.New("empty pin name")
	}
	for i, r := range name {
		if r == '_' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || i > 0 && '0' <= r && r <= '9' {
			continue
		}
		return errors.Errorf("invalid character %q in pin name %s", r, name)
	}
	return nil
}

// ParseConnections parses a connection configuration like "partPin1=chipPin1,
// partPin2=chipPin2" into a W.
//
// Bus ranges are expanded on both sides, and must have the same width:
//
//	"a[0..3]=x[4..7]" // a[0]=x[4], a[1]=x[5], a[2]=x[6], a[3]=x[7]
//
// A single pin on the right hand side may be connected to several part pins:
//
//	"a[0..1]=true" // a[0]=true, a[1]=true
//
func ParseConnections(c string) (W, error) {
	w := make(W)
	for _, f := range strings.Split(c, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		i := strings.IndexByte(f, '=')
		if i < 0 {
			return nil, errors.Errorf("missing '=' in connection %q", f)
		}
		k, v := strings.TrimSpace(f[:i]), strings.TrimSpace(f[i+1:])
		if k == "" || v == "" {
			return nil, errors.New("invalid pin mapping " + k + "=" + v)
		}
		ks, err := expandRange(k)
		if err != nil {
			return nil, errors.Wrap(err, "expand key "+k)
		}
		vs, err := expandRange(v)
		if err != nil {
			return nil, errors.Wrap(err, "expand value "+v)
		}
		switch {
		case len(ks) == len(vs):
			for i := range ks {
				if _, ok := w[ks[i]]; ok {
					return nil, errors.Errorf("pin %s connected more than once", ks[i])
				}
				w[ks[i]] = vs[i]
			}
		case len(vs) == 1:
			for _, k := range ks {
				if _, ok := w[k]; ok {
					return nil, errors.Errorf("pin %s connected more than once", k)
				}
				w[k] = vs[0]
			}
		default:
			return nil, errors.New("pin count mismatch in pin mapping: " + k + "=" + v)
		}
	}
	return w, nil
}

func expandRange(name string) ([]string, error) {
	i := strings.IndexByte(name, '[')
	if i < 0 {
		return []string{name}, checkIdent(name)
	}
	bus := name[:i]
	if err := checkIdent(bus); err != nil {
		return nil, err
	}
	if !strings.HasSuffix(name, "]") {
		return nil, errors.New("no terminating ] in bus range")
	}
	n := name[i+1 : len(name)-1]
	i = strings.Index(n, "..")
	if i < 0 {
		idx, err := strconv.Atoi(n)
		if err != nil {
			return nil, errors.Wrap(err, "bad bus index")
		}
		return []string{BusPinName(bus, idx)}, nil
	}
	start, err := strconv.Atoi(n[:i])
	if err != nil {
		return nil, errors.Wrap(err, "bad range start")
	}
	end, err := strconv.Atoi(n[i+2:])
	if err != nil {
		return nil, errors.Wrap(err, "bad range end")
	}
	if end < start {
		return nil, errors.Errorf("reversed bus range %d..%d", start, end)
	}
	r := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		r = append(r, BusPinName(bus, i))
	}
	return r, nil
}
