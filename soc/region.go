// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package soc computes the bus address map of an SoC: non-overlapping regions
// for RAM, the memory mapped SPI flash and CSRs, a ROM region derived from the
// flash window and the CPU boot address.
//
// All errors are configuration errors: a failed allocation aborts the build,
// there is no partial memory map.
//
package soc

import (
	"fmt"
	"sort"
)

// Region is a named byte range on the system bus.
//
// Linker regions reserve address space for link-time address resolution; they
// alias into another region and are not bus slaves of their own.
//
type Region struct {
	Name   string
	Origin uint64
	Size   uint64
	Linker bool
}

// End returns the first address past the region.
func (r Region) End() uint64 { return r.Origin + r.Size }

// Contains returns true if addr is within the region.
func (r Region) Contains(addr uint64) bool {
	return addr >= r.Origin && addr-r.Origin < r.Size
}

// Overlaps returns true if r and o have at least one address in common.
func (r Region) Overlaps(o Region) bool {
	return r.Origin < o.End() && o.Origin < r.End()
}

func (r Region) String() string {
	s := fmt.Sprintf("%s [0x%08x-0x%08x) size 0x%x", r.Name, r.Origin, r.End(), r.Size)
	if r.Linker {
		s += " (linker)"
	}
	return s
}

// Registry is a set of regions keyed by name. A Registry is owned by a single
// build; it is not safe for concurrent use.
//
// Regions are added through an Allocator, which enforces the layout rules.
//
type Registry struct {
	m       map[string]int
	regions []Region
}

// NewRegistry returns a new empty registry.
//
func NewRegistry() *Registry {
	return &Registry{m: make(map[string]int)}
}

// Contains returns true if a region with the given name exists.
//
func (r *Registry) Contains(name string) bool {
	_, ok := r.m[name]
	return ok
}

// Lookup returns the named region.
//
func (r *Registry) Lookup(name string) (Region, bool) {
	i, ok := r.m[name]
	if !ok {
		return Region{}, false
	}
	return r.regions[i], true
}

// Len returns the number of regions.
func (r *Registry) Len() int { return len(r.regions) }

// Regions returns a copy of all regions, sorted by origin. Linker regions sort
// after the bus slave they alias into.
//
func (r *Registry) Regions() []Region {
	out := make([]Region, len(r.regions))
	copy(out, r.regions)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Origin != out[j].Origin {
			return out[i].Origin < out[j].Origin
		}
		return !out[i].Linker && out[j].Linker
	})
	return out
}

func (r *Registry) add(reg Region) {
	r.m[reg.Name] = len(r.regions)
	r.regions = append(r.regions, reg)
}
