// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package soc

import (
	"github.com/pkg/errors"
)

// Region names.
const (
	ROM      = "rom"
	SRAM     = "sram"
	MainRAM  = "main_ram"
	SPIFlash = "spiflash"
	CSR      = "csr"
)

// MemMap maps region names to their bus origin.
//
type MemMap map[string]uint64

// DefaultMemMap returns the default memory map.
//
func DefaultMemMap() MemMap {
	return MemMap{
		ROM:      0x00000000,
		SRAM:     0x10000000,
		SPIFlash: 0x20000000,
		MainRAM:  0x40000000,
		CSR:      0xf0000000,
	}
}

// Origin returns the origin of the named region.
//
func (m MemMap) Origin(name string) (uint64, error) {
	o, ok := m[name]
	if !ok {
		return 0, errors.Errorf("no origin for region %s in memory map", name)
	}
	return o, nil
}

// A Policy allocates the RAM regions of an SoC.
//
type Policy interface {
	Name() string
	Allocate(a *Allocator, m MemMap) error
}

// SingleSRAM maps a whole RAM block as "sram".
//
type SingleSRAM struct {
	Size uint64
}

// Name implements Policy.
func (p SingleSRAM) Name() string { return "single" }

// Allocate implements Policy.
func (p SingleSRAM) Allocate(a *Allocator, m MemMap) error {
	o, err := m.Origin(SRAM)
	if err != nil {
		return err
	}
	_, err = a.Register(SRAM, o, p.Size, false)
	return err
}

// SplitSRAM splits a RAM block in two halves. The first half is mapped as
// "sram", the second one as "main_ram", unless a bus slave already provides
// "main_ram", in which case the second half is left unused.
//
type SplitSRAM struct {
	Size uint64
}

// Name implements Policy.
func (p SplitSRAM) Name() string { return "split" }

// Allocate implements Policy.
func (p SplitSRAM) Allocate(a *Allocator, m MemMap) error {
	if p.Size%2 != 0 {
		return errors.Errorf("cannot split RAM block of odd size 0x%x", p.Size)
	}
	half := p.Size / 2
	o, err := m.Origin(SRAM)
	if err != nil {
		return err
	}
	if _, err = a.Register(SRAM, o, half, false); err != nil {
		return err
	}
	// a linker region named main_ram does not count and fails below as a
	// duplicate.
	if r, ok := a.Registry().Lookup(MainRAM); ok && !r.Linker {
		return nil
	}
	if o, err = m.Origin(MainRAM); err != nil {
		return err
	}
	_, err = a.Register(MainRAM, o, half, false)
	return err
}
