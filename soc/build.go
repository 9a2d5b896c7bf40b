// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package soc

import (
	"github.com/pkg/errors"
)

// Size units.
const (
	KiB = 1024
	MiB = 1024 * KiB
)

// Build defaults.
const (
	DefaultROMSize = 32 * KiB
	DefaultCSRSize = 64 * KiB
)

// Spec describes the memory layout of an SoC.
//
type Spec struct {
	// MemMap gives the origin of the named regions. DefaultMemMap() if nil.
	MemMap MemMap
	// RAM is the RAM allocation policy.
	RAM Policy
	// Slaves are additional bus slaves, registered before RAM, e.g. an SDRAM
	// controller providing "main_ram".
	Slaves []Region
	// IntegratedROMSize is the size of an on-chip ROM mapped at the ROM
	// origin. If 0, the ROM region is a window into the SPI flash at
	// BiosOffset.
	IntegratedROMSize uint64
	// FlashSize is the size of the memory mapped SPI flash. 0 if there is no
	// flash, which requires an integrated ROM.
	FlashSize uint64
	// BiosOffset is the offset of the firmware in the SPI flash. The ROM
	// region is derived from the flash window at this offset.
	BiosOffset uint64
	// ROMSize is the size of the flash ROM window. Defaults to DefaultROMSize.
	ROMSize uint64
	// GatewareOffset and BitstreamSize locate the gateware slot in the SPI
	// flash. The firmware must not overlap it. Ignored if BitstreamSize is 0.
	GatewareOffset uint64
	BitstreamSize  uint64
	// CSRSize defaults to DefaultCSRSize.
	CSRSize uint64
	// Options are passed to the allocator.
	Options []Option
}

// FlashPlan tells the flash programmer where to write the firmware and the
// gateware images.
//
type FlashPlan struct {
	FlashSize uint64
	// BiosInFlash is false if the firmware runs from an integrated ROM, in
	// which case BiosOffset is meaningless.
	BiosInFlash    bool
	BiosOffset     uint64
	GatewareOffset uint64
	BitstreamSize  uint64
}

// Result is a complete memory map.
//
type Result struct {
	Regions     []Region
	BootAddress uint64
	// Flash is nil if the SoC has no SPI flash.
	Flash *FlashPlan
}

// Region returns the named region.
//
func (r *Result) Region(name string) (Region, bool) {
	for _, x := range r.Regions {
		if x.Name == name {
			return x, true
		}
	}
	return Region{}, false
}

// Build allocates all regions of the SoC in a new registry, in this order:
// additional slaves, integrated ROM, RAM, SPI flash, CSRs and finally the ROM
// window derived from the flash. The boot address is set to the ROM origin.
//
func Build(s Spec) (*Result, error) {
	m := s.MemMap
	if m == nil {
		m = DefaultMemMap()
	}
	if s.RAM == nil {
		return nil, errors.New("no RAM policy")
	}
	romSize := s.ROMSize
	if romSize == 0 {
		romSize = DefaultROMSize
	}
	csrSize := s.CSRSize
	if csrSize == 0 {
		csrSize = DefaultCSRSize
	}
	integrated := s.IntegratedROMSize != 0
	// without an integrated ROM, the flash is mandatory and a zero size
	// fails as a RangeError.
	withFlash := s.FlashSize != 0 || !integrated

	var plan *FlashPlan
	if withFlash {
		plan = &FlashPlan{
			FlashSize:      s.FlashSize,
			BiosInFlash:    !integrated,
			GatewareOffset: s.GatewareOffset,
			BitstreamSize:  s.BitstreamSize,
		}
		if !integrated {
			plan.BiosOffset = s.BiosOffset
		}
		if err := checkFlashPlan(*plan, romSize); err != nil {
			return nil, err
		}
	}

	a := NewAllocator(NewRegistry(), s.Options...)
	for _, r := range s.Slaves {
		if _, err := a.Register(r.Name, r.Origin, r.Size, r.Linker); err != nil {
			return nil, errors.Wrapf(err, "slave %s", r.Name)
		}
	}
	if integrated {
		o, err := m.Origin(ROM)
		if err != nil {
			return nil, err
		}
		if _, err = a.Register(ROM, o, s.IntegratedROMSize, false); err != nil {
			return nil, errors.Wrap(err, "integrated rom")
		}
	}
	if err := s.RAM.Allocate(a, m); err != nil {
		return nil, errors.Wrapf(err, "%s RAM policy", s.RAM.Name())
	}
	type fixed struct {
		name string
		size uint64
	}
	regs := []fixed{{CSR, csrSize}}
	if withFlash {
		regs = []fixed{{SPIFlash, s.FlashSize}, {CSR, csrSize}}
	}
	for _, r := range regs {
		o, err := m.Origin(r.name)
		if err != nil {
			return nil, err
		}
		if _, err = a.Register(r.name, o, r.size, false); err != nil {
			return nil, errors.Wrap(err, r.name)
		}
	}
	if !integrated {
		if _, err := a.Derive(ROM, SPIFlash, s.BiosOffset, romSize, true); err != nil {
			return nil, errors.Wrap(err, "bios")
		}
	}
	if err := a.SetBootAddress(ROM); err != nil {
		return nil, err
	}

	boot, _ := a.BootAddress()
	return &Result{
		Regions:     a.Registry().Regions(),
		BootAddress: boot,
		Flash:       plan,
	}, nil
}

func checkFlashPlan(p FlashPlan, romSize uint64) error {
	if p.BitstreamSize == 0 {
		return nil
	}
	gw := Region{Name: "gateware", Origin: p.GatewareOffset, Size: p.BitstreamSize}
	bios := Region{Name: "bios", Origin: p.BiosOffset, Size: romSize}
	switch {
	case gw.End() > p.FlashSize:
		return &FlashLayoutError{Plan: p, Reason: "gateware does not fit in flash"}
	case p.BiosInFlash && gw.Overlaps(bios):
		return &FlashLayoutError{Plan: p, Reason: "bios overlaps gateware"}
	}
	return nil
}
