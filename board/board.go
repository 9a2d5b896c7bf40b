// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package board describes the FPGA boards supported by socmap: oscillator,
// on-chip RAM, SPI flash and the memory layout policy of their SoC.
//
package board

import (
	"sort"

	"github.com/db47h/socsim/crg"
	"github.com/db47h/socsim/soc"
	"github.com/pkg/errors"
)

// Clock is a board oscillator.
//
type Clock struct {
	Name string
	Freq float64
}

// Flash is an SPI flash device.
//
type Flash struct {
	Module string
	Size   uint64
}

// Layout selects a RAM allocation policy.
//
type Layout int

// RAM layouts. See soc.SingleSRAM and soc.SplitSRAM.
//
const (
	SingleSRAM Layout = iota
	SplitSRAM
)

func (l Layout) String() string {
	if l == SplitSRAM {
		return "split"
	}
	return "single"
}

// Board is a board description.
//
type Board struct {
	Name  string
	Ident string
	Clock Clock
	// PLL is set if the sys clock is generated by a PLL from Clock. The CRG
	// then counts oscillator cycles and SysClkFreq is the default PLL output.
	PLL        bool
	SysClkFreq float64
	// ValidatedFreqs are the sys clock frequencies the CRG was validated for.
	// If RequireFreq is set, other frequencies are rejected.
	ValidatedFreqs []float64
	RequireFreq    bool
	RAMSize        uint64
	Layout         Layout
	// ROMSize is the size of the integrated ROM, 0 if the firmware runs from
	// flash.
	ROMSize uint64
	// Flash.Size is 0 if the board has no usable SPI flash. An optional flash
	// is only mapped with Features.SPIFlash.
	Flash         Flash
	FlashOptional bool
	// Default firmware offset in flash.
	BiosOffset uint64
	// Gateware slot in flash.
	GatewareOffset uint64
	BitstreamSize  uint64
	// Slaves are additional bus slaves.
	Slaves []soc.Region
	// RGBLed is the bus region of the optional RGB led controller.
	RGBLed *soc.Region
}

// Features selects optional board peripherals.
//
type Features struct {
	SPIFlash bool
	RGBLed   bool
}

// DefaultSysClkFreq returns the sys clock frequency used when none is given.
//
func (b *Board) DefaultSysClkFreq() float64 {
	if b.SysClkFreq != 0 {
		return b.SysClkFreq
	}
	return b.Clock.Freq
}

// CRGConfig returns the CRG configuration for the given sys clock frequency
// and power-on counter width. A zero freq selects the default frequency.
//
// On PLL boards, the power-on counter runs on the oscillator and freq only
// sets the PLL output, so the CRG is always configured with the oscillator
// frequency.
//
func (b *Board) CRGConfig(freq float64, bits uint) crg.Config {
	if freq == 0 || b.PLL {
		freq = b.Clock.Freq
	}
	return crg.Config{
		ClockName:      b.Clock.Name,
		Freq:           freq,
		ValidatedFreqs: b.ValidatedFreqs,
		RequireFreq:    b.RequireFreq,
		CounterBits:    bits,
	}
}

// Policy returns the board's RAM allocation policy.
//
func (b *Board) Policy() soc.Policy {
	if b.Layout == SplitSRAM {
		return soc.SplitSRAM{Size: b.RAMSize}
	}
	return soc.SingleSRAM{Size: b.RAMSize}
}

// SoCSpec returns the memory layout for the given firmware offset in flash
// and optional features. It fails if the board lacks a requested feature.
//
func (b *Board) SoCSpec(biosOffset uint64, f Features) (soc.Spec, error) {
	s := soc.Spec{
		RAM:               b.Policy(),
		Slaves:            b.Slaves,
		IntegratedROMSize: b.ROMSize,
	}
	if f.SPIFlash && b.Flash.Size == 0 {
		return soc.Spec{}, errors.Errorf("%s: no SPI flash", b.Name)
	}
	if b.Flash.Size != 0 && (!b.FlashOptional || f.SPIFlash) {
		s.FlashSize = b.Flash.Size
		s.BiosOffset = biosOffset
		s.GatewareOffset = b.GatewareOffset
		s.BitstreamSize = b.BitstreamSize
	}
	if f.RGBLed {
		if b.RGBLed == nil {
			return soc.Spec{}, errors.Errorf("%s: no RGB led", b.Name)
		}
		s.Slaves = append(append([]soc.Region(nil), b.Slaves...), *b.RGBLed)
	}
	return s, nil
}

var boards = make(map[string]*Board)

func register(b *Board) {
	if _, ok := boards[b.Name]; ok {
		panic("duplicate board " + b.Name)
	}
	boards[b.Name] = b
}

// Lookup returns the named board.
//
func Lookup(name string) (*Board, error) {
	b, ok := boards[name]
	if !ok {
		return nil, errors.Errorf("unknown board %q", name)
	}
	return b, nil
}

// Names returns the names of all boards, sorted.
//
func Names() []string {
	names := make([]string, 0, len(boards))
	for n := range boards {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
