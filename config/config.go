// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config resolves user supplied build options against a board
// description.
//
package config

import (
	"math"
	"strconv"
	"strings"

	"github.com/db47h/socsim/board"
	"github.com/db47h/socsim/crg"
	"github.com/db47h/socsim/soc"
	"github.com/pkg/errors"
)

// DefaultBoard is used when Options.Board is empty.
//
const DefaultBoard = "upduino_v3"

// Options are the user supplied build options. Zero values select the board
// defaults.
//
type Options struct {
	Board           string
	SysClkFreq      float64
	BiosFlashOffset string
	CounterBits     uint
	// Synchronizer is the reset synchronizer name, see crg.ParseSynchronizer.
	Synchronizer string
	SPIFlash     bool
	RGBLed       bool
}

// Build is a resolved configuration.
//
type Build struct {
	Board *board.Board
	CRG   *crg.CRG
	// SysClkFreq is the sys clock frequency. It differs from the CRG
	// frequency on PLL boards.
	SysClkFreq float64
	BiosOffset uint64
	Features   board.Features
}

// Resolve validates the options and returns the resolved configuration. The
// CRG is validated before anything else so that a clock mismatch aborts the
// build before the memory map is computed.
//
func (o *Options) Resolve() (*Build, error) {
	name := o.Board
	if name == "" {
		name = DefaultBoard
	}
	b, err := board.Lookup(name)
	if err != nil {
		return nil, errors.Wrap(err, "board")
	}
	if o.SysClkFreq < 0 || math.IsNaN(o.SysClkFreq) || math.IsInf(o.SysClkFreq, 0) {
		return nil, errors.Errorf("sys-clk-freq: invalid frequency %v", o.SysClkFreq)
	}
	cfg := b.CRGConfig(o.SysClkFreq, o.CounterBits)
	if o.Synchronizer != "" {
		if cfg.Synchronizer, err = crg.ParseSynchronizer(o.Synchronizer); err != nil {
			return nil, errors.Wrap(err, "sync")
		}
	}
	c, err := crg.New(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "sys-clk-freq")
	}
	freq := o.SysClkFreq
	if freq == 0 {
		freq = b.DefaultSysClkFreq()
	}
	off := b.BiosOffset
	if o.BiosFlashOffset != "" {
		if off, err = ParseOffset(o.BiosFlashOffset); err != nil {
			return nil, errors.Wrap(err, "bios-flash-offset")
		}
	}
	return &Build{
		Board:      b,
		CRG:        c,
		SysClkFreq: freq,
		BiosOffset: off,
		Features:   board.Features{SPIFlash: o.SPIFlash, RGBLed: o.RGBLed},
	}, nil
}

// Map computes the memory map of the build.
//
func (b *Build) Map(opts ...soc.Option) (*soc.Result, error) {
	s, err := b.Board.SoCSpec(b.BiosOffset, b.Features)
	if err != nil {
		return nil, err
	}
	s.Options = opts
	res, err := soc.Build(s)
	if err != nil {
		return nil, errors.Wrap(err, b.Board.Name)
	}
	return res, nil
}

// ParseOffset parses an unsigned integer literal. The base is given by the
// prefix: 0x for hexadecimal, 0o for octal, 0b for binary, decimal otherwise.
// Underscores may separate digits. Leading zeros are not allowed in decimal
// literals other than zero.
//
func ParseOffset(s string) (uint64, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, errors.New("empty offset")
	}
	if len(t) > 1 && t[0] == '0' && !strings.ContainsAny(t[1:2], "xXoObB") && strings.Trim(t, "0_") != "" {
		return 0, errors.Errorf("invalid offset %q: leading zeros in decimal literal", s)
	}
	v, err := strconv.ParseUint(t, 0, 64)
	if err != nil {
		return 0, errors.Errorf("invalid offset %q", s)
	}
	return v, nil
}
