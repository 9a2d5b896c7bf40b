// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package crg implements a clock and reset generator: a power-on reset counter
// clocked by the raw oscillator (the por domain) drives the reset of the sys
// domain through an asynchronous reset synchronizer.
//
// The sys domain reset asserts as soon as the counter is not done, including
// at power-up, and is released synchronously with the sys clock, 2^W-1 cycles
// after power-up.
//
package crg

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/db47h/socsim"
	"github.com/db47h/socsim/hwlib"
	"github.com/pkg/errors"
)

// DefaultCounterBits is the default width of the power-on reset counter.
//
const DefaultCounterBits = 16

// MaxCounterBits is the widest supported power-on reset counter.
//
const MaxCounterBits = 32

// CRG pin names.
const (
	PinRst      = "rst"
	PinSysRst   = "sys_rst"
	PinPORDone  = "por_done"
	PinPORCount = "por_count"
)

// Synchronizer selects the implementation of the sys domain reset
// synchronizer. Both have the same timing.
//
type Synchronizer int

// Synchronizers.
//
const (
	// hwlib.ResetSync
	SyncBehavioral Synchronizer = iota
	// two hwlib.DFFS in series
	SyncDFFS
)

var syncNames = [...]string{SyncBehavioral: "behavioral", SyncDFFS: "dffs"}

func (s Synchronizer) String() string {
	if s < 0 || int(s) >= len(syncNames) {
		return "Synchronizer(" + strconv.Itoa(int(s)) + ")"
	}
	return syncNames[s]
}

// ParseSynchronizer returns the synchronizer with the given name.
//
func ParseSynchronizer(name string) (Synchronizer, error) {
	for i, n := range syncNames {
		if n == name {
			return Synchronizer(i), nil
		}
	}
	return 0, errors.Errorf("unknown reset synchronizer %q", name)
}

// Config is the configuration of a clock and reset generator.
//
type Config struct {
	// ClockName is the name of the raw oscillator input, e.g. "clk12".
	ClockName string
	// Freq is the oscillator frequency in Hz, as asserted by the caller.
	Freq float64
	// ValidatedFreqs lists the frequencies the sequencer was validated for.
	ValidatedFreqs []float64
	// RequireFreq enables the frequency check against ValidatedFreqs.
	RequireFreq bool
	// CounterBits is the width of the power-on reset counter. Defaults to
	// DefaultCounterBits if 0.
	CounterBits uint
	// Synchronizer is the sys domain reset synchronizer.
	Synchronizer Synchronizer
}

// ConfigurationMismatch is returned by New when the declared clock frequency
// is not one the sequencer was validated for.
//
type ConfigurationMismatch struct {
	Clock     string
	Freq      float64
	Validated []float64
}

func (e *ConfigurationMismatch) Error() string {
	return fmt.Sprintf("clock %s: frequency %s does not match validated frequencies %s",
		e.Clock, FormatFreq(e.Freq), formatFreqs(e.Validated))
}

// PeriodConstraint is a clock period constraint for the synthesis toolchain.
//
type PeriodConstraint struct {
	Clock    string
	PeriodNS float64
}

func (p PeriodConstraint) String() string {
	return p.Clock + ": " + strconv.FormatFloat(p.PeriodNS, 'f', 3, 64) + " ns"
}

// CRG is a clock and reset generator.
//
type CRG struct {
	cfg  Config
	bits int
}

// New validates the configuration and returns a new CRG.
//
// It returns a *ConfigurationMismatch error if cfg.RequireFreq is set and
// cfg.Freq is not one of cfg.ValidatedFreqs.
//
func New(cfg Config) (*CRG, error) {
	if cfg.ClockName == "" {
		return nil, errors.New("missing clock name")
	}
	if cfg.Freq <= 0 || math.IsInf(cfg.Freq, 0) || math.IsNaN(cfg.Freq) {
		return nil, errors.Errorf("clock %s: invalid frequency %v", cfg.ClockName, cfg.Freq)
	}
	if cfg.CounterBits == 0 {
		cfg.CounterBits = DefaultCounterBits
	}
	if cfg.CounterBits > MaxCounterBits {
		return nil, errors.Errorf("power-on reset counter width %d out of range [1, %d]", cfg.CounterBits, MaxCounterBits)
	}
	if cfg.Synchronizer < 0 || int(cfg.Synchronizer) >= len(syncNames) {
		return nil, errors.Errorf("invalid reset synchronizer %v", cfg.Synchronizer)
	}
	if cfg.RequireFreq && !validated(cfg.Freq, cfg.ValidatedFreqs) {
		return nil, &ConfigurationMismatch{
			Clock:     cfg.ClockName,
			Freq:      cfg.Freq,
			Validated: cfg.ValidatedFreqs,
		}
	}
	return &CRG{cfg: cfg, bits: int(cfg.CounterBits)}, nil
}

func validated(f float64, fs []float64) bool {
	for _, v := range fs {
		// frequencies are usually given as 12e6 or 12000000, allow for
		// rounding errors in float parsing.
		if math.Abs(f-v) <= 1e-6*v {
			return true
		}
	}
	return false
}

// Config returns the CRG configuration, with defaults applied.
//
func (c *CRG) Config() Config { return c.cfg }

// PeriodConstraint returns the period constraint on the oscillator input.
//
func (c *CRG) PeriodConstraint() PeriodConstraint {
	return PeriodConstraint{Clock: c.cfg.ClockName, PeriodNS: 1e9 / c.cfg.Freq}
}

// HoldCycles returns the number of sys clock cycles the sys domain is held
// in reset after power-up.
//
func (c *CRG) HoldCycles() uint64 {
	return uint64(1)<<uint(c.bits) - 1
}

// HoldDuration returns the time the sys domain is held in reset after
// power-up.
//
func (c *CRG) HoldDuration() time.Duration {
	return time.Duration(float64(c.HoldCycles()) / c.cfg.Freq * float64(time.Second))
}

// Chip returns the CRG chip.
//
//	Inputs: rst
//	Outputs: sys_rst, por_done, por_count[bits]
//
// The power-on counter runs in the por domain and the reset synchronizer in
// the sys domain. Both are clocked by clk (the oscillator). The rst input is
// not connected to anything.
//
func (c *CRG) Chip() socsim.NewPartFn {
	n := strconv.Itoa(c.bits - 1)
	parts := socsim.Parts{
		hwlib.POR(c.bits)("done=" + PinPORDone + ", count[0.." + n + "]=" + PinPORCount + "[0.." + n + "]"),
		hwlib.Not("in=" + PinPORDone + ", out=por_rst"),
	}
	switch c.cfg.Synchronizer {
	case SyncDFFS:
		parts = append(parts,
			hwlib.DFFS("in=false, set=por_rst, out=meta"),
			hwlib.DFFS("in=meta, set=por_rst, out="+PinSysRst))
	default:
		parts = append(parts, hwlib.ResetSync("in=por_rst, out="+PinSysRst))
	}
	chip, err := socsim.Chip("CRG", socsim.In(PinRst),
		socsim.Out(PinSysRst+", "+PinPORDone+", "+PinPORCount+"["+strconv.Itoa(c.bits)+"]"), parts)
	if err != nil {
		// the wiring above is static.
		panic(err)
	}
	return chip
}

// FormatFreq formats a frequency in Hz using the most appropriate unit.
//
func FormatFreq(f float64) string {
	switch {
	case f >= 1e9:
		return strconv.FormatFloat(f/1e9, 'f', -1, 64) + " GHz"
	case f >= 1e6:
		return strconv.FormatFloat(f/1e6, 'f', -1, 64) + " MHz"
	case f >= 1e3:
		return strconv.FormatFloat(f/1e3, 'f', -1, 64) + " kHz"
	}
	return strconv.FormatFloat(f, 'f', -1, 64) + " Hz"
}

func formatFreqs(fs []float64) string {
	s := "["
	for i, f := range fs {
		if i > 0 {
			s += ", "
		}
		s += FormatFreq(f)
	}
	return s + "]"
}
