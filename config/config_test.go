package config_test

import (
	"math"
	"testing"

	"github.com/db47h/socsim/config"
	"github.com/db47h/socsim/crg"
	"github.com/pkg/errors"
)

func TestParseOffset(t *testing.T) {
	td := []struct {
		in  string
		v   uint64
		err bool
	}{
		{"0x20000", 0x20000, false},
		{"131072", 0x20000, false},
		{"0X2_0000", 0x20000, false},
		{"0o400000", 0x20000, false},
		{"0b1_0000_0000_0000_0000", 0x10000, false},
		{"0", 0, false},
		{"00", 0, false},
		{" 42 ", 42, false},
		{"", 0, true},
		{"0400000", 0, true},
		{"0x", 0, true},
		{"-1", 0, true},
		{"0x1g", 0, true},
		{"1__0", 0, true},
	}
	for _, d := range td {
		v, err := config.ParseOffset(d.in)
		if (err != nil) != d.err || v != d.v {
			t.Errorf("ParseOffset(%q) = 0x%x, %v", d.in, v, err)
		}
	}
}

func TestResolve(t *testing.T) {
	o := config.Options{}
	b, err := o.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if b.Board.Name != config.DefaultBoard || b.BiosOffset != b.Board.BiosOffset {
		t.Fatalf("bad defaults: %s, 0x%x", b.Board.Name, b.BiosOffset)
	}
	if b.CRG.HoldCycles() != 1<<crg.DefaultCounterBits-1 {
		t.Fatalf("hold cycles = %d", b.CRG.HoldCycles())
	}
	res, err := b.Map()
	if err != nil {
		t.Fatal(err)
	}
	if res.BootAddress != 0x20020000 {
		t.Fatalf("boot address = 0x%x", res.BootAddress)
	}

	o = config.Options{Board: "upduino_v3", BiosFlashOffset: "0x40000", CounterBits: 8}
	if b, err = o.Resolve(); err != nil {
		t.Fatal(err)
	}
	if b.BiosOffset != 0x40000 || b.CRG.HoldCycles() != 255 {
		t.Fatalf("offset 0x%x, hold cycles %d", b.BiosOffset, b.CRG.HoldCycles())
	}
	if res, err = b.Map(); err != nil {
		t.Fatal(err)
	}
	if res.BootAddress != 0x20040000 {
		t.Fatalf("boot address = 0x%x", res.BootAddress)
	}
}

func TestResolve_errors(t *testing.T) {
	td := []struct {
		name string
		o    config.Options
	}{
		{"unknown_board", config.Options{Board: "nope"}},
		{"bad_freq", config.Options{SysClkFreq: -1}},
		{"bad_offset", config.Options{BiosFlashOffset: "0xzz"}},
		{"bad_bits", config.Options{CounterBits: crg.MaxCounterBits + 1}},
		{"bad_sync", config.Options{Synchronizer: "ff3"}},
		{"inf_freq", config.Options{Board: "sipeed_tang_nano_20k", SysClkFreq: math.Inf(1)}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			if b, err := d.o.Resolve(); err == nil {
				t.Fatalf("got %v, expected error", b)
			}
		})
	}

	o := config.Options{SysClkFreq: 25e6}
	_, err := o.Resolve()
	if _, ok := errors.Cause(err).(*crg.ConfigurationMismatch); !ok {
		t.Fatalf("got error %v, expected ConfigurationMismatch", err)
	}
}

func TestMap_error(t *testing.T) {
	o := config.Options{BiosFlashOffset: "0x10000"}
	b, err := o.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if res, err := b.Map(); err == nil {
		t.Fatalf("got %v, expected error", res)
	}
}

func TestResolve_defaultMap(t *testing.T) {
	o := config.Options{Board: "upduino_v3", BiosFlashOffset: "0x20000"}
	b, err := o.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	res, err := b.Map()
	if err != nil {
		t.Fatal(err)
	}
	if res.BootAddress != 0x20020000 {
		t.Fatalf("boot address = 0x%x", res.BootAddress)
	}
}

func TestResolve_pll(t *testing.T) {
	o := config.Options{Board: "sipeed_tang_nano_20k", SysClkFreq: 60e6, RGBLed: true, Synchronizer: "dffs"}
	b, err := o.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	cfg := b.CRG.Config()
	if b.SysClkFreq != 60e6 || cfg.Freq != 27e6 || cfg.Synchronizer != crg.SyncDFFS {
		t.Fatalf("sys clock %v, CRG config %+v", b.SysClkFreq, cfg)
	}
	res, err := b.Map()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := res.Region("rgb_led"); !ok {
		t.Fatal("rgb_led not mapped")
	}

	o = config.Options{Board: "sipeed_tang_nano_20k", SPIFlash: true}
	if b, err = o.Resolve(); err != nil {
		t.Fatal(err)
	}
	if b.SysClkFreq != 48e6 {
		t.Fatalf("default sys clock = %v", b.SysClkFreq)
	}
	if _, err = b.Map(); err == nil {
		t.Fatal("expected error for missing SPI flash")
	}
}
