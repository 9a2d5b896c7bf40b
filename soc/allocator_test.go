package soc_test

import (
	"testing"

	"github.com/db47h/socsim/soc"
	"github.com/pkg/errors"
)

func mustRegister(t *testing.T, a *soc.Allocator, name string, origin, size uint64, linker bool) soc.Region {
	t.Helper()
	r, err := a.Register(name, origin, size, linker)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestRegister_overlap(t *testing.T) {
	a := soc.NewAllocator(soc.NewRegistry())
	mustRegister(t, a, "a", 0, 0x10000, false)
	_, err := a.Register("b", 0x8000, 0x10000, false)
	oe, ok := errors.Cause(err).(*soc.OverlapError)
	if !ok {
		t.Fatalf("got error %v, expected OverlapError", err)
	}
	if oe.Existing.Name != "a" || oe.Region.Name != "b" {
		t.Fatalf("bad overlap error %v", oe)
	}
	exp := "region b [0x00008000-0x00018000) size 0x10000 overlaps region a [0x00000000-0x00010000) size 0x10000"
	if oe.Error() != exp {
		t.Fatalf("got %q, expected %q", oe.Error(), exp)
	}
	if a.Registry().Contains("b") {
		t.Fatal("failed registration left region b in the registry")
	}

	// adjacent regions do not overlap
	mustRegister(t, a, "c", 0x10000, 0x10000, false)
	// linker regions may overlap anything
	mustRegister(t, a, "d", 0x8000, 0x10000, true)
}

func TestRegister_duplicate(t *testing.T) {
	a := soc.NewAllocator(soc.NewRegistry())
	mustRegister(t, a, "ram", 0, 0x20000, false)
	for _, linker := range []bool{false, true} {
		_, err := a.Register("ram", 0x100000, 0x1000, linker)
		de, ok := errors.Cause(err).(*soc.DuplicateRegionError)
		if !ok {
			t.Fatalf("got error %v, expected DuplicateRegionError", err)
		}
		if de.Existing.Origin != 0 || de.Existing.Size != 0x20000 {
			t.Fatalf("bad existing region %v", de.Existing)
		}
	}
}

func TestRegister_range(t *testing.T) {
	td := []struct {
		name   string
		origin uint64
		size   uint64
		linker bool
		err    interface{}
	}{
		{"zero", 0, 0, false, (*soc.RangeError)(nil)},
		{"zero_linker", 0, 0, true, (*soc.RangeError)(nil)},
		{"past_4G", 0xfffff000, 0x2000, false, (*soc.RangeError)(nil)},
		{"wrap", 0xffffffffffffff00, 0x200, true, (*soc.RangeError)(nil)},
		{"top", 0xfffff000, 0x1000, false, nil},
		{"unaligned_origin", 0x1002, 0x100, false, (*soc.AlignmentError)(nil)},
		{"unaligned_size", 0x2000, 0x102, false, (*soc.AlignmentError)(nil)},
		{"unaligned_linker", 0x3001, 0x3, true, nil},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			a := soc.NewAllocator(soc.NewRegistry())
			_, err := a.Register(d.name, d.origin, d.size, d.linker)
			switch d.err.(type) {
			case nil:
				if err != nil {
					t.Fatal(err)
				}
			case *soc.RangeError:
				if _, ok := errors.Cause(err).(*soc.RangeError); !ok {
					t.Fatalf("got error %v, expected RangeError", err)
				}
			case *soc.AlignmentError:
				if _, ok := errors.Cause(err).(*soc.AlignmentError); !ok {
					t.Fatalf("got error %v, expected AlignmentError", err)
				}
			}
		})
	}
}

func TestAllocatorOptions(t *testing.T) {
	a := soc.NewAllocator(soc.NewRegistry(), soc.WithAlignment(0x1000), soc.WithAddressWidth(64))
	if _, err := a.Register("x", 0x800, 0x1000, false); err == nil {
		t.Fatal("expected alignment error")
	}
	mustRegister(t, a, "y", 0x100000000, 0x1000, false)
}

func TestDerive(t *testing.T) {
	a := soc.NewAllocator(soc.NewRegistry())
	mustRegister(t, a, "flash", 0x00000000, 0x1000000, false)
	r, err := a.Derive("rom", "flash", 0x20000, 0x8000, true)
	if err != nil {
		t.Fatal(err)
	}
	if exp := (soc.Region{Name: "rom", Origin: 0x20000, Size: 0x8000, Linker: true}); r != exp {
		t.Fatalf("got region %v, expected %v", r, exp)
	}

	_, err = a.Derive("rom2", "flash", 0xFFF000, 0x8000, true)
	ce, ok := errors.Cause(err).(*soc.ContainmentError)
	if !ok {
		t.Fatalf("got error %v, expected ContainmentError", err)
	}
	if ce.Base.Name != "flash" || ce.Offset != 0xFFF000 || ce.Size != 0x8000 {
		t.Fatalf("bad containment error %v", ce)
	}

	// exact fit
	if _, err = a.Derive("tail", "flash", 0xFF8000, 0x8000, true); err != nil {
		t.Fatal(err)
	}
	// overflowing offset
	if _, err = a.Derive("big", "flash", ^uint64(0), 2, true); err == nil {
		t.Fatal("expected ContainmentError for overflowing offset")
	}

	_, err = a.Derive("x", "nope", 0, 4, true)
	if ue, ok := errors.Cause(err).(*soc.UnknownRegionError); !ok || ue.Name != "nope" {
		t.Fatalf("got error %v, expected UnknownRegionError", err)
	}

	// derived regions still go through Register
	if _, err = a.Derive("rom", "flash", 0, 4, true); err == nil {
		t.Fatal("expected DuplicateRegionError")
	}
}

type cpu struct {
	addr  uint64
	calls int
}

func (c *cpu) SetResetAddress(addr uint64) { c.addr = addr; c.calls++ }

func TestSetBootAddress(t *testing.T) {
	var c cpu
	a := soc.NewAllocator(soc.NewRegistry(), soc.WithCPU(&c))
	mustRegister(t, a, "spiflash", 0x20000000, 0x1000000, false)
	if _, err := a.Derive("rom", "spiflash", 0x20000, 0x8000, true); err != nil {
		t.Fatal(err)
	}

	if _, ok := a.BootAddress(); ok {
		t.Fatal("boot address set before SetBootAddress")
	}
	err := a.SetBootAddress("bios")
	if _, ok := errors.Cause(err).(*soc.UnknownRegionError); !ok {
		t.Fatalf("got error %v, expected UnknownRegionError", err)
	}
	if err = a.SetBootAddress("rom"); err != nil {
		t.Fatal(err)
	}
	boot, ok := a.BootAddress()
	rom, _ := a.Registry().Lookup("rom")
	if !ok || boot != 0x20020000 || boot != rom.Origin {
		t.Fatalf("boot address = 0x%x, expected 0x20020000", boot)
	}
	if c.calls != 1 || c.addr != 0x20020000 {
		t.Fatalf("CPU reset address = 0x%x (%d calls)", c.addr, c.calls)
	}
	if err = a.SetBootAddress("spiflash"); errors.Cause(err) != soc.ErrBootAddressSet {
		t.Fatalf("got error %v, expected ErrBootAddressSet", err)
	}
	if boot, _ = a.BootAddress(); boot != 0x20020000 {
		t.Fatal("boot address changed")
	}
}

func TestRegistry(t *testing.T) {
	reg := soc.NewRegistry()
	a := soc.NewAllocator(reg)
	if a.Registry() != reg {
		t.Fatal("allocator does not use the given registry")
	}
	mustRegister(t, a, "csr", 0xf0000000, 0x10000, false)
	mustRegister(t, a, "spiflash", 0x20000000, 0x400000, false)
	mustRegister(t, a, "alias", 0x20000000, 0x1000, true)
	mustRegister(t, a, "sram", 0x10000000, 0x20000, false)

	if reg.Len() != 4 || !reg.Contains("sram") || reg.Contains("main_ram") {
		t.Fatal("bad registry contents")
	}
	var names []string
	for _, r := range reg.Regions() {
		names = append(names, r.Name)
	}
	exp := []string{"sram", "spiflash", "alias", "csr"}
	for i := range exp {
		if names[i] != exp[i] {
			t.Fatalf("Regions() = %v, expected %v", names, exp)
		}
	}
	r, _ := reg.Lookup("sram")
	if !r.Contains(0x1001ffff) || r.Contains(0x10020000) || r.Contains(0x0fffffff) {
		t.Fatal("bad Region.Contains")
	}
	if s := r.String(); s != "sram [0x10000000-0x10020000) size 0x20000" {
		t.Fatalf("Region.String() = %q", s)
	}
}
