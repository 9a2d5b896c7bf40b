// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package soc

// Bus defaults.
const (
	DefaultAlignment    = 4
	DefaultAddressWidth = 32
)

// CPU is the part of a CPU the allocator configures.
//
type CPU interface {
	SetResetAddress(addr uint64)
}

// An Option configures an Allocator.
//
type Option func(*Allocator)

// WithAlignment sets the bus granularity in bytes. Bus slave regions must have
// their origin and size aligned to it. The default is DefaultAlignment.
//
func WithAlignment(n uint64) Option {
	return func(a *Allocator) {
		if n == 0 {
			n = 1
		}
		a.align = n
	}
}

// WithAddressWidth sets the bus address width in bits. The default is
// DefaultAddressWidth.
//
func WithAddressWidth(bits uint) Option {
	return func(a *Allocator) { a.addrBits = bits }
}

// WithCPU sets the CPU whose reset address is set by SetBootAddress.
//
func WithCPU(cpu CPU) Option {
	return func(a *Allocator) { a.cpu = cpu }
}

// Allocator assigns regions in a Registry and sets the boot address.
//
// Calls are processed in order: each call sees the regions registered by
// earlier calls.
//
type Allocator struct {
	reg      *Registry
	align    uint64
	addrBits uint
	cpu      CPU
	boot     uint64
	bootSet  bool
}

// NewAllocator returns a new allocator working on reg.
//
func NewAllocator(reg *Registry, opts ...Option) *Allocator {
	a := &Allocator{
		reg:      reg,
		align:    DefaultAlignment,
		addrBits: DefaultAddressWidth,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Registry returns the allocator's registry.
//
func (a *Allocator) Registry() *Registry { return a.reg }

// Register adds a new region.
//
// It fails with a *DuplicateRegionError if the name is already in use, and,
// for bus slaves (non linker regions), with an *OverlapError if the region
// intersects another bus slave or an *AlignmentError if it is not aligned to
// the bus granularity. Empty regions or regions not fitting in the address
// space fail with a *RangeError.
//
func (a *Allocator) Register(name string, origin, size uint64, linker bool) (Region, error) {
	r := Region{Name: name, Origin: origin, Size: size, Linker: linker}
	if x, ok := a.reg.Lookup(name); ok {
		return Region{}, &DuplicateRegionError{Name: name, Existing: x}
	}
	if size == 0 || origin+size < origin {
		return Region{}, &RangeError{Region: r, AddressWidth: a.addrBits}
	}
	if a.addrBits < 64 && r.End() > uint64(1)<<a.addrBits {
		return Region{}, &RangeError{Region: r, AddressWidth: a.addrBits}
	}
	if !linker {
		if origin%a.align != 0 || size%a.align != 0 {
			return Region{}, &AlignmentError{Region: r, Align: a.align}
		}
		for _, x := range a.reg.regions {
			if !x.Linker && r.Overlaps(x) {
				return Region{}, &OverlapError{Region: r, Existing: x}
			}
		}
	}
	a.reg.add(r)
	return r, nil
}

// Derive adds a new region at the given offset within the base region. It
// fails with an *UnknownRegionError if base does not exist and with a
// *ContainmentError if the new region does not fit entirely in base.
// Otherwise it behaves like Register.
//
// Derived regions are usually linker regions.
//
func (a *Allocator) Derive(name, base string, offset, size uint64, linker bool) (Region, error) {
	b, ok := a.reg.Lookup(base)
	if !ok {
		return Region{}, &UnknownRegionError{Name: base}
	}
	if offset+size < offset || offset+size > b.Size {
		return Region{}, &ContainmentError{Name: name, Base: b, Offset: offset, Size: size}
	}
	return a.Register(name, b.Origin+offset, size, linker)
}

// SetBootAddress sets the boot address to the origin of the named region, and
// forwards it to the CPU if one was configured. The boot address can only be
// set once.
//
func (a *Allocator) SetBootAddress(name string) error {
	if a.bootSet {
		return ErrBootAddressSet
	}
	r, ok := a.reg.Lookup(name)
	if !ok {
		return &UnknownRegionError{Name: name}
	}
	a.boot, a.bootSet = r.Origin, true
	if a.cpu != nil {
		a.cpu.SetResetAddress(r.Origin)
	}
	return nil
}

// BootAddress returns the boot address and whether it has been set.
//
func (a *Allocator) BootAddress() (uint64, bool) {
	return a.boot, a.bootSet
}
