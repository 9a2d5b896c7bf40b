// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package soc

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrBootAddressSet is returned by SetBootAddress when the boot address has
// already been set for this build.
//
var ErrBootAddressSet = errors.New("boot address already set")

// DuplicateRegionError is returned when registering a region whose name is
// already in use.
//
type DuplicateRegionError struct {
	Name     string
	Existing Region
}

func (e *DuplicateRegionError) Error() string {
	return fmt.Sprintf("region %s already registered: %v", e.Name, e.Existing)
}

// OverlapError is returned when a bus slave region intersects another one.
//
type OverlapError struct {
	Region   Region
	Existing Region
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("region %v overlaps region %v", e.Region, e.Existing)
}

// ContainmentError is returned when a derived region does not fit in its base
// region.
//
type ContainmentError struct {
	Name   string
	Base   Region
	Offset uint64
	Size   uint64
}

func (e *ContainmentError) Error() string {
	return fmt.Sprintf("region %s at offset 0x%x size 0x%x does not fit in region %v",
		e.Name, e.Offset, e.Size, e.Base)
}

// UnknownRegionError is returned when looking up a region that does not exist.
//
type UnknownRegionError struct {
	Name string
}

func (e *UnknownRegionError) Error() string {
	return "unknown region " + e.Name
}

// AlignmentError is returned when the origin or size of a bus slave region is
// not a multiple of the bus granularity.
//
type AlignmentError struct {
	Region Region
	Align  uint64
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("region %v not aligned to %d bytes", e.Region, e.Align)
}

// RangeError is returned for empty regions or regions that do not fit in the
// bus address space.
//
type RangeError struct {
	Region       Region
	AddressWidth uint
}

func (e *RangeError) Error() string {
	if e.Region.Size == 0 {
		return fmt.Sprintf("region %s has zero size", e.Region.Name)
	}
	return fmt.Sprintf("region %v exceeds the %d bits address space", e.Region, e.AddressWidth)
}

// FlashLayoutError is returned when the firmware and gateware images do not fit
// in the external flash device.
//
type FlashLayoutError struct {
	Plan   FlashPlan
	Reason string
}

func (e *FlashLayoutError) Error() string {
	return fmt.Sprintf("bad flash layout (bios at 0x%x, gateware at 0x%x size 0x%x, flash size 0x%x): %s",
		e.Plan.BiosOffset, e.Plan.GatewareOffset, e.Plan.BitstreamSize, e.Plan.FlashSize, e.Reason)
}
