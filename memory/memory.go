// Package memory provides the concrete bus.Handler implementations
// backing a cartridge: read-only PRG ROM and battery-backed SaveRAM.
// Unlike the 16-bit 6502-family Bank this is adapted from, both
// handlers here are addressed with the full 24-bit SNES bus address;
// the mapping table is responsible for restricting each handler to its
// own window before calling through.
package memory

import (
	"fmt"

	"github.com/sneslab/cx4/memtype"
)

// ROM implements bus.Handler over an immutable, power-of-two-masked
// byte slice. Writes are silently ignored, matching real PRG ROM.
type ROM struct {
	data []uint8
	mask uint32
}

// NewROM wraps data as a PRG ROM handler. The addressable size is
// rounded down to the largest power of two not exceeding len(data), so
// an odd-sized dump aliases the same way an underpopulated ROM chip
// would on real hardware rather than being rejected outright.
func NewROM(data []uint8) (*ROM, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("memory: ROM image must be non-empty")
	}
	size := uint32(1)
	for size*2 <= uint32(len(data)) {
		size *= 2
	}
	return &ROM{data: data, mask: size - 1}, nil
}

// Read implements bus.Handler.
func (r *ROM) Read(addr uint32) uint8 {
	return r.data[addr&r.mask]
}

// Write implements bus.Handler. PRG ROM cannot be written.
func (r *ROM) Write(addr uint32, val uint8) {}

// Peek implements bus.Handler with no side effects (identical to Read
// since ROM reads never have side effects).
func (r *ROM) Peek(addr uint32) uint8 {
	return r.data[addr&r.mask]
}

// MemoryType implements bus.Handler.
func (r *ROM) MemoryType() memtype.Type {
	return memtype.Rom
}

// SaveRAM implements bus.Handler over a read/write, power-of-two-masked
// byte slice representing battery-backed cartridge RAM.
type SaveRAM struct {
	data []uint8
	mask uint32
}

// NewSaveRAM allocates a SaveRAM handler of the given size, which must
// be a power of two.
func NewSaveRAM(size int) (*SaveRAM, error) {
	if size <= 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("memory: SaveRAM size %d must be a positive power of two", size)
	}
	return &SaveRAM{data: make([]uint8, size), mask: uint32(size - 1)}, nil
}

// Read implements bus.Handler.
func (s *SaveRAM) Read(addr uint32) uint8 {
	return s.data[addr&s.mask]
}

// Write implements bus.Handler.
func (s *SaveRAM) Write(addr uint32, val uint8) {
	s.data[addr&s.mask] = val
}

// Peek implements bus.Handler with no side effects.
func (s *SaveRAM) Peek(addr uint32) uint8 {
	return s.data[addr&s.mask]
}

// MemoryType implements bus.Handler.
func (s *SaveRAM) MemoryType() memtype.Type {
	return memtype.SaveRam
}

// Bytes exposes the backing storage directly, e.g. for save-file I/O
// owned by the host (this package never performs file I/O itself).
func (s *SaveRAM) Bytes() []uint8 {
	return s.data
}
