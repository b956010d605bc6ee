package cx4

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Serialize writes the chip's entire state to w in a fixed field
// order, matching the reference implementation's save-state layout
// field for field. Unlike encoding/gob, encoding/binary never reorders
// or tags fields, so a save state produced by one build stays readable
// by the next as long as this function and Deserialize are kept in
// lockstep (spec.md §6).
func (c *Chip) Serialize(w io.Writer) error {
	s := &c.State
	fields := []any{
		s.CycleCount, s.PB, s.PC, s.A, s.P, s.SP, s.Mult, s.RomBuffer,
		s.RamBuffer[0], s.RamBuffer[1], s.RamBuffer[2], s.MemoryDataReg, s.MemoryAddressReg,
		s.DataPointerReg, s.Flags.Negative, s.Flags.Zero, s.Flags.Carry, s.Flags.Overflow,
		s.Flags.IrqFlag, s.Stopped, s.Locked, s.Flags.IrqDisabled, s.SingleRom,
		s.RamAccessDelay, s.RomAccessDelay, s.Bus.Address, s.Bus.DelayCycles, s.Bus.Enabled,
		s.Bus.Reading, s.Bus.Writing, s.Dma.Dest, s.Dma.Enabled, s.Dma.Length, s.Dma.Source,
		s.Dma.Pos, s.Suspend.Duration, s.Suspend.Enabled, s.Cache.Enabled, s.Cache.Lock[0],
		s.Cache.Lock[1], s.Cache.Address[0], s.Cache.Address[1], s.Cache.Base, s.Cache.Page,
		s.Cache.ProgramBank, s.Cache.ProgramCounter, s.Cache.Pos,
		s.Stack, s.Regs, s.Vectors, s.PrgRam[0], s.PrgRam[1], s.DataRam,
	}

	for _, f := range fields {
		if err := binary.Write(w, binary.LittleEndian, f); err != nil {
			return fmt.Errorf("cx4: serialize: %w", err)
		}
	}
	return nil
}

// Deserialize restores the chip's state from a stream written by
// Serialize, in the same fixed order.
func (c *Chip) Deserialize(r io.Reader) error {
	s := &c.State
	fields := []any{
		&s.CycleCount, &s.PB, &s.PC, &s.A, &s.P, &s.SP, &s.Mult, &s.RomBuffer,
		&s.RamBuffer[0], &s.RamBuffer[1], &s.RamBuffer[2], &s.MemoryDataReg, &s.MemoryAddressReg,
		&s.DataPointerReg, &s.Flags.Negative, &s.Flags.Zero, &s.Flags.Carry, &s.Flags.Overflow,
		&s.Flags.IrqFlag, &s.Stopped, &s.Locked, &s.Flags.IrqDisabled, &s.SingleRom,
		&s.RamAccessDelay, &s.RomAccessDelay, &s.Bus.Address, &s.Bus.DelayCycles, &s.Bus.Enabled,
		&s.Bus.Reading, &s.Bus.Writing, &s.Dma.Dest, &s.Dma.Enabled, &s.Dma.Length, &s.Dma.Source,
		&s.Dma.Pos, &s.Suspend.Duration, &s.Suspend.Enabled, &s.Cache.Enabled, &s.Cache.Lock[0],
		&s.Cache.Lock[1], &s.Cache.Address[0], &s.Cache.Address[1], &s.Cache.Base, &s.Cache.Page,
		&s.Cache.ProgramBank, &s.Cache.ProgramCounter, &s.Cache.Pos,
		&s.Stack, &s.Regs, &s.Vectors, &s.PrgRam[0], &s.PrgRam[1], &s.DataRam,
	}

	for _, f := range fields {
		if err := binary.Read(r, binary.LittleEndian, f); err != nil {
			return fmt.Errorf("cx4: deserialize: %w", err)
		}
	}
	return nil
}
