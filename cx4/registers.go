package cx4

import "github.com/sneslab/cx4/irq"

var _ irq.Sender = (*Chip)(nil)

// Raised implements the irq.Sender interface: the host's interrupt
// controller polls this the same way pia6532.Chip.Raised is polled, to
// learn whether the CX4 currently holds its coprocessor IRQ line high.
// It stays true after IrqFlag is set until the host clears it via
// register 0x7F5E, independent of SetIrqClear's own disable-side hook.
func (c *Chip) Raised() bool {
	return c.State.Flags.IrqFlag
}

// SetIrqClear installs the host hook invoked when the CX4 disables its
// own IRQ line (register 0x7F51, spec.md §4.5). A host wires this to
// its own IRQ controller the same way it wires SetExec to its opcode
// decoder; if none is installed, disabling the IRQ still raises
// IrqFlag but nothing clears the host-side source.
func (c *Chip) SetIrqClear(fn func()) {
	c.irqClear = fn
}

// Read implements bus.Handler over the CX4's memory-mapped register
// window (spec.md §4.5): data RAM, interrupt vectors, the 16 general
// registers, the composed status byte, and the DMA/cache/delay/IRQ
// control registers.
func (c *Chip) Read(addr uint32) uint8 {
	s := &c.State
	addr = 0x7000 | (addr & 0xFFF)

	switch {
	case addr <= 0x7BFF:
		return s.DataRam[addr&0xFFF]

	case addr >= 0x7F60 && addr <= 0x7F7F:
		return s.Vectors[addr&0x1F]

	case (addr >= 0x7F80 && addr <= 0x7FAF) || (addr >= 0x7FC0 && addr <= 0x7FEF):
		addr &= 0x3F
		reg := s.Regs[addr/3]
		switch addr % 3 {
		case 0:
			return uint8(reg)
		case 1:
			return uint8(reg >> 8)
		case 2:
			return uint8(reg >> 16)
		}

	case addr >= 0x7F53 && addr <= 0x7F5F:
		var v uint8
		if s.Suspend.Enabled {
			v |= 0x01
		}
		if s.Flags.IrqFlag {
			v |= 0x02
		}
		if s.IsRunning() {
			v |= 0x40
		}
		if s.IsBusy() {
			v |= 0x80
		}
		return v
	}

	switch addr {
	case 0x7F40:
		return uint8(s.Dma.Source)
	case 0x7F41:
		return uint8(s.Dma.Source >> 8)
	case 0x7F42:
		return uint8(s.Dma.Source >> 16)
	case 0x7F43:
		return uint8(s.Dma.Length)
	case 0x7F44:
		return uint8(s.Dma.Length >> 8)
	case 0x7F45:
		return uint8(s.Dma.Dest)
	case 0x7F46:
		return uint8(s.Dma.Dest >> 8)
	case 0x7F47:
		return uint8(s.Dma.Dest >> 16)
	case 0x7F48:
		return s.Cache.Page
	case 0x7F49:
		return uint8(s.Cache.Base)
	case 0x7F4A:
		return uint8(s.Cache.Base >> 8)
	case 0x7F4B:
		return uint8(s.Cache.Base >> 16)
	case 0x7F4C:
		var v uint8
		if s.Cache.Lock[0] {
			v |= 0x01
		}
		if s.Cache.Lock[1] {
			v |= 0x02
		}
		return v
	case 0x7F4D:
		return uint8(s.Cache.ProgramBank)
	case 0x7F4E:
		return uint8(s.Cache.ProgramBank >> 8)
	case 0x7F4F:
		return s.Cache.ProgramCounter
	case 0x7F50:
		return s.RamAccessDelay | (s.RomAccessDelay << 4)
	case 0x7F51:
		if s.Flags.IrqDisabled {
			return 1
		}
		return 0
	case 0x7F52:
		if s.SingleRom {
			return 1
		}
		return 0
	}

	return 0
}

// Write implements bus.Handler over the same window as Read.
func (c *Chip) Write(addr uint32, value uint8) {
	s := &c.State
	addr = 0x7000 | (addr & 0xFFF)

	if addr <= 0x7BFF {
		s.DataRam[addr&0xFFF] = value
		return
	}

	switch {
	case addr >= 0x7F60 && addr <= 0x7F7F:
		s.Vectors[addr&0x1F] = value
		return

	case (addr >= 0x7F80 && addr <= 0x7FAF) || (addr >= 0x7FC0 && addr <= 0x7FEF):
		addr &= 0x3F
		reg := &s.Regs[addr/3]
		switch addr % 3 {
		case 0:
			*reg = (*reg &^ 0x0000FF) | uint32(value)
		case 1:
			*reg = (*reg &^ 0x00FF00) | uint32(value)<<8
		case 2:
			*reg = (*reg &^ 0xFF0000) | uint32(value)<<16
		}
		return

	case addr >= 0x7F55 && addr <= 0x7F5C:
		s.Suspend.Enabled = true
		s.Suspend.Duration = uint16(addr-0x7F55) * 32
		return
	}

	switch addr {
	case 0x7F40:
		s.Dma.Source = (s.Dma.Source &^ 0x0000FF) | uint32(value)
	case 0x7F41:
		s.Dma.Source = (s.Dma.Source &^ 0x00FF00) | uint32(value)<<8
	case 0x7F42:
		s.Dma.Source = (s.Dma.Source &^ 0xFF0000) | uint32(value)<<16
	case 0x7F43:
		s.Dma.Length = (s.Dma.Length &^ 0x00FF) | uint16(value)
	case 0x7F44:
		s.Dma.Length = (s.Dma.Length &^ 0xFF00) | uint16(value)<<8
	case 0x7F45:
		s.Dma.Dest = (s.Dma.Dest &^ 0x0000FF) | uint32(value)
	case 0x7F46:
		s.Dma.Dest = (s.Dma.Dest &^ 0x00FF00) | uint32(value)<<8
	case 0x7F47:
		s.Dma.Dest = (s.Dma.Dest &^ 0xFF0000) | uint32(value)<<16
		if s.Stopped {
			s.Dma.Enabled = true
		}

	case 0x7F48:
		s.Cache.Page = value & 0x01
		if s.Stopped {
			s.Cache.Enabled = true
		}

	case 0x7F49:
		s.Cache.Base = (s.Cache.Base &^ 0x0000FF) | uint32(value)
	case 0x7F4A:
		s.Cache.Base = (s.Cache.Base &^ 0x00FF00) | uint32(value)<<8
	case 0x7F4B:
		s.Cache.Base = (s.Cache.Base &^ 0xFF0000) | uint32(value)<<16

	case 0x7F4C:
		s.Cache.Lock[0] = value&0x01 != 0
		s.Cache.Lock[1] = value&0x02 != 0

	case 0x7F4D:
		s.Cache.ProgramBank = (s.Cache.ProgramBank &^ 0x00FF) | uint16(value)
	case 0x7F4E:
		s.Cache.ProgramBank = (s.Cache.ProgramBank &^ 0xFF00) | uint16(value&0x7F)<<8

	case 0x7F4F:
		s.Cache.ProgramCounter = value
		if s.Stopped {
			s.Stopped = false
			s.PB = s.Cache.ProgramBank
			s.PC = s.Cache.ProgramCounter
		}

	case 0x7F50:
		s.RamAccessDelay = value & 0x07
		s.RomAccessDelay = (value >> 4) & 0x07

	case 0x7F51:
		s.Flags.IrqDisabled = value&0x01 != 0
		if s.Flags.IrqDisabled {
			s.Flags.IrqFlag = true
			if c.irqClear != nil {
				c.irqClear()
			}
		}

	case 0x7F52:
		s.SingleRom = value&0x01 != 0

	case 0x7F53:
		s.Locked = false
		s.Stopped = true

	case 0x7F5D:
		s.Suspend.Enabled = false

	case 0x7F5E:
		// Clears the internal flag but leaves the IRQ signal asserted
		// until the host's own controller clears it (spec.md §4.5).
		s.Flags.IrqFlag = false
	}
}
