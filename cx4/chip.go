package cx4

import (
	"fmt"

	"github.com/sneslab/cx4/bus"
	"github.com/sneslab/cx4/clock"
	"github.com/sneslab/cx4/memtype"
	"github.com/sneslab/cx4/notify"
)

// Config configures a new Chip.
type Config struct {
	// HostMasterClockRate is the host console's master clock rate in
	// Hz. Run converts a master-clock target into CX4-local cycles
	// using clock.Cx4Rate/HostMasterClockRate.
	HostMasterClockRate float64
	// StrictBoardMapping restricts PRG ROM mirroring to banks 00-3F /
	// 80-BF instead of the extended 00-7D / 80-FF range (spec.md §4.1).
	StrictBoardMapping bool
	// Notify, if non-nil, receives memory-activity notifications for
	// every CX4-driven bus access (read, write, opcode fetch).
	Notify notify.Sink
}

// Chip is the host-facing CX4 coprocessor: it implements bus.Handler
// over its memory-mapped register window and exposes the drive
// interface (Run/Reset/Serialize/IsRunning/IsBusy) a host uses to keep
// it in lock-step with the master clock.
type Chip struct {
	State State

	mapping    bus.Mapper // CX4's private view: no register window.
	notify     notify.Sink
	clockRatio float64

	lastHalt *HaltError
	exec     func(opcode uint16)
	irqClear func()
}

// New returns a freshly reset Chip wired to the given PRG ROM and
// SaveRAM handlers. Both may be nil if the cartridge lacks that
// resource (e.g. no SaveRAM).
func New(cfg Config, prgRom, saveRam bus.Handler) (*Chip, error) {
	if cfg.HostMasterClockRate <= 0 {
		return nil, fmt.Errorf("cx4: HostMasterClockRate must be positive, got %v", cfg.HostMasterClockRate)
	}
	c := &Chip{
		notify:     cfg.Notify,
		clockRatio: clock.Cx4Rate / cfg.HostMasterClockRate,
	}
	RegisterWindows(&c.mapping, cfg.StrictBoardMapping, prgRom, saveRam, nil)
	c.State.Reset()
	return c, nil
}

// RegisterWindows maps the CX4's PRG ROM, SaveRAM and (if registers is
// non-nil) register windows onto m, per spec.md §4.1. The host uses
// this same helper to build its own CPU-side mapping, passing the Chip
// itself as registers so that both mappings share the ROM/RAM handlers
// but differ in whether the register window is present.
func RegisterWindows(m *bus.Mapper, strict bool, prgRom, saveRam, registers bus.Handler) {
	bankCount := uint8(0x7F)
	if strict {
		bankCount = 0x3F
	}
	lowHi := bankCount
	if lowHi > 0x7D {
		lowHi = 0x7D
	}
	if prgRom != nil {
		m.RegisterHandler(0x00, lowHi, 0x8000, 0xFFFF, prgRom)
		m.RegisterHandler(0x80, 0x80+bankCount, 0x8000, 0xFFFF, prgRom)
	}
	if saveRam != nil {
		m.RegisterHandler(0x70, 0x7D, 0x0000, 0x7FFF, saveRam)
		m.RegisterHandler(0xF0, 0xFF, 0x0000, 0x7FFF, saveRam)
	}
	if registers != nil {
		m.RegisterHandler(0x00, 0x3F, 0x6000, 0x7FFF, registers)
		m.RegisterHandler(0x80, 0xBF, 0x6000, 0x7FFF, registers)
	}
}

// Reset implements the drive interface: it returns the CX4 to its
// power-on state (spec.md §3, Lifecycle).
func (c *Chip) Reset() {
	c.State.Reset()
	c.lastHalt = nil
}

// IsRunning implements the drive interface.
func (c *Chip) IsRunning() bool {
	return c.State.IsRunning()
}

// IsBusy implements the drive interface.
func (c *Chip) IsBusy() bool {
	return c.State.IsBusy()
}

// LastHaltReason returns the most recent unrecoverable condition
// (spec.md §7, taxonomy items 1-2) that latched Locked or Stopped, or
// nil if none has occurred since the last Reset; the recovery register
// writes do not clear it. This is
// purely informational: Run never returns an error for it, since
// per spec.md §7 all such conditions are in-band state observable via
// registers, not exceptions thrown across the handler boundary.
func (c *Chip) LastHaltReason() *HaltError {
	return c.lastHalt
}

// Peek implements bus.Handler. The CX4 always returns 0 for Peek
// (spec.md §7 taxonomy item 3 / §6).
func (c *Chip) Peek(addr uint32) uint8 {
	return 0
}

// MemoryType implements bus.Handler.
func (c *Chip) MemoryType() memtype.Type {
	return memtype.Register
}

// readCX4 performs a bus read on the CX4's private mapping, notifying
// the host of the access. Reads through an unmapped address return 0
// (open-bus placeholder, spec.md §7 taxonomy item 3).
func (c *Chip) readCX4(addr uint32) uint8 {
	addr &= 0xFFFFFF
	h := c.mapping.GetHandler(addr)
	if h == nil {
		return 0
	}
	v := h.Read(addr)
	c.notifyEvent(addr, v, notify.Read)
	return v
}

// writeCX4 performs a bus write on the CX4's private mapping.
func (c *Chip) writeCX4(addr uint32, val uint8) {
	addr &= 0xFFFFFF
	h := c.mapping.GetHandler(addr)
	if h == nil {
		return
	}
	c.notifyEvent(addr, val, notify.Write)
	h.Write(addr, val)
}

func (c *Chip) notifyEvent(addr uint32, val uint8, op notify.Operation) {
	if c.notify != nil {
		c.notify.MemoryEvent(addr, val, op)
	}
}

// getHandler exposes the private mapping's lookup to the DMA engine,
// which needs both the source and destination handler's MemoryType.
func (c *Chip) getHandler(addr uint32) bus.Handler {
	return c.mapping.GetHandler(addr & 0xFFFFFF)
}

// GetAccessDelay returns the bus-delay unit's per-access cost
// (spec.md §4.2): 1+RomAccessDelay for PRG ROM, 1+RamAccessDelay for
// SaveRAM, else 1.
func (c *Chip) GetAccessDelay(addr uint32) uint8 {
	h := c.getHandler(addr)
	if h == nil {
		return 1
	}
	switch h.MemoryType() {
	case memtype.Rom:
		return 1 + c.State.RomAccessDelay
	case memtype.SaveRam:
		return 1 + c.State.RamAccessDelay
	default:
		return 1
	}
}

// step advances CycleCount by cycles and, if a bus transaction is
// pending, drains its delay and completes the read/write on expiry
// (spec.md §4.2).
func (c *Chip) step(cycles uint64) {
	s := &c.State
	if s.Bus.Enabled {
		if uint64(s.Bus.DelayCycles) > cycles {
			s.Bus.DelayCycles -= uint8(cycles)
		} else {
			s.Bus.Enabled = false
			s.Bus.DelayCycles = 0
			if s.Bus.Reading {
				s.MemoryDataReg = c.readCX4(s.Bus.Address)
				s.Bus.Reading = false
			}
			if s.Bus.Writing {
				c.writeCX4(s.Bus.Address, s.MemoryDataReg)
				s.Bus.Writing = false
			}
		}
	}
	s.CycleCount += cycles
}

// stop sets Stopped, the same flip the reference implementation's
// internal Stop() performs from several call sites (page-swap giving
// up, an exhausted cache miss).
func (c *Chip) stop() {
	c.State.Stopped = true
}

// Exec is the opcode-executor collaborator contract (C7): the CX4
// fetches a 16-bit opcode from the current cache page and hands it
// here. The decoder itself is out of scope for this package; by
// default Exec is a no-op so Run can still be exercised (cache fill,
// DMA, register writes) without a decoder wired in. A host installs a
// real decoder with SetExec.
func (c *Chip) Exec(opcode uint16) {
	if c.exec != nil {
		c.exec(opcode)
	}
}

// SetExec installs the opcode-executor collaborator.
func (c *Chip) SetExec(fn func(opcode uint16)) {
	c.exec = fn
}
