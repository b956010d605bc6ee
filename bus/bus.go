// Package bus implements the address-window dispatch table shared by
// the coprocessors in this module. A lookup on a 24-bit SNES address
// returns the Handler registered for the (bank, offset) rectangle that
// contains it, or nil if nothing is mapped there.
package bus

import "github.com/sneslab/cx4/memtype"

// Handler is the capability set a mapped device must implement. It
// mirrors the host-facing handler interface: reads and writes are
// restricted to the device's own mapped windows, Peek is side-effect
// free, and MemoryType identifies the device for the same-type DMA
// rejection rule.
type Handler interface {
	Read(addr uint32) uint8
	Write(addr uint32, val uint8)
	Peek(addr uint32) uint8
	MemoryType() memtype.Type
}

// Window is one registered (bank range, offset range) rectangle.
type Window struct {
	BankLo, BankHi uint8
	AddrLo, AddrHi uint16
	Handler        Handler
}

func (w Window) contains(addr uint32) bool {
	bank := uint8(addr >> 16)
	offset := uint16(addr)
	return bank >= w.BankLo && bank <= w.BankHi && offset >= w.AddrLo && offset <= w.AddrHi
}

// Mapper is a segmented dispatch table. Ownership of the Handlers is
// external: the Mapper borrows them, it never constructs or frees one.
type Mapper struct {
	windows []Window
}

// RegisterHandler maps every address in [bankLo,bankHi]x[addrLo,addrHi]
// to h. Later registrations are not checked against earlier ones;
// Lookup returns the first match in registration order, so overlapping
// windows must be registered most-specific first.
func (m *Mapper) RegisterHandler(bankLo, bankHi uint8, addrLo, addrHi uint16, h Handler) {
	m.windows = append(m.windows, Window{bankLo, bankHi, addrLo, addrHi, h})
}

// GetHandler returns the Handler mapped at addr, or nil.
func (m *Mapper) GetHandler(addr uint32) Handler {
	addr &= 0xFFFFFF
	for _, w := range m.windows {
		if w.contains(addr) {
			return w.Handler
		}
	}
	return nil
}

// Read looks up addr and reads through its handler, returning 0 for an
// unmapped address (open-bus placeholder, spec'd as imperfect).
func (m *Mapper) Read(addr uint32) uint8 {
	if h := m.GetHandler(addr); h != nil {
		return h.Read(addr)
	}
	return 0
}

// Write looks up addr and writes through its handler. Writes to an
// unmapped address are silently discarded.
func (m *Mapper) Write(addr uint32, val uint8) {
	if h := m.GetHandler(addr); h != nil {
		h.Write(addr, val)
	}
}
