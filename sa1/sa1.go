// Package sa1 implements the SA1 companion CPU's cycle accountant: the
// per-access cost and bus-contention model that the SA1's own opcode
// decoder (out of scope here, same as the CX4's) consults after every
// memory access, jump, and branch. See cx4 for the sibling coprocessor
// this shares bus semantics with.
package sa1

import "github.com/sneslab/cx4/memtype"

// Rate is the SA1's native clock rate in Hz.
const Rate = 10_740_000

// Accountant tracks the SA1's local cycle count and charges the cost
// table of spec.md §4.7 for each access, idle tick, jump/return, and
// branch the decoder reports.
type Accountant struct {
	CycleCount uint64
}

// conflict holds iff the host CPU is simultaneously accessing the same
// memory type the SA1 is, and that type isn't the register window
// (register accesses never contend, since each side has its own
// register file).
func conflict(sa1Type, hostType memtype.Type) bool {
	return hostType == sa1Type && sa1Type != memtype.Register
}

// Idle charges one cycle for a cycle that touches no memory. Internal
// SA1 cycles are never delayed; they run at the native 10.74 MHz
// regardless of the host's speed.
func (a *Accountant) Idle() {
	a.CycleCount++
}

// Access charges the cost of one CPU read or write whose target
// resolves to sa1Type, given the memory type the host 65c816 is
// simultaneously accessing and whether the host is currently running
// at FastROM speed.
func (a *Accountant) Access(sa1Type, hostType memtype.Type, hostFastRom bool) {
	a.CycleCount++

	switch {
	case sa1Type == memtype.SaveRam:
		// BWRAM access costs an extra cycle; a simultaneous conflict
		// on that same BWRAM costs two more on top of that.
		a.CycleCount++
		if conflict(sa1Type, hostType) {
			a.CycleCount += 2
		}

	case conflict(sa1Type, hostType):
		a.CycleCount++
		if sa1Type == memtype.Sa1InternalRam && hostFastRom {
			a.CycleCount++
		}
	}
}

// JumpOrReturn charges the extra cost of a jump or return landing on
// targetType, given the memory type the host is simultaneously
// accessing.
func (a *Accountant) JumpOrReturn(targetType, hostType memtype.Type) {
	if targetType == memtype.Rom {
		a.CycleCount++
		if hostType == memtype.Rom {
			a.CycleCount++
		}
	}
}

// Branch charges the extra cost of a branch whose target address is
// targetAddr, landing on targetType. Only odd target addresses into
// PRG ROM cost anything extra.
func (a *Accountant) Branch(targetAddr uint16, targetType memtype.Type) {
	if targetAddr&0x01 != 0 && targetType == memtype.Rom {
		a.CycleCount++
	}
}
