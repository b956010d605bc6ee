// Package cx4 implements the CX4 coprocessor: its cache-loading state
// machine, DMA engine, register interface, memory mapping and the
// catch-up driver that advances it to a target master cycle. The
// opcode decoder itself (package-external, see Exec) is treated as a
// black box; this package only implements the contract by which
// opcodes are fetched and dispatched.
package cx4

// DataRamSize is the size in bytes of the CX4's auxiliary data RAM.
const DataRamSize = 0x0C00

// Flags holds the CX4's condition-code and interrupt flags.
type Flags struct {
	Negative    bool
	Zero        bool
	Carry       bool
	Overflow    bool
	IrqFlag     bool
	IrqDisabled bool
}

// BusState models the multi-cycle transaction unit (C2): a pending
// read or write is deferred until DelayCycles elapses.
type BusState struct {
	Enabled     bool
	Reading     bool
	Writing     bool
	Address     uint32
	DelayCycles uint8
}

// CacheState is the cache engine's control state (C3). The 512-byte
// program pages themselves live in State.PrgRam, mirroring how the
// reference implementation keeps them as a sibling array rather than
// embedding them in the control struct.
type CacheState struct {
	Address        [2]uint32
	Lock           [2]bool
	Page           uint8
	Base           uint32
	Pos            uint16
	Enabled        bool
	ProgramBank    uint16
	ProgramCounter uint8
}

// DmaState is the DMA engine's control state (C4).
type DmaState struct {
	Source  uint32
	Dest    uint32
	Length  uint16
	Pos     uint16
	Enabled bool
}

// SuspendState is the host-armed stall (§5, "Suspend").
type SuspendState struct {
	Enabled  bool
	Duration uint16
}

// State is the complete, persistent CX4 state (spec.md §3). It is
// exported in full so tests (and Serialize/Deserialize) can compare or
// stream every field without accessor boilerplate; Chip is the
// Read/Write/Run-bearing wrapper around it.
type State struct {
	CycleCount uint64

	PB uint16
	PC uint8
	P  uint16

	A    uint32
	Regs [16]uint32
	SP   uint8
	Stack [8]uint16

	Mult             uint32
	MemoryDataReg    uint8
	MemoryAddressReg uint32
	DataPointerReg   uint32
	RomBuffer        uint8
	RamBuffer        [3]uint8

	Flags

	Stopped        bool
	Locked         bool
	SingleRom      bool
	RamAccessDelay uint8
	RomAccessDelay uint8

	Bus     BusState
	Cache   CacheState
	Dma     DmaState
	Suspend SuspendState

	Vectors [32]uint8

	PrgRam  [2][256]uint16
	DataRam [DataRamSize]uint8
}

// Reset zeroes the state and returns it to the power-on configuration
// described in spec.md §3's Lifecycle paragraph.
func (s *State) Reset() {
	*s = State{}
	s.Stopped = true
	s.SingleRom = true
	s.RamAccessDelay = 3
	s.RomAccessDelay = 3
}

// IsBusy reports whether the CX4 has work in flight that isn't opcode
// execution: an active cache fill, an active DMA, or a pending bus
// transaction.
func (s *State) IsBusy() bool {
	return s.Cache.Enabled || s.Dma.Enabled || s.Bus.DelayCycles > 0
}

// IsRunning reports whether the CX4 is doing anything at all: busy, or
// not stopped (i.e. executing opcodes).
func (s *State) IsRunning() bool {
	return s.IsBusy() || !s.Stopped
}
