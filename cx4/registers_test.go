package cx4_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeneralRegisterBytePacking(t *testing.T) {
	c, _, _ := newTestChip(t)

	// Register 2 occupies addresses 0x7F80+6, +7, +8 (3 bytes, addr/3
	// selects the register, addr%3 selects the byte within it).
	base := uint32(0x7F80 + 6)
	c.Write(base+0, 0x11)
	c.Write(base+1, 0x22)
	c.Write(base+2, 0x33)

	require.Equal(t, uint32(0x332211), c.State.Regs[2])
	require.Equal(t, uint8(0x11), c.Read(base+0))
	require.Equal(t, uint8(0x22), c.Read(base+1))
	require.Equal(t, uint8(0x33), c.Read(base+2))

	// The mirror at 0x7FC0-0x7FEF addresses the same backing registers.
	require.Equal(t, uint8(0x11), c.Read(0x7FC0+6))
}

func TestDataRamReadWrite(t *testing.T) {
	c, _, _ := newTestChip(t)
	c.Write(0x0042, 0x99)
	require.Equal(t, uint8(0x99), c.Read(0x0042))
	require.Equal(t, uint8(0x99), c.State.DataRam[0x042])
}

func TestVectorsReadWrite(t *testing.T) {
	c, _, _ := newTestChip(t)
	c.Write(0x7F60, 0xAA)
	c.Write(0x7F7F, 0xBB)
	require.Equal(t, uint8(0xAA), c.State.Vectors[0])
	require.Equal(t, uint8(0xBB), c.State.Vectors[0x1F])
}

func TestStatusByteComposition(t *testing.T) {
	c, _, _ := newTestChip(t)

	require.Equal(t, uint8(0), c.Read(0x7F53))

	c.Write(0x7F55, 1) // arms Suspend with a zero duration (held until 0x7F5D)
	require.Equal(t, uint8(0x01), c.Read(0x7F53)&0x01)

	c.Write(0x7F5D, 0) // disarm suspend again before the next assertion
	require.False(t, c.State.Suspend.Enabled)
}

func TestDmaRegisterArmsOnlyWhenStopped(t *testing.T) {
	c, _, _ := newTestChip(t)
	c.State.Stopped = false

	c.Write(0x7F40, 0x00)
	c.Write(0x7F43, 0x01)
	c.Write(0x7F45, 0x00)
	c.Write(0x7F47, 0x70) // would normally arm the DMA

	require.False(t, c.State.Dma.Enabled)
}

func TestProgramCounterWriteStartsExecutionWhenStopped(t *testing.T) {
	c, _, _ := newTestChip(t)
	c.Write(0x7F4D, 0x34) // ProgramBank low byte
	c.Write(0x7F4E, 0x12) // ProgramBank high byte (masked to 7 bits)
	c.Write(0x7F4F, 0x56) // ProgramCounter, starts execution

	require.False(t, c.State.Stopped)
	require.Equal(t, c.State.Cache.ProgramBank, c.State.PB)
	require.Equal(t, uint8(0x56), c.State.PC)
}

func TestLockRegisterClearsLockAndStops(t *testing.T) {
	c, _, _ := newTestChip(t)
	c.State.Locked = true
	c.State.Stopped = false

	c.Write(0x7F53, 0)

	require.False(t, c.State.Locked)
	require.True(t, c.State.Stopped)
}

func TestIrqDisableNotifiesHostAndSetsFlag(t *testing.T) {
	c, _, _ := newTestChip(t)
	cleared := false
	c.SetIrqClear(func() { cleared = true })

	c.Write(0x7F51, 1)

	require.True(t, c.State.Flags.IrqFlag)
	require.True(t, cleared)

	c.Write(0x7F5E, 0)
	require.False(t, c.State.Flags.IrqFlag)
}

func TestRaisedTracksIrqFlagIndependentlyOfClearHook(t *testing.T) {
	c, _, _ := newTestChip(t)
	require.False(t, c.Raised())

	c.Write(0x7F51, 1)
	require.True(t, c.Raised())

	c.Write(0x7F5E, 0)
	require.False(t, c.Raised())
}
