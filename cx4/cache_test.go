package cx4_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"
	"github.com/stretchr/testify/require"
)

func writeCacheBase(t *testing.T, c interface {
	Write(addr uint32, val uint8)
}, base uint32) {
	t.Helper()
	c.Write(0x7F49, uint8(base))
	c.Write(0x7F4A, uint8(base>>8))
	c.Write(0x7F4B, uint8(base>>16))
}

func TestCacheFillOnDoubleMissPopulatesOtherPage(t *testing.T) {
	c, _, _ := newTestChip(t)

	writeCacheBase(t, c, 0x8000)
	c.Write(0x7F48, 0) // page 0, arms the fill since Stopped

	c.Run(2048)

	// Neither page holds 0x8000 and neither is locked, so the engine
	// flips away from page 0 and fills page 1.
	require.False(t, c.State.Cache.Enabled)
	require.Equal(t, uint8(1), c.State.Cache.Page)
	require.Equal(t, uint32(0x8000), c.State.Cache.Address[1])
	require.Nil(t, c.LastHaltReason())

	for pos := 0; pos < 256; pos++ {
		lo := 0x8000 + pos*2
		want := uint16(uint8(lo+1))<<8 | uint16(uint8(lo))
		require.Equalf(t, want, c.State.PrgRam[1][pos], "pos %d", pos)
	}
}

func TestCacheHitIsIdempotent(t *testing.T) {
	c, _, _ := newTestChip(t)
	writeCacheBase(t, c, 0x8000)
	c.Write(0x7F48, 0)
	c.Run(2048)

	before := c.State.PrgRam
	beforeCycles := c.State.CycleCount

	// Re-arm page 0 with the same base: the address already matches
	// Cache.Address[1] (the page the first fill used), so this should be
	// a hit with no fill traffic.
	c.Write(0x7F48, 0)
	c.Run(2048 + 64)

	require.Equal(t, before, c.State.PrgRam)
	require.Less(t, c.State.CycleCount-beforeCycles, uint64(64+64))
}

func TestBothPagesLockedHalts(t *testing.T) {
	c, _, _ := newTestChip(t)
	c.Write(0x7F4C, 0x03) // lock both pages
	writeCacheBase(t, c, 0x8000)
	c.Write(0x7F48, 0)

	c.Run(64)

	require.False(t, c.State.Cache.Enabled)
	require.NotNil(t, c.LastHaltReason())
}

func TestCacheRestartabilityMatchesUninterruptedRun(t *testing.T) {
	interrupted, _, _ := newTestChip(t)
	writeCacheBase(t, interrupted, 0x8000)
	interrupted.Write(0x7F48, 0)
	interrupted.Run(200) // stop partway through the 256-word fill
	interrupted.Run(2048)

	straight, _, _ := newTestChip(t)
	writeCacheBase(t, straight, 0x8000)
	straight.Write(0x7F48, 0)
	straight.Run(2048)

	if diff := deep.Equal(interrupted.State, straight.State); diff != nil {
		t.Fatalf("resumed fill diverged from an uninterrupted one: %v\ninterrupted: %s\nstraight: %s",
			diff, spew.Sdump(interrupted.State), spew.Sdump(straight.State))
	}
}
