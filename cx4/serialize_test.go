package cx4_test

import (
	"bytes"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"
	"github.com/stretchr/testify/require"

	"github.com/sneslab/cx4"
	"github.com/sneslab/cx4/clock"
	"github.com/sneslab/cx4/memory"
)

func TestSerializeRoundTrip(t *testing.T) {
	c, _, _ := newTestChip(t)
	writeCacheBase(t, c, 0x8000)
	c.Write(0x7F48, 0)
	c.Run(1024) // interrupt the fill partway through for a non-trivial state
	c.State.Regs[5] = 0xABCDEF
	c.State.Flags.Negative = true

	var buf bytes.Buffer
	require.NoError(t, c.Serialize(&buf))

	data := make([]uint8, 0x10000)
	rom, err := memory.NewROM(data)
	require.NoError(t, err)
	ram, err := memory.NewSaveRAM(0x8000)
	require.NoError(t, err)
	restored, err := cx4.New(cx4.Config{HostMasterClockRate: clock.Cx4Rate}, rom, ram)
	require.NoError(t, err)

	require.NoError(t, restored.Deserialize(&buf))

	if diff := deep.Equal(c.State, restored.State); diff != nil {
		t.Fatalf("state did not survive a serialize/deserialize round trip: %v\noriginal: %s\nrestored: %s",
			diff, spew.Sdump(c.State), spew.Sdump(restored.State))
	}
}
