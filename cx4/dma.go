package cx4

import "github.com/sneslab/cx4/memtype"

// processDma runs the DMA engine (spec.md §4.4) until it either
// completes, hits an invalid configuration (which latches Locked and
// aborts), or exhausts the cycle budget for this Run call.
func (c *Chip) processDma(targetCycle uint64) {
	s := &c.State

	for s.Dma.Pos < s.Dma.Length {
		src := (s.Dma.Source + uint32(s.Dma.Pos)) & 0xFFFFFF
		dst := (s.Dma.Dest + uint32(s.Dma.Pos)) & 0xFFFFFF

		srcHandler := c.getHandler(src)
		dstHandler := c.getHandler(dst)
		if srcHandler == nil || dstHandler == nil ||
			srcHandler.MemoryType() == dstHandler.MemoryType() ||
			dstHandler.MemoryType() == memtype.Rom {
			s.Locked = true
			s.Dma.Pos = 0
			s.Dma.Enabled = false
			c.lastHalt = errDmaInvalid
			return
		}

		c.step(uint64(c.GetAccessDelay(src)))
		val := c.readCX4(src)

		c.step(uint64(c.GetAccessDelay(dst)))
		c.writeCX4(dst, val)

		s.Dma.Pos++

		if s.CycleCount > targetCycle {
			break
		}
	}

	if s.Dma.Pos >= s.Dma.Length {
		s.Dma.Pos = 0
		s.Dma.Enabled = false
	}
}
