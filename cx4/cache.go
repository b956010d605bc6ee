package cx4

// processCache runs the cache engine's fill state machine (spec.md
// §4.3) until it either completes, determines both pages are locked
// and invalid, or exhausts the cycle budget for this Run call.
//
// Returns true when the requested page is ready to execute from
// (either already valid, or freshly filled). Returns false when the
// fill is still in progress (Cache.Enabled stays true, Cache.Pos
// preserved for the next call) or when both pages are locked and
// neither matches (Cache.Enabled is cleared; the caller must check
// that to distinguish the two false cases).
func (c *Chip) processCache(targetCycle uint64) bool {
	s := &c.State
	address := (s.Cache.Base + (uint32(s.PB) << 9)) & 0xFFFFFF

	if s.Cache.Pos == 0 {
		if s.Cache.Address[s.Cache.Page] == address {
			s.Cache.Enabled = false
			return true
		}

		s.Cache.Page ^= 1
		if s.Cache.Address[s.Cache.Page] == address {
			s.Cache.Enabled = false
			return true
		}

		if s.Cache.Lock[s.Cache.Page] {
			s.Cache.Page ^= 1
		}

		if s.Cache.Lock[s.Cache.Page] {
			s.Cache.Enabled = false
			c.lastHalt = errCacheBothLock
			return false
		}

		s.Cache.Enabled = true
	}

	for s.Cache.Pos < 256 {
		lo := address + uint32(s.Cache.Pos)*2
		lsb := c.readCX4(lo)
		c.step(uint64(c.GetAccessDelay(lo)))

		hi := lo + 1
		msb := c.readCX4(hi)
		c.step(uint64(c.GetAccessDelay(hi)))

		s.PrgRam[s.Cache.Page][s.Cache.Pos] = uint16(msb)<<8 | uint16(lsb)
		s.Cache.Pos++

		if s.CycleCount > targetCycle {
			break
		}
	}

	if s.Cache.Pos >= 256 {
		s.Cache.Address[s.Cache.Page] = address
		s.Cache.Pos = 0
		s.Cache.Enabled = false
		return true
	}

	return false
}

// switchCachePage is invoked just before executing an opcode whenever
// the in-page counter wraps from 255 back to 0 (spec.md §4.3, "Page
// switch on PC wrap"). On a wrap from page 0 it moves to page 1, adopts
// the pending bank P into PB and loads page 1 for it at that point. A
// wrap while already on page 1, or with page 1 locked, stops the chip.
func (c *Chip) switchCachePage(targetCycle uint64) {
	s := &c.State
	if s.Cache.Page == 1 {
		c.stop()
		return
	}

	s.Cache.Page = 1
	if s.Cache.Lock[1] {
		c.stop()
		return
	}

	s.PB = s.P

	if ok := c.processCache(targetCycle); !ok && !s.Cache.Enabled {
		c.stop()
	}
}
