package cx4

import "github.com/sneslab/cx4/notify"

// Run advances the CX4 to the cycle target implied by masterClock,
// dispatching work through the priority cascade of spec.md §4.6:
// Locked > Suspend > Cache > DMA > Stopped > opcode execution. It is
// called synchronously from the host's own tick loop; the CX4 never
// runs on its own goroutine (spec.md §5).
func (c *Chip) Run(masterClock uint64) {
	targetCycle := uint64(float64(masterClock) * c.clockRatio)
	s := &c.State

	for s.CycleCount < targetCycle {
		switch {
		case s.Locked:
			c.step(1)

		case s.Suspend.Enabled:
			c.step(1)
			if s.Suspend.Duration > 0 {
				s.Suspend.Duration--
				if s.Suspend.Duration == 0 {
					s.Suspend.Enabled = false
				}
			}

		case s.Cache.Enabled:
			c.processCache(targetCycle)

		case s.Dma.Enabled:
			c.processDma(targetCycle)

		case s.Stopped:
			// Coalesced idle: nothing to dispatch, jump straight to
			// the target instead of single-stepping.
			c.step(targetCycle - s.CycleCount)

		default:
			if !c.processCache(targetCycle) {
				if !s.Cache.Enabled {
					// Cache operation required, but both pages are
					// locked: nothing left to execute.
					c.stop()
				}
				continue
			}

			opcode := s.PrgRam[s.Cache.Page][s.PC]
			c.notifyEvent(0, 0, notify.ExecOpCode)
			s.PC++

			if s.PC == 0 {
				// Must run before executing the fetched opcode,
				// otherwise a jump/branch to address 0 would
				// retrigger it (spec.md §4.3).
				c.switchCachePage(targetCycle)
			}

			c.Exec(opcode)
		}
	}
}
