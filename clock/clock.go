// Package clock converts host master-clock ticks into a coprocessor's
// own local cycle count. Each coprocessor on the bus runs at a fixed
// rate relative to the shared master clock; TargetCycle states that
// ratio arithmetic once. cx4.Chip.Run applies the same formula with
// Cx4Rate, using a ratio precomputed in cx4.New.
package clock

// Cx4Rate is the CX4's internal clock rate in Hz (20 MHz).
const Cx4Rate = 20_000_000

// Sa1Rate is the SA1's internal clock rate in Hz (10.74 MHz). Package
// sa1 does not use it: its accountant counts SA1-local cycles and
// performs no ratio conversion.
const Sa1Rate = 10_740_000

// TargetCycle returns the coprocessor-local cycle count a coprocessor
// clocked at rate Hz should have reached once the host's master clock
// reaches masterClock ticks, given the host runs at hostRate Hz.
func TargetCycle(masterClock uint64, hostRate, rate float64) uint64 {
	return uint64(float64(masterClock) * (rate / hostRate))
}
