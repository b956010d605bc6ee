package cx4

import "fmt"

// HaltError describes why the CX4 last stopped itself mid-Run because
// of an unrecoverable condition (spec.md §7, taxonomy items 1 and 2).
// Run never returns an error for this — the chip just stops, in-band,
// same as every other condition in that taxonomy — but a typed value
// retrievable via Chip.LastHaltReason lets a host log why, the way the
// teacher's cpu.InvalidCPUState/cpu.HaltOpcode let a caller distinguish
// one halt reason from another.
type HaltError struct {
	Reason string
}

// Error implements the error interface.
func (e *HaltError) Error() string {
	return fmt.Sprintf("cx4: halted: %s", e.Reason)
}

var (
	errDmaInvalid    = &HaltError{Reason: "DMA configuration invalid, chip locked"}
	errCacheBothLock = &HaltError{Reason: "cache miss with both pages locked, chip stopped"}
)
