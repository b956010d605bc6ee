package clock_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sneslab/cx4/clock"
)

func TestTargetCycleIdentityAtSameRate(t *testing.T) {
	require.Equal(t, uint64(1000), clock.TargetCycle(1000, clock.Cx4Rate, clock.Cx4Rate))
}

func TestTargetCycleConvertsSlowerHostUp(t *testing.T) {
	// A host running at half the CX4's rate should see twice as many
	// CX4 cycles elapse per master-clock tick.
	got := clock.TargetCycle(1000, clock.Cx4Rate/2, clock.Cx4Rate)
	require.Equal(t, uint64(2000), got)
}

func TestTargetCycleSa1RateIsLowerThanCx4(t *testing.T) {
	require.Less(t, clock.Sa1Rate, clock.Cx4Rate)
}
