package collector

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCPUReader_Read(t *testing.T) {
	r := &CPUReader{Window: 50 * time.Millisecond}

	snap := r.Read(context.Background())
	require.NotNil(t, snap)

	// mandatory fields on a live host
	require.NotNil(t, snap.UsagePerCore)
	require.NotEmpty(t, snap.UsagePerCore)
	require.Greater(t, snap.CountLogical, 0)
	require.GreaterOrEqual(t, snap.UsagePercent, 0.0)
	require.LessOrEqual(t, snap.UsagePercent, 100.0)

	for _, p := range snap.UsagePerCore {
		require.GreaterOrEqual(t, p, 0.0)
		require.LessOrEqual(t, p, 100.0)
	}
}

func TestCPUReader_ReadBlocksForWindow(t *testing.T) {
	r := &CPUReader{Window: 100 * time.Millisecond}

	start := time.Now()
	_ = r.Read(context.Background())
	require.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestCPUReader_OverallIsMeanOfCores(t *testing.T) {
	r := &CPUReader{Window: 50 * time.Millisecond}

	snap := r.Read(context.Background())
	require.NotEmpty(t, snap.UsagePerCore)

	var sum float64
	for _, p := range snap.UsagePerCore {
		sum += p
	}
	require.InDelta(t, sum/float64(len(snap.UsagePerCore)), snap.UsagePercent, 0.0001)
}
