package collector

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/and161185/resource-monitor/internal/utils"
	"github.com/and161185/resource-monitor/model"
)

// ReadMemory takes a point-in-time sample of virtual and swap memory. Unlike
// the CPU reader it needs no measurement window and fails only if the
// platform memory API itself is broken.
func ReadMemory(ctx context.Context) (model.MemorySnapshot, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return model.MemorySnapshot{}, fmt.Errorf("virtual memory: %w", err)
	}
	sw, err := mem.SwapMemoryWithContext(ctx)
	if err != nil {
		return model.MemorySnapshot{}, fmt.Errorf("swap memory: %w", err)
	}

	snap := model.MemorySnapshot{
		Virtual: model.VirtualMemory{
			Total:     vm.Total,
			Available: vm.Available,
			Used:      vm.Used,
			Percent:   vm.UsedPercent,
			Free:      vm.Free,
		},
		Swap: model.SwapMemory{
			Total:   sw.Total,
			Used:    sw.Used,
			Free:    sw.Free,
			Percent: sw.UsedPercent,
		},
	}

	// active/inactive/buffers/cached are Linux counters; gopsutil reports
	// zeroes elsewhere, indistinguishable from real values.
	if runtime.GOOS == "linux" {
		snap.Virtual.Active = utils.U64Ptr(vm.Active)
		snap.Virtual.Inactive = utils.U64Ptr(vm.Inactive)
		snap.Virtual.Buffers = utils.U64Ptr(vm.Buffers)
		snap.Virtual.Cached = utils.U64Ptr(vm.Cached)
	}

	return snap, nil
}
