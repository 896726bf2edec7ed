package collector

import (
	"errors"

	"github.com/NVIDIA/go-nvml/pkg/nvml"

	"github.com/and161185/resource-monitor/internal/utils"
	"github.com/and161185/resource-monitor/model"
)

// gpuDevice is the slice of the NVML device API the reader uses. nvml.Device
// satisfies it; tests substitute fakes per failure mode.
type gpuDevice interface {
	GetName() (string, nvml.Return)
	GetMemoryInfo() (nvml.Memory, nvml.Return)
	GetUtilizationRates() (nvml.Utilization, nvml.Return)
	GetTemperature(nvml.TemperatureSensors) (uint32, nvml.Return)
	GetPowerUsage() (uint32, nvml.Return)
	GetFanSpeed() (uint32, nvml.Return)
}

// GPUReader reads per-device metrics for a device count fixed at startup.
// A nil *GPUReader reads as "no GPU subsystem": Read returns nil, which the
// record marshals as an explicit null.
type GPUReader struct {
	count  int
	device func(i int) (gpuDevice, error)
}

// NewGPUReader initializes NVML and fixes the device count. Returns nil when
// the library is unavailable or initialization fails; callers treat that as
// a degraded-but-normal outcome, not an error.
func NewGPUReader() *GPUReader {
	if ret := nvml.Init(); ret != nvml.SUCCESS {
		return nil
	}
	count, ret := nvml.DeviceGetCount()
	if ret != nvml.SUCCESS || count == 0 {
		_ = nvml.Shutdown()
		return nil
	}
	return &GPUReader{
		count: count,
		device: func(i int) (gpuDevice, error) {
			dev, ret := nvml.DeviceGetHandleByIndex(i)
			if ret != nvml.SUCCESS {
				return nil, errors.New(nvml.ErrorString(ret))
			}
			return dev, nil
		},
	}
}

// Count returns the number of devices established at initialization.
func (r *GPUReader) Count() int {
	if r == nil {
		return 0
	}
	return r.count
}

// Close shuts NVML down.
func (r *GPUReader) Close() {
	if r != nil {
		_ = nvml.Shutdown()
	}
}

// Read returns one snapshot per device. Per-metric query failures null only
// the affected field; a failed device handle drops only that device.
func (r *GPUReader) Read() []model.GPUSnapshot {
	if r == nil || r.count == 0 {
		return nil
	}

	out := make([]model.GPUSnapshot, 0, r.count)
	for i := 0; i < r.count; i++ {
		dev, err := r.device(i)
		if err != nil {
			continue
		}
		out = append(out, readDevice(i, dev))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func readDevice(index int, dev gpuDevice) model.GPUSnapshot {
	snap := model.GPUSnapshot{Index: index}

	if name, ret := dev.GetName(); ret == nvml.SUCCESS {
		snap.Name = name
	}
	if mi, ret := dev.GetMemoryInfo(); ret == nvml.SUCCESS && mi.Total > 0 {
		snap.Memory = &model.GPUMemory{
			Total:   mi.Total,
			Used:    mi.Used,
			Free:    mi.Free,
			Percent: float64(mi.Used) / float64(mi.Total) * 100,
		}
	}
	if util, ret := dev.GetUtilizationRates(); ret == nvml.SUCCESS {
		snap.Utilization = &model.GPUUtilization{GPU: util.Gpu, Memory: util.Memory}
	}
	if temp, ret := dev.GetTemperature(nvml.TEMPERATURE_GPU); ret == nvml.SUCCESS {
		snap.Temperature = utils.U32Ptr(temp)
	}
	// NVML reports power in milliwatts.
	if mw, ret := dev.GetPowerUsage(); ret == nvml.SUCCESS {
		snap.PowerUsageWatts = utils.F64Ptr(float64(mw) / 1000.0)
	}
	if fan, ret := dev.GetFanSpeed(); ret == nvml.SUCCESS {
		snap.FanSpeedPercent = utils.U32Ptr(fan)
	}

	return snap
}
