package collector

import (
	"context"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"

	"github.com/and161185/resource-monitor/internal/utils"
	"github.com/and161185/resource-monitor/model"
)

// CPUReader samples CPU usage over a fixed measurement window. Point-in-time
// usage reads yield meaningless percentages, so every Read blocks for at
// least the window.
type CPUReader struct {
	Window time.Duration
}

// NewCPUReader returns a reader with the standard one-second window.
func NewCPUReader() *CPUReader {
	return &CPUReader{Window: time.Second}
}

// Read never fails. Usage and core counts come from a single windowed sample;
// frequency and temperatures are best-effort and null when unsupported.
func (r *CPUReader) Read(ctx context.Context) *model.CPUSnapshot {
	snap := &model.CPUSnapshot{UsagePerCore: []float64{}}

	perCore, err := cpu.PercentWithContext(ctx, r.Window, true)
	if err == nil && len(perCore) > 0 {
		snap.UsagePerCore = perCore
		var sum float64
		for _, p := range perCore {
			sum += p
		}
		snap.UsagePercent = sum / float64(len(perCore))
	}

	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		snap.CountLogical = n
	}
	if n, err := cpu.CountsWithContext(ctx, false); err == nil {
		snap.CountPhysical = n
	}

	snap.Frequency = readFrequency(ctx)
	snap.Temperatures = readCPUTemperatures(ctx)

	return snap
}

func readFrequency(ctx context.Context) *model.CPUFrequency {
	info, err := cpu.InfoWithContext(ctx)
	if err != nil || len(info) == 0 || info[0].Mhz == 0 {
		return nil
	}
	return &model.CPUFrequency{Current: info[0].Mhz}
}

// readCPUTemperatures keeps only sensors attributable to the CPU; NVMe,
// chipset, and battery sensors are not part of the record.
func readCPUTemperatures(ctx context.Context) []model.TemperatureReading {
	stats, err := host.SensorsTemperaturesWithContext(ctx)
	if err != nil || len(stats) == 0 {
		return nil
	}

	var out []model.TemperatureReading
	for _, s := range stats {
		key := strings.ToLower(s.SensorKey)
		if !strings.Contains(key, "cpu") && !strings.Contains(key, "core") {
			continue
		}
		t := model.TemperatureReading{Sensor: s.SensorKey, Temperature: s.Temperature}
		if s.High > 0 {
			t.High = utils.F64Ptr(s.High)
		}
		if s.Critical > 0 {
			t.Critical = utils.F64Ptr(s.Critical)
		}
		out = append(out, t)
	}
	return out
}
