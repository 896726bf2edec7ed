// Package collector gathers host metrics into one record per cycle.
package collector

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/and161185/resource-monitor/model"
)

// Collector assembles a MetricsRecord from the individual subsystem readers.
type Collector struct {
	cpu      *CPUReader
	gpu      *GPUReader
	memory   func(ctx context.Context) (model.MemorySnapshot, error)
	hostname func() (string, error)
	now      func() time.Time
}

// NewCollector creates a collector over the given readers. The GPU reader
// may be nil when the GPU subsystem is absent.
func NewCollector(cpu *CPUReader, gpu *GPUReader) *Collector {
	return &Collector{
		cpu:      cpu,
		gpu:      gpu,
		memory:   ReadMemory,
		hostname: os.Hostname,
		now:      time.Now,
	}
}

// Collect invokes all readers and stamps the record with UTC time and
// hostname. Reader degradation never fails the cycle; only hostname
// resolution or a memory API failure surfaces as an error.
func (c *Collector) Collect(ctx context.Context) (*model.MetricsRecord, error) {
	host, err := c.hostname()
	if err != nil {
		return nil, fmt.Errorf("resolve hostname: %w", err)
	}

	memory, err := c.memory(ctx)
	if err != nil {
		return nil, fmt.Errorf("read memory: %w", err)
	}

	return &model.MetricsRecord{
		Timestamp: c.now().UTC().Format(time.RFC3339),
		Hostname:  host,
		CPU:       c.cpu.Read(ctx),
		Memory:    memory,
		GPU:       c.gpu.Read(),
	}, nil
}
