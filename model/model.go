// Package model contains core data types for the project.
package model

// TemperatureReading is a single CPU-attributed temperature sensor reading.
type TemperatureReading struct {
	Sensor      string   `json:"sensor"`      // Sensor name.
	Temperature float64  `json:"temperature"` // Current temperature, degrees Celsius.
	High        *float64 `json:"high"`        // High threshold, if the sensor reports one.
	Critical    *float64 `json:"critical"`    // Critical threshold, if the sensor reports one.
}

// CPUFrequency holds CPU clock information. Min and Max are unavailable on
// most platforms and stay null there.
type CPUFrequency struct {
	Current float64  `json:"current"` // Current frequency, MHz.
	Min     *float64 `json:"min"`
	Max     *float64 `json:"max"`
}

// CPUSnapshot is the per-cycle CPU sample. Usage and core counts are always
// populated on a live host; Frequency and Temperatures are optional
// enrichments.
type CPUSnapshot struct {
	UsagePercent  float64              `json:"usage_percent"`
	UsagePerCore  []float64            `json:"usage_per_core"`
	Frequency     *CPUFrequency        `json:"frequency"`
	CountLogical  int                  `json:"count_logical"`
	CountPhysical int                  `json:"count_physical"`
	Temperatures  []TemperatureReading `json:"temperatures"`
}

// VirtualMemory mirrors the platform virtual-memory counters. The extended
// fields are platform-dependent and null where unsupported.
type VirtualMemory struct {
	Total     uint64  `json:"total"`
	Available uint64  `json:"available"`
	Used      uint64  `json:"used"`
	Percent   float64 `json:"percent"`
	Free      uint64  `json:"free"`
	Active    *uint64 `json:"active"`
	Inactive  *uint64 `json:"inactive"`
	Buffers   *uint64 `json:"buffers"`
	Cached    *uint64 `json:"cached"`
}

// SwapMemory holds swap usage counters.
type SwapMemory struct {
	Total   uint64  `json:"total"`
	Used    uint64  `json:"used"`
	Free    uint64  `json:"free"`
	Percent float64 `json:"percent"`
}

// MemorySnapshot combines virtual and swap memory for one cycle.
type MemorySnapshot struct {
	Virtual VirtualMemory `json:"virtual"`
	Swap    SwapMemory    `json:"swap"`
}

// GPUMemory holds device memory usage in bytes.
type GPUMemory struct {
	Total   uint64  `json:"total"`
	Used    uint64  `json:"used"`
	Free    uint64  `json:"free"`
	Percent float64 `json:"percent"`
}

// GPUUtilization holds device utilization rates in percent.
type GPUUtilization struct {
	GPU    uint32 `json:"gpu"`    // Graphics engine utilization.
	Memory uint32 `json:"memory"` // Memory controller utilization.
}

// GPUSnapshot is the per-device GPU sample. Every metric is independently
// optional: a failed query nulls only its own field.
type GPUSnapshot struct {
	Index           int             `json:"index"`
	Name            string          `json:"name"`
	Memory          *GPUMemory      `json:"memory"`
	Utilization     *GPUUtilization `json:"utilization"`
	Temperature     *uint32         `json:"temperature"`
	PowerUsageWatts *float64        `json:"power_usage_watts"`
	FanSpeedPercent *uint32         `json:"fan_speed_percent"`
}

// MetricsRecord is one monitoring cycle's sample. A record is built fresh
// every cycle and discarded after publishing. Optional fields deliberately
// omit omitempty so absences serialize as explicit null.
type MetricsRecord struct {
	Timestamp string         `json:"timestamp"` // RFC-3339 UTC, second precision.
	Hostname  string         `json:"hostname"`
	CPU       *CPUSnapshot   `json:"cpu"`
	Memory    MemorySnapshot `json:"memory"`
	GPU       []GPUSnapshot  `json:"gpu"` // nil when no GPU subsystem is available.
}
