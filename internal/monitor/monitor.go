// Package monitor drives the collect-and-publish loop.
package monitor

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/and161185/resource-monitor/internal/status"
	"github.com/and161185/resource-monitor/model"
)

// Collector produces one record per cycle.
type Collector interface {
	Collect(ctx context.Context) (*model.MetricsRecord, error)
}

// Publisher writes a record to the store, reporting success.
type Publisher interface {
	Publish(ctx context.Context, rec *model.MetricsRecord) bool
}

// Monitor runs monitoring cycles strictly sequentially: a cycle finishes or
// fails before the next one starts, with the poll interval slept in between.
// Cycle errors never stop the loop; only ctx cancellation does.
type Monitor struct {
	collector Collector
	publisher Publisher
	interval  time.Duration
	logger    *zap.SugaredLogger
	status    *status.Status
}

// NewMonitor creates the loop driver.
func NewMonitor(c Collector, p Publisher, interval time.Duration, st *status.Status, logger *zap.SugaredLogger) *Monitor {
	return &Monitor{collector: c, publisher: p, interval: interval, status: st, logger: logger}
}

// Run loops until ctx is cancelled and then returns nil (clean shutdown).
// There is deliberately no backoff: a persistently failing store is retried
// every interval. Effective cadence is interval plus cycle work time.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Infof("starting monitoring loop, interval %s", m.interval)

	for {
		m.runCycle(ctx)

		select {
		case <-ctx.Done():
			m.logger.Info("monitoring stopped")
			return nil
		case <-time.After(m.interval):
		}
	}
}

// runCycle isolates one cycle: any failure is logged and recorded, never
// propagated.
func (m *Monitor) runCycle(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	rec, err := m.collector.Collect(ctx)
	if err != nil {
		m.logger.Errorf("collect metrics: %v", err)
		m.status.CycleFailed(err)
		return
	}

	if !m.publisher.Publish(ctx, rec) {
		m.status.CycleFailed(errors.New("publish failed"))
		return
	}

	m.status.CycleOK()
	m.logger.Debugf("cycle completed for %s", rec.Hostname)
}
