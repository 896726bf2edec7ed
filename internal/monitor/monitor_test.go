package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/and161185/resource-monitor/internal/status"
	"github.com/and161185/resource-monitor/model"
)

type fakeCollector struct {
	calls int
	err   error
}

func (f *fakeCollector) Collect(context.Context) (*model.MetricsRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &model.MetricsRecord{Hostname: "test"}, nil
}

type fakePublisher struct {
	calls int
	ok    bool
}

func (f *fakePublisher) Publish(context.Context, *model.MetricsRecord) bool {
	f.calls++
	return f.ok
}

func TestRun_CyclesUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 55*time.Millisecond)
	defer cancel()

	c := &fakeCollector{}
	p := &fakePublisher{ok: true}
	m := NewMonitor(c, p, 10*time.Millisecond, status.New(), zap.NewNop().Sugar())

	require.NoError(t, m.Run(ctx))
	require.GreaterOrEqual(t, c.calls, 2)
	require.Equal(t, c.calls, p.calls)
}

func TestRun_CollectErrorDoesNotStopLoop(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 55*time.Millisecond)
	defer cancel()

	c := &fakeCollector{err: errors.New("hostname lookup failed")}
	p := &fakePublisher{ok: true}
	m := NewMonitor(c, p, 10*time.Millisecond, status.New(), zap.NewNop().Sugar())

	require.NoError(t, m.Run(ctx))
	require.GreaterOrEqual(t, c.calls, 2, "loop must keep collecting after errors")
	require.Zero(t, p.calls, "failed collection must not be published")
}

func TestRun_PublishFailureDoesNotStopLoop(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 55*time.Millisecond)
	defer cancel()

	c := &fakeCollector{}
	p := &fakePublisher{ok: false}
	m := NewMonitor(c, p, 10*time.Millisecond, status.New(), zap.NewNop().Sugar())

	require.NoError(t, m.Run(ctx))
	require.GreaterOrEqual(t, p.calls, 2, "loop must keep publishing after failures")
}

func TestRun_SequentialCycles(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	var inCycle bool
	c := &fakeCollector{}
	p := &overlapDetector{active: &inCycle, t: t}
	m := NewMonitor(c, p, time.Millisecond, status.New(), zap.NewNop().Sugar())

	require.NoError(t, m.Run(ctx))
}

type overlapDetector struct {
	active *bool
	t      *testing.T
}

func (o *overlapDetector) Publish(context.Context, *model.MetricsRecord) bool {
	require.False(o.t, *o.active, "publish overlapped with another cycle")
	*o.active = true
	time.Sleep(2 * time.Millisecond)
	*o.active = false
	return true
}
