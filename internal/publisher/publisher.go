// Package publisher serializes metric records and writes them to the object
// store under the latest and history keys.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/and161185/resource-monitor/internal/status"
	"github.com/and161185/resource-monitor/model"
)

const (
	latestKey     = "metrics.json"
	historyPrefix = "history/"
)

// Store is the object-store slice the publisher needs.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
}

// Publisher writes every record to the latest key and, at most once per
// history interval, to a timestamped history key. It owns the gate state:
// lastHistory advances only after a successful history upload.
type Publisher struct {
	store           Store
	logger          *zap.SugaredLogger
	status          *status.Status
	historyInterval time.Duration
	spoolDir        string

	lastHistory time.Time
	now         func() time.Time
}

// NewPublisher creates a publisher. The history gate opens historyInterval
// after construction.
func NewPublisher(store Store, historyInterval time.Duration, spoolDir string, st *status.Status, logger *zap.SugaredLogger) *Publisher {
	p := &Publisher{
		store:           store,
		logger:          logger,
		status:          st,
		historyInterval: historyInterval,
		spoolDir:        spoolDir,
		now:             time.Now,
	}
	p.lastHistory = p.now()
	return p
}

// Publish reports success iff the mandatory latest-key write succeeds. The
// latest write is attempted first and unconditionally; the history write is
// best-effort and never fails the cycle. Nothing raises past this boundary.
func (p *Publisher) Publish(ctx context.Context, rec *model.MetricsRecord) bool {
	data, err := json.Marshal(rec)
	if err != nil {
		p.logger.Errorf("marshal metrics: %v", err)
		return false
	}

	ok := true
	if err := p.store.Put(ctx, latestKey, data); err != nil {
		p.logger.Errorf("upload %s: %v", latestKey, err)
		ok = false
	}

	now := p.now()
	if now.Sub(p.lastHistory) >= p.historyInterval {
		if err := p.writeHistory(ctx, now, data); err != nil {
			p.logger.Errorf("upload history: %v", err)
		} else {
			p.lastHistory = now
			p.status.HistoryWritten()
		}
	}

	return ok
}

func (p *Publisher) writeHistory(ctx context.Context, now time.Time, data []byte) error {
	name := fmt.Sprintf("metrics_%s.json", now.UTC().Format("20060102_150405"))

	var spooled string
	if p.spoolDir != "" {
		spooled = p.spool(name, data)
	}

	if err := p.store.Put(ctx, historyPrefix+name, data); err != nil {
		return err
	}

	if spooled != "" {
		if err := os.Remove(spooled); err != nil {
			p.logger.Warnf("cleanup %s: %v", spooled, err)
		}
	}
	return nil
}

// spool stages the payload locally before upload. A staging failure only
// costs the local copy, never the upload. Files from failed uploads are kept
// for inspection.
func (p *Publisher) spool(name string, data []byte) string {
	if err := os.MkdirAll(p.spoolDir, 0o755); err != nil {
		p.logger.Warnf("create spool dir %s: %v", p.spoolDir, err)
		return ""
	}
	path := filepath.Join(p.spoolDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		p.logger.Warnf("spool %s: %v", path, err)
		return ""
	}
	return path
}
