// Package external runs calls to outside services under an explicit policy.
// A load-bearing call fails the operation; a best-effort call is logged and
// dropped. Detached calls outlive the request that started them.
package external

import (
	"context"
	"sync"
	"time"

	"github.com/drovo/drovo-service/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

type Policy int

const (
	LoadBearing Policy = iota
	BestEffort
)

func (p Policy) String() string {
	if p == LoadBearing {
		return "load_bearing"
	}
	return "best_effort"
}

type Caller struct {
	logger  *zap.Logger
	metrics *metrics.DrovoMetrics
	wg      sync.WaitGroup
}

func NewCaller(logger *zap.Logger, m *metrics.DrovoMetrics) *Caller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Caller{logger: logger, metrics: m}
}

// Do runs fn under p. Only load-bearing failures are returned.
func (c *Caller) Do(ctx context.Context, p Policy, name string, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	if err == nil {
		c.metrics.RecordExternalCall(name, p.String(), "ok")
		return nil
	}
	c.metrics.RecordExternalCall(name, p.String(), "failed")
	if p == LoadBearing {
		c.logger.Error("external call failed", zap.String("call", name), zap.Error(err))
		return err
	}
	c.logger.Warn("best-effort call failed", zap.String("call", name), zap.Error(err))
	return nil
}

// Detach runs fn best-effort in the background, detached from ctx
// cancellation and bounded by timeout.
func (c *Caller) Detach(ctx context.Context, name string, timeout time.Duration, fn func(ctx context.Context) error) {
	detached := context.WithoutCancel(ctx)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		callCtx, cancel := context.WithTimeout(detached, timeout)
		defer cancel()
		_ = c.Do(callCtx, BestEffort, name, fn)
	}()
}

// Wait blocks until every detached call has finished.
func (c *Caller) Wait() {
	c.wg.Wait()
}
