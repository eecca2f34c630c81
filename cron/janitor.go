package cron

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper closes idle sessions older than its idle timeout.
type Sweeper interface {
	Sweep(ctx context.Context, now time.Time) int
}

// StartSessionJanitor sweeps idle wizard sessions every interval until ctx is
// cancelled. The returned channel is closed once the goroutine has exited.
func StartSessionJanitor(ctx context.Context, sweeper Sweeper, interval time.Duration, logger *zap.Logger) <-chan struct{} {
	if logger == nil {
		logger = zap.NewNop()
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		logger.Info("[SessionJanitor] started", zap.Duration("interval", interval))
		for {
			select {
			case <-ctx.Done():
				logger.Info("[SessionJanitor] stopped")
				return
			case now := <-ticker.C:
				if n := sweeper.Sweep(ctx, now); n > 0 {
					logger.Debug("[SessionJanitor] swept idle sessions", zap.Int("closed", n))
				}
			}
		}
	}()
	return done
}
