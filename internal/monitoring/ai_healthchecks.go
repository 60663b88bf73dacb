package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const healthcheckTimeout = 10 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// MonitorUpstreamHealth pings the model API every interval and stores the
// outcome in healthy until ctx is done. The first check runs immediately.
func MonitorUpstreamHealth(ctx context.Context, upstream Pinger, interval time.Duration, healthy *atomic.Bool) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	check := func() {
		checkCtx, cancel := context.WithTimeout(ctx, healthcheckTimeout)
		defer cancel()

		err := upstream.Ping(checkCtx)
		healthy.Store(err == nil)
		if err != nil && ctx.Err() == nil {
			slog.Warn("[HealthCheck] Upstream model API is unhealthy", slog.String("error", err.Error()))
		}
	}

	check()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}
