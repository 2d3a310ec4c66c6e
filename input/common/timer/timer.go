// Package timer pulls from a stream on a steady tick so that a source with
// no device clock behind it still advances in real time.
package timer

import (
	"context"
	"time"

	"github.com/noriah/synthscope/input"
)

// Interval is the duration one buffer of cfg covers.
func Interval(cfg input.SessionConfig) time.Duration {
	if cfg.SampleRate <= 0 || cfg.BufferSize <= 0 {
		return time.Second
	}

	return time.Duration(float64(time.Second) * float64(cfg.BufferSize) / cfg.SampleRate)
}

// Process calls pull once per Interval until ctx is done. A pull that runs
// late does not cause a burst of catch-up pulls; the ticker drops the missed
// ticks.
func Process(ctx context.Context, cfg input.SessionConfig, pull func()) error {
	ticker := time.NewTicker(Interval(cfg))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		pull()
	}
}
