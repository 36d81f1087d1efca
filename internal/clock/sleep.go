// Package clock provides context-aware waiting and retry backoff for archive flushes.
package clock

import (
	"context"
	"time"
)

// SleepWithContext waits for d or returns early with the context error. A non-positive d does not
// wait but still reports a done context, so retry loops with a zero backoff stop on cancel.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
