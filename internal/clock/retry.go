package clock

import (
	"context"
	"fmt"
	"time"
)

// Backoff describes a bounded exponential retry schedule.
type Backoff struct {
	Attempts int           `long:"attempts" env:"ATTEMPTS" default:"5" description:"attempts before giving up"`
	Initial  time.Duration `long:"initial" env:"INITIAL" default:"200ms" description:"delay after the first failure"`
	Max      time.Duration `long:"max" env:"MAX" default:"5s" description:"upper bound of a single delay"`
}

// Delay returns the wait after the given failed attempt, counted from zero.
func (b Backoff) Delay(attempt int) time.Duration {
	d := b.Initial
	for i := 0; i < attempt && d < b.Max; i++ {
		d *= 2
	}
	if b.Max > 0 && d > b.Max {
		d = b.Max
	}
	return d
}

// Retry calls fn until it succeeds, the attempts run out or ctx is done. onRetry, when set, is
// told about every failure that will be retried.
func Retry(ctx context.Context, b Backoff, fn func(context.Context) error, onRetry func(attempt int, err error)) error {
	attempts := max(b.Attempts, 1)

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt == attempts-1 {
			break
		}
		if onRetry != nil {
			onRetry(attempt, err)
		}
		if serr := SleepWithContext(ctx, b.Delay(attempt)); serr != nil {
			return fmt.Errorf("%w (last error: %v)", serr, err)
		}
	}
	return fmt.Errorf("after %d attempts: %w", attempts, err)
}
