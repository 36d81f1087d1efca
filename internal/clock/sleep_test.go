package clock

import (
	"context"
	"errors"
	"testing"
	"time"
)

func canceled() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

func TestSleepWithContext(t *testing.T) {
	tests := []struct {
		name    string
		ctx     func(t *testing.T) context.Context
		delay   time.Duration
		wantErr error
		atLeast time.Duration
		atMost  time.Duration
	}{
		{
			name:    "waits out the retry delay",
			ctx:     func(*testing.T) context.Context { return context.Background() },
			delay:   15 * time.Millisecond,
			atLeast: 15 * time.Millisecond,
		},
		{
			name:   "zero backoff does not wait",
			ctx:    func(*testing.T) context.Context { return context.Background() },
			delay:  0,
			atMost: 5 * time.Millisecond,
		},
		{
			name:    "zero backoff still reports shutdown",
			ctx:     func(*testing.T) context.Context { return canceled() },
			delay:   0,
			wantErr: context.Canceled,
		},
		{
			name:    "flush already canceled",
			ctx:     func(*testing.T) context.Context { return canceled() },
			delay:   time.Hour,
			wantErr: context.Canceled,
			atMost:  50 * time.Millisecond,
		},
		{
			name: "canceled while waiting",
			ctx: func(t *testing.T) context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				t.Cleanup(cancel)
				time.AfterFunc(5*time.Millisecond, cancel)
				return ctx
			},
			delay:   200 * time.Millisecond,
			wantErr: context.Canceled,
			atMost:  100 * time.Millisecond,
		},
		{
			name: "deadline shorter than delay",
			ctx: func(t *testing.T) context.Context {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
				t.Cleanup(cancel)
				return ctx
			},
			delay:   200 * time.Millisecond,
			wantErr: context.DeadlineExceeded,
			atMost:  100 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := tt.ctx(t)

			start := time.Now()
			err := SleepWithContext(ctx, tt.delay)
			elapsed := time.Since(start)

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SleepWithContext() error = %v, want %v", err, tt.wantErr)
			}
			if tt.atLeast > 0 && elapsed < tt.atLeast {
				t.Fatalf("SleepWithContext() returned after %v, want at least %v", elapsed, tt.atLeast)
			}
			if tt.atMost > 0 && elapsed > tt.atMost {
				t.Fatalf("SleepWithContext() returned after %v, want at most %v", elapsed, tt.atMost)
			}
		})
	}
}
