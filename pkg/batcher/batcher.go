// Package batcher provides a generic buffered batch processor with rate limiting.
package batcher

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

var ErrStopped = errors.New("batcher stopped")

// Config controls when batches are flushed.
type Config struct {
	FlushSize     int           `long:"flush-size" env:"FLUSH_SIZE" default:"500" description:"items per batch"`
	FlushInterval time.Duration `long:"flush-interval" env:"FLUSH_INTERVAL" default:"1s" description:"maximum age of a partial batch"`
	RPS           int           `long:"rps" env:"RPS" default:"10" description:"maximum flushes per second"`
}

// Batcher buffers items and flushes them either by size or interval. The flush callback owns the
// slice it receives.
type Batcher[T any] struct {
	flush  func(context.Context, []T) error
	cfg    Config
	items  chan T
	rl     ratelimit.Limiter
	logger *zap.Logger

	wg       sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
	// done is closed when the loop quits on its own context
	done chan struct{}

	// mu orders Add against shutdown: once closed is set under the write lock no send is in
	// flight, so the final drain sees every accepted item.
	mu     sync.RWMutex
	closed bool
}

// New constructs a Batcher.
func New[T any](logger *zap.Logger, cfg Config, flush func(context.Context, []T) error) *Batcher[T] {
	cfg.FlushSize = max(cfg.FlushSize, 1)
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}
	limiter := ratelimit.NewUnlimited()
	if cfg.RPS > 0 {
		limiter = ratelimit.New(cfg.RPS)
	}
	return &Batcher[T]{
		flush:  flush,
		cfg:    cfg,
		items:  make(chan T, cfg.FlushSize*2),
		rl:     limiter,
		logger: logger,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start begins the background flushing loop.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop flushes what is buffered and waits for the loop to exit. It is safe to call more than once.
func (b *Batcher[T]) Stop() {
	b.markClosed()
	b.stopOnce.Do(func() { close(b.stop) })
	b.wg.Wait()
}

func (b *Batcher[T]) markClosed() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
}

// Add queues an item for batching, respecting context cancellation. A nil error means the item
// will be handed to a flush.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrStopped
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.done:
		return ErrStopped
	case b.items <- item:
		return nil
	}
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.cfg.FlushInterval)
	defer ticker.Stop()

	buf := make([]T, 0, b.cfg.FlushSize)

	flush := func(ctx context.Context) {
		if len(buf) == 0 {
			return
		}

		b.rl.Take()
		batch := slices.Clone(buf)
		buf = buf[:0]
		if err := b.flush(ctx, batch); err != nil {
			b.logger.Error("batch not flushed", zap.Int("size", len(batch)), zap.Error(err))
			return
		}
		b.logger.Debug("batch flushed", zap.Int("size", len(batch)))
	}

	// drain hands queued items to a last flush on shutdown
	drain := func(ctx context.Context) {
		for {
			select {
			case item := <-b.items:
				buf = append(buf, item)
				if len(buf) >= b.cfg.FlushSize {
					flush(ctx)
				}
			default:
				flush(ctx)
				return
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			// release senders blocked on a full queue before waiting them out
			close(b.done)
			b.markClosed()
			drain(context.WithoutCancel(ctx))
			return

		case <-b.stop:
			drain(ctx)
			return

		case item := <-b.items:
			buf = append(buf, item)
			if len(buf) >= b.cfg.FlushSize {
				flush(ctx)
			}

		case <-ticker.C:
			flush(ctx)
		}
	}
}
