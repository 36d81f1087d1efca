package checker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-txcore/pkg/batcher"
)

// Record is an accepted transaction with its free balances, ready for the archive.
type Record struct {
	Transaction model.Transaction
	Balances    []model.FreeBalance
}

type WriterConfig struct {
	Batch batcher.Config `group:"batch" namespace:"batch" env-namespace:"BATCH"`
	Retry clock.Backoff  `group:"retry" namespace:"retry" env-namespace:"RETRY"`
}

type archiveWriter struct {
	repo    ClickhouseRepository
	metrics WriterMetrics
	retry   clock.Backoff
	logger  *zap.Logger
	batcher *batcher.Batcher[Record]
}

// NewArchiveWriter batches records into repo, retrying failed inserts.
func NewArchiveWriter(repo ClickhouseRepository, metrics WriterMetrics, cfg WriterConfig, logger *zap.Logger) Writer {
	w := &archiveWriter{
		repo:    repo,
		metrics: metrics,
		retry:   cfg.Retry,
		logger:  logger,
	}
	w.batcher = batcher.New[Record](logger.Named("archiveBatcher"), cfg.Batch, w.flush)
	return w
}

func (w *archiveWriter) Start(ctx context.Context) {
	w.batcher.Start(ctx)
}

func (w *archiveWriter) Stop() {
	w.batcher.Stop()
}

func (w *archiveWriter) Write(ctx context.Context, r Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return w.batcher.Add(ctx, r)
}

func (w *archiveWriter) flush(ctx context.Context, records []Record) (err error) {
	started := time.Now()
	defer func() {
		w.metrics.ObserveFlush(err, len(records), started)
	}()

	txs := make([]model.Transaction, 0, len(records))
	var balances []model.FreeBalance
	for _, r := range records {
		txs = append(txs, r.Transaction)
		balances = append(balances, r.Balances...)
	}

	onRetry := func(attempt int, err error) {
		w.logger.Warn("archive insert failed, retrying", zap.Int("attempt", attempt+1), zap.Error(err))
	}
	if err = clock.Retry(ctx, w.retry, func(ctx context.Context) error {
		return w.repo.InsertTransactions(ctx, txs)
	}, onRetry); err != nil {
		return err
	}
	if err = clock.Retry(ctx, w.retry, func(ctx context.Context) error {
		return w.repo.InsertFreeBalances(ctx, balances)
	}, onRetry); err != nil {
		return err
	}

	w.logger.Debug("archived transactions", zap.Int("transactions", len(txs)), zap.Int("balances", len(balances)))
	return nil
}
