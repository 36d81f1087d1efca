package checker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-txcore/pkg/batcher"
)

func testWriterConfig() WriterConfig {
	return WriterConfig{
		Batch: batcher.Config{FlushSize: 2, FlushInterval: time.Hour},
		Retry: clock.Backoff{Attempts: 3, Initial: time.Millisecond, Max: time.Millisecond},
	}
}

func testRecords() []Record {
	return []Record{
		{
			Transaction: model.Transaction{TxID: "tx1"},
			Balances:    []model.FreeBalance{{TxID: "tx1", Amount: 1}},
		},
		{
			Transaction: model.Transaction{TxID: "tx2"},
			Balances:    []model.FreeBalance{{TxID: "tx2", Amount: 2}, {TxID: "tx2", AssetID: "aa", Amount: 3}},
		},
	}
}

func Test_archiveWriter_flush(t *testing.T) {
	ctx := context.Background()
	records := testRecords()
	wantTxs := []model.Transaction{{TxID: "tx1"}, {TxID: "tx2"}}
	wantBalances := []model.FreeBalance{
		{TxID: "tx1", Amount: 1},
		{TxID: "tx2", Amount: 2},
		{TxID: "tx2", AssetID: "aa", Amount: 3},
	}
	insertErr := errors.New("insert failed")

	tests := []struct {
		name    string
		prepare func(repo *MockClickhouseRepository, metrics *MockWriterMetrics)
		wantErr error
	}{
		{
			name: "success",
			prepare: func(repo *MockClickhouseRepository, metrics *MockWriterMetrics) {
				gomock.InOrder(
					repo.EXPECT().InsertTransactions(ctx, wantTxs).Return(nil),
					repo.EXPECT().InsertFreeBalances(ctx, wantBalances).Return(nil),
					metrics.EXPECT().ObserveFlush(nil, 2, gomock.Any()),
				)
			},
		},
		{
			name: "transient failure is retried",
			prepare: func(repo *MockClickhouseRepository, metrics *MockWriterMetrics) {
				gomock.InOrder(
					repo.EXPECT().InsertTransactions(ctx, wantTxs).Return(insertErr),
					repo.EXPECT().InsertTransactions(ctx, wantTxs).Return(nil),
					repo.EXPECT().InsertFreeBalances(ctx, wantBalances).Return(insertErr),
					repo.EXPECT().InsertFreeBalances(ctx, wantBalances).Return(nil),
					metrics.EXPECT().ObserveFlush(nil, 2, gomock.Any()),
				)
			},
		},
		{
			name: "gives up after the attempts",
			prepare: func(repo *MockClickhouseRepository, metrics *MockWriterMetrics) {
				gomock.InOrder(
					repo.EXPECT().InsertTransactions(ctx, wantTxs).Return(insertErr).Times(3),
					metrics.EXPECT().ObserveFlush(gomock.Any(), 2, gomock.Any()).
						Do(func(err error, _ int, _ time.Time) {
							if !errors.Is(err, insertErr) {
								t.Fatalf("unexpected error in metrics: %v", err)
							}
						}),
				)
			},
			wantErr: insertErr,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := NewMockClickhouseRepository(ctrl)
			metrics := NewMockWriterMetrics(ctrl)
			tt.prepare(repo, metrics)

			w := NewArchiveWriter(repo, metrics, testWriterConfig(), zap.NewNop()).(*archiveWriter)
			err := w.flush(ctx, records)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("flush() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func Test_archiveWriter_WriteFlushesOnStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := NewMockClickhouseRepository(ctrl)
	metrics := NewMockWriterMetrics(ctrl)

	var (
		mu  sync.Mutex
		got []string
	)
	repo.EXPECT().InsertTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, txs []model.Transaction) error {
			mu.Lock()
			defer mu.Unlock()
			for _, tx := range txs {
				got = append(got, tx.TxID)
			}
			return nil
		}).AnyTimes()
	repo.EXPECT().InsertFreeBalances(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	metrics.EXPECT().ObserveFlush(nil, gomock.Any(), gomock.Any()).AnyTimes()

	cfg := testWriterConfig()
	cfg.Batch.FlushSize = 10
	w := NewArchiveWriter(repo, metrics, cfg, zap.NewNop())

	ctx := context.Background()
	w.Start(ctx)
	for _, r := range testRecords() {
		if err := w.Write(ctx, r); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	w.Stop()

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 2 || got[0] != "tx1" || got[1] != "tx2" {
		t.Fatalf("archived = %v, want [tx1 tx2]", got)
	}
}

func Test_archiveWriter_WriteCanceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := NewArchiveWriter(NewMockClickhouseRepository(ctrl), NewMockWriterMetrics(ctrl), testWriterConfig(), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Write(ctx, Record{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Write() error = %v, want context.Canceled", err)
	}
}
