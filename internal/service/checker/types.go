package checker

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	ClickhouseRepository interface {
		InsertTransactions(ctx context.Context, txs []model.Transaction) error
		InsertFreeBalances(ctx context.Context, balances []model.FreeBalance) error
		TransactionByID(ctx context.Context, network model.Network, txid string) (model.Transaction, error)
		FreeBalances(ctx context.Context, network model.Network, txid string) ([]model.FreeBalance, error)
	}
	Writer interface {
		Start(ctx context.Context)
		Stop()
		Write(ctx context.Context, r Record) error
	}
	Metrics interface {
		ObserveCheck(kind, rule string, err error, started time.Time)
		ObserveBatch(err error, size int, started time.Time)
	}
	CodecMetrics interface {
		ObserveDecode(format string, size int, err error, started time.Time)
	}
	WriterMetrics interface {
		ObserveFlush(err error, size int, started time.Time)
	}
)
