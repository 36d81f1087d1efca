package transport

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/service/checker"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/transaction"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/types"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Checker interface {
		Decode(format checker.Format, payload []byte) (transaction.Transaction, error)
		CheckBatch(ctx context.Context, reqs []checker.Request) ([]checker.Result, error)
		Lookup(ctx context.Context, txid types.Bytes32) (model.Transaction, []model.FreeBalance, error)
	}
)
