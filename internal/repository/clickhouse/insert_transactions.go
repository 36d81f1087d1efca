package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/model"
)

// InsertTransactions stores checked transactions in ClickHouse.
func (r *Repository) InsertTransactions(ctx context.Context, txs []model.Transaction) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_transactions", firstNetwork(txs), err, start)
	}()

	if len(txs) == 0 {
		return nil
	}

	const query = `
INSERT INTO txcore_transactions (
	network,
	txid,
	kind,
	block_height,
	gas_price,
	gas_limit,
	maturity,
	metered_bytes,
	size,
	input_count,
	output_count,
	witness_count,
	min_fee,
	max_fee,
	checked_at,
	raw
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare transactions batch: %w", err)
	}

	for _, tx := range txs {
		if err = batch.Append(
			string(tx.Network),
			tx.TxID,
			tx.Kind,
			tx.BlockHeight,
			tx.GasPrice,
			tx.GasLimit,
			tx.Maturity,
			tx.MeteredBytes,
			tx.Size,
			tx.InputCount,
			tx.OutputCount,
			tx.WitnessCount,
			tx.MinFee,
			tx.MaxFee,
			tx.CheckedAt,
			tx.Raw,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append transaction %s: %w", tx.TxID, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	return nil
}

func firstNetwork(txs []model.Transaction) string {
	if len(txs) == 0 {
		return ""
	}
	return string(txs[0].Network)
}
