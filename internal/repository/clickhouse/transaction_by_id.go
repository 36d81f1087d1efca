package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/model"
)

var ErrTransactionNotFound = model.ErrTransactionNotFound

// TransactionByID returns the latest archived check of a transaction.
func (r *Repository) TransactionByID(ctx context.Context, network model.Network, txid string) (tx model.Transaction, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("transaction_by_id", string(network), err, start)
	}()

	const query = `
SELECT
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
FROM txcore_transactions
WHERE network = ? AND txid = CAST(? AS FixedString(64))
ORDER BY checked_at DESC
LIMIT 1`

	rows, err := r.conn.Query(ctx, query, string(network), txid)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("query transaction: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return model.Transaction{}, fmt.Errorf("iterate transaction: %w", err)
		}
		err = fmt.Errorf("%w: %s", ErrTransactionNotFound, txid)
		return model.Transaction{}, err
	}

	tx.Network = network
	tx.TxID = txid
	if err = rows.Scan(
		&tx.Kind,
		&tx.BlockHeight,
		&tx.GasPrice,
		&tx.GasLimit,
		&tx.Maturity,
		&tx.MeteredBytes,
		&tx.Size,
		&tx.InputCount,
		&tx.OutputCount,
		&tx.WitnessCount,
		&tx.MinFee,
		&tx.MaxFee,
		&tx.CheckedAt,
		&tx.Raw,
	); err != nil {
		return model.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	return tx, nil
}
