package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/model"
)

// InsertFreeBalances stores the free balances of checked transactions in ClickHouse.
func (r *Repository) InsertFreeBalances(ctx context.Context, balances []model.FreeBalance) error {
	start := time.Now()
	var err error
	defer func() {
		network := ""
		if len(balances) > 0 {
			network = string(balances[0].Network)
		}
		r.metrics.Observe("insert_free_balances", network, err, start)
	}()

	if len(balances) == 0 {
		return nil
	}

	const query = `
INSERT INTO txcore_free_balances (
	network,
	txid,
	block_height,
	asset_id,
	amount
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare free balances batch: %w", err)
	}

	for _, b := range balances {
		if err = batch.Append(
			string(b.Network),
			b.TxID,
			b.BlockHeight,
			b.AssetID,
			b.Amount,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append free balance: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert free balances: %w", err)
	}
	return nil
}
