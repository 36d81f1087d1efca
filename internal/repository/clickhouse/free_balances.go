package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/model"
)

// FreeBalances returns the archived free balances of a transaction ordered by asset.
func (r *Repository) FreeBalances(ctx context.Context, network model.Network, txid string) (balances []model.FreeBalance, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("free_balances", string(network), err, start)
	}()

	const query = `
SELECT
	block_height,
	asset_id,
	amount
FROM txcore_free_balances
WHERE network = ? AND txid = CAST(? AS FixedString(64))
ORDER BY asset_id ASC`

	rows, err := r.conn.Query(ctx, query, string(network), txid)
	if err != nil {
		return nil, fmt.Errorf("query free balances: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	for rows.Next() {
		b := model.FreeBalance{Network: network, TxID: txid}
		if err = rows.Scan(&b.BlockHeight, &b.AssetID, &b.Amount); err != nil {
			return nil, fmt.Errorf("scan free balance: %w", err)
		}
		balances = append(balances, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate free balances: %w", err)
	}
	return balances, nil
}
