package model

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/checked"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/transaction"
	"github.com/goodnatureofminers/blockinsight7000-txcore/pkg/safe"
)

// Transaction is a checked transaction as archived in ClickHouse.
type Transaction struct {
	Network      Network
	TxID         string
	Kind         string
	BlockHeight  uint64
	GasPrice     uint64
	GasLimit     uint64
	Maturity     uint64
	MeteredBytes uint32
	Size         uint32
	InputCount   uint32
	OutputCount  uint32
	WitnessCount uint32
	MinFee       uint64
	MaxFee       uint64
	CheckedAt    time.Time
	Raw          string
}

// FreeBalance is the amount of an asset left to a checked transaction once its fee is paid.
type FreeBalance struct {
	Network     Network
	TxID        string
	BlockHeight uint64
	AssetID     string
	Amount      uint64
}

// FromChecked converts a checked transaction into its archive rows.
func FromChecked(network Network, c *checked.Checked, checkedAt time.Time) (Transaction, []FreeBalance, error) {
	tx := c.Transaction()
	raw := transaction.Encode(tx)
	txID := transaction.ID(tx).String()

	size, err := safe.Uint32(len(raw))
	if err != nil {
		return Transaction{}, nil, err
	}
	metered, err := safe.Uint32(tx.MeteredBytesSize())
	if err != nil {
		return Transaction{}, nil, err
	}
	inputs, err := safe.Uint32(len(tx.Inputs()))
	if err != nil {
		return Transaction{}, nil, err
	}
	outputs, err := safe.Uint32(len(tx.Outputs()))
	if err != nil {
		return Transaction{}, nil, err
	}
	witnesses, err := safe.Uint32(len(tx.Witnesses()))
	if err != nil {
		return Transaction{}, nil, err
	}

	row := Transaction{
		Network:      network,
		TxID:         txID,
		Kind:         tx.Kind().String(),
		BlockHeight:  c.BlockHeight(),
		GasPrice:     tx.GasPrice(),
		GasLimit:     tx.GasLimit(),
		Maturity:     tx.Maturity(),
		MeteredBytes: metered,
		Size:         size,
		InputCount:   inputs,
		OutputCount:  outputs,
		WitnessCount: witnesses,
		MinFee:       c.MinFee(),
		MaxFee:       c.MaxFee(),
		CheckedAt:    checkedAt,
		Raw:          hex.EncodeToString(raw),
	}

	balances := c.FreeBalances()
	rows := make([]FreeBalance, 0, len(balances))
	for _, b := range balances {
		rows = append(rows, FreeBalance{
			Network:     network,
			TxID:        txID,
			BlockHeight: c.BlockHeight(),
			AssetID:     b.AssetID.String(),
			Amount:      b.Amount,
		})
	}
	return row, rows, nil
}

// Decode parses the archived raw encoding back into a transaction.
func (t Transaction) Decode() (transaction.Transaction, error) {
	raw, err := hex.DecodeString(t.Raw)
	if err != nil {
		return nil, fmt.Errorf("decode raw hex of %s: %w", t.TxID, err)
	}
	tx, err := transaction.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode transaction %s: %w", t.TxID, err)
	}
	return tx, nil
}
