// Package fee prices transactions from their metered size and gas limit.
package fee

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/consensus"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/transaction"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/types"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/validation"
)

// TransactionFee holds the fee charged for the metered bytes alone and the maximum fee, which
// adds the full gas limit.
type TransactionFee struct {
	Bytes types.Word `json:"bytes"`
	Total types.Word `json:"total"`
}

// Min returns the fee guaranteed to be charged.
func (f TransactionFee) Min() types.Word { return f.Bytes }

// Max returns the fee charged when the whole gas limit is consumed.
func (f TransactionFee) Max() types.Word { return f.Total }

// TryDeduct subtracts the maximum fee from balance.
func (f TransactionFee) TryDeduct(balance types.Word) (types.Word, error) {
	if balance < f.Total {
		return 0, &validation.AmountError{
			Err:      validation.ErrInsufficientFeeAmount,
			Expected: f.Total,
			Provided: balance,
		}
	}
	return balance - f.Total, nil
}

// FromValues computes the fee of a transaction with the given metered size, gas limit and gas
// price. Intermediate products are 256 bits wide; a fee that does not fit a word fails with
// validation.ErrArithmeticOverflow.
func FromValues(params consensus.Parameters, meteredBytes, gasLimit, gasPrice types.Word) (TransactionFee, error) {
	if params.GasPriceFactor == 0 {
		return TransactionFee{}, consensus.ErrZeroGasPriceFactor
	}

	var (
		price  = uint256.NewInt(gasPrice)
		factor = uint256.NewInt(params.GasPriceFactor)
		bytes  = new(uint256.Int).Mul(uint256.NewInt(params.GasPerByte), uint256.NewInt(meteredBytes))
		gas    = new(uint256.Int).Add(bytes, uint256.NewInt(gasLimit))
	)

	bytesFee, err := ceilDiv(new(uint256.Int).Mul(bytes, price), factor)
	if err != nil {
		return TransactionFee{}, fmt.Errorf("bytes fee: %w", err)
	}
	total, err := ceilDiv(new(uint256.Int).Mul(gas, price), factor)
	if err != nil {
		return TransactionFee{}, fmt.Errorf("total fee: %w", err)
	}
	return TransactionFee{Bytes: bytesFee, Total: total}, nil
}

// FromTransaction computes the fee of tx. Mint transactions are free.
func FromTransaction(params consensus.Parameters, tx transaction.Transaction) (TransactionFee, error) {
	if tx.Kind() == transaction.KindMint {
		return TransactionFee{}, nil
	}
	return FromValues(params, types.Word(tx.MeteredBytesSize()), tx.GasLimit(), tx.GasPrice())
}

func ceilDiv(n, d *uint256.Int) (types.Word, error) {
	q := new(uint256.Int).Div(n, d)
	if !new(uint256.Int).Mod(n, d).IsZero() {
		q.AddUint64(q, 1)
	}
	if !q.IsUint64() {
		return 0, validation.ErrArithmeticOverflow
	}
	return q.Uint64(), nil
}
