// Package checked wraps transactions that passed validation together with their fee and the
// balances left to the script after mandatory deductions.
package checked

import (
	"fmt"
	"maps"
	"slices"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/consensus"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/crypto"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/fee"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/transaction"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/types"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/validation"
	"github.com/goodnatureofminers/blockinsight7000-txcore/pkg/safe"
)

// Balance is the free amount of one asset.
type Balance struct {
	AssetID types.AssetID `json:"asset_id"`
	Amount  types.Word    `json:"amount"`
}

// Checked is a transaction that passed validation. It can only be built by Check.
type Checked struct {
	transaction  transaction.Transaction
	freeBalances map[types.AssetID]types.Word
	blockHeight  types.Word
	fee          fee.TransactionFee
}

func (c *Checked) Transaction() transaction.Transaction { return c.transaction }
func (c *Checked) BlockHeight() types.Word { return c.blockHeight }
func (c *Checked) Fee() fee.TransactionFee { return c.fee }
func (c *Checked) MinFee() types.Word { return c.fee.Min() }
func (c *Checked) MaxFee() types.Word { return c.fee.Max() }

// FreeBalances returns a copy of the free balances ordered by asset id.
func (c *Checked) FreeBalances() []Balance {
	balances := make([]Balance, 0, len(c.freeBalances))
	for _, asset := range slices.SortedFunc(maps.Keys(c.freeBalances), types.AssetID.Compare) {
		balances = append(balances, Balance{AssetID: asset, Amount: c.freeBalances[asset]})
	}
	return balances
}

// FreeBalance returns the free balance of asset.
func (c *Checked) FreeBalance(asset types.AssetID) (types.Word, bool) {
	amount, ok := c.freeBalances[asset]
	return amount, ok
}

type options struct {
	signatures bool
	recoverer  validation.SignatureRecoverer
	predicates validation.PredicateOwners
}

// Option configures Check.
type Option func(*options)

// WithoutSignatures skips signature and predicate owner validation.
func WithoutSignatures() Option {
	return func(o *options) { o.signatures = false }
}

// WithRecoverer replaces the signature recoverer.
func WithRecoverer(r validation.SignatureRecoverer) Option {
	return func(o *options) { o.recoverer = r }
}

// WithPredicateOwners replaces the predicate owner derivation, for example with a
// validation.CachedPredicateOwners.
func WithPredicateOwners(p validation.PredicateOwners) Option {
	return func(o *options) { o.predicates = p }
}

// Check validates tx at blockHeight, prices it and computes its free balances. The result holds its
// own copy of tx: later changes to tx do not reach it.
func Check(tx transaction.Transaction, blockHeight types.Word, params consensus.Parameters, opts ...Option) (*Checked, error) {
	tx = tx.Clone()
	tx.Precompute()

	o := options{
		signatures: true,
		recoverer:  crypto.Recoverer{},
		predicates: transaction.PredicateOwners{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := validation.ValidateWithoutSignature(tx, blockHeight, params); err != nil {
		return nil, err
	}
	if o.signatures {
		if err := validation.ValidateSignatures(tx, o.recoverer, o.predicates); err != nil {
			return nil, err
		}
	}

	if tx.Kind() == transaction.KindMint {
		return &Checked{
			transaction:  tx,
			freeBalances: map[types.AssetID]types.Word{},
			blockHeight:  blockHeight,
		}, nil
	}

	f, err := fee.FromTransaction(params, tx)
	if err != nil {
		return nil, err
	}
	balances, err := freeBalances(tx, f)
	if err != nil {
		return nil, err
	}
	return &Checked{
		transaction:  tx,
		freeBalances: balances,
		blockHeight:  blockHeight,
		fee:          f,
	}, nil
}

func freeBalances(tx transaction.Transaction, f fee.TransactionFee) (map[types.AssetID]types.Word, error) {
	balances := make(map[types.AssetID]types.Word)
	for _, in := range tx.Inputs() {
		if !transaction.IsCoin(in) {
			continue
		}
		asset, _ := transaction.InputAssetID(in)
		amount, _ := transaction.InputAmount(in)
		sum, err := safe.Add(balances[asset], amount)
		if err != nil {
			return nil, fmt.Errorf("%w: balance of asset %s", validation.ErrArithmeticOverflow, asset)
		}
		balances[asset] = sum
	}

	base, ok := balances[types.BaseAsset]
	if !ok {
		return nil, &validation.AmountError{Err: validation.ErrInsufficientFeeAmount, Expected: f.Max()}
	}
	left, err := f.TryDeduct(base)
	if err != nil {
		return nil, err
	}
	balances[types.BaseAsset] = left

	for _, out := range tx.Outputs() {
		coin, ok := out.(transaction.CoinOutput)
		if !ok {
			continue
		}
		balance, ok := balances[coin.AssetID]
		if !ok {
			return nil, &validation.AssetError{Err: validation.ErrTransactionOutputCoinAssetIDNotFound, AssetID: coin.AssetID}
		}
		left, err := safe.Sub(balance, coin.Amount)
		if err != nil {
			return nil, &validation.AssetAmountError{
				Err:      validation.ErrInsufficientInputAmount,
				AssetID:  coin.AssetID,
				Expected: coin.Amount,
				Provided: balance,
			}
		}
		balances[coin.AssetID] = left
	}
	return balances, nil
}
