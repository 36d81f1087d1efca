package validation

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/contract"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/transaction"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/types"
)

// Rule errors. Violations carrying details wrap one of these in a typed error, so callers match
// the rule with errors.Is and read details with errors.As.
var (
	ErrTransactionGasLimit                            = errors.New("transaction gas limit exceeds the maximum")
	ErrTransactionMaturity                            = errors.New("transaction maturity is above the block height")
	ErrTransactionInputsMax                           = errors.New("too many inputs")
	ErrTransactionOutputsMax                          = errors.New("too many outputs")
	ErrTransactionWitnessesMax                        = errors.New("too many witnesses")
	ErrTransactionOutputChangeAssetIDDuplicated       = errors.New("more than one change output for an asset")
	ErrDuplicateInputUtxoID                           = errors.New("duplicate input utxo id")
	ErrDuplicateInputContractID                       = errors.New("duplicate input contract id")
	ErrDuplicateMessageInputID                        = errors.New("duplicate message input id")
	ErrInputPredicateEmpty                            = errors.New("input predicate is empty")
	ErrInputPredicateLength                           = errors.New("input predicate is too long")
	ErrInputPredicateDataLength                       = errors.New("input predicate data is too long")
	ErrInputWitnessIndexBounds                        = errors.New("input witness index out of bounds")
	ErrInputContractAssociatedOutputContract          = errors.New("contract input needs exactly one contract output")
	ErrInputMessageDataLength                         = errors.New("input message data is too long")
	ErrInputInvalidSignature                          = errors.New("input signature is invalid")
	ErrInputPredicateOwner                            = errors.New("input owner is not the predicate root")
	ErrOutputContractInputIndex                       = errors.New("contract output does not point at a contract input")
	ErrTransactionOutputChangeAssetIDNotFound         = errors.New("change output asset is not an input asset")
	ErrTransactionOutputCoinAssetIDNotFound           = errors.New("coin output asset is not an input asset")
	ErrTransactionOutputCoinAssetIDDuplicated         = errors.New("more than one coin output for an asset")
	ErrTransactionScriptLength                        = errors.New("script is too long")
	ErrTransactionScriptDataLength                    = errors.New("script data is too long")
	ErrTransactionScriptOutputContractCreated         = errors.New("script transactions cannot create contracts")
	ErrTransactionCreateBytecodeWitnessIndex          = contract.ErrBytecodeWitnessIndex
	ErrTransactionCreateBytecodeLen                   = errors.New("bytecode length mismatch")
	ErrTransactionCreateStorageSlotMax                = errors.New("too many storage slots")
	ErrTransactionCreateStorageSlotOrder              = errors.New("storage slots are not sorted")
	ErrTransactionCreateInputContract                 = errors.New("create transactions cannot spend contracts")
	ErrTransactionCreateOutputContract                = errors.New("create transactions cannot have contract outputs")
	ErrTransactionCreateOutputVariable                = errors.New("create transactions cannot have variable outputs")
	ErrTransactionCreateOutputChangeNotBaseAsset      = errors.New("create change output is not the base asset")
	ErrTransactionCreateOutputContractCreatedMultiple = errors.New("more than one contract created output")
	ErrTransactionCreateOutputContractCreatedMissing  = errors.New("missing contract created output")
	ErrOutputOfMintIsNotCoin                          = errors.New("mint outputs must be coins")
	ErrInsufficientFeeAmount                          = errors.New("insufficient fee amount")
	ErrInsufficientInputAmount                        = errors.New("insufficient input amount")
	ErrArithmeticOverflow                             = errors.New("arithmetic overflow")
)

var ruleNames = []struct {
	err  error
	name string
}{
	{ErrTransactionGasLimit, "TransactionGasLimit"},
	{ErrTransactionMaturity, "TransactionMaturity"},
	{ErrTransactionInputsMax, "TransactionInputsMax"},
	{ErrTransactionOutputsMax, "TransactionOutputsMax"},
	{ErrTransactionWitnessesMax, "TransactionWitnessesMax"},
	{ErrTransactionOutputChangeAssetIDDuplicated, "TransactionOutputChangeAssetIDDuplicated"},
	{ErrDuplicateInputUtxoID, "DuplicateInputUtxoID"},
	{ErrDuplicateInputContractID, "DuplicateInputContractID"},
	{ErrDuplicateMessageInputID, "DuplicateMessageInputID"},
	{ErrInputPredicateEmpty, "InputPredicateEmpty"},
	{ErrInputPredicateLength, "InputPredicateLength"},
	{ErrInputPredicateDataLength, "InputPredicateDataLength"},
	{ErrInputWitnessIndexBounds, "InputWitnessIndexBounds"},
	{ErrInputContractAssociatedOutputContract, "InputContractAssociatedOutputContract"},
	{ErrInputMessageDataLength, "InputMessageDataLength"},
	{ErrInputInvalidSignature, "InputInvalidSignature"},
	{ErrInputPredicateOwner, "InputPredicateOwner"},
	{ErrOutputContractInputIndex, "OutputContractInputIndex"},
	{ErrTransactionOutputChangeAssetIDNotFound, "TransactionOutputChangeAssetIDNotFound"},
	{ErrTransactionOutputCoinAssetIDNotFound, "TransactionOutputCoinAssetIDNotFound"},
	{ErrTransactionOutputCoinAssetIDDuplicated, "TransactionOutputCoinAssetIDDuplicated"},
	{ErrTransactionScriptLength, "TransactionScriptLength"},
	{ErrTransactionScriptDataLength, "TransactionScriptDataLength"},
	{ErrTransactionScriptOutputContractCreated, "TransactionScriptOutputContractCreated"},
	{ErrTransactionCreateBytecodeWitnessIndex, "TransactionCreateBytecodeWitnessIndex"},
	{ErrTransactionCreateBytecodeLen, "TransactionCreateBytecodeLen"},
	{ErrTransactionCreateStorageSlotMax, "TransactionCreateStorageSlotMax"},
	{ErrTransactionCreateStorageSlotOrder, "TransactionCreateStorageSlotOrder"},
	{ErrTransactionCreateInputContract, "TransactionCreateInputContract"},
	{ErrTransactionCreateOutputContract, "TransactionCreateOutputContract"},
	{ErrTransactionCreateOutputVariable, "TransactionCreateOutputVariable"},
	{ErrTransactionCreateOutputChangeNotBaseAsset, "TransactionCreateOutputChangeNotBaseAsset"},
	{ErrTransactionCreateOutputContractCreatedMultiple, "TransactionCreateOutputContractCreatedMultiple"},
	{ErrTransactionCreateOutputContractCreatedMissing, "TransactionCreateOutputContractCreatedMissing"},
	{ErrOutputOfMintIsNotCoin, "OutputOfMintIsNotCoin"},
	{ErrInsufficientFeeAmount, "InsufficientFeeAmount"},
	{ErrInsufficientInputAmount, "InsufficientInputAmount"},
	{ErrArithmeticOverflow, "ArithmeticOverflow"},
}

// Rule returns the name of the rule err violates, for example "TransactionGasLimit", or "" when
// err is not a validation error.
func Rule(err error) string {
	if err == nil {
		return ""
	}
	for _, r := range ruleNames {
		if errors.Is(err, r.err) {
			return r.name
		}
	}
	return ""
}

// IndexError locates a violation at an input or output index.
type IndexError struct {
	Err   error
	Index int
}

func (e *IndexError) Error() string { return fmt.Sprintf("%v: index %d", e.Err, e.Index) }
func (e *IndexError) Unwrap() error { return e.Err }

// AssetError names the asset of a violation.
type AssetError struct {
	Err     error
	AssetID types.AssetID
}

func (e *AssetError) Error() string { return fmt.Sprintf("%v: asset %s", e.Err, e.AssetID) }
func (e *AssetError) Unwrap() error { return e.Err }

// UtxoIDError names a duplicated utxo id.
type UtxoIDError struct {
	Err    error
	UtxoID transaction.UtxoID
}

func (e *UtxoIDError) Error() string { return fmt.Sprintf("%v: %s", e.Err, e.UtxoID) }
func (e *UtxoIDError) Unwrap() error { return e.Err }

// ContractIDError names a duplicated contract id.
type ContractIDError struct {
	Err        error
	ContractID types.ContractID
}

func (e *ContractIDError) Error() string { return fmt.Sprintf("%v: %s", e.Err, e.ContractID) }
func (e *ContractIDError) Unwrap() error { return e.Err }

// MessageIDError names a duplicated message id.
type MessageIDError struct {
	Err       error
	MessageID types.MessageID
}

func (e *MessageIDError) Error() string { return fmt.Sprintf("%v: %s", e.Err, e.MessageID) }
func (e *MessageIDError) Unwrap() error { return e.Err }

// AmountError reports an amount that does not cover what is expected.
type AmountError struct {
	Err      error
	Expected types.Word
	Provided types.Word
}

func (e *AmountError) Error() string {
	return fmt.Sprintf("%v: expected %d, provided %d", e.Err, e.Expected, e.Provided)
}

func (e *AmountError) Unwrap() error { return e.Err }

// AssetAmountError reports an asset balance that does not cover what is expected.
type AssetAmountError struct {
	Err      error
	AssetID  types.AssetID
	Expected types.Word
	Provided types.Word
}

func (e *AssetAmountError) Error() string {
	return fmt.Sprintf("%v: asset %s expected %d, provided %d", e.Err, e.AssetID, e.Expected, e.Provided)
}

func (e *AssetAmountError) Unwrap() error { return e.Err }

func atIndex(err error, index int) error {
	return &IndexError{Err: err, Index: index}
}

func forAsset(err error, assetID types.AssetID) error {
	return &AssetError{Err: err, AssetID: assetID}
}
