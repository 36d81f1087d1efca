// Package validation checks transactions against the consensus parameters.
package validation

import (
	"slices"

	"github.com/hashicorp/go-multierror"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/consensus"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/crypto"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/transaction"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/types"
)

// collector records violations. In first mode it asks the caller to stop at the first one.
type collector struct {
	all  bool
	errs *multierror.Error
}

// add records err and reports whether validation should stop.
func (c *collector) add(err error) bool {
	c.errs = multierror.Append(c.errs, err)
	return !c.all
}

func (c *collector) stopped() bool {
	return !c.all && c.errs != nil
}

func (c *collector) err() error {
	if c.errs == nil {
		return nil
	}
	if !c.all {
		return c.errs.Errors[0]
	}
	return c.errs.ErrorOrNil()
}

// Validate runs ValidateWithoutSignature and then ValidateSignatures.
func Validate(tx transaction.Transaction, blockHeight types.Word, params consensus.Parameters) error {
	if err := ValidateWithoutSignature(tx, blockHeight, params); err != nil {
		return err
	}
	return ValidateSignatures(tx, crypto.Recoverer{}, transaction.PredicateOwners{})
}

// ValidateWithoutSignature returns the first structural violation of tx.
func ValidateWithoutSignature(tx transaction.Transaction, blockHeight types.Word, params consensus.Parameters) error {
	c := &collector{}
	validateStructure(c, tx, blockHeight, params)
	return c.err()
}

// ValidateAll returns every violation of tx, signatures included, as a *multierror.Error.
func ValidateAll(tx transaction.Transaction, blockHeight types.Word, params consensus.Parameters,
	recoverer SignatureRecoverer, predicates PredicateOwners) error {
	c := &collector{all: true}
	validateStructure(c, tx, blockHeight, params)
	validateSignatures(c, tx, recoverer, predicates)
	return c.err()
}

// ValidateSignatures checks signed inputs against their witnesses and predicate inputs against
// their owners.
func ValidateSignatures(tx transaction.Transaction, recoverer SignatureRecoverer, predicates PredicateOwners) error {
	c := &collector{}
	validateSignatures(c, tx, recoverer, predicates)
	return c.err()
}

func validateStructure(c *collector, tx transaction.Transaction, blockHeight types.Word, params consensus.Parameters) {
	switch t := tx.(type) {
	case *transaction.Script:
		validateCommon(c, t, blockHeight, params)
		if c.stopped() {
			return
		}
		validateScript(c, t, params)
	case *transaction.Create:
		validateCommon(c, t, blockHeight, params)
		if c.stopped() {
			return
		}
		validateCreate(c, t, params)
	case *transaction.Mint:
		validateMint(c, t)
	}
}

func validateCommon(c *collector, tx transaction.Transaction, blockHeight types.Word, params consensus.Parameters) {
	inputs, outputs, witnesses := tx.Inputs(), tx.Outputs(), tx.Witnesses()

	if tx.GasLimit() > params.MaxGasPerTx && c.add(ErrTransactionGasLimit) {
		return
	}
	if blockHeight < tx.Maturity() && c.add(ErrTransactionMaturity) {
		return
	}
	if uint64(len(inputs)) > params.MaxInputs && c.add(ErrTransactionInputsMax) {
		return
	}
	if uint64(len(outputs)) > params.MaxOutputs && c.add(ErrTransactionOutputsMax) {
		return
	}
	if uint64(len(witnesses)) > params.MaxWitnesses && c.add(ErrTransactionWitnessesMax) {
		return
	}

	inputAssets := inputAssetIDs(inputs)
	for _, asset := range inputAssets {
		changes := 0
		for _, out := range outputs {
			if ch, ok := out.(transaction.ChangeOutput); ok && ch.AssetID == asset {
				changes++
			}
		}
		if changes > 1 && c.add(ErrTransactionOutputChangeAssetIDDuplicated) {
			return
		}
	}

	if validateDuplicates(c, inputs) {
		return
	}

	for i, in := range inputs {
		if err := validateInput(in, i, outputs, witnesses, params); err != nil && c.add(err) {
			return
		}
	}

	for i, out := range outputs {
		if err := validateOutput(out, i, inputs, inputAssets); err != nil && c.add(err) {
			return
		}
	}
}

// inputAssetIDs returns the distinct assets funded by inputs in first-seen order.
func inputAssetIDs(inputs []transaction.Input) []types.AssetID {
	var assets []types.AssetID
	for _, in := range inputs {
		asset, ok := transaction.InputAssetID(in)
		if ok && !slices.Contains(assets, asset) {
			assets = append(assets, asset)
		}
	}
	return assets
}

func validateDuplicates(c *collector, inputs []transaction.Input) bool {
	var (
		utxoIDs     []transaction.UtxoID
		contractIDs []types.ContractID
		messageIDs  []types.MessageID
	)
	for _, in := range inputs {
		if id, ok := transaction.InputUtxoID(in); ok && transaction.IsCoin(in) {
			utxoIDs = append(utxoIDs, id)
		}
		if id, ok := transaction.InputContractID(in); ok {
			contractIDs = append(contractIDs, id)
		}
		if id, ok := transaction.InputMessageID(in); ok {
			messageIDs = append(messageIDs, id)
		}
	}

	if id, ok := firstDuplicate(utxoIDs, transaction.UtxoID.Compare); ok &&
		c.add(&UtxoIDError{Err: ErrDuplicateInputUtxoID, UtxoID: id}) {
		return true
	}
	if id, ok := firstDuplicate(contractIDs, types.ContractID.Compare); ok &&
		c.add(&ContractIDError{Err: ErrDuplicateInputContractID, ContractID: id}) {
		return true
	}
	if id, ok := firstDuplicate(messageIDs, types.MessageID.Compare); ok &&
		c.add(&MessageIDError{Err: ErrDuplicateMessageInputID, MessageID: id}) {
		return true
	}
	return false
}

// firstDuplicate returns the smallest value that occurs more than once.
func firstDuplicate[T any](values []T, compare func(a, b T) int) (T, bool) {
	sorted := slices.SortedFunc(slices.Values(values), compare)
	for i := 1; i < len(sorted); i++ {
		if compare(sorted[i-1], sorted[i]) == 0 {
			return sorted[i], true
		}
	}
	var zero T
	return zero, false
}

func validateInput(in transaction.Input, index int, outputs []transaction.Output, witnesses []transaction.Witness,
	params consensus.Parameters) error {
	if predicate, data, ok := transaction.InputPredicate(in); ok {
		switch {
		case len(predicate) == 0:
			return atIndex(ErrInputPredicateEmpty, index)
		case uint64(len(predicate)) > params.MaxPredicateLength:
			return atIndex(ErrInputPredicateLength, index)
		case uint64(len(data)) > params.MaxPredicateDataLength:
			return atIndex(ErrInputPredicateDataLength, index)
		}
	}

	if witnessIndex, ok := transaction.InputWitnessIndex(in); ok && int(witnessIndex) >= len(witnesses) {
		return atIndex(ErrInputWitnessIndexBounds, index)
	}

	if _, ok := in.(transaction.ContractInput); ok {
		associated := 0
		for _, out := range outputs {
			if co, ok := out.(transaction.ContractOutput); ok && int(co.InputIndex) == index {
				associated++
			}
		}
		if associated != 1 {
			return atIndex(ErrInputContractAssociatedOutputContract, index)
		}
	}

	var data []byte
	switch v := in.(type) {
	case transaction.MessageSigned:
		data = v.Data
	case transaction.MessagePredicate:
		data = v.Data
	}
	if uint64(len(data)) > params.MaxMessageDataLength {
		return atIndex(ErrInputMessageDataLength, index)
	}
	return nil
}

func validateOutput(out transaction.Output, index int, inputs []transaction.Input, inputAssets []types.AssetID) error {
	switch v := out.(type) {
	case transaction.ContractOutput:
		if int(v.InputIndex) >= len(inputs) {
			return atIndex(ErrOutputContractInputIndex, index)
		}
		if _, ok := inputs[v.InputIndex].(transaction.ContractInput); !ok {
			return atIndex(ErrOutputContractInputIndex, index)
		}
	case transaction.ChangeOutput:
		if !slices.Contains(inputAssets, v.AssetID) {
			return forAsset(ErrTransactionOutputChangeAssetIDNotFound, v.AssetID)
		}
	case transaction.CoinOutput:
		if !slices.Contains(inputAssets, v.AssetID) {
			return forAsset(ErrTransactionOutputCoinAssetIDNotFound, v.AssetID)
		}
	}
	return nil
}

func validateScript(c *collector, tx *transaction.Script, params consensus.Parameters) {
	if uint64(len(tx.Script())) > params.MaxScriptLength && c.add(ErrTransactionScriptLength) {
		return
	}
	if uint64(len(tx.ScriptData())) > params.MaxScriptDataLength && c.add(ErrTransactionScriptDataLength) {
		return
	}
	for i, out := range tx.Outputs() {
		if _, ok := out.(transaction.ContractCreatedOutput); ok &&
			c.add(atIndex(ErrTransactionScriptOutputContractCreated, i)) {
			return
		}
	}
}

func validateCreate(c *collector, tx *transaction.Create, params consensus.Parameters) {
	witnesses := tx.Witnesses()
	if int(tx.BytecodeWitnessIndex()) >= len(witnesses) {
		if c.add(ErrTransactionCreateBytecodeWitnessIndex) {
			return
		}
	} else {
		n := uint64(len(witnesses[tx.BytecodeWitnessIndex()]))
		if (n > params.ContractMaxSize || n/4 != tx.BytecodeLength()) && c.add(ErrTransactionCreateBytecodeLen) {
			return
		}
	}

	slots := tx.StorageSlots()
	if uint64(len(slots)) > params.MaxStorageSlots && c.add(ErrTransactionCreateStorageSlotMax) {
		return
	}
	for i := 1; i < len(slots); i++ {
		if slots[i-1].Compare(slots[i]) > 0 {
			if c.add(ErrTransactionCreateStorageSlotOrder) {
				return
			}
			break
		}
	}

	for i, in := range tx.Inputs() {
		if _, ok := in.(transaction.ContractInput); ok && c.add(atIndex(ErrTransactionCreateInputContract, i)) {
			return
		}
	}

	created := false
	for i, out := range tx.Outputs() {
		var err error
		switch v := out.(type) {
		case transaction.ContractOutput:
			err = atIndex(ErrTransactionCreateOutputContract, i)
		case transaction.VariableOutput:
			err = atIndex(ErrTransactionCreateOutputVariable, i)
		case transaction.ChangeOutput:
			if !v.AssetID.IsBase() {
				err = atIndex(ErrTransactionCreateOutputChangeNotBaseAsset, i)
			}
		case transaction.ContractCreatedOutput:
			if created {
				err = atIndex(ErrTransactionCreateOutputContractCreatedMultiple, i)
			}
			created = true
		}
		if err != nil && c.add(err) {
			return
		}
	}
	if !created {
		c.add(ErrTransactionCreateOutputContractCreatedMissing)
	}
}

func validateMint(c *collector, tx *transaction.Mint) {
	var assets []types.AssetID
	for _, out := range tx.Outputs() {
		coin, ok := out.(transaction.CoinOutput)
		if !ok {
			c.add(ErrOutputOfMintIsNotCoin)
			return
		}
		if slices.Contains(assets, coin.AssetID) {
			c.add(ErrTransactionOutputCoinAssetIDDuplicated)
			return
		}
		assets = append(assets, coin.AssetID)
	}
}

func validateSignatures(c *collector, tx transaction.Transaction, recoverer SignatureRecoverer, predicates PredicateOwners) {
	if tx.Kind() == transaction.KindMint {
		return
	}

	id := transaction.ID(tx)
	witnesses := tx.Witnesses()
	for i, in := range tx.Inputs() {
		if err := validateInputSignature(in, i, id, witnesses, recoverer, predicates); err != nil && c.add(err) {
			return
		}
	}
}

func validateInputSignature(in transaction.Input, index int, id types.Bytes32, witnesses []transaction.Witness,
	recoverer SignatureRecoverer, predicates PredicateOwners) error {
	owner, _ := transaction.InputOwner(in)

	if witnessIndex, ok := transaction.InputWitnessIndex(in); ok {
		if int(witnessIndex) >= len(witnesses) {
			return atIndex(ErrInputWitnessIndexBounds, index)
		}
		witness := witnesses[witnessIndex]
		if len(witness) != crypto.SignatureSize {
			return atIndex(ErrInputInvalidSignature, index)
		}
		recovered, err := recoverer.RecoverOwner(witness, id)
		if err != nil || recovered != owner {
			return atIndex(ErrInputInvalidSignature, index)
		}
		return nil
	}

	if predicate, _, ok := transaction.InputPredicate(in); ok && predicates.PredicateOwner(predicate) != owner {
		return atIndex(ErrInputPredicateOwner, index)
	}
	return nil
}
