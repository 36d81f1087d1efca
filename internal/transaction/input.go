package transaction

import (
	"encoding/binary"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/codec"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/crypto"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/merkle"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/types"
)

// Input is one of CoinSigned, CoinPredicate, ContractInput, MessageSigned or MessagePredicate.
type Input interface {
	codec.Encodable
	isInput()
}

type (
	// CoinSigned spends a coin authorized by a signature witness.
	CoinSigned struct {
		UtxoID       UtxoID        `json:"utxo_id"`
		Owner        types.Address `json:"owner"`
		Amount       types.Word    `json:"amount"`
		AssetID      types.AssetID `json:"asset_id"`
		TxPointer    TxPointer     `json:"tx_pointer"`
		WitnessIndex uint8         `json:"witness_index"`
		Maturity     types.Word    `json:"maturity"`
	}

	// CoinPredicate spends a coin owned by a predicate.
	CoinPredicate struct {
		UtxoID        UtxoID        `json:"utxo_id"`
		Owner         types.Address `json:"owner"`
		Amount        types.Word    `json:"amount"`
		AssetID       types.AssetID `json:"asset_id"`
		TxPointer     TxPointer     `json:"tx_pointer"`
		Maturity      types.Word    `json:"maturity"`
		Predicate     []byte        `json:"predicate"`
		PredicateData []byte        `json:"predicate_data"`
	}

	// ContractInput makes a contract available to the transaction.
	ContractInput struct {
		UtxoID      UtxoID           `json:"utxo_id"`
		BalanceRoot types.Bytes32    `json:"balance_root"`
		StateRoot   types.Bytes32    `json:"state_root"`
		TxPointer   TxPointer        `json:"tx_pointer"`
		ContractID  types.ContractID `json:"contract_id"`
	}

	// MessageSigned spends a message authorized by a signature witness.
	MessageSigned struct {
		MessageID    types.MessageID `json:"message_id"`
		Sender       types.Address   `json:"sender"`
		Recipient    types.Address   `json:"recipient"`
		Amount       types.Word      `json:"amount"`
		Nonce        types.Word      `json:"nonce"`
		WitnessIndex uint8           `json:"witness_index"`
		Data         []byte          `json:"data"`
	}

	// MessagePredicate spends a message whose recipient is a predicate.
	MessagePredicate struct {
		MessageID     types.MessageID `json:"message_id"`
		Sender        types.Address   `json:"sender"`
		Recipient     types.Address   `json:"recipient"`
		Amount        types.Word      `json:"amount"`
		Nonce         types.Word      `json:"nonce"`
		Data          []byte          `json:"data"`
		Predicate     []byte          `json:"predicate"`
		PredicateData []byte          `json:"predicate_data"`
	}
)

func (CoinSigned) isInput() {}

func (CoinPredicate) isInput() {}

func (ContractInput) isInput() {}

func (MessageSigned) isInput() {}

func (MessagePredicate) isInput() {}

// InputUtxoID returns the utxo id of coin and contract inputs.
func InputUtxoID(in Input) (UtxoID, bool) {
	switch v := in.(type) {
	case CoinSigned:
		return v.UtxoID, true
	case CoinPredicate:
		return v.UtxoID, true
	case ContractInput:
		return v.UtxoID, true
	}
	return UtxoID{}, false
}

// InputOwner returns the owner of a coin or the recipient of a message.
func InputOwner(in Input) (types.Address, bool) {
	switch v := in.(type) {
	case CoinSigned:
		return v.Owner, true
	case CoinPredicate:
		return v.Owner, true
	case MessageSigned:
		return v.Recipient, true
	case MessagePredicate:
		return v.Recipient, true
	}
	return types.Address{}, false
}

// InputAssetID returns the asset an input funds. Messages always carry the base asset.
func InputAssetID(in Input) (types.AssetID, bool) {
	switch v := in.(type) {
	case CoinSigned:
		return v.AssetID, true
	case CoinPredicate:
		return v.AssetID, true
	case MessageSigned, MessagePredicate:
		return types.BaseAsset, true
	}
	return types.AssetID{}, false
}

// InputAmount returns the amount of coin and message inputs.
func InputAmount(in Input) (types.Word, bool) {
	switch v := in.(type) {
	case CoinSigned:
		return v.Amount, true
	case CoinPredicate:
		return v.Amount, true
	case MessageSigned:
		return v.Amount, true
	case MessagePredicate:
		return v.Amount, true
	}
	return 0, false
}

// InputContractID returns the contract id of a contract input.
func InputContractID(in Input) (types.ContractID, bool) {
	if v, ok := in.(ContractInput); ok {
		return v.ContractID, true
	}
	return types.ContractID{}, false
}

// InputMessageID returns the message id of a message input.
func InputMessageID(in Input) (types.MessageID, bool) {
	switch v := in.(type) {
	case MessageSigned:
		return v.MessageID, true
	case MessagePredicate:
		return v.MessageID, true
	}
	return types.MessageID{}, false
}

// InputWitnessIndex returns the witness index of signed inputs.
func InputWitnessIndex(in Input) (uint8, bool) {
	switch v := in.(type) {
	case CoinSigned:
		return v.WitnessIndex, true
	case MessageSigned:
		return v.WitnessIndex, true
	}
	return 0, false
}

// InputPredicate returns the predicate and its data for predicate inputs.
func InputPredicate(in Input) (predicate, data []byte, ok bool) {
	switch v := in.(type) {
	case CoinPredicate:
		return v.Predicate, v.PredicateData, true
	case MessagePredicate:
		return v.Predicate, v.PredicateData, true
	}
	return nil, nil, false
}

// InputPredicateOffset returns the offset of the predicate relative to the start of the input.
func InputPredicateOffset(in Input) (int, bool) {
	switch v := in.(type) {
	case CoinPredicate:
		return InputCoinSize, true
	case MessagePredicate:
		return InputMessageSize + codec.Padded(len(v.Data)), true
	}
	return 0, false
}

// InputPredicateDataOffset returns the offset of the predicate data relative to the start of the input.
func InputPredicateDataOffset(in Input) (int, bool) {
	offset, ok := InputPredicateOffset(in)
	if !ok {
		return 0, false
	}
	predicate, _, _ := InputPredicate(in)
	return offset + codec.Padded(len(predicate)), true
}

// IsCoin reports whether in spends a coin.
func IsCoin(in Input) bool {
	switch in.(type) {
	case CoinSigned, CoinPredicate:
		return true
	}
	return false
}

// IsMessage reports whether in spends a message.
func IsMessage(in Input) bool {
	switch in.(type) {
	case MessageSigned, MessagePredicate:
		return true
	}
	return false
}

// ComputeMessageID derives a message id from its contents.
func ComputeMessageID(sender, recipient types.Address, nonce, amount types.Word, data []byte) types.MessageID {
	var buf [2 * types.WordSize]byte
	binary.BigEndian.PutUint64(buf[:types.WordSize], nonce)
	binary.BigEndian.PutUint64(buf[types.WordSize:], amount)

	return types.MessageID(crypto.NewHasher().
		Chain(sender[:]).
		Chain(recipient[:]).
		Chain(buf[:]).
		Chain(data).
		Digest())
}

// PredicateOwner returns the address owned by predicate code.
func PredicateOwner(predicate []byte) types.Address {
	return types.Address(merkle.CodeRoot(predicate))
}

// PredicateOwners computes predicate owners.
type PredicateOwners struct{}

// PredicateOwner implements the owner derivation used by signature validation.
func (PredicateOwners) PredicateOwner(predicate []byte) types.Address {
	return PredicateOwner(predicate)
}

// PrepareSignInput clears the fields of in that are not covered by the transaction id.
func PrepareSignInput(in Input) Input {
	switch v := in.(type) {
	case CoinSigned:
		v.TxPointer = TxPointer{}
		return v
	case CoinPredicate:
		v.TxPointer = TxPointer{}
		return v
	case ContractInput:
		v.UtxoID = UtxoID{}
		v.BalanceRoot = types.Bytes32{}
		v.StateRoot = types.Bytes32{}
		v.TxPointer = TxPointer{}
		return v
	}
	return in
}

// PrepareInitPredicateInput clears the fields of in that predicates must not observe.
func PrepareInitPredicateInput(in Input) Input {
	return PrepareSignInput(in)
}

func cloneInput(in Input) Input {
	switch v := in.(type) {
	case CoinPredicate:
		v.Predicate = cloneBytes(v.Predicate)
		v.PredicateData = cloneBytes(v.PredicateData)
		return v
	case MessageSigned:
		v.Data = cloneBytes(v.Data)
		return v
	case MessagePredicate:
		v.Data = cloneBytes(v.Data)
		v.Predicate = cloneBytes(v.Predicate)
		v.PredicateData = cloneBytes(v.PredicateData)
		return v
	}
	return in
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
