package transaction

import (
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/codec"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/crypto"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/types"
)

const (
	outputTagCoin uint64 = iota
	outputTagContract
	outputTagMessage
	outputTagChange
	outputTagVariable
	outputTagContractCreated

	outputTagCount
)

// Encoded sizes of the output variants, discriminant included.
var (
	OutputCoinSize            = codec.MustAlign(codec.WordSize + 32 + codec.WordSize + 32)
	OutputContractSize        = codec.MustAlign(codec.WordSize + codec.WordSize + 32 + 32)
	OutputMessageSize         = codec.MustAlign(codec.WordSize + 32 + codec.WordSize)
	OutputContractCreatedSize = codec.MustAlign(codec.WordSize + 32 + 32)
)

// Output is one of CoinOutput, ContractOutput, MessageOutput, ChangeOutput, VariableOutput or
// ContractCreatedOutput.
type Output interface {
	codec.Encodable
	isOutput()
}

type (
	// CoinOutput sends an amount of an asset to an address.
	CoinOutput struct {
		To      types.Address `json:"to"`
		Amount  types.Word    `json:"amount"`
		AssetID types.AssetID `json:"asset_id"`
	}

	// ContractOutput carries the post-execution state of the contract input at InputIndex.
	ContractOutput struct {
		InputIndex  uint8         `json:"input_index"`
		BalanceRoot types.Bytes32 `json:"balance_root"`
		StateRoot   types.Bytes32 `json:"state_root"`
	}

	// MessageOutput is filled in by execution with a message to Recipient.
	MessageOutput struct {
		Recipient types.Address `json:"recipient"`
		Amount    types.Word    `json:"amount"`
	}

	// ChangeOutput receives the unspent balance of AssetID.
	ChangeOutput struct {
		To      types.Address `json:"to"`
		Amount  types.Word    `json:"amount"`
		AssetID types.AssetID `json:"asset_id"`
	}

	// VariableOutput is filled in by execution.
	VariableOutput struct {
		To      types.Address `json:"to"`
		Amount  types.Word    `json:"amount"`
		AssetID types.AssetID `json:"asset_id"`
	}

	// ContractCreatedOutput announces the contract deployed by a Create transaction.
	ContractCreatedOutput struct {
		ContractID types.ContractID `json:"contract_id"`
		StateRoot  types.Bytes32    `json:"state_root"`
	}
)

func (CoinOutput) isOutput() {}

func (ContractOutput) isOutput() {}

func (MessageOutput) isOutput() {}

func (ChangeOutput) isOutput() {}

func (VariableOutput) isOutput() {}

func (ContractCreatedOutput) isOutput() {}

func encodeTransfer(e *codec.Encoder, tag uint64, to types.Address, amount types.Word, assetID types.AssetID) {
	e.Discriminant(tag)
	e.Array(to[:])
	e.Word(amount)
	e.Array(assetID[:])
}

// EncodeStatic implements codec.Encodable.
func (o CoinOutput) EncodeStatic(e *codec.Encoder) {
	encodeTransfer(e, outputTagCoin, o.To, o.Amount, o.AssetID)
}

// EncodeDynamic implements codec.Encodable.
func (CoinOutput) EncodeDynamic(*codec.Encoder) {}

// SerializedSize implements codec.Encodable.
func (CoinOutput) SerializedSize() int { return OutputCoinSize }

// EncodeStatic implements codec.Encodable.
func (o ContractOutput) EncodeStatic(e *codec.Encoder) {
	e.Discriminant(outputTagContract)
	e.U8(o.InputIndex)
	e.Array(o.BalanceRoot[:])
	e.Array(o.StateRoot[:])
}

// EncodeDynamic implements codec.Encodable.
func (ContractOutput) EncodeDynamic(*codec.Encoder) {}

// SerializedSize implements codec.Encodable.
func (ContractOutput) SerializedSize() int { return OutputContractSize }

// EncodeStatic implements codec.Encodable.
func (o MessageOutput) EncodeStatic(e *codec.Encoder) {
	e.Discriminant(outputTagMessage)
	e.Array(o.Recipient[:])
	e.Word(o.Amount)
}

// EncodeDynamic implements codec.Encodable.
func (MessageOutput) EncodeDynamic(*codec.Encoder) {}

// SerializedSize implements codec.Encodable.
func (MessageOutput) SerializedSize() int { return OutputMessageSize }

// EncodeStatic implements codec.Encodable.
func (o ChangeOutput) EncodeStatic(e *codec.Encoder) {
	encodeTransfer(e, outputTagChange, o.To, o.Amount, o.AssetID)
}

// EncodeDynamic implements codec.Encodable.
func (ChangeOutput) EncodeDynamic(*codec.Encoder) {}

// SerializedSize implements codec.Encodable.
func (ChangeOutput) SerializedSize() int { return OutputCoinSize }

// EncodeStatic implements codec.Encodable.
func (o VariableOutput) EncodeStatic(e *codec.Encoder) {
	encodeTransfer(e, outputTagVariable, o.To, o.Amount, o.AssetID)
}

// EncodeDynamic implements codec.Encodable.
func (VariableOutput) EncodeDynamic(*codec.Encoder) {}

// SerializedSize implements codec.Encodable.
func (VariableOutput) SerializedSize() int { return OutputCoinSize }

// EncodeStatic implements codec.Encodable.
func (o ContractCreatedOutput) EncodeStatic(e *codec.Encoder) {
	e.Discriminant(outputTagContractCreated)
	e.Array(o.ContractID[:])
	e.Array(o.StateRoot[:])
}

// EncodeDynamic implements codec.Encodable.
func (ContractCreatedOutput) EncodeDynamic(*codec.Encoder) {}

// SerializedSize implements codec.Encodable.
func (ContractCreatedOutput) SerializedSize() int { return OutputContractCreatedSize }

// DecodeOutput reads one output.
func DecodeOutput(d *codec.Decoder) (Output, error) {
	tag, err := d.Discriminant(outputTagCount)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}

	switch tag {
	case outputTagCoin, outputTagChange, outputTagVariable:
		var (
			to      types.Address
			assetID types.AssetID
		)
		if err := d.Array(to[:]); err != nil {
			return nil, fmt.Errorf("output to: %w", err)
		}
		amount, err := d.Word()
		if err != nil {
			return nil, fmt.Errorf("output amount: %w", err)
		}
		if err := d.Array(assetID[:]); err != nil {
			return nil, fmt.Errorf("output asset id: %w", err)
		}
		switch tag {
		case outputTagCoin:
			return CoinOutput{To: to, Amount: amount, AssetID: assetID}, nil
		case outputTagChange:
			return ChangeOutput{To: to, Amount: amount, AssetID: assetID}, nil
		default:
			return VariableOutput{To: to, Amount: amount, AssetID: assetID}, nil
		}

	case outputTagContract:
		var o ContractOutput
		if o.InputIndex, err = d.U8(); err != nil {
			return nil, fmt.Errorf("contract output input index: %w", err)
		}
		if err := d.Array(o.BalanceRoot[:]); err != nil {
			return nil, fmt.Errorf("contract output balance root: %w", err)
		}
		if err := d.Array(o.StateRoot[:]); err != nil {
			return nil, fmt.Errorf("contract output state root: %w", err)
		}
		return o, nil

	case outputTagMessage:
		var o MessageOutput
		if err := d.Array(o.Recipient[:]); err != nil {
			return nil, fmt.Errorf("message output recipient: %w", err)
		}
		if o.Amount, err = d.Word(); err != nil {
			return nil, fmt.Errorf("message output amount: %w", err)
		}
		return o, nil

	default:
		var o ContractCreatedOutput
		if err := d.Array(o.ContractID[:]); err != nil {
			return nil, fmt.Errorf("contract created output contract id: %w", err)
		}
		if err := d.Array(o.StateRoot[:]); err != nil {
			return nil, fmt.Errorf("contract created output state root: %w", err)
		}
		return o, nil
	}
}

// PrepareSignOutput clears the fields of o that execution fills in and the transaction id does
// not cover.
func PrepareSignOutput(o Output) Output {
	switch v := o.(type) {
	case ContractOutput:
		v.BalanceRoot = types.Bytes32{}
		v.StateRoot = types.Bytes32{}
		return v
	case MessageOutput:
		return MessageOutput{}
	case ChangeOutput:
		v.Amount = 0
		return v
	case VariableOutput:
		return VariableOutput{}
	}
	return o
}

// PrepareInitScriptOutput clears the fields of o that script execution fills in.
func PrepareInitScriptOutput(o Output) Output {
	switch v := o.(type) {
	case MessageOutput:
		return MessageOutput{}
	case ChangeOutput:
		v.Amount = 0
		return v
	case VariableOutput:
		return VariableOutput{}
	}
	return o
}

// PrepareInitPredicateOutput clears the fields of o that predicates must not observe.
func PrepareInitPredicateOutput(o Output) Output {
	return PrepareSignOutput(o)
}

// OutputAssetID returns the asset of coin, change and variable outputs.
func OutputAssetID(o Output) (types.AssetID, bool) {
	switch v := o.(type) {
	case CoinOutput:
		return v.AssetID, true
	case ChangeOutput:
		return v.AssetID, true
	case VariableOutput:
		return v.AssetID, true
	}
	return types.AssetID{}, false
}

// MessageNonce derives the nonce of the message emitted at output index idx of txID.
func MessageNonce(txID types.Bytes32, idx types.Word) types.Bytes32 {
	return crypto.NewHasher().Chain(txID[:]).Chain([]byte{byte(idx)}).Digest()
}

// MessageDigest hashes message data.
func MessageDigest(data []byte) types.Bytes32 {
	return crypto.Hash(data)
}
