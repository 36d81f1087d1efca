package transaction

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/types"
)

// JSONError reports the JSON field that failed to decode.
type JSONError struct {
	Field string
	Err   error
}

func (e *JSONError) Error() string {
	return fmt.Sprintf("transaction json: %s: %v", e.Field, e.Err)
}

func (e *JSONError) Unwrap() error {
	return e.Err
}

func jsonErr(field string, err error) error {
	var je *JSONError
	if errors.As(err, &je) {
		return &JSONError{Field: field + "." + je.Field, Err: je.Err}
	}
	return &JSONError{Field: field, Err: err}
}

// hexBytes renders byte fields as 0x-prefixed hex instead of base64.
type hexBytes []byte

func (b hexBytes) MarshalText() ([]byte, error) {
	return []byte("0x" + hex.EncodeToString(b)), nil
}

func (b *hexBytes) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(strings.TrimPrefix(string(text), "0x"), "0X")
	if s == "" {
		*b = nil
		return nil
	}
	v, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrInvalidHex, err)
	}
	*b = v
	return nil
}

type taggedJSON struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

type (
	coinPredicateJSON struct {
		CoinPredicate
		Predicate     hexBytes `json:"predicate"`
		PredicateData hexBytes `json:"predicate_data"`
	}

	messageSignedJSON struct {
		MessageSigned
		Data hexBytes `json:"data"`
	}

	messagePredicateJSON struct {
		MessagePredicate
		Data          hexBytes `json:"data"`
		Predicate     hexBytes `json:"predicate"`
		PredicateData hexBytes `json:"predicate_data"`
	}
)

const (
	inputTypeCoinSigned       = "coin_signed"
	inputTypeCoinPredicate    = "coin_predicate"
	inputTypeContract         = "contract"
	inputTypeMessageSigned    = "message_signed"
	inputTypeMessagePredicate = "message_predicate"

	outputTypeCoin            = "coin"
	outputTypeContract        = "contract"
	outputTypeMessage         = "message"
	outputTypeChange          = "change"
	outputTypeVariable        = "variable"
	outputTypeContractCreated = "contract_created"
)

func marshalTagged(kind string, v any) (taggedJSON, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return taggedJSON{}, err
	}
	return taggedJSON{Type: kind, Value: raw}, nil
}

func inputToJSON(in Input) (taggedJSON, error) {
	switch v := in.(type) {
	case CoinSigned:
		return marshalTagged(inputTypeCoinSigned, v)
	case CoinPredicate:
		return marshalTagged(inputTypeCoinPredicate, coinPredicateJSON{
			CoinPredicate: v, Predicate: v.Predicate, PredicateData: v.PredicateData,
		})
	case ContractInput:
		return marshalTagged(inputTypeContract, v)
	case MessageSigned:
		return marshalTagged(inputTypeMessageSigned, messageSignedJSON{MessageSigned: v, Data: v.Data})
	case MessagePredicate:
		return marshalTagged(inputTypeMessagePredicate, messagePredicateJSON{
			MessagePredicate: v, Data: v.Data, Predicate: v.Predicate, PredicateData: v.PredicateData,
		})
	}
	return taggedJSON{}, fmt.Errorf("unsupported input %T", in)
}

func inputFromJSON(t taggedJSON) (Input, error) {
	switch t.Type {
	case inputTypeCoinSigned:
		return unmarshalAs[CoinSigned](t.Value)
	case inputTypeCoinPredicate:
		v, err := unmarshalAs[coinPredicateJSON](t.Value)
		if err != nil {
			return nil, err
		}
		v.CoinPredicate.Predicate = v.Predicate
		v.CoinPredicate.PredicateData = v.PredicateData
		return v.CoinPredicate, nil
	case inputTypeContract:
		return unmarshalAs[ContractInput](t.Value)
	case inputTypeMessageSigned:
		v, err := unmarshalAs[messageSignedJSON](t.Value)
		if err != nil {
			return nil, err
		}
		v.MessageSigned.Data = v.Data
		return v.MessageSigned, nil
	case inputTypeMessagePredicate:
		v, err := unmarshalAs[messagePredicateJSON](t.Value)
		if err != nil {
			return nil, err
		}
		v.MessagePredicate.Data = v.Data
		v.MessagePredicate.Predicate = v.Predicate
		v.MessagePredicate.PredicateData = v.PredicateData
		return v.MessagePredicate, nil
	}
	return nil, fmt.Errorf("unknown input type %q", t.Type)
}

func outputToJSON(out Output) (taggedJSON, error) {
	switch v := out.(type) {
	case CoinOutput:
		return marshalTagged(outputTypeCoin, v)
	case ContractOutput:
		return marshalTagged(outputTypeContract, v)
	case MessageOutput:
		return marshalTagged(outputTypeMessage, v)
	case ChangeOutput:
		return marshalTagged(outputTypeChange, v)
	case VariableOutput:
		return marshalTagged(outputTypeVariable, v)
	case ContractCreatedOutput:
		return marshalTagged(outputTypeContractCreated, v)
	}
	return taggedJSON{}, fmt.Errorf("unsupported output %T", out)
}

func outputFromJSON(t taggedJSON) (Output, error) {
	switch t.Type {
	case outputTypeCoin:
		return unmarshalAs[CoinOutput](t.Value)
	case outputTypeContract:
		return unmarshalAs[ContractOutput](t.Value)
	case outputTypeMessage:
		return unmarshalAs[MessageOutput](t.Value)
	case outputTypeChange:
		return unmarshalAs[ChangeOutput](t.Value)
	case outputTypeVariable:
		return unmarshalAs[VariableOutput](t.Value)
	case outputTypeContractCreated:
		return unmarshalAs[ContractCreatedOutput](t.Value)
	}
	return nil, fmt.Errorf("unknown output type %q", t.Type)
}

func unmarshalAs[T any](raw json.RawMessage) (T, error) {
	var v T
	err := json.Unmarshal(raw, &v)
	return v, err
}

type transactionJSON struct {
	Type                 string         `json:"type"`
	GasPrice             types.Word     `json:"gas_price,omitempty"`
	GasLimit             types.Word     `json:"gas_limit,omitempty"`
	Maturity             types.Word     `json:"maturity,omitempty"`
	Script               hexBytes       `json:"script,omitempty"`
	ScriptData           hexBytes       `json:"script_data,omitempty"`
	ReceiptsRoot         *types.Bytes32 `json:"receipts_root,omitempty"`
	BytecodeLength       types.Word     `json:"bytecode_length,omitempty"`
	BytecodeWitnessIndex uint8          `json:"bytecode_witness_index,omitempty"`
	Salt                 *types.Salt    `json:"salt,omitempty"`
	StorageSlots         []StorageSlot  `json:"storage_slots,omitempty"`
	TxPointer            *TxPointer     `json:"tx_pointer,omitempty"`
	Inputs               []taggedJSON   `json:"inputs,omitempty"`
	Outputs              []taggedJSON   `json:"outputs"`
	Witnesses            []hexBytes     `json:"witnesses,omitempty"`
}

// MarshalJSON renders the full transaction tree. Byte fields are 0x-prefixed hex.
func MarshalJSON(tx Transaction) ([]byte, error) {
	v := transactionJSON{
		Type:     tx.Kind().String(),
		GasPrice: tx.GasPrice(),
		GasLimit: tx.GasLimit(),
		Maturity: tx.Maturity(),
		Outputs:  make([]taggedJSON, 0, len(tx.Outputs())),
	}
	switch t := tx.(type) {
	case *Script:
		root := t.receiptsRoot
		v.Script = t.script
		v.ScriptData = t.scriptData
		v.ReceiptsRoot = &root
	case *Create:
		salt := t.salt
		v.BytecodeLength = t.bytecodeLength
		v.BytecodeWitnessIndex = t.bytecodeWitnessIndex
		v.Salt = &salt
		v.StorageSlots = t.storageSlots
	case *Mint:
		ptr := t.txPointer
		v.TxPointer = &ptr
	}
	for i, in := range tx.Inputs() {
		tagged, err := inputToJSON(in)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		v.Inputs = append(v.Inputs, tagged)
	}
	for i, out := range tx.Outputs() {
		tagged, err := outputToJSON(out)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		v.Outputs = append(v.Outputs, tagged)
	}
	for _, w := range tx.Witnesses() {
		v.Witnesses = append(v.Witnesses, hexBytes(w))
	}
	return json.Marshal(v)
}

// UnmarshalJSON parses the output of MarshalJSON. Failures are reported as *JSONError.
func UnmarshalJSON(data []byte) (Transaction, error) {
	var v transactionJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, jsonErr("transaction", err)
	}
	kind, err := ParseKind(v.Type)
	if err != nil {
		return nil, jsonErr("type", err)
	}

	inputs := make([]Input, 0, len(v.Inputs))
	for i, t := range v.Inputs {
		in, err := inputFromJSON(t)
		if err != nil {
			return nil, jsonErr(fmt.Sprintf("inputs[%d]", i), err)
		}
		inputs = append(inputs, in)
	}
	outputs := make([]Output, 0, len(v.Outputs))
	for i, t := range v.Outputs {
		out, err := outputFromJSON(t)
		if err != nil {
			return nil, jsonErr(fmt.Sprintf("outputs[%d]", i), err)
		}
		outputs = append(outputs, out)
	}
	witnesses := make([]Witness, 0, len(v.Witnesses))
	for _, w := range v.Witnesses {
		witnesses = append(witnesses, Witness(w))
	}

	switch kind {
	case KindScript:
		var root types.Bytes32
		if v.ReceiptsRoot != nil {
			root = *v.ReceiptsRoot
		}
		return NewScript(v.GasPrice, v.GasLimit, v.Maturity, v.Script, v.ScriptData, inputs, outputs, witnesses, root), nil
	case KindCreate:
		var salt types.Salt
		if v.Salt != nil {
			salt = *v.Salt
		}
		c := NewCreate(v.GasPrice, v.GasLimit, v.Maturity, v.BytecodeWitnessIndex, salt, v.StorageSlots, inputs, outputs, witnesses)
		c.bytecodeLength = v.BytecodeLength
		return c, nil
	default:
		if len(inputs) > 0 || len(witnesses) > 0 {
			return nil, jsonErr("inputs", errors.New("mint has no inputs or witnesses"))
		}
		var ptr TxPointer
		if v.TxPointer != nil {
			ptr = *v.TxPointer
		}
		return NewMint(ptr, outputs), nil
	}
}
