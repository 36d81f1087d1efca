package transaction

import (
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/codec"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/types"
)

// ScriptFixedSize is the size of the static part of a Script, discriminant included.
var ScriptFixedSize = codec.MustAlign(9*codec.WordSize + 32)

// Script executes a script against the inputs.
type Script struct {
	gasPrice     types.Word
	gasLimit     types.Word
	maturity     types.Word
	receiptsRoot types.Bytes32
	script       []byte
	scriptData   []byte
	inputs       []Input
	outputs      []Output
	witnesses    []Witness

	metadata *Metadata
}

// NewScript returns a Script transaction.
func NewScript(
	gasPrice, gasLimit, maturity types.Word,
	script, scriptData []byte,
	inputs []Input,
	outputs []Output,
	witnesses []Witness,
	receiptsRoot types.Bytes32,
) *Script {
	return &Script{
		gasPrice:     gasPrice,
		gasLimit:     gasLimit,
		maturity:     maturity,
		receiptsRoot: receiptsRoot,
		script:       script,
		scriptData:   scriptData,
		inputs:       inputs,
		outputs:      outputs,
		witnesses:    witnesses,
	}
}

func (*Script) isTransaction() {}

func (*Script) Kind() Kind { return KindScript }

func (s *Script) GasPrice() types.Word { return s.gasPrice }
func (s *Script) GasLimit() types.Word { return s.gasLimit }
func (s *Script) Maturity() types.Word { return s.maturity }
func (s *Script) ReceiptsRoot() types.Bytes32 { return s.receiptsRoot }
func (s *Script) Script() []byte { return s.script }
func (s *Script) ScriptData() []byte { return s.scriptData }
func (s *Script) Inputs() []Input { return s.inputs }
func (s *Script) Outputs() []Output { return s.outputs }
func (s *Script) Witnesses() []Witness { return s.witnesses }

func (s *Script) SetGasPrice(v types.Word) { s.gasPrice = v; s.metadata = nil }
func (s *Script) SetGasLimit(v types.Word) { s.gasLimit = v; s.metadata = nil }
func (s *Script) SetMaturity(v types.Word) { s.maturity = v; s.metadata = nil }

func (s *Script) SetReceiptsRoot(v types.Bytes32) { s.receiptsRoot = v; s.metadata = nil }
func (s *Script) SetScript(v []byte) { s.script = v; s.metadata = nil }
func (s *Script) SetScriptData(v []byte) { s.scriptData = v; s.metadata = nil }
func (s *Script) SetInputs(v []Input) { s.inputs = v; s.metadata = nil }
func (s *Script) SetOutputs(v []Output) { s.outputs = v; s.metadata = nil }
func (s *Script) SetWitnesses(v []Witness) { s.witnesses = v; s.metadata = nil }
func (s *Script) AddInput(in Input) { s.inputs = append(s.inputs, in); s.metadata = nil }
func (s *Script) AddOutput(out Output) { s.outputs = append(s.outputs, out); s.metadata = nil }
func (s *Script) AddWitness(w Witness) { s.witnesses = append(s.witnesses, w); s.metadata = nil }

// SetInput replaces the input at index.
func (s *Script) SetInput(index int, in Input) {
	s.inputs[index] = in
	s.metadata = nil
}

// SetOutput replaces the output at index.
func (s *Script) SetOutput(index int, out Output) {
	s.outputs[index] = out
	s.metadata = nil
}

// SetWitness replaces the witness at index.
func (s *Script) SetWitness(index int, w Witness) {
	s.witnesses[index] = w
	s.metadata = nil
}

// ScriptOffset returns the offset of the script bytes.
func (*Script) ScriptOffset() int {
	return ScriptFixedSize
}

// ScriptDataOffset returns the offset of the script data bytes.
func (s *Script) ScriptDataOffset() int {
	return ScriptFixedSize + codec.Padded(len(s.script))
}

// ReceiptsRootOffset returns the offset of the receipts root.
func (*Script) ReceiptsRootOffset() int {
	return ScriptFixedSize - 32
}

func (s *Script) inputsOffset() int {
	return s.ScriptDataOffset() + codec.Padded(len(s.scriptData))
}

func (s *Script) meta() *Metadata {
	if s.metadata == nil {
		s.metadata = computeMetadata(s.inputsOffset(), s.inputs, s.outputs, s.witnesses)
	}
	return s.metadata
}

func (s *Script) Precompute() { s.meta() }
func (s *Script) Metadata() *Metadata { return s.metadata }

func (s *Script) InputsOffset() int { return s.meta().InputsOffset }
func (s *Script) InputOffset(index int) (int, bool) { return offsetAt(s.meta().InputOffsets, index) }
func (s *Script) OutputsOffset() int { return s.meta().OutputsOffset }
func (s *Script) OutputOffset(index int) (int, bool) { return offsetAt(s.meta().OutputOffsets, index) }
func (s *Script) WitnessesOffset() int { return s.meta().WitnessesOffset }
func (s *Script) WitnessOffset(index int) (int, bool) { return offsetAt(s.meta().WitnessOffsets, index) }
func (s *Script) SerializedSize() int { return s.meta().SerializedSize }

// MeteredBytesSize returns the encoded size without witnesses.
func (s *Script) MeteredBytesSize() int { return s.WitnessesOffset() }

// InputPredicateOffset returns the offset and length of the predicate of the input at index.
func (s *Script) InputPredicateOffset(index int) (offset, length int, ok bool) {
	return inputPredicateOffset(s.meta(), s.inputs, index)
}

// EncodeStatic implements codec.Encodable.
func (s *Script) EncodeStatic(e *codec.Encoder) {
	e.Discriminant(uint64(KindScript))
	e.Word(s.gasPrice)
	e.Word(s.gasLimit)
	e.Word(s.maturity)
	e.Length(len(s.script))
	e.Length(len(s.scriptData))
	e.Length(len(s.inputs))
	e.Length(len(s.outputs))
	e.Length(len(s.witnesses))
	e.Array(s.receiptsRoot[:])
}

// EncodeDynamic implements codec.Encodable.
func (s *Script) EncodeDynamic(e *codec.Encoder) {
	e.Blob(s.script)
	e.Blob(s.scriptData)
	codec.EncodeSequence(e, s.inputs)
	codec.EncodeSequence(e, s.outputs)
	codec.EncodeSequence(e, s.witnesses)
}

// Clone implements Transaction.
func (s *Script) Clone() Transaction {
	return &Script{
		gasPrice:     s.gasPrice,
		gasLimit:     s.gasLimit,
		maturity:     s.maturity,
		receiptsRoot: s.receiptsRoot,
		script:       cloneBytes(s.script),
		scriptData:   cloneBytes(s.scriptData),
		inputs:       cloneInputs(s.inputs),
		outputs:      cloneOutputs(s.outputs),
		witnesses:    cloneWitnesses(s.witnesses),
	}
}

func decodeScript(d *codec.Decoder) (*Script, error) {
	var (
		s   Script
		err error
	)
	if s.gasPrice, err = d.Word(); err != nil {
		return nil, fmt.Errorf("script gas price: %w", err)
	}
	if s.gasLimit, err = d.Word(); err != nil {
		return nil, fmt.Errorf("script gas limit: %w", err)
	}
	if s.maturity, err = d.Word(); err != nil {
		return nil, fmt.Errorf("script maturity: %w", err)
	}
	scriptLen, err := d.Length()
	if err != nil {
		return nil, fmt.Errorf("script length: %w", err)
	}
	scriptDataLen, err := d.Length()
	if err != nil {
		return nil, fmt.Errorf("script data length: %w", err)
	}
	inputsLen, err := d.Word()
	if err != nil {
		return nil, fmt.Errorf("script inputs length: %w", err)
	}
	outputsLen, err := d.Word()
	if err != nil {
		return nil, fmt.Errorf("script outputs length: %w", err)
	}
	witnessesLen, err := d.Word()
	if err != nil {
		return nil, fmt.Errorf("script witnesses length: %w", err)
	}
	if err = d.Array(s.receiptsRoot[:]); err != nil {
		return nil, fmt.Errorf("script receipts root: %w", err)
	}

	if s.script, err = d.Blob(scriptLen); err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	if s.scriptData, err = d.Blob(scriptDataLen); err != nil {
		return nil, fmt.Errorf("script data: %w", err)
	}
	if s.inputs, err = decodeInputs(d, inputsLen); err != nil {
		return nil, err
	}
	if s.outputs, err = decodeOutputs(d, outputsLen); err != nil {
		return nil, err
	}
	if s.witnesses, err = decodeWitnesses(d, witnessesLen); err != nil {
		return nil, err
	}
	return &s, nil
}
