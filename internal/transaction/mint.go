package transaction

import (
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/codec"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/types"
)

// MintFixedSize is the size of the static part of a Mint, discriminant included.
var MintFixedSize = codec.MustAlign(codec.WordSize + TxPointerSize + codec.WordSize)

// Mint creates coins at the position TxPointer of a block. It has no gas fields, no inputs and
// no witnesses.
type Mint struct {
	txPointer TxPointer
	outputs   []Output

	metadata *Metadata
}

// NewMint returns a Mint transaction.
func NewMint(txPointer TxPointer, outputs []Output) *Mint {
	return &Mint{txPointer: txPointer, outputs: outputs}
}

func (*Mint) isTransaction() {}

func (*Mint) Kind() Kind { return KindMint }

func (*Mint) GasPrice() types.Word { return 0 }
func (*Mint) GasLimit() types.Word { return 0 }
func (*Mint) Maturity() types.Word { return 0 }
func (*Mint) Inputs() []Input { return nil }
func (*Mint) Witnesses() []Witness { return nil }

func (m *Mint) TxPointer() TxPointer { return m.txPointer }
func (m *Mint) Outputs() []Output { return m.outputs }

func (m *Mint) SetTxPointer(v TxPointer) { m.txPointer = v; m.metadata = nil }
func (m *Mint) SetOutputs(v []Output) { m.outputs = v; m.metadata = nil }
func (m *Mint) AddOutput(out Output) { m.outputs = append(m.outputs, out); m.metadata = nil }

// SetOutput replaces the output at index.
func (m *Mint) SetOutput(index int, out Output) {
	m.outputs[index] = out
	m.metadata = nil
}

func (m *Mint) meta() *Metadata {
	if m.metadata == nil {
		m.metadata = computeMetadata(MintFixedSize, nil, m.outputs, nil)
	}
	return m.metadata
}

func (m *Mint) Precompute() { m.meta() }
func (m *Mint) Metadata() *Metadata { return m.metadata }

func (*Mint) InputsOffset() int { return MintFixedSize }

func (*Mint) InputOffset(int) (int, bool) { return 0, false }

func (*Mint) InputPredicateOffset(int) (offset, length int, ok bool) { return 0, 0, false }

func (m *Mint) OutputsOffset() int { return m.meta().OutputsOffset }

func (m *Mint) OutputOffset(index int) (int, bool) {
	return offsetAt(m.meta().OutputOffsets, index)
}

func (m *Mint) WitnessesOffset() int { return m.meta().WitnessesOffset }

func (*Mint) WitnessOffset(int) (int, bool) { return 0, false }

func (m *Mint) SerializedSize() int { return m.meta().SerializedSize }
func (m *Mint) MeteredBytesSize() int { return m.WitnessesOffset() }

// EncodeStatic implements codec.Encodable.
func (m *Mint) EncodeStatic(e *codec.Encoder) {
	e.Discriminant(uint64(KindMint))
	m.txPointer.EncodeStatic(e)
	e.Length(len(m.outputs))
}

// EncodeDynamic implements codec.Encodable.
func (m *Mint) EncodeDynamic(e *codec.Encoder) {
	codec.EncodeSequence(e, m.outputs)
}

// Clone implements Transaction.
func (m *Mint) Clone() Transaction {
	return &Mint{txPointer: m.txPointer, outputs: cloneOutputs(m.outputs)}
}

func decodeMint(d *codec.Decoder) (*Mint, error) {
	var (
		m   Mint
		err error
	)
	if m.txPointer, err = DecodeTxPointer(d); err != nil {
		return nil, fmt.Errorf("mint: %w", err)
	}
	outputsLen, err := d.Word()
	if err != nil {
		return nil, fmt.Errorf("mint outputs length: %w", err)
	}
	if m.outputs, err = decodeOutputs(d, outputsLen); err != nil {
		return nil, err
	}
	return &m, nil
}
