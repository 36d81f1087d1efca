// Package transaction defines the transaction model, its canonical encoding, field offsets and
// identifiers.
package transaction

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/codec"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/types"
)

// Kind is the transaction discriminant.
type Kind uint64

const (
	KindScript Kind = iota
	KindCreate
	KindMint

	kindCount
)

var kindNames = [...]string{
	KindScript: "script",
	KindCreate: "create",
	KindMint:   "mint",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint64(k))
}

// ParseKind parses the String form of a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown transaction kind %q", s)
}

var ErrTrailingBytes = errors.New("trailing bytes after transaction")

// Transaction is one of *Script, *Create or *Mint.
//
// Fields are mutated through setters only: every setter drops the cached Metadata. Slices
// returned by getters must not be modified in place.
type Transaction interface {
	codec.Encodable

	Kind() Kind
	GasPrice() types.Word
	GasLimit() types.Word
	Maturity() types.Word
	Inputs() []Input
	Outputs() []Output
	Witnesses() []Witness

	InputsOffset() int
	InputOffset(index int) (int, bool)
	InputPredicateOffset(index int) (offset, length int, ok bool)
	OutputsOffset() int
	OutputOffset(index int) (int, bool)
	WitnessesOffset() int
	WitnessOffset(index int) (int, bool)
	MeteredBytesSize() int

	// Precompute fills the metadata cache.
	Precompute()
	// Metadata returns the cached metadata, or nil when it has not been computed since the last mutation.
	Metadata() *Metadata
	// Clone returns a deep copy without cached metadata.
	Clone() Transaction

	isTransaction()
}

// Encode returns the canonical encoding of tx.
func Encode(tx Transaction) []byte {
	return codec.Encode(tx)
}

// EncodeInto writes the canonical encoding of tx into dst.
func EncodeInto(tx Transaction, dst []byte) (int, error) {
	return codec.EncodeInto(tx, dst)
}

// Decode reads a transaction that must span all of b.
func Decode(b []byte) (Transaction, error) {
	tx, n, err := DecodePrefix(b)
	if err != nil {
		return nil, err
	}
	if n != len(b) {
		return nil, fmt.Errorf("%w: %d bytes", ErrTrailingBytes, len(b)-n)
	}
	return tx, nil
}

// DecodePrefix reads a transaction from the start of b and returns it with the number of bytes consumed.
func DecodePrefix(b []byte) (Transaction, int, error) {
	d := codec.NewDecoder(b)
	tx, err := DecodeTransaction(d)
	if err != nil {
		return nil, 0, err
	}
	return tx, d.Offset(), nil
}

// DecodeTransaction reads a transaction from d.
func DecodeTransaction(d *codec.Decoder) (Transaction, error) {
	tag, err := d.Discriminant(uint64(kindCount))
	if err != nil {
		return nil, fmt.Errorf("transaction: %w", err)
	}

	switch Kind(tag) {
	case KindScript:
		return decodeScript(d)
	case KindCreate:
		return decodeCreate(d)
	default:
		return decodeMint(d)
	}
}

// Minimal encoded sizes used to bound sequence allocations.
var (
	minInputSize   = min(InputCoinSize, InputContractSize, InputMessageSize)
	minOutputSize  = OutputMessageSize
	minWitnessSize = codec.WordSize
)

func decodeInputs(d *codec.Decoder, n uint64) ([]Input, error) {
	inputs, err := codec.DecodeSequence(d, n, minInputSize, DecodeInput)
	if err != nil {
		return nil, fmt.Errorf("inputs: %w", err)
	}
	return inputs, nil
}

func decodeOutputs(d *codec.Decoder, n uint64) ([]Output, error) {
	outputs, err := codec.DecodeSequence(d, n, minOutputSize, DecodeOutput)
	if err != nil {
		return nil, fmt.Errorf("outputs: %w", err)
	}
	return outputs, nil
}

func decodeWitnesses(d *codec.Decoder, n uint64) ([]Witness, error) {
	witnesses, err := codec.DecodeSequence(d, n, minWitnessSize, DecodeWitness)
	if err != nil {
		return nil, fmt.Errorf("witnesses: %w", err)
	}
	return witnesses, nil
}

// Metadata caches offsets derived from field lengths. Offsets are measured from the start of the
// encoded transaction.
type Metadata struct {
	InputsOffset    int
	InputOffsets    []int
	OutputsOffset   int
	OutputOffsets   []int
	WitnessesOffset int
	WitnessOffsets  []int
	SerializedSize  int
}

func computeMetadata(inputsOffset int, inputs []Input, outputs []Output, witnesses []Witness) *Metadata {
	m := &Metadata{
		InputsOffset:   inputsOffset,
		InputOffsets:   make([]int, len(inputs)),
		OutputOffsets:  make([]int, len(outputs)),
		WitnessOffsets: make([]int, len(witnesses)),
	}

	offset := inputsOffset
	for i, in := range inputs {
		m.InputOffsets[i] = offset
		offset += in.SerializedSize()
	}
	m.OutputsOffset = offset
	for i, out := range outputs {
		m.OutputOffsets[i] = offset
		offset += out.SerializedSize()
	}
	m.WitnessesOffset = offset
	for i, w := range witnesses {
		m.WitnessOffsets[i] = offset
		offset += w.SerializedSize()
	}
	m.SerializedSize = offset
	return m
}

// FreshMetadata computes the metadata of tx without consulting or filling its cache.
func FreshMetadata(tx Transaction) *Metadata {
	switch t := tx.(type) {
	case *Script:
		return computeMetadata(t.inputsOffset(), t.inputs, t.outputs, t.witnesses)
	case *Create:
		return computeMetadata(t.inputsOffset(), t.inputs, t.outputs, t.witnesses)
	case *Mint:
		return computeMetadata(MintFixedSize, nil, t.outputs, nil)
	}
	return nil
}

func offsetAt(offsets []int, index int) (int, bool) {
	if index < 0 || index >= len(offsets) {
		return 0, false
	}
	return offsets[index], true
}

func inputPredicateOffset(m *Metadata, inputs []Input, index int) (offset, length int, ok bool) {
	start, ok := offsetAt(m.InputOffsets, index)
	if !ok {
		return 0, 0, false
	}
	relative, ok := InputPredicateOffset(inputs[index])
	if !ok {
		return 0, 0, false
	}
	predicate, _, _ := InputPredicate(inputs[index])
	return start + relative, len(predicate), true
}

func cloneInputs(inputs []Input) []Input {
	if inputs == nil {
		return nil
	}
	out := make([]Input, len(inputs))
	for i, in := range inputs {
		out[i] = cloneInput(in)
	}
	return out
}

func cloneOutputs(outputs []Output) []Output {
	if outputs == nil {
		return nil
	}
	return append([]Output(nil), outputs...)
}

func cloneWitnesses(witnesses []Witness) []Witness {
	if witnesses == nil {
		return nil
	}
	out := make([]Witness, len(witnesses))
	for i, w := range witnesses {
		out[i] = Witness(cloneBytes(w))
	}
	return out
}
