package transaction

import (
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/codec"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/types"
)

// CreateFixedSize is the size of the static part of a Create, discriminant included.
var CreateFixedSize = codec.MustAlign(10*codec.WordSize + 32)

// Create deploys the contract whose bytecode is the witness at BytecodeWitnessIndex.
type Create struct {
	gasPrice             types.Word
	gasLimit             types.Word
	maturity             types.Word
	bytecodeLength       types.Word
	bytecodeWitnessIndex uint8
	salt                 types.Salt
	storageSlots         []StorageSlot
	inputs               []Input
	outputs              []Output
	witnesses            []Witness

	metadata *Metadata
}

// NewCreate returns a Create transaction. The bytecode length is derived from the bytecode
// witness when it exists.
func NewCreate(
	gasPrice, gasLimit, maturity types.Word,
	bytecodeWitnessIndex uint8,
	salt types.Salt,
	storageSlots []StorageSlot,
	inputs []Input,
	outputs []Output,
	witnesses []Witness,
) *Create {
	c := &Create{
		gasPrice:             gasPrice,
		gasLimit:             gasLimit,
		maturity:             maturity,
		bytecodeWitnessIndex: bytecodeWitnessIndex,
		salt:                 salt,
		storageSlots:         storageSlots,
		inputs:               inputs,
		outputs:              outputs,
		witnesses:            witnesses,
	}
	if int(bytecodeWitnessIndex) < len(witnesses) {
		c.bytecodeLength = types.Word(len(witnesses[bytecodeWitnessIndex]) / 4)
	}
	return c
}

func (*Create) isTransaction() {}

func (*Create) Kind() Kind { return KindCreate }

func (c *Create) GasPrice() types.Word { return c.gasPrice }
func (c *Create) GasLimit() types.Word { return c.gasLimit }
func (c *Create) Maturity() types.Word { return c.maturity }

// BytecodeLength is the declared bytecode length in 4-byte instructions.
func (c *Create) BytecodeLength() types.Word { return c.bytecodeLength }

func (c *Create) BytecodeWitnessIndex() uint8 { return c.bytecodeWitnessIndex }
func (c *Create) Salt() types.Salt { return c.salt }
func (c *Create) StorageSlots() []StorageSlot { return c.storageSlots }
func (c *Create) Inputs() []Input { return c.inputs }
func (c *Create) Outputs() []Output { return c.outputs }
func (c *Create) Witnesses() []Witness { return c.witnesses }

func (c *Create) SetGasPrice(v types.Word) { c.gasPrice = v; c.metadata = nil }
func (c *Create) SetGasLimit(v types.Word) { c.gasLimit = v; c.metadata = nil }
func (c *Create) SetMaturity(v types.Word) { c.maturity = v; c.metadata = nil }
func (c *Create) SetBytecodeLength(v types.Word) { c.bytecodeLength = v; c.metadata = nil }
func (c *Create) SetBytecodeWitnessIndex(v uint8) { c.bytecodeWitnessIndex = v; c.metadata = nil }
func (c *Create) SetSalt(v types.Salt) { c.salt = v; c.metadata = nil }
func (c *Create) SetStorageSlots(v []StorageSlot) { c.storageSlots = v; c.metadata = nil }
func (c *Create) SetInputs(v []Input) { c.inputs = v; c.metadata = nil }
func (c *Create) SetOutputs(v []Output) { c.outputs = v; c.metadata = nil }
func (c *Create) SetWitnesses(v []Witness) { c.witnesses = v; c.metadata = nil }

func (c *Create) AddStorageSlot(s StorageSlot) { c.storageSlots = append(c.storageSlots, s); c.metadata = nil }
func (c *Create) AddInput(in Input) { c.inputs = append(c.inputs, in); c.metadata = nil }
func (c *Create) AddOutput(out Output) { c.outputs = append(c.outputs, out); c.metadata = nil }
func (c *Create) AddWitness(w Witness) { c.witnesses = append(c.witnesses, w); c.metadata = nil }

// SetInput replaces the input at index.
func (c *Create) SetInput(index int, in Input) {
	c.inputs[index] = in
	c.metadata = nil
}

// SetOutput replaces the output at index.
func (c *Create) SetOutput(index int, out Output) {
	c.outputs[index] = out
	c.metadata = nil
}

// SetWitness replaces the witness at index.
func (c *Create) SetWitness(index int, w Witness) {
	c.witnesses[index] = w
	c.metadata = nil
}

// SaltOffset returns the offset of the salt.
func (*Create) SaltOffset() int {
	return CreateFixedSize - 32
}

// StorageSlotsOffset returns the offset of the first storage slot.
func (*Create) StorageSlotsOffset() int {
	return CreateFixedSize
}

// StorageSlotOffset returns the offset of the storage slot at index.
func (c *Create) StorageSlotOffset(index int) (int, bool) {
	if index < 0 || index >= len(c.storageSlots) {
		return 0, false
	}
	return CreateFixedSize + index*StorageSlotSize, true
}

// BytecodeOffset returns the offset of the bytecode inside its witness.
func (c *Create) BytecodeOffset() (int, bool) {
	offset, ok := c.WitnessOffset(int(c.bytecodeWitnessIndex))
	if !ok {
		return 0, false
	}
	return offset + codec.WordSize, true
}

func (c *Create) inputsOffset() int {
	return CreateFixedSize + len(c.storageSlots)*StorageSlotSize
}

func (c *Create) meta() *Metadata {
	if c.metadata == nil {
		c.metadata = computeMetadata(c.inputsOffset(), c.inputs, c.outputs, c.witnesses)
	}
	return c.metadata
}

func (c *Create) Precompute() { c.meta() }
func (c *Create) Metadata() *Metadata { return c.metadata }

func (c *Create) InputsOffset() int { return c.meta().InputsOffset }
func (c *Create) OutputsOffset() int { return c.meta().OutputsOffset }

func (c *Create) WitnessesOffset() int { return c.meta().WitnessesOffset }
func (c *Create) SerializedSize() int { return c.meta().SerializedSize }
func (c *Create) MeteredBytesSize() int { return c.WitnessesOffset() }

func (c *Create) InputOffset(index int) (int, bool) {
	return offsetAt(c.meta().InputOffsets, index)
}

func (c *Create) OutputOffset(index int) (int, bool) {
	return offsetAt(c.meta().OutputOffsets, index)
}

func (c *Create) WitnessOffset(index int) (int, bool) {
	return offsetAt(c.meta().WitnessOffsets, index)
}

func (c *Create) InputPredicateOffset(index int) (offset, length int, ok bool) {
	return inputPredicateOffset(c.meta(), c.inputs, index)
}

// EncodeStatic implements codec.Encodable.
func (c *Create) EncodeStatic(e *codec.Encoder) {
	e.Discriminant(uint64(KindCreate))
	e.Word(c.gasPrice)
	e.Word(c.gasLimit)
	e.Word(c.maturity)
	e.Word(c.bytecodeLength)
	e.U8(c.bytecodeWitnessIndex)
	e.Length(len(c.storageSlots))
	e.Length(len(c.inputs))
	e.Length(len(c.outputs))
	e.Length(len(c.witnesses))
	e.Array(c.salt[:])
}

// EncodeDynamic implements codec.Encodable.
func (c *Create) EncodeDynamic(e *codec.Encoder) {
	codec.EncodeSequence(e, c.storageSlots)
	codec.EncodeSequence(e, c.inputs)
	codec.EncodeSequence(e, c.outputs)
	codec.EncodeSequence(e, c.witnesses)
}

// Clone implements Transaction.
func (c *Create) Clone() Transaction {
	var slots []StorageSlot
	if c.storageSlots != nil {
		slots = append([]StorageSlot(nil), c.storageSlots...)
	}
	return &Create{
		gasPrice:             c.gasPrice,
		gasLimit:             c.gasLimit,
		maturity:             c.maturity,
		bytecodeLength:       c.bytecodeLength,
		bytecodeWitnessIndex: c.bytecodeWitnessIndex,
		salt:                 c.salt,
		storageSlots:         slots,
		inputs:               cloneInputs(c.inputs),
		outputs:              cloneOutputs(c.outputs),
		witnesses:            cloneWitnesses(c.witnesses),
	}
}

func decodeCreate(d *codec.Decoder) (*Create, error) {
	var (
		c   Create
		err error
	)
	if c.gasPrice, err = d.Word(); err != nil {
		return nil, fmt.Errorf("create gas price: %w", err)
	}
	if c.gasLimit, err = d.Word(); err != nil {
		return nil, fmt.Errorf("create gas limit: %w", err)
	}
	if c.maturity, err = d.Word(); err != nil {
		return nil, fmt.Errorf("create maturity: %w", err)
	}
	if c.bytecodeLength, err = d.Word(); err != nil {
		return nil, fmt.Errorf("create bytecode length: %w", err)
	}
	if c.bytecodeWitnessIndex, err = d.U8(); err != nil {
		return nil, fmt.Errorf("create bytecode witness index: %w", err)
	}
	slotsLen, err := d.Word()
	if err != nil {
		return nil, fmt.Errorf("create storage slots length: %w", err)
	}
	inputsLen, err := d.Word()
	if err != nil {
		return nil, fmt.Errorf("create inputs length: %w", err)
	}
	outputsLen, err := d.Word()
	if err != nil {
		return nil, fmt.Errorf("create outputs length: %w", err)
	}
	witnessesLen, err := d.Word()
	if err != nil {
		return nil, fmt.Errorf("create witnesses length: %w", err)
	}
	if err = d.Array(c.salt[:]); err != nil {
		return nil, fmt.Errorf("create salt: %w", err)
	}

	if c.storageSlots, err = codec.DecodeSequence(d, slotsLen, StorageSlotSize, DecodeStorageSlot); err != nil {
		return nil, fmt.Errorf("storage slots: %w", err)
	}
	if c.inputs, err = decodeInputs(d, inputsLen); err != nil {
		return nil, err
	}
	if c.outputs, err = decodeOutputs(d, outputsLen); err != nil {
		return nil, err
	}
	if c.witnesses, err = decodeWitnesses(d, witnessesLen); err != nil {
		return nil, err
	}
	return &c, nil
}
