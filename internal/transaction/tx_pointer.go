package transaction

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/codec"
)

// TxPointerSize is the encoded size of a TxPointer.
const TxPointerSize = 2 * codec.WordSize

var ErrInvalidTxPointer = errors.New("invalid tx pointer")

// TxPointer locates a transaction by block height and index inside the block.
type TxPointer struct {
	BlockHeight uint32
	TxIndex     uint16
}

// NewTxPointer returns a TxPointer.
func NewTxPointer(blockHeight uint32, txIndex uint16) TxPointer {
	return TxPointer{BlockHeight: blockHeight, TxIndex: txIndex}
}

// EncodeStatic implements codec.Encodable.
func (p TxPointer) EncodeStatic(e *codec.Encoder) {
	e.U32(p.BlockHeight)
	e.U16(p.TxIndex)
}

// EncodeDynamic implements codec.Encodable.
func (TxPointer) EncodeDynamic(*codec.Encoder) {}

// SerializedSize implements codec.Encodable.
func (TxPointer) SerializedSize() int {
	return TxPointerSize
}

// DecodeTxPointer reads a TxPointer.
func DecodeTxPointer(d *codec.Decoder) (TxPointer, error) {
	height, err := d.U32()
	if err != nil {
		return TxPointer{}, fmt.Errorf("tx pointer block height: %w", err)
	}
	index, err := d.U16()
	if err != nil {
		return TxPointer{}, fmt.Errorf("tx pointer tx index: %w", err)
	}
	return TxPointer{BlockHeight: height, TxIndex: index}, nil
}

// String returns 8 hex chars of block height followed by 4 hex chars of tx index.
func (p TxPointer) String() string {
	return fmt.Sprintf("%08x%04x", p.BlockHeight, p.TxIndex)
}

// ParseTxPointer parses the String form. Either hex case is accepted.
func ParseTxPointer(s string) (TxPointer, error) {
	if len(s) != 12 {
		return TxPointer{}, fmt.Errorf("%w: expected 12 hex chars, got %d", ErrInvalidTxPointer, len(s))
	}
	height, err := strconv.ParseUint(s[:8], 16, 32)
	if err != nil {
		return TxPointer{}, fmt.Errorf("%w: block height: %v", ErrInvalidTxPointer, err)
	}
	index, err := strconv.ParseUint(s[8:], 16, 16)
	if err != nil {
		return TxPointer{}, fmt.Errorf("%w: tx index: %v", ErrInvalidTxPointer, err)
	}
	return TxPointer{BlockHeight: uint32(height), TxIndex: uint16(index)}, nil
}

// MarshalText implements encoding.TextMarshaler.
func (p TxPointer) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *TxPointer) UnmarshalText(text []byte) error {
	parsed, err := ParseTxPointer(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
