package transaction

import (
	"bytes"
	"cmp"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/codec"
	"github.com/goodnatureofminers/blockinsight7000-txcore/internal/types"
)

// UtxoIDSize is the encoded size of a UtxoID.
const UtxoIDSize = 32 + codec.WordSize

var ErrInvalidUtxoID = errors.New("invalid utxo id")

// UtxoID references an output of a previous transaction.
type UtxoID struct {
	TxID        types.Bytes32
	OutputIndex uint8
}

// NewUtxoID returns a UtxoID.
func NewUtxoID(txID types.Bytes32, outputIndex uint8) UtxoID {
	return UtxoID{TxID: txID, OutputIndex: outputIndex}
}

// EncodeStatic implements codec.Encodable.
func (u UtxoID) EncodeStatic(e *codec.Encoder) {
	e.Array(u.TxID[:])
	e.U8(u.OutputIndex)
}

// EncodeDynamic implements codec.Encodable.
func (UtxoID) EncodeDynamic(*codec.Encoder) {}

// SerializedSize implements codec.Encodable.
func (UtxoID) SerializedSize() int {
	return UtxoIDSize
}

// DecodeUtxoID reads a UtxoID.
func DecodeUtxoID(d *codec.Decoder) (UtxoID, error) {
	var u UtxoID
	if err := d.Array(u.TxID[:]); err != nil {
		return UtxoID{}, fmt.Errorf("utxo id tx id: %w", err)
	}
	index, err := d.U8()
	if err != nil {
		return UtxoID{}, fmt.Errorf("utxo id output index: %w", err)
	}
	u.OutputIndex = index
	return u, nil
}

// Compare orders utxo ids by tx id, then by output index.
func (u UtxoID) Compare(o UtxoID) int {
	if c := bytes.Compare(u.TxID[:], o.TxID[:]); c != 0 {
		return c
	}
	return cmp.Compare(u.OutputIndex, o.OutputIndex)
}

// String returns 0x, the tx id in hex and the output index as two hex chars.
func (u UtxoID) String() string {
	return fmt.Sprintf("0x%x%02x", u.TxID[:], u.OutputIndex)
}

// MarshalText implements encoding.TextMarshaler.
func (u UtxoID) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *UtxoID) UnmarshalText(text []byte) error {
	parsed, err := ParseUtxoID(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// ParseUtxoID parses the String form. The 0x prefix is optional and either hex case is accepted.
func ParseUtxoID(s string) (UtxoID, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != 66 {
		return UtxoID{}, fmt.Errorf("%w: expected 66 hex chars, got %d", ErrInvalidUtxoID, len(s))
	}

	raw, err := hex.DecodeString(s)
	if err != nil {
		return UtxoID{}, fmt.Errorf("%w: %v", ErrInvalidUtxoID, err)
	}

	var u UtxoID
	copy(u.TxID[:], raw[:32])
	u.OutputIndex = raw[32]
	return u, nil
}
